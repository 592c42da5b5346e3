package http

import (
	"github.com/gin-gonic/gin"

	"habit-tracker-go/internal/models"
)

func (s *Server) listHabits(c *gin.Context) {
	includeDeleted := c.Query("include_deleted") == "true"
	habits, err := s.store.ListHabits(s.userID(c), includeDeleted,
		atoiQuery(c, "skip", 0), atoiQuery(c, "limit", 100))
	if err != nil {
		s.fail(c, err, "Habit not found")
		return
	}
	c.JSON(200, habits)
}

type habitIn struct {
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description"`
	HasCounts        bool            `json:"has_counts"`
	IsWeight         bool            `json:"is_weight"`
	CountSettings    models.JSONMap  `json:"count_settings"`
	WeightSettings   models.JSONMap  `json:"weight_settings"`
	ScheduleSettings models.JSONMap  `json:"schedule_settings"`
	RewardSettings   models.JSONMap  `json:"reward_settings"`
	DisplaySettings  models.JSONMap  `json:"display_settings"`
}

func (s *Server) createHabit(c *gin.Context) {
	var input habitIn
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	habit := models.Habit{
		UserID:           s.userID(c),
		Name:             input.Name,
		Description:      input.Description,
		HasCounts:        input.HasCounts,
		IsWeight:         input.IsWeight,
		CountSettings:    input.CountSettings,
		WeightSettings:   input.WeightSettings,
		ScheduleSettings: input.ScheduleSettings,
		RewardSettings:   input.RewardSettings,
		DisplaySettings:  input.DisplaySettings,
	}
	if err := s.store.CreateHabit(&habit); err != nil {
		s.fail(c, err, "Habit not found")
		return
	}
	c.JSON(200, habit)
}

func (s *Server) getHabit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	includeDeleted := c.Query("include_deleted") == "true"
	habit, err := s.store.GetHabit(s.userID(c), id, includeDeleted)
	if err != nil {
		s.fail(c, err, "Habit not found")
		return
	}
	c.JSON(200, habit)
}

type habitUpdate struct {
	Name             *string         `json:"name"`
	Description      *string         `json:"description"`
	HasCounts        *bool           `json:"has_counts"`
	IsWeight         *bool           `json:"is_weight"`
	CountSettings    *models.JSONMap `json:"count_settings"`
	WeightSettings   *models.JSONMap `json:"weight_settings"`
	ScheduleSettings *models.JSONMap `json:"schedule_settings"`
	RewardSettings   *models.JSONMap `json:"reward_settings"`
	DisplaySettings  *models.JSONMap `json:"display_settings"`
}

func (s *Server) updateHabit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	habit, err := s.store.GetHabit(s.userID(c), id, false)
	if err != nil {
		s.fail(c, err, "Habit not found")
		return
	}

	var input habitUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	if input.Name != nil {
		habit.Name = *input.Name
	}
	if input.Description != nil {
		habit.Description = *input.Description
	}
	if input.HasCounts != nil {
		habit.HasCounts = *input.HasCounts
	}
	if input.IsWeight != nil {
		habit.IsWeight = *input.IsWeight
	}
	if input.CountSettings != nil {
		habit.CountSettings = *input.CountSettings
	}
	if input.WeightSettings != nil {
		habit.WeightSettings = *input.WeightSettings
	}
	if input.ScheduleSettings != nil {
		habit.ScheduleSettings = *input.ScheduleSettings
	}
	if input.RewardSettings != nil {
		habit.RewardSettings = *input.RewardSettings
	}
	if input.DisplaySettings != nil {
		habit.DisplaySettings = *input.DisplaySettings
	}

	if err := s.store.SaveHabit(habit); err != nil {
		s.fail(c, err, "Habit not found")
		return
	}
	c.JSON(200, habit)
}

func (s *Server) deleteHabit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if c.Query("hard_delete") == "true" {
		if err := s.store.HardDeleteHabit(s.userID(c), id); err != nil {
			s.fail(c, err, "Habit not found")
			return
		}
		c.JSON(200, gin.H{"message": "Habit permanently deleted"})
		return
	}

	if err := s.store.SoftDeleteHabit(s.userID(c), id); err != nil {
		s.fail(c, err, "Habit not found")
		return
	}
	c.JSON(200, gin.H{"message": "Habit deleted"})
}

func (s *Server) listSubHabits(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	// Listing is scoped under the parent; verify ownership first so a foreign
	// habit reads as missing.
	if _, err := s.store.GetHabit(s.userID(c), id, false); err != nil {
		s.fail(c, err, "Habit not found")
		return
	}

	subs, err := s.store.ListSubHabits(s.userID(c), id)
	if err != nil {
		s.fail(c, err, "Habit not found")
		return
	}
	c.JSON(200, subs)
}

type subHabitIn struct {
	ParentHabitID  uint           `json:"parent_habit_id" binding:"required"`
	Name           string         `json:"name" binding:"required"`
	OrderIndex     int            `json:"order_index"`
	RewardSettings models.JSONMap `json:"reward_settings"`
}

func (s *Server) createSubHabit(c *gin.Context) {
	var input subHabitIn
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	userID := s.userID(c)
	if _, err := s.store.GetHabit(userID, input.ParentHabitID, false); err != nil {
		s.fail(c, err, "Parent habit not found")
		return
	}

	sub := models.SubHabit{
		ParentHabitID:  input.ParentHabitID,
		UserID:         userID,
		Name:           input.Name,
		OrderIndex:     input.OrderIndex,
		RewardSettings: input.RewardSettings,
	}
	if err := s.store.CreateSubHabit(&sub); err != nil {
		s.fail(c, err, "Parent habit not found")
		return
	}
	c.JSON(200, sub)
}

type subHabitUpdate struct {
	Name           *string         `json:"name"`
	OrderIndex     *int            `json:"order_index"`
	RewardSettings *models.JSONMap `json:"reward_settings"`
}

func (s *Server) updateSubHabit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sub, err := s.store.GetSubHabit(s.userID(c), id)
	if err != nil {
		s.fail(c, err, "Sub-habit not found")
		return
	}

	var input subHabitUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	if input.Name != nil {
		sub.Name = *input.Name
	}
	if input.OrderIndex != nil {
		sub.OrderIndex = *input.OrderIndex
	}
	if input.RewardSettings != nil {
		sub.RewardSettings = *input.RewardSettings
	}

	if err := s.store.SaveSubHabit(sub); err != nil {
		s.fail(c, err, "Sub-habit not found")
		return
	}
	c.JSON(200, sub)
}

func (s *Server) deleteSubHabit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteSubHabit(s.userID(c), id); err != nil {
		s.fail(c, err, "Sub-habit not found")
		return
	}
	c.JSON(200, gin.H{"message": "Sub-habit deleted"})
}
