package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"habit-tracker-go/internal/models"
)

func (s *Server) listChecks(c *gin.Context) {
	f, ok := s.eventFilter(c)
	if !ok {
		return
	}
	checks, err := s.store.ListChecks(s.userID(c), f)
	if err != nil {
		s.fail(c, err, "Check not found")
		return
	}
	c.JSON(200, checks)
}

type checkIn struct {
	HabitID    *uint          `json:"habit_id"`
	SubHabitID *uint          `json:"sub_habit_id"`
	Checked    bool           `json:"checked"`
	CheckDate  *time.Time     `json:"check_date"`
	Metadata   models.JSONMap `json:"metadata"`
}

func (s *Server) createCheck(c *gin.Context) {
	var input checkIn
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	userID := s.userID(c)
	if input.HabitID != nil {
		if _, err := s.store.GetHabit(userID, *input.HabitID, false); err != nil {
			s.fail(c, err, "Habit not found")
			return
		}
	}
	if input.SubHabitID != nil {
		if _, err := s.store.GetSubHabit(userID, *input.SubHabitID); err != nil {
			s.fail(c, err, "Sub-habit not found")
			return
		}
	}

	checkDate := time.Now().UTC()
	if input.CheckDate != nil {
		checkDate = *input.CheckDate
	}

	check := models.Check{
		UserID:     userID,
		HabitID:    input.HabitID,
		SubHabitID: input.SubHabitID,
		Checked:    input.Checked,
		CheckDate:  checkDate,
		Metadata:   input.Metadata,
	}
	if err := s.store.CreateCheck(&check); err != nil {
		s.fail(c, err, "Check not found")
		return
	}
	c.JSON(200, check)
}

type checkUpdate struct {
	Checked  *bool           `json:"checked"`
	Metadata *models.JSONMap `json:"metadata"`
}

func (s *Server) updateCheck(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	check, err := s.store.GetCheck(s.userID(c), id)
	if err != nil {
		s.fail(c, err, "Check not found")
		return
	}

	var input checkUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	if input.Checked != nil {
		check.Checked = *input.Checked
	}
	if input.Metadata != nil {
		check.Metadata = *input.Metadata
	}

	if err := s.store.SaveCheck(check); err != nil {
		s.fail(c, err, "Check not found")
		return
	}
	c.JSON(200, check)
}

func (s *Server) deleteCheck(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteCheck(s.userID(c), id); err != nil {
		s.fail(c, err, "Check not found")
		return
	}
	c.JSON(200, gin.H{"message": "Check deleted"})
}

func (s *Server) listCounts(c *gin.Context) {
	f, ok := s.eventFilter(c)
	if !ok {
		return
	}
	counts, err := s.store.ListCounts(s.userID(c), f)
	if err != nil {
		s.fail(c, err, "Count not found")
		return
	}
	c.JSON(200, counts)
}

type countIn struct {
	HabitID   uint           `json:"habit_id" binding:"required"`
	Value     float64        `json:"value"`
	CountDate *time.Time     `json:"count_date"`
	Metadata  models.JSONMap `json:"metadata"`
}

func (s *Server) createCount(c *gin.Context) {
	var input countIn
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	userID := s.userID(c)
	if _, err := s.store.GetHabit(userID, input.HabitID, false); err != nil {
		s.fail(c, err, "Habit not found")
		return
	}

	countDate := time.Now().UTC()
	if input.CountDate != nil {
		countDate = *input.CountDate
	}

	// Negative values are valid decrements; no floor is enforced.
	count := models.Count{
		UserID:    userID,
		HabitID:   input.HabitID,
		Value:     input.Value,
		CountDate: countDate,
		Metadata:  input.Metadata,
	}
	if err := s.store.CreateCount(&count); err != nil {
		s.fail(c, err, "Count not found")
		return
	}
	c.JSON(200, count)
}

func (s *Server) deleteCount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteCount(s.userID(c), id); err != nil {
		s.fail(c, err, "Count not found")
		return
	}
	c.JSON(200, gin.H{"message": "Count deleted"})
}

func (s *Server) listWeightUpdates(c *gin.Context) {
	f, ok := s.eventFilter(c)
	if !ok {
		return
	}
	updates, err := s.store.ListWeightUpdates(s.userID(c), f)
	if err != nil {
		s.fail(c, err, "Weight update not found")
		return
	}
	c.JSON(200, updates)
}

type weightUpdateIn struct {
	HabitID    uint           `json:"habit_id" binding:"required"`
	Weight     float64        `json:"weight"`
	UpdateDate *time.Time     `json:"update_date"`
	Metadata   models.JSONMap `json:"metadata"`
}

func (s *Server) createWeightUpdate(c *gin.Context) {
	var input weightUpdateIn
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	userID := s.userID(c)
	if _, err := s.store.GetHabit(userID, input.HabitID, false); err != nil {
		s.fail(c, err, "Habit not found")
		return
	}

	updateDate := time.Now().UTC()
	if input.UpdateDate != nil {
		updateDate = *input.UpdateDate
	}

	update := models.WeightUpdate{
		UserID:     userID,
		HabitID:    input.HabitID,
		Weight:     input.Weight,
		UpdateDate: updateDate,
		Metadata:   input.Metadata,
	}
	if err := s.store.CreateWeightUpdate(&update); err != nil {
		s.fail(c, err, "Weight update not found")
		return
	}
	c.JSON(200, update)
}

func (s *Server) deleteWeightUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteWeightUpdate(s.userID(c), id); err != nil {
		s.fail(c, err, "Weight update not found")
		return
	}
	c.JSON(200, gin.H{"message": "Weight update deleted"})
}

func (s *Server) listActiveDays(c *gin.Context) {
	f, ok := s.eventFilter(c)
	if !ok {
		return
	}
	days, err := s.store.ListActiveDays(s.userID(c), f)
	if err != nil {
		s.fail(c, err, "Active day not found")
		return
	}
	c.JSON(200, days)
}

type activeDayIn struct {
	Date        *time.Time     `json:"date"`
	Validated   bool           `json:"validated"`
	SummaryData models.JSONMap `json:"summary_data"`
}

func (s *Server) createActiveDay(c *gin.Context) {
	var input activeDayIn
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}

	day := models.ActiveDay{
		UserID:      s.userID(c),
		Date:        date,
		Validated:   input.Validated,
		SummaryData: input.SummaryData,
	}
	if err := s.store.UpsertActiveDay(&day); err != nil {
		s.fail(c, err, "Active day not found")
		return
	}
	c.JSON(200, day)
}

type activeDayUpdate struct {
	Validated   *bool           `json:"validated"`
	SummaryData *models.JSONMap `json:"summary_data"`
}

func (s *Server) updateActiveDay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	day, err := s.store.GetActiveDay(s.userID(c), id)
	if err != nil {
		s.fail(c, err, "Active day not found")
		return
	}

	var input activeDayUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	if input.Validated != nil {
		day.Validated = *input.Validated
	}
	if input.SummaryData != nil {
		day.SummaryData = *input.SummaryData
	}

	if err := s.store.SaveActiveDay(day); err != nil {
		s.fail(c, err, "Active day not found")
		return
	}
	c.JSON(200, day)
}

func (s *Server) deleteActiveDay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteActiveDay(s.userID(c), id); err != nil {
		s.fail(c, err, "Active day not found")
		return
	}
	c.JSON(200, gin.H{"message": "Active day deleted"})
}
