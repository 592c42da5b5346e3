package models

import (
	"time"

	"gorm.io/gorm"
)

// Habit type flags are independent booleans; a habit may be count-based,
// weight-based, both, or neither.
type Habit struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           string         `gorm:"index" json:"user_id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	HasCounts        bool           `json:"has_counts"`
	IsWeight         bool           `json:"is_weight"`
	CountSettings    JSONMap        `gorm:"type:jsonb" json:"count_settings"`
	WeightSettings   JSONMap        `gorm:"type:jsonb" json:"weight_settings"`
	ScheduleSettings JSONMap        `gorm:"type:jsonb" json:"schedule_settings"`
	RewardSettings   JSONMap        `gorm:"type:jsonb" json:"reward_settings"`
	DisplaySettings  JSONMap        `gorm:"type:jsonb" json:"display_settings"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type SubHabit struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ParentHabitID  uint      `gorm:"index" json:"parent_habit_id"`
	UserID         string    `gorm:"index" json:"user_id"`
	Name           string    `json:"name"`
	OrderIndex     int       `json:"order_index"`
	RewardSettings JSONMap   `gorm:"type:jsonb" json:"reward_settings"`
	CreatedAt      time.Time `json:"created_at"`
}
