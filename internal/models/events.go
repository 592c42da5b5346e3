package models

import "time"

// Check records a single check or uncheck event against a habit or sub-habit.
type Check struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"index" json:"user_id"`
	HabitID    *uint     `gorm:"index" json:"habit_id"`
	SubHabitID *uint     `gorm:"index" json:"sub_habit_id"`
	Checked    bool      `json:"checked"`
	CheckDate  time.Time `gorm:"index" json:"check_date"`
	Metadata   JSONMap   `gorm:"type:jsonb" json:"metadata"`
	CreatedAt  time.Time `json:"created_at"`
}

// Count is an append-only value event for a count-based habit. Values are
// signed; decrements are legitimate entries.
type Count struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"user_id"`
	HabitID   uint      `gorm:"index" json:"habit_id"`
	Value     float64   `json:"value"`
	CountDate time.Time `gorm:"index" json:"count_date"`
	Metadata  JSONMap   `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// WeightUpdate is an append-only weight reading for a weight-based habit.
type WeightUpdate struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"index" json:"user_id"`
	HabitID    uint      `gorm:"index" json:"habit_id"`
	Weight     float64   `json:"weight"`
	UpdateDate time.Time `gorm:"index" json:"update_date"`
	Metadata   JSONMap   `gorm:"type:jsonb" json:"metadata"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActiveDay summarizes one calendar day for a user. At most one row per
// (user, day); creation upserts on that pair.
type ActiveDay struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index" json:"user_id"`
	Date        time.Time `gorm:"index" json:"date"`
	Validated   bool      `json:"validated"`
	SummaryData JSONMap   `gorm:"type:jsonb" json:"summary_data"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Nugget holds the motivational text. The table intentionally keeps at most
// one row; regeneration overwrites it.
type Nugget struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Text string `json:"text"`
}
