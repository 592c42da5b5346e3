package store

import (
	"time"

	"habit-tracker-go/internal/models"
)

func (s *Store) ListActiveDays(userID string, f EventFilter) ([]models.ActiveDay, error) {
	q := s.db.Where("user_id = ?", userID)
	if f.Start != nil {
		q = q.Where("date >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("date <= ?", *f.End)
	}

	var days []models.ActiveDay
	if err := paginate(q.Order("date desc"), f.Skip, f.Limit).Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (s *Store) GetActiveDay(userID string, id uint) (*models.ActiveDay, error) {
	var day models.ActiveDay
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&day).Error; err != nil {
		return nil, notFound(err)
	}
	return &day, nil
}

// UpsertActiveDay keeps at most one row per (user, calendar day). An existing
// row for the day is updated in place.
func (s *Store) UpsertActiveDay(day *models.ActiveDay) error {
	start, end := dayBounds(day.Date)

	var existing models.ActiveDay
	err := s.db.Where("user_id = ? AND date >= ? AND date < ?", day.UserID, start, end).
		First(&existing).Error
	if err == nil {
		existing.Date = day.Date
		existing.Validated = day.Validated
		if day.SummaryData != nil {
			existing.SummaryData = day.SummaryData
		}
		if err := s.db.Save(&existing).Error; err != nil {
			return err
		}
		*day = existing
		return nil
	}
	if notFound(err) != ErrNotFound {
		return err
	}
	return s.db.Create(day).Error
}

func (s *Store) SaveActiveDay(day *models.ActiveDay) error {
	return s.db.Save(day).Error
}

func (s *Store) DeleteActiveDay(userID string, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.ActiveDay{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// dayBounds returns the closed-open UTC interval covering t's calendar day.
func dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
