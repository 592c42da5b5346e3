package store

import (
	"time"

	"habit-tracker-go/internal/models"
)

// EventFilter narrows event-log listings. Start and End bound the entity's
// natural timestamp as a closed interval.
type EventFilter struct {
	HabitID    *uint
	SubHabitID *uint
	Start      *time.Time
	End        *time.Time
	Skip       int
	Limit      int
}

func (s *Store) ListChecks(userID string, f EventFilter) ([]models.Check, error) {
	q := s.db.Where("user_id = ?", userID)
	if f.HabitID != nil {
		q = q.Where("habit_id = ?", *f.HabitID)
	}
	if f.SubHabitID != nil {
		q = q.Where("sub_habit_id = ?", *f.SubHabitID)
	}
	if f.Start != nil {
		q = q.Where("check_date >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("check_date <= ?", *f.End)
	}

	var checks []models.Check
	if err := paginate(q.Order("check_date desc"), f.Skip, f.Limit).Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}

func (s *Store) GetCheck(userID string, id uint) (*models.Check, error) {
	var check models.Check
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&check).Error; err != nil {
		return nil, notFound(err)
	}
	return &check, nil
}

func (s *Store) CreateCheck(check *models.Check) error {
	return s.db.Create(check).Error
}

func (s *Store) SaveCheck(check *models.Check) error {
	return s.db.Save(check).Error
}

func (s *Store) DeleteCheck(userID string, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Check{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListCounts(userID string, f EventFilter) ([]models.Count, error) {
	q := s.db.Where("user_id = ?", userID)
	if f.HabitID != nil {
		q = q.Where("habit_id = ?", *f.HabitID)
	}
	if f.Start != nil {
		q = q.Where("count_date >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("count_date <= ?", *f.End)
	}

	var counts []models.Count
	if err := paginate(q.Order("count_date desc"), f.Skip, f.Limit).Find(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *Store) CreateCount(count *models.Count) error {
	return s.db.Create(count).Error
}

func (s *Store) DeleteCount(userID string, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Count{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListWeightUpdates(userID string, f EventFilter) ([]models.WeightUpdate, error) {
	q := s.db.Where("user_id = ?", userID)
	if f.HabitID != nil {
		q = q.Where("habit_id = ?", *f.HabitID)
	}
	if f.Start != nil {
		q = q.Where("update_date >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("update_date <= ?", *f.End)
	}

	var updates []models.WeightUpdate
	if err := paginate(q.Order("update_date desc"), f.Skip, f.Limit).Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

func (s *Store) CreateWeightUpdate(update *models.WeightUpdate) error {
	return s.db.Create(update).Error
}

func (s *Store) DeleteWeightUpdate(userID string, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.WeightUpdate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
