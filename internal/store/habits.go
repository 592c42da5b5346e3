package store

import (
	"gorm.io/gorm"

	"habit-tracker-go/internal/models"
)

func (s *Store) ListHabits(userID string, includeDeleted bool, skip, limit int) ([]models.Habit, error) {
	q := s.db
	if includeDeleted {
		q = q.Unscoped()
	}
	q = q.Where("user_id = ?", userID).Order("id asc")

	var habits []models.Habit
	if err := paginate(q, skip, limit).Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (s *Store) GetHabit(userID string, id uint, includeDeleted bool) (*models.Habit, error) {
	q := s.db
	if includeDeleted {
		q = q.Unscoped()
	}
	var habit models.Habit
	if err := q.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error; err != nil {
		return nil, notFound(err)
	}
	return &habit, nil
}

func (s *Store) CreateHabit(habit *models.Habit) error {
	return s.db.Create(habit).Error
}

func (s *Store) SaveHabit(habit *models.Habit) error {
	return s.db.Save(habit).Error
}

// SoftDeleteHabit sets the deletion timestamp only. Sub-habits and event rows
// are left in place so the habit can come back with its history.
func (s *Store) SoftDeleteHabit(userID string, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Habit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HardDeleteHabit removes the habit and everything referencing it in one
// transaction.
func (s *Store) HardDeleteHabit(userID string, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var habit models.Habit
		if err := tx.Unscoped().Where("id = ? AND user_id = ?", id, userID).First(&habit).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("habit_id = ? AND user_id = ?", id, userID).Delete(&models.Check{}).Error; err != nil {
			return err
		}
		if err := tx.Where("habit_id = ? AND user_id = ?", id, userID).Delete(&models.Count{}).Error; err != nil {
			return err
		}
		if err := tx.Where("habit_id = ? AND user_id = ?", id, userID).Delete(&models.WeightUpdate{}).Error; err != nil {
			return err
		}
		var subIDs []uint
		if err := tx.Model(&models.SubHabit{}).
			Where("parent_habit_id = ? AND user_id = ?", id, userID).
			Pluck("id", &subIDs).Error; err != nil {
			return err
		}
		if len(subIDs) > 0 {
			if err := tx.Where("sub_habit_id IN ?", subIDs).Delete(&models.Check{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", subIDs).Delete(&models.SubHabit{}).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&habit).Error
	})
}

func (s *Store) ListSubHabits(userID string, parentID uint) ([]models.SubHabit, error) {
	var subs []models.SubHabit
	err := s.db.Where("parent_habit_id = ? AND user_id = ?", parentID, userID).
		Order("order_index asc").Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Store) GetSubHabit(userID string, id uint) (*models.SubHabit, error) {
	var sub models.SubHabit
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&sub).Error; err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

func (s *Store) CreateSubHabit(sub *models.SubHabit) error {
	return s.db.Create(sub).Error
}

func (s *Store) SaveSubHabit(sub *models.SubHabit) error {
	return s.db.Save(sub).Error
}

func (s *Store) DeleteSubHabit(userID string, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.SubHabit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
