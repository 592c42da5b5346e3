package store

import (
	"habit-tracker-go/internal/models"
)

// GetNugget returns the singleton row, or ErrNotFound when none has been
// generated yet.
func (s *Store) GetNugget() (*models.Nugget, error) {
	var nugget models.Nugget
	if err := s.db.First(&nugget).Error; err != nil {
		return nil, notFound(err)
	}
	return &nugget, nil
}

// SetNugget overwrites the singleton row, creating it if the table is empty.
func (s *Store) SetNugget(text string) (*models.Nugget, error) {
	var nugget models.Nugget
	err := s.db.First(&nugget).Error
	if err == nil {
		nugget.Text = text
		if err := s.db.Save(&nugget).Error; err != nil {
			return nil, err
		}
		return &nugget, nil
	}
	if notFound(err) != ErrNotFound {
		return nil, err
	}
	nugget = models.Nugget{Text: text}
	if err := s.db.Create(&nugget).Error; err != nil {
		return nil, err
	}
	return &nugget, nil
}
