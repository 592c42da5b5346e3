package store

import (
	"habit-tracker-go/internal/models"
)

func (s *Store) GetUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *Store) SaveUser(user *models.User) error {
	return s.db.Save(user).Error
}

// GetOrCreateSettings returns the legacy settings row for the subject,
// creating an empty one on first access.
func (s *Store) GetOrCreateSettings(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if notFound(err) != ErrNotFound {
		return nil, err
	}
	settings = models.UserSettings{UserID: userID}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Store) SaveSettings(settings *models.UserSettings) error {
	return s.db.Save(settings).Error
}
