package models

import (
	"time"
)

// User is keyed by the subject identifier issued by the identity provider,
// so a row exists per external identity and is created on first use.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Nickname  string    `json:"nickname"`
	ImageURL  string    `json:"image_url"`
	Settings  JSONMap   `gorm:"type:jsonb" json:"settings"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MergeProfile fills empty profile fields from externally-sourced data and
// reports whether anything changed. Existing values are never overwritten.
func (u *User) MergeProfile(p ProfileData) bool {
	updated := false
	if u.Name == "" {
		if p.Name != "" {
			u.Name = p.Name
			updated = true
		} else if p.Nickname != "" {
			u.Name = p.Nickname
			updated = true
		}
	}
	if u.Nickname == "" {
		if p.Nickname != "" {
			u.Nickname = p.Nickname
			updated = true
		} else if p.Name != "" {
			u.Nickname = p.Name
			updated = true
		}
	}
	if u.Email == "" && p.Email != "" {
		u.Email = p.Email
		updated = true
	}
	if u.ImageURL == "" && p.Picture != "" {
		u.ImageURL = p.Picture
		updated = true
	}
	return updated
}

// Complete reports whether every profile field is filled; used to decide
// whether the userinfo lookup is worth the round trip.
func (u *User) Complete() bool {
	return u.Name != "" && u.Nickname != "" && u.Email != "" && u.ImageURL != ""
}
