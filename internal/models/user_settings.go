package models

// ProfileData carries profile fields sourced from token claims or the
// identity provider's userinfo endpoint.
type ProfileData struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Picture  string `json:"picture"`
}

// Zero reports whether no field is set.
func (p ProfileData) Zero() bool {
	return p.Name == "" && p.Nickname == "" && p.Email == "" && p.Picture == ""
}

// UserSettings is the legacy profile table kept for the /api/settings
// endpoints. One row per subject.
type UserSettings struct {
	UserID   string `gorm:"primaryKey" json:"user_id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

func (UserSettings) TableName() string { return "user_settings" }

// MergeProfile fills only empty fields, with name and nickname falling back
// to each other when one is missing. Email and picture have no cross-field
// fallback. Reports whether anything changed.
func (s *UserSettings) MergeProfile(p ProfileData) bool {
	updated := false
	if s.Name == "" {
		if p.Name != "" {
			s.Name = p.Name
			updated = true
		} else if p.Nickname != "" {
			s.Name = p.Nickname
			updated = true
		}
	}
	if s.Nickname == "" {
		if p.Nickname != "" {
			s.Nickname = p.Nickname
			updated = true
		} else if p.Name != "" {
			s.Nickname = p.Name
			updated = true
		}
	}
	if s.Email == "" && p.Email != "" {
		s.Email = p.Email
		updated = true
	}
	if s.ImageURL == "" && p.Picture != "" {
		s.ImageURL = p.Picture
		updated = true
	}
	return updated
}

// Complete reports whether all four profile fields are filled.
func (s *UserSettings) Complete() bool {
	return s.Name != "" && s.Nickname != "" && s.Email != "" && s.ImageURL != ""
}
