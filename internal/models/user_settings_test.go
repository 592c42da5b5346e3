package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeProfileFillsEmptyFields(t *testing.T) {
	s := &UserSettings{UserID: "auth0|123"}
	p := ProfileData{Name: "Jane", Nickname: "jay", Email: "jane@example.com", Picture: "https://img/p.png"}

	updated := s.MergeProfile(p)

	assert.True(t, updated)
	assert.Equal(t, "Jane", s.Name)
	assert.Equal(t, "jay", s.Nickname)
	assert.Equal(t, "jane@example.com", s.Email)
	assert.Equal(t, "https://img/p.png", s.ImageURL)
}

func TestMergeProfileNeverOverwrites(t *testing.T) {
	s := &UserSettings{
		UserID:   "auth0|123",
		Name:     "Existing",
		Nickname: "kept",
		Email:    "old@example.com",
		ImageURL: "https://img/old.png",
	}
	updated := s.MergeProfile(ProfileData{
		Name: "New", Nickname: "new", Email: "new@example.com", Picture: "https://img/new.png",
	})

	assert.False(t, updated)
	assert.Equal(t, "Existing", s.Name)
	assert.Equal(t, "kept", s.Nickname)
	assert.Equal(t, "old@example.com", s.Email)
	assert.Equal(t, "https://img/old.png", s.ImageURL)
}

func TestMergeProfileNameFallsBackToNickname(t *testing.T) {
	s := &UserSettings{UserID: "auth0|123"}
	updated := s.MergeProfile(ProfileData{Nickname: "jay"})

	assert.True(t, updated)
	assert.Equal(t, "jay", s.Name)
	assert.Equal(t, "jay", s.Nickname)
}

func TestMergeProfileNicknameFallsBackToName(t *testing.T) {
	s := &UserSettings{UserID: "auth0|123"}
	updated := s.MergeProfile(ProfileData{Name: "Jane"})

	assert.True(t, updated)
	assert.Equal(t, "Jane", s.Name)
	assert.Equal(t, "Jane", s.Nickname)
}

func TestMergeProfileNoCrossFallbackForEmailAndPicture(t *testing.T) {
	s := &UserSettings{UserID: "auth0|123"}
	updated := s.MergeProfile(ProfileData{Email: "jane@example.com"})

	assert.True(t, updated)
	assert.Empty(t, s.ImageURL)
	assert.Empty(t, s.Name)
	assert.Empty(t, s.Nickname)
}

func TestMergeProfileIdempotent(t *testing.T) {
	s := &UserSettings{UserID: "auth0|123"}
	p := ProfileData{Name: "Jane", Email: "jane@example.com"}

	first := s.MergeProfile(p)
	snapshot := *s
	second := s.MergeProfile(p)

	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, snapshot, *s)
}

func TestMergeProfileEmptyDataChangesNothing(t *testing.T) {
	s := &UserSettings{UserID: "auth0|123"}
	assert.False(t, s.MergeProfile(ProfileData{}))
	assert.Equal(t, UserSettings{UserID: "auth0|123"}, *s)
}

func TestUserMergeProfileMatchesSettingsBehavior(t *testing.T) {
	u := &User{ID: "auth0|123", Email: "kept@example.com"}
	updated := u.MergeProfile(ProfileData{Nickname: "jay", Email: "new@example.com", Picture: "pic"})

	assert.True(t, updated)
	assert.Equal(t, "jay", u.Name)
	assert.Equal(t, "jay", u.Nickname)
	assert.Equal(t, "kept@example.com", u.Email)
	assert.Equal(t, "pic", u.ImageURL)
	assert.True(t, u.Complete())
}

func TestComplete(t *testing.T) {
	s := &UserSettings{UserID: "auth0|123", Name: "a", Nickname: "b", Email: "c"}
	assert.False(t, s.Complete())
	s.ImageURL = "d"
	assert.True(t, s.Complete())
}
