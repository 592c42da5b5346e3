package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habit-tracker-go/internal/models"
	"habit-tracker-go/internal/store"
)

// mergeExternalProfile applies token claims first and only then, if profile
// fields are still missing, pays for the userinfo round trip.
func (s *Server) mergeExternalProfile(c *gin.Context, apply func(models.ProfileData) bool, complete func() bool) bool {
	updated := apply(s.claims(c).Profile())
	if !complete() && s.userinfo != nil {
		info := s.userinfo.Fetch(c.Request.Context(), c.GetString("accessToken"))
		if !info.Zero() {
			updated = apply(info) || updated
		}
	}
	return updated
}

func (s *Server) getSettings(c *gin.Context) {
	userID := s.userID(c)
	settings, err := s.store.GetOrCreateSettings(userID)
	if err != nil {
		s.fail(c, err, "Settings not found")
		return
	}

	updated := s.mergeExternalProfile(c, settings.MergeProfile, settings.Complete)
	if updated {
		if err := s.store.SaveSettings(settings); err != nil {
			s.fail(c, err, "Settings not found")
			return
		}
		s.log.Info("profile fields filled from provider",
			zap.String("user_id", userID),
			zap.String("name", settings.Name),
		)
	}

	c.JSON(200, gin.H{
		"name":     settings.Name,
		"nickname": settings.Nickname,
		"email":    settings.Email,
		"imageUrl": settings.ImageURL,
	})
}

type settingsIn struct {
	Name     *string `json:"name"`
	Nickname *string `json:"nickname"`
	Email    *string `json:"email"`
	ImageURL *string `json:"imageUrl"`
}

func (s *Server) updateSettings(c *gin.Context) {
	var input settingsIn
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	settings, err := s.store.GetOrCreateSettings(s.userID(c))
	if err != nil {
		s.fail(c, err, "Settings not found")
		return
	}

	if input.Name != nil {
		settings.Name = *input.Name
	}
	if input.Nickname != nil {
		settings.Nickname = *input.Nickname
	}
	if input.Email != nil {
		settings.Email = *input.Email
	}
	if input.ImageURL != nil {
		settings.ImageURL = *input.ImageURL
	}

	if err := s.store.SaveSettings(settings); err != nil {
		s.fail(c, err, "Settings not found")
		return
	}
	c.JSON(200, gin.H{"ok": true})
}

type userIn struct {
	Email    *string         `json:"email"`
	Name     *string         `json:"name"`
	Nickname *string         `json:"nickname"`
	ImageURL *string         `json:"image_url"`
	Settings *models.JSONMap `json:"settings"`
}

func applyUserIn(user *models.User, input userIn) {
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Nickname != nil {
		user.Nickname = *input.Nickname
	}
	if input.ImageURL != nil {
		user.ImageURL = *input.ImageURL
	}
	if input.Settings != nil {
		user.Settings = *input.Settings
	}
}

func (s *Server) createUser(c *gin.Context) {
	var input userIn
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	userID := s.userID(c)
	if existing, err := s.store.GetUser(userID); err == nil {
		c.JSON(200, existing)
		return
	} else if err != store.ErrNotFound {
		s.fail(c, err, "User not found")
		return
	}

	user := models.User{ID: userID}
	user.MergeProfile(s.claims(c).Profile())
	applyUserIn(&user, input)

	if err := s.store.CreateUser(&user); err != nil {
		s.fail(c, err, "User not found")
		return
	}
	c.JSON(200, user)
}

func (s *Server) getCurrentUser(c *gin.Context) {
	userID := s.userID(c)

	user, err := s.store.GetUser(userID)
	if err == store.ErrNotFound {
		user = &models.User{ID: userID}
		user.MergeProfile(s.claims(c).Profile())
		if err := s.store.CreateUser(user); err != nil {
			s.fail(c, err, "User not found")
			return
		}
		c.JSON(200, user)
		return
	}
	if err != nil {
		s.fail(c, err, "User not found")
		return
	}

	if s.mergeExternalProfile(c, user.MergeProfile, user.Complete) {
		if err := s.store.SaveUser(user); err != nil {
			s.fail(c, err, "User not found")
			return
		}
	}
	c.JSON(200, user)
}

func (s *Server) updateCurrentUser(c *gin.Context) {
	var input userIn
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(422, gin.H{"detail": err.Error()})
		return
	}

	userID := s.userID(c)
	user, err := s.store.GetUser(userID)
	if err == store.ErrNotFound {
		user = &models.User{ID: userID}
		applyUserIn(user, input)
		if err := s.store.CreateUser(user); err != nil {
			s.fail(c, err, "User not found")
			return
		}
		c.JSON(200, user)
		return
	}
	if err != nil {
		s.fail(c, err, "User not found")
		return
	}

	applyUserIn(user, input)
	if err := s.store.SaveUser(user); err != nil {
		s.fail(c, err, "User not found")
		return
	}
	c.JSON(200, user)
}
