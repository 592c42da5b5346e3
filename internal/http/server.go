package http

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habit-tracker-go/internal/auth"
	"habit-tracker-go/internal/config"
	"habit-tracker-go/internal/models"
	"habit-tracker-go/internal/store"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (auth.Claims, error)
}

// ProfileFetcher looks up profile fields at the identity provider. A zero
// ProfileData means the lookup produced nothing usable.
type ProfileFetcher interface {
	Fetch(ctx context.Context, accessToken string) models.ProfileData
}

// NuggetGenerator produces the motivational text.
type NuggetGenerator interface {
	GenerateNugget(ctx context.Context) (string, error)
}

// ObjectUploader stores an object and returns its public URL.
type ObjectUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type Server struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	verifier TokenVerifier
	userinfo ProfileFetcher
	ai       NuggetGenerator
	uploader ObjectUploader
}

// NewServer wires the route table. verifier, userinfo and uploader may be nil
// when the matching integration is not configured; the affected endpoints then
// degrade per the error taxonomy instead of taking the process down.
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	st *store.Store,
	verifier TokenVerifier,
	userinfo ProfileFetcher,
	ai NuggetGenerator,
	uploader ObjectUploader,
) *gin.Engine {
	s := &Server{
		cfg:      cfg,
		log:      log,
		store:    st,
		verifier: verifier,
		userinfo: userinfo,
		ai:       ai,
		uploader: uploader,
	}

	r := gin.New()
	r.Use(s.recovery())
	r.Use(cors(cfg))
	r.Use(s.requestLog())

	r.GET("/health", s.health)

	api := r.Group("/api")
	api.Use(s.authRequired())
	{
		api.GET("/settings", s.getSettings)
		api.POST("/settings", s.updateSettings)

		api.POST("/users", s.createUser)
		api.GET("/users/me", s.getCurrentUser)
		api.PUT("/users/me", s.updateCurrentUser)

		api.GET("/habits", s.listHabits)
		api.POST("/habits", s.createHabit)
		api.GET("/habits/:id", s.getHabit)
		api.PUT("/habits/:id", s.updateHabit)
		api.DELETE("/habits/:id", s.deleteHabit)

		api.GET("/habits/:id/sub-habits", s.listSubHabits)
		api.POST("/sub-habits", s.createSubHabit)
		api.PUT("/sub-habits/:id", s.updateSubHabit)
		api.DELETE("/sub-habits/:id", s.deleteSubHabit)

		api.GET("/checks", s.listChecks)
		api.POST("/checks", s.createCheck)
		api.PUT("/checks/:id", s.updateCheck)
		api.DELETE("/checks/:id", s.deleteCheck)

		api.GET("/counts", s.listCounts)
		api.POST("/counts", s.createCount)
		api.DELETE("/counts/:id", s.deleteCount)

		api.GET("/weight-updates", s.listWeightUpdates)
		api.POST("/weight-updates", s.createWeightUpdate)
		api.DELETE("/weight-updates/:id", s.deleteWeightUpdate)

		api.GET("/active-days", s.listActiveDays)
		api.POST("/active-days", s.createActiveDay)
		api.PUT("/active-days/:id", s.updateActiveDay)
		api.DELETE("/active-days/:id", s.deleteActiveDay)

		api.POST("/upload-profile-picture", s.uploadProfilePicture)

		api.GET("/nugget", s.getNugget)
		api.POST("/nugget/regenerate", s.regenerateNugget)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	openai := "not configured"
	if s.cfg.OpenAIConfigured() {
		openai = "configured"
	}
	s3status := "not configured"
	if s.uploader != nil {
		s3status = "configured"
	}
	database := "connected"
	if err := s.store.Ping(c.Request.Context()); err != nil {
		database = "disconnected"
	}
	c.JSON(200, gin.H{
		"status":   "healthy",
		"service":  "habit-tracker-api",
		"openai":   openai,
		"s3":       s3status,
		"database": database,
	})
}

func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				s.log.Error("unhandled panic",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(500, gin.H{"detail": "Internal Server Error"})
			}
		}()
		c.Next()
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func cors(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// userID returns the authenticated subject placed in the context by
// authRequired.
func (s *Server) userID(c *gin.Context) string {
	return c.GetString("userID")
}

func (s *Server) claims(c *gin.Context) auth.Claims {
	v, _ := c.Get("claims")
	claims, _ := v.(auth.Claims)
	return claims
}

// parseID reads the :id path parameter. A non-numeric id is a malformed
// request, not a missing row.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(422, gin.H{"detail": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// fail maps a store error to the response taxonomy: not-found stays
// indistinguishable from not-owned, everything else is a logged 500.
func (s *Server) fail(c *gin.Context, err error, notFoundDetail string) {
	if err == store.ErrNotFound {
		c.JSON(404, gin.H{"detail": notFoundDetail})
		return
	}
	s.log.Error("storage error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(500, gin.H{"detail": "Internal Server Error"})
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseTimeParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, &time.ParseError{Layout: time.RFC3339, Value: v}
}

// eventFilter parses the common list-query parameters. Reports false after
// writing a 422 when a date bound is malformed.
func (s *Server) eventFilter(c *gin.Context) (store.EventFilter, bool) {
	f := store.EventFilter{
		Skip:  atoiQuery(c, "skip", 0),
		Limit: atoiQuery(c, "limit", 100),
	}
	if v := c.Query("habit_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(422, gin.H{"detail": "invalid habit_id"})
			return f, false
		}
		hid := uint(id)
		f.HabitID = &hid
	}
	if v := c.Query("sub_habit_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(422, gin.H{"detail": "invalid sub_habit_id"})
			return f, false
		}
		sid := uint(id)
		f.SubHabitID = &sid
	}
	start, err := parseTimeParam(c.Query("start_date"))
	if err != nil {
		c.JSON(422, gin.H{"detail": "invalid start_date"})
		return f, false
	}
	f.Start = start
	end, err := parseTimeParam(c.Query("end_date"))
	if err != nil {
		c.JSON(422, gin.H{"detail": "invalid end_date"})
		return f, false
	}
	f.End = end
	return f, true
}

func atoiQuery(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
