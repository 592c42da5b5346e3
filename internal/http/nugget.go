package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habit-tracker-go/internal/store"
)

func (s *Server) getNugget(c *gin.Context) {
	nugget, err := s.store.GetNugget()
	if err == nil {
		c.JSON(200, gin.H{"text": nugget.Text})
		return
	}
	if err != store.ErrNotFound {
		s.fail(c, err, "Nugget not found")
		return
	}

	text, err := s.ai.GenerateNugget(c.Request.Context())
	if err != nil {
		s.log.Error("nugget generation failed", zap.Error(err))
		c.JSON(500, gin.H{"detail": "Internal Server Error"})
		return
	}
	nugget, err = s.store.SetNugget(text)
	if err != nil {
		s.fail(c, err, "Nugget not found")
		return
	}
	c.JSON(200, gin.H{"text": nugget.Text})
}

func (s *Server) regenerateNugget(c *gin.Context) {
	text, err := s.ai.GenerateNugget(c.Request.Context())
	if err != nil {
		s.log.Error("nugget generation failed", zap.Error(err))
		c.JSON(500, gin.H{"detail": "Internal Server Error"})
		return
	}
	nugget, err := s.store.SetNugget(text)
	if err != nil {
		s.fail(c, err, "Nugget not found")
		return
	}
	c.JSON(200, gin.H{"text": nugget.Text})
}
