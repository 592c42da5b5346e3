package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habit-tracker-go/internal/s3"
)

func (s *Server) uploadProfilePicture(c *gin.Context) {
	if s.uploader == nil {
		c.JSON(500, gin.H{"detail": "S3 bucket not configured"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(422, gin.H{"detail": "no file provided"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	// Validation happens before the storage backend is touched.
	if !s3.AllowedContentType(contentType) {
		c.JSON(400, gin.H{"detail": "Unsupported content type"})
		return
	}
	if header.Size > s.cfg.MaxUploadSize {
		c.JSON(413, gin.H{"detail": "File too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(422, gin.H{"detail": "failed to read file"})
		return
	}
	defer file.Close()

	key := s3.ObjectKey(s.userID(c), header.Filename, contentType)
	url, err := s.uploader.Upload(c.Request.Context(), key, contentType, file)
	if err != nil {
		s.log.Error("upload failed", zap.String("key", key), zap.Error(err))
		c.JSON(500, gin.H{"detail": "Upload failed"})
		return
	}

	s.log.Info("profile picture uploaded", zap.String("key", key))
	c.JSON(200, gin.H{"url": url})
}
