package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"habit-tracker-go/internal/models"
)

// UserInfoClient fetches profile fields from the provider's userinfo
// endpoint. Failures are logged and swallowed; the lookup is best-effort.
type UserInfoClient struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewUserInfoClient(domain string, timeout time.Duration, log *zap.Logger) *UserInfoClient {
	return &UserInfoClient{
		url:    fmt.Sprintf("https://%s/userinfo", domain),
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Fetch returns whatever profile data the provider reports for the token, or
// a zero value on any failure.
func (c *UserInfoClient) Fetch(ctx context.Context, accessToken string) models.ProfileData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return models.ProfileData{}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("userinfo fetch failed", zap.Error(err))
		return models.ProfileData{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("userinfo fetch rejected", zap.Int("status", resp.StatusCode))
		return models.ProfileData{}
	}

	var info models.ProfileData
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		c.log.Warn("userinfo decode failed", zap.Error(err))
		return models.ProfileData{}
	}
	return info
}
