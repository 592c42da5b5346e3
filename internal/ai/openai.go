package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"habit-tracker-go/internal/config"
)

const nuggetPrompt = "Provide a short nugget of wisdom in one sentence."

// FallbackNugget is returned when no language-model provider is configured.
const FallbackNugget = "Wisdom comes from experience, and experience comes from making mistakes."

type OpenAIClient struct {
	cfg  *config.Config
	http *http.Client
}

func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	return &OpenAIClient{cfg: cfg, http: &http.Client{}}
}

// GenerateNugget asks the model for one sentence of motivational text. With
// no API key configured it degrades to the fixed fallback string.
func (c *OpenAIClient) GenerateNugget(ctx context.Context) (string, error) {
	if c.cfg.OpenAIKey == "" {
		return FallbackNugget, nil
	}

	body := map[string]any{
		"model":      c.cfg.OpenAILlmModel,
		"max_tokens": 30,
		"messages": []map[string]string{
			{"role": "user", "content": nuggetPrompt},
		},
	}
	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.OpenAIBaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.OpenAIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		bs, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm error: %s", string(bs))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
