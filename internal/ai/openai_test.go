package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker-go/internal/config"
)

func clientFor(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClient(&config.Config{
		OpenAIKey:      "sk-test",
		OpenAIBaseURL:  srv.URL,
		OpenAILlmModel: "gpt-4o",
	})
}

func TestGenerateNugget(t *testing.T) {
	client := clientFor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o", body["model"])
		assert.Equal(t, float64(30), body["max_tokens"])

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  Small steps compound.  "}},
			},
		})
	})

	text, err := client.GenerateNugget(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Small steps compound.", text)
}

func TestGenerateNuggetWithoutKey(t *testing.T) {
	client := NewOpenAIClient(&config.Config{})
	text, err := client.GenerateNugget(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FallbackNugget, text)
}

func TestGenerateNuggetUpstreamError(t *testing.T) {
	client := clientFor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	})

	_, err := client.GenerateNugget(context.Background())
	assert.Error(t, err)
}

func TestGenerateNuggetEmptyChoices(t *testing.T) {
	client := clientFor(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := client.GenerateNugget(context.Background())
	assert.Error(t, err)
}
