package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port         string
	AllowOrigins string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	Auth0Domain   string
	Auth0Audience string
	LogJWTClaims  bool

	OpenAIKey      string
	OpenAIBaseURL  string
	OpenAILlmModel string

	S3Bucket      string
	AWSRegion     string
	MaxUploadSize int64

	UserinfoTimeoutSec int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func truthy(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func Load() *Config {
	return &Config{
		Port:         getenv("PORT", "8080"),
		AllowOrigins: getenv("ALLOW_ORIGINS", "*"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBName:     getenv("DB_NAME", "habits"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		Auth0Domain:   getenv("AUTH0_DOMAIN", ""),
		Auth0Audience: getenv("AUTH0_AUDIENCE", ""),
		LogJWTClaims:  truthy("LOG_JWT_PAYLOADS"),

		OpenAIKey:      getenv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAILlmModel: getenv("OPENAI_LLM_MODEL", "gpt-4o"),

		S3Bucket:      getenv("AWS_S3_BUCKET", ""),
		AWSRegion:     getenv("AWS_REGION", ""),
		MaxUploadSize: int64(atoi("MAX_UPLOAD_SIZE", 5*1024*1024)),

		UserinfoTimeoutSec: atoi("USERINFO_TIMEOUT_SECONDS", 10),
	}
}

func (c *Config) Auth0Configured() bool {
	return c.Auth0Domain != "" && c.Auth0Audience != ""
}

func (c *Config) OpenAIConfigured() bool { return c.OpenAIKey != "" }

func (c *Config) S3Configured() bool { return c.S3Bucket != "" }
