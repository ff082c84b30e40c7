package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	RedisURL    string
	LogLevel    string
	Environment string
	CORSOrigins string

	// Base URL of the public YouTube surface (channel pages + uploads feed).
	// Overridable for tests and proxies.
	YouTubeBaseURL string

	// Policy knobs. These are tuning values, not structure, so they live
	// in the environment rather than in code.
	MaxUploads         int
	KeywordMinLength   int
	KeywordTopN        int
	RateLimitPerMinute int

	FetchTimeout   time.Duration
	ReportCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		RedisURL:    getEnv("REDIS_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		YouTubeBaseURL: getEnv("YOUTUBE_BASE_URL", "https://www.youtube.com"),

		MaxUploads:         getEnvInt("MAX_UPLOADS", 15),
		KeywordMinLength:   getEnvInt("KEYWORD_MIN_LENGTH", 2),
		KeywordTopN:        getEnvInt("KEYWORD_TOP_N", 10),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 20),

		FetchTimeout:   time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		ReportCacheTTL: time.Duration(getEnvInt("CACHE_TTL_MINUTES", 15)) * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
