package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                  string
	GeminiAPIKey          string
	GeminiModel           string
	DatabaseURL           string
	RedisURL              string
	StoragePath           string
	TelegramToken         string
	TelegramChatID        string
	AllowedOrigins        []string // CORS, from ALLOWED_ORIGINS (comma separated)
	AuthLatency           time.Duration
	RegisterRedirectDelay time.Duration
	ScanRatePerMinute     int
}

func Load() *Config {
	origins := parseList(getEnv("ALLOWED_ORIGINS", ""))
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		RedisURL:              getEnv("REDIS_URL", ""),
		StoragePath:           getEnv("STORAGE_PATH", "data/storage.json"),
		TelegramToken:         getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:        getEnv("TELEGRAM_CHAT_ID", ""),
		AllowedOrigins:        origins,
		AuthLatency:           getDuration("AUTH_LATENCY", 800*time.Millisecond),
		RegisterRedirectDelay: getDuration("REGISTER_REDIRECT_DELAY", time.Second),
		ScanRatePerMinute:     getInt("SCAN_RATE_PER_MINUTE", 10),
	}
}

// AlertsEnabled is true when both Telegram settings are present.
func (c *Config) AlertsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Printf("⚠️  invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("⚠️  invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
