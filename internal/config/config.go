package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every knob the server recognizes. Values come from the
// environment, optionally seeded from a .env file, with the same
// defaults for all deployments.
type Config struct {
	Port      string
	SecretKey []byte

	QuestionsSource string // "file" or "postgres"
	QuestionsFile   string

	MinTimeLimitMinutes     int
	MaxTimeLimitMinutes     int
	DefaultTimeLimitMinutes int

	SessionLifetime time.Duration

	CORSOrigins []string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables win over it.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment variables from .env")
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		SecretKey:               secretKey(),
		QuestionsSource:         getEnv("QUESTIONS_SOURCE", "file"),
		QuestionsFile:           getEnv("QUESTIONS_FILE", "data/questions.json"),
		MinTimeLimitMinutes:     getEnvInt("MIN_TIME_LIMIT_MINUTES", 1),
		MaxTimeLimitMinutes:     getEnvInt("MAX_TIME_LIMIT_MINUTES", 120),
		DefaultTimeLimitMinutes: getEnvInt("DEFAULT_TIME_LIMIT_MINUTES", 10),
		SessionLifetime:         time.Duration(getEnvInt("SESSION_LIFETIME_HOURS", 2)) * time.Hour,
		CORSOrigins:             splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if cfg.MinTimeLimitMinutes < 1 {
		cfg.MinTimeLimitMinutes = 1
	}
	if cfg.MaxTimeLimitMinutes < cfg.MinTimeLimitMinutes {
		cfg.MaxTimeLimitMinutes = cfg.MinTimeLimitMinutes
	}
	if cfg.DefaultTimeLimitMinutes < cfg.MinTimeLimitMinutes {
		cfg.DefaultTimeLimitMinutes = cfg.MinTimeLimitMinutes
	}
	if cfg.DefaultTimeLimitMinutes > cfg.MaxTimeLimitMinutes {
		cfg.DefaultTimeLimitMinutes = cfg.MaxTimeLimitMinutes
	}

	return cfg
}

// secretKey reads SECRET_KEY or generates a one-off key. A generated
// key invalidates all session cookies on restart, so it warns loudly.
func secretKey() []byte {
	if key := os.Getenv("SECRET_KEY"); key != "" {
		return []byte(key)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate secret key: %v", err)
	}
	generated := hex.EncodeToString(buf)

	log.Printf("WARNING: No SECRET_KEY found in environment!")
	log.Printf("A temporary secret key has been generated, but session cookies will be")
	log.Printf("invalidated when the server restarts.")
	log.Printf("To fix this, add the following line to your .env file:")
	log.Printf("SECRET_KEY=%s", generated)

	return []byte(generated)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("WARN: %s=%q is not a number, using default %d", key, value, fallback)
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
