package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServerPort string

	// StoreDriver selects the entity store: "memory" or "postgres"
	StoreDriver string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Every service call waits a random delay in [LatencyMin, LatencyMax]
	LatencyMin time.Duration
	LatencyMax time.Duration

	// DefaultList is the list key new tasks fall back to
	DefaultList      string
	CompletedPreview int
	SeedData         bool

	LogLevel    string
	LogPretty   bool
	CORSOrigins []string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Msg("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", "memory")),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "flowtasks"),
		DBPassword:       getEnv("DB_PASSWORD", "flowtasks"),
		DBName:           getEnv("DB_NAME", "flowtasks"),
		LatencyMin:       getDuration("LATENCY_MIN", 200*time.Millisecond),
		LatencyMax:       getDuration("LATENCY_MAX", 300*time.Millisecond),
		DefaultList:      strings.ToLower(getEnv("DEFAULT_LIST", "work")),
		CompletedPreview: getInt("COMPLETED_PREVIEW", 5),
		SeedData:         getBool("SEED_DATA", true),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPretty:        getBool("LOG_PRETTY", true),
		CORSOrigins:      getList("CORS_ORIGINS", []string{"*"}),
	}
}

// DSN is the postgres connection string for gorm
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func getInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultVal
	}
	return n
}

func getBool(key string, defaultVal bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultVal
	}
	return b
}

func getList(key string, defaultVal []string) []string {
	raw := getEnv(key, "")
	if strings.TrimSpace(raw) == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
