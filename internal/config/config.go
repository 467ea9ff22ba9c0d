package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"anoa.com/fitquest/pkg/database"
	"github.com/joho/godotenv"
)

const (
	SameDayOncePerDay    = "once_per_day"
	SameDayEveryActivity = "every_activity"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	SQLitePath  string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	JWTSecret string

	Location            *time.Location
	StreakSameDayPolicy string

	RateLimitRedeem     time.Duration
	RateLimitPerMinute  int
	LeaderboardCacheTTL time.Duration
	AuditSchedule       string

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "fitquest"),
		DBPort:      getEnv("DB_PORT", "5432"),
		SQLitePath:  getEnv("SQLITE_PATH", "fitquest.db"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		StreakSameDayPolicy: getEnv("STREAK_SAME_DAY_POLICY", SameDayOncePerDay),
		AuditSchedule:       getEnv("AUDIT_SCHEDULE", "@daily"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", "logs/fitquest.log"),
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret"
	}

	switch cfg.StreakSameDayPolicy {
	case SameDayOncePerDay, SameDayEveryActivity:
	default:
		return nil, fmt.Errorf("invalid STREAK_SAME_DAY_POLICY: %q", cfg.StreakSameDayPolicy)
	}

	var err error
	cfg.Location, err = time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	// Parsing durations
	cfg.RateLimitRedeem, err = time.ParseDuration(getEnv("RATE_LIMIT_REDEEM", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REDEEM: %w", err)
	}
	cfg.LeaderboardCacheTTL, err = time.ParseDuration(getEnv("LEADERBOARD_CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_CACHE_TTL: %w", err)
	}

	ints := []struct {
		key      string
		fallback int
		dst      *int
	}{
		{"RATE_LIMIT_PER_MINUTE", 120, &cfg.RateLimitPerMinute},
		{"LOG_MAX_SIZE_MB", 100, &cfg.LogMaxSizeMB},
		{"LOG_MAX_BACKUPS", 5, &cfg.LogMaxBackups},
		{"LOG_MAX_AGE_DAYS", 30, &cfg.LogMaxAgeDays},
	}
	for _, v := range ints {
		*v.dst, err = getEnvInt(v.key, v.fallback)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == database.DriverSQLite {
		return c.SQLitePath
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return database.PostgresDSN(c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
