package config

import (
	"os"
	"strconv"
	"time"

	"reader_rewards/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	DatabaseURL    string
	JWTSecret      string
	PlatformSecret string // shared secret for sign-in payloads minted by the blog platform

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Leaderboard tuning
	LeaderboardSize     int
	LeaderboardCacheTTL time.Duration

	// Rate limits
	APIRateLimit     int
	APIRateWindow    time.Duration
	CreditRateLimit  int
	CreditRateWindow time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment (.env is honored in
// development). Missing required settings abort startup.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	platformSecret := os.Getenv("PLATFORM_SECRET")
	if platformSecret == "" {
		logger.Fatal("PLATFORM_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:        port,
		DatabaseURL:    dbURL,
		JWTSecret:      jwtSecret,
		PlatformSecret: platformSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		LeaderboardSize:     envInt("LEADERBOARD_SIZE", 50),
		LeaderboardCacheTTL: envSeconds("LEADERBOARD_CACHE_TTL_SECONDS", 30*time.Second),

		APIRateLimit:     envInt("API_RATE_LIMIT", 60),
		APIRateWindow:    envSeconds("API_RATE_WINDOW_SECONDS", time.Minute),
		CreditRateLimit:  envInt("CREDIT_RATE_LIMIT", 30),
		CreditRateWindow: envSeconds("CREDIT_RATE_WINDOW_SECONDS", time.Minute),

		LogLevel: envDefault("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
