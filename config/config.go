package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Model storage: S3 when a bucket is set, else a local file when a path is set
	S3BucketName string
	ModelKey     string
	ModelPath    string

	// Logging
	LogLevel  string
	LogFormat string

	// Recommender tuning
	HiddenWidth        int
	ModelSeed          int64
	TrainEpochs        int
	LearningRate       float64
	ModelWeight        float64
	DiversityThreshold float64
	RateLimitPerMinute int
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadEnvConfig(cfg)
	case Development, Test:
		if err := loadDotEnv(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		loadEnvConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads ENV_FILE (default .env) when it exists. Variables already
// set in the environment win.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// loadEnvConfig reads every setting from environment variables with development defaults
func loadEnvConfig(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.DBDriver = getEnv("DB_DRIVER", "sqlite")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnv("DB_NAME", "chefcito")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "chefcito.db")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.ModelKey = getEnv("MODEL_KEY", "models/ranker.json")
	cfg.ModelPath = os.Getenv("MODEL_PATH")
	cfg.LogLevel = getEnv("LOG_LEVEL", "debug")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")
	loadTuning(cfg, os.Getenv)
}

// loadProdConfig loads configuration for production: Docker secrets first, environment second
func loadProdConfig(cfg *Config) {
	lookup := func(name string) string {
		if v := readSecret(strings.ToLower(name)); v != "" {
			return v
		}
		return os.Getenv(name)
	}
	withDefault := func(name, def string) string {
		if v := lookup(name); v != "" {
			return v
		}
		return def
	}

	cfg.ServerPort = withDefault("SERVER_PORT", "8080")
	cfg.ServerHost = withDefault("SERVER_HOST", "0.0.0.0")
	cfg.DBDriver = withDefault("DB_DRIVER", "postgres")
	cfg.DBHost = lookup("DB_HOST")
	cfg.DBPort = withDefault("DB_PORT", "5432")
	cfg.DBUser = lookup("DB_USER")
	cfg.DBPassword = lookup("DB_PASSWORD")
	cfg.DBName = lookup("DB_NAME")
	cfg.DBSSLMode = withDefault("DB_SSL_MODE", "require")
	cfg.SQLitePath = lookup("SQLITE_PATH")
	cfg.RedisHost = lookup("REDIS_HOST")
	cfg.RedisPort = withDefault("REDIS_PORT", "6379")
	cfg.RedisPassword = lookup("REDIS_PASSWORD")
	cfg.RedisDB = 0 // This is a constant, not a secret
	cfg.RedisURL = lookup("REDIS_URL")
	cfg.S3BucketName = lookup("S3_BUCKET_NAME")
	cfg.ModelKey = withDefault("MODEL_KEY", "models/ranker.json")
	cfg.ModelPath = lookup("MODEL_PATH")
	cfg.LogLevel = withDefault("LOG_LEVEL", "info")
	cfg.LogFormat = withDefault("LOG_FORMAT", "json")
	loadTuning(cfg, lookup)
}

// loadTuning reads the recommender settings through lookup
func loadTuning(cfg *Config, lookup func(string) string) {
	cfg.HiddenWidth = parseInt(lookup("RANKER_HIDDEN_WIDTH"), 32)
	cfg.ModelSeed = int64(parseInt(lookup("RANKER_SEED"), 42))
	cfg.TrainEpochs = parseInt(lookup("TRAIN_EPOCHS"), 50)
	cfg.LearningRate = parseFloat(lookup("TRAIN_LEARNING_RATE"), 0.01)
	cfg.ModelWeight = parseFloat(lookup("RECOMMEND_MODEL_WEIGHT"), 0.7)
	cfg.DiversityThreshold = parseFloat(lookup("RECOMMEND_DIVERSITY_THRESHOLD"), 0.3)
	cfg.RateLimitPerMinute = parseInt(lookup("RATE_LIMIT_PER_MINUTE"), 60)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func getEnvInt(name string, def int) int {
	return parseInt(os.Getenv(name), def)
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func parseFloat(raw string, def float64) float64 {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
