package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// minHiddenWidth mirrors the narrowest ranker the recommender builds
const minHiddenWidth = 16

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs ValidationErrors

	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		add("SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort))
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			add("DB_HOST", "required for postgres")
		}
		if cfg.DBUser == "" {
			add("DB_USER", "required for postgres")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "required for postgres")
		}
		// Sensitive values must be provided outside development
		if (env == Production || env == CI) && cfg.DBPassword == "" {
			add("DB_PASSWORD", "required in "+string(env))
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "required for sqlite")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q (want postgres or sqlite)", cfg.DBDriver))
	}

	if cfg.S3BucketName != "" && cfg.ModelKey == "" {
		add("MODEL_KEY", "required when S3_BUCKET_NAME is set")
	}

	if cfg.HiddenWidth < minHiddenWidth {
		add("RANKER_HIDDEN_WIDTH", fmt.Sprintf("must be at least %d", minHiddenWidth))
	}
	if cfg.TrainEpochs <= 0 {
		add("TRAIN_EPOCHS", "must be positive")
	}
	if cfg.LearningRate <= 0 {
		add("TRAIN_LEARNING_RATE", "must be positive")
	}
	if cfg.ModelWeight < 0 || cfg.ModelWeight > 1 {
		add("RECOMMEND_MODEL_WEIGHT", "must be within [0, 1]")
	}
	if cfg.DiversityThreshold <= 0 || cfg.DiversityThreshold > 1 {
		add("RECOMMEND_DIVERSITY_THRESHOLD", "must be within (0, 1]")
	}
	if cfg.RateLimitPerMinute < 0 {
		add("RATE_LIMIT_PER_MINUTE", "must not be negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
