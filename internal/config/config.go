package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string // sqlite, postgres, mysql
	DatabasePath string // sqlite file path
	DatabaseURL  string // postgres/mysql connection string

	MigrationsPath string

	JWTSecret     string
	TokenDuration time.Duration

	// Catalog sync
	MediaRoot        string // root directory mirrored into the catalog
	MediaBaseURL     string // public URL prefix for sign media
	LessonConfigPath string // per-module signs-per-lesson YAML table
	QuestionSeedPath string // authored quiz question YAML
	SyncOnStartup    bool

	// Gesture inference
	PythonBin          string
	AlphabetClassifier string
	WordClassifier     string
	InferenceTimeout   time.Duration

	// Email (welcome mail, optional)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort:   getEnv("PORT", "8080"),
		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./singlang.db"),
		DatabaseURL:  getEnv("DB_URL", ""),

		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenDuration: getEnvDuration("TOKEN_DURATION", 24*time.Hour),

		MediaRoot:        getEnv("MEDIA_ROOT", "./media"),
		MediaBaseURL:     getEnv("MEDIA_BASE_URL", "/media"),
		LessonConfigPath: getEnv("LESSON_CONFIG_PATH", "./config/lesson_grouping.yaml"),
		QuestionSeedPath: getEnv("QUESTION_SEED_PATH", "./config/quiz_questions.yaml"),
		SyncOnStartup:    getEnvBool("SYNC_ON_STARTUP", true),

		PythonBin:          getEnv("PYTHON_BIN", "python3"),
		AlphabetClassifier: getEnv("ALPHABET_CLASSIFIER", "./inference-models/alphabet_classifier.py"),
		WordClassifier:     getEnv("WORD_CLASSIFIER", "./inference-models/word_classifier.py"),
		InferenceTimeout:   getEnvDuration("INFERENCE_TIMEOUT", 15*time.Second),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "SingLang"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool reads a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
		log.Printf("Warning: invalid boolean for %s: %q", key, value)
	}
	return defaultValue
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
		log.Printf("Warning: invalid duration for %s: %q", key, value)
	}
	return defaultValue
}
