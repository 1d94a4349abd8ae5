package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Tracing  TracingConfig
	Import   ImportConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	RuntimeLogFilePath string // websocket traffic; empty logs to the main file
	CorsAllowedOrigins string
	NatsURL            string // empty disables the NATS relay
	RedisURL           string // empty keeps viewer state in process
}

type DatabaseConfig struct {
	Driver     string // "sqlite" or "postgres"
	Connection string
}

// AuthConfig enables login only when both User and Pass are set.
type AuthConfig struct {
	User   string
	Pass   string
	Secret string
}

func (a AuthConfig) Enabled() bool {
	return a.User != "" && a.Pass != ""
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

type ImportConfig struct {
	Root string // when set, scans and imports must stay under this folder
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("PREP_TOOL_PORT", "5050"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "prep-tool.log"),
			RuntimeLogFilePath: getEnv("RUNTIME_LOG_FILE_PATH", "prep-runtime.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Connection: getEnv("DB_CONNECTION_STRING", "prep_tool.db"),
		},
		Auth: AuthConfig{
			User:   getEnv("PREP_TOOL_USER", ""),
			Pass:   getEnv("PREP_TOOL_PASS", ""),
			Secret: getEnv("PREP_TOOL_SECRET", ""),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Import: ImportConfig{
			Root: getEnv("IMPORT_ROOT", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
