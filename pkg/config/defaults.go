// Package config provides centralized default values for the inspector service
package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

// loadEnvFile applies .env overrides. Variables already present in the
// environment win.
func loadEnvFile() {
	envLoaded.Do(func() {
		if _, err := os.Stat(".env"); err != nil {
			return
		}
		log.Println("Loading configuration overrides from .env file...")
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Failed to load .env: %v", err)
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

// getEnvSecret is getEnvString without echoing the value.
func getEnvSecret(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=****", key)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	CORSOrigins        string

	// Database
	SQLitePath               string
	TursoDatabaseURL         string
	TursoAuthToken           string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int
	SlowQueryThreshold       time.Duration

	// Auth
	JWTSecret      string
	EditorPassword string
	EditorTokenTTL time.Duration
	SecureCookies  bool

	// Logging
	LogDirectory string
	LogToFile    bool
	LogJSON      bool
	LogLevel     string

	// TTL Configuration
	ContentCacheTTL  time.Duration
	EditorSessionTTL time.Duration

	// Cleanup Intervals
	CleanupInterval time.Duration
	CleanupVerbose  bool

	// Realtime
	CanvasPingInterval time.Duration
	CanvasWriteTimeout time.Duration
	CanvasSendBuffer   int
)

func init() {
	Load()
}

// Load reads every setting from the environment. It runs once at package
// init and may be called again by tests after changing the environment.
func Load() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	CORSOrigins = getEnvString("CORS_ORIGINS", "http://localhost:4321,http://localhost:3000")

	// Database
	SQLitePath = getEnvString("SQLITE_PATH", "db/inspector.db")
	TursoDatabaseURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoAuthToken = getEnvSecret("TURSO_AUTH_TOKEN", "")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 100*time.Millisecond)

	// Auth
	JWTSecret = getEnvSecret("JWT_SECRET", "")
	EditorPassword = getEnvSecret("EDITOR_PASSWORD", "")
	EditorTokenTTL = getEnvDuration("EDITOR_TOKEN_TTL", 24*time.Hour)
	SecureCookies = getEnvBool("SECURE_COOKIES", false)

	// Logging
	LogDirectory = getEnvString("LOG_DIR", "logs")
	LogToFile = getEnvBool("LOG_TO_FILE", true)
	LogJSON = getEnvBool("LOG_JSON", true)
	LogLevel = getEnvString("LOG_LEVEL", "info")

	// TTL Configuration
	ContentCacheTTL = getEnvDuration("CONTENT_CACHE_TTL", 24*time.Hour)
	EditorSessionTTL = getEnvDuration("EDITOR_SESSION_TTL", 2*time.Hour)

	// Cleanup Intervals
	CleanupInterval = getEnvDuration("CLEANUP_INTERVAL", 5*time.Minute)
	CleanupVerbose = getEnvBool("CLEANUP_VERBOSE", false)

	// Realtime
	CanvasPingInterval = getEnvDuration("CANVAS_PING_INTERVAL", 30*time.Second)
	CanvasWriteTimeout = getEnvDuration("CANVAS_WRITE_TIMEOUT", 10*time.Second)
	CanvasSendBuffer = getEnvInt("CANVAS_SEND_BUFFER", 32)
}
