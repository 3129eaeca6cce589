package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP            string // Host IP for the server
	RESTPort          int    // Port for the REST API
	GinMode           string // Mode for the Gin framework (e.g., release, debug, test)
	GridRows          int    // Rows of a board created without explicit dimensions
	GridCols          int    // Columns of a board created without explicit dimensions
	DefaultSpeed      int    // Speed level (1-10) of a new board
	PacingFormula     string // "fast" (110-10*level ms) or "slow" (1100-100*level ms)
	RedisAddr         string // Redis address for run history, empty keeps history in memory
	RedisPassword     string // Password for Redis
	RedisDB           int    // Redis database number
	HistoryTTLSeconds int    // Expiration of a run history key
	HistoryLimit      int    // Number of runs kept per algorithm
	MaxSessions       int    // Maximum number of concurrent boards
	LogVerbosity      int    // logr verbosity
	PprofEnabled      bool   // Mount /debug/pprof on the router
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:            getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:          getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:           getEnvWithDefault("GIN_MODE", "release"),
		GridRows:          getEnvAsIntWithDefault("GRID_ROWS", 20),
		GridCols:          getEnvAsIntWithDefault("GRID_COLS", 20),
		DefaultSpeed:      getEnvAsIntWithDefault("DEFAULT_SPEED", 5),
		PacingFormula:     getEnvWithDefault("PACING_FORMULA", "fast"),
		RedisAddr:         getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:     getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsIntWithDefault("REDIS_DB", 0),
		HistoryTTLSeconds: getEnvAsIntWithDefault("HISTORY_TTL_SECONDS", 86400),
		HistoryLimit:      getEnvAsIntWithDefault("HISTORY_LIMIT", 50),
		MaxSessions:       getEnvAsIntWithDefault("MAX_SESSIONS", 64),
		LogVerbosity:      getEnvAsIntWithDefault("LOG_VERBOSITY", 0),
		PprofEnabled:      getEnvAsBoolWithDefault("PPROF_ENABLED", false),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable or logs a fatal error if it cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsBoolWithDefault retrieves a boolean environment variable or logs a fatal error if it cannot be parsed.
func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a boolean: %v", key, err)
	}
	return value
}
