package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Typesense   TypesenseConfig
	Transit     TransitConfig
	PlaceSearch PlaceSearchConfig
	Engine      EngineConfig
	OTEL        OTELConfig
	Environment string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// TransitConfig holds transit-time oracle configuration
type TransitConfig struct {
	Provider string // "http" or "static"
	BaseURL  string
	APIKey   string
}

// PlaceSearchConfig holds external place-search configuration
type PlaceSearchConfig struct {
	BaseURL string
	APIKey  string
	Region  string
}

// EngineConfig holds the recommendation engine knobs
type EngineConfig struct {
	// OracleWorkers caps concurrent transit oracle calls per request.
	OracleWorkers int
	// BackfillQueryCap caps external place-search queries per region.
	BackfillQueryCap int
	// BackfillQueryTimeoutSeconds bounds each individual search query.
	BackfillQueryTimeoutSeconds int
	// TopK caps the ranked venue list per region.
	TopK int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from the environment, reading a .env file first
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "meetspot"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		Transit: TransitConfig{
			Provider: getEnv("TRANSIT_PROVIDER", "static"),
			BaseURL:  getEnv("TRANSIT_BASE_URL", "https://maps.googleapis.com/maps/api/directions/json"),
			APIKey:   getEnv("TRANSIT_API_KEY", ""),
		},
		PlaceSearch: PlaceSearchConfig{
			BaseURL: getEnv("PLACE_SEARCH_BASE_URL", "https://maps.googleapis.com/maps/api/place/textsearch/json"),
			APIKey:  getEnv("PLACE_SEARCH_API_KEY", ""),
			Region:  getEnv("PLACE_SEARCH_REGION", "jp"),
		},
		Engine: EngineConfig{
			OracleWorkers:               getEnvAsInt("ENGINE_ORACLE_WORKERS", 8),
			BackfillQueryCap:            getEnvAsInt("ENGINE_BACKFILL_QUERY_CAP", 15),
			BackfillQueryTimeoutSeconds: getEnvAsInt("ENGINE_BACKFILL_QUERY_TIMEOUT", 3),
			TopK:                        getEnvAsInt("ENGINE_TOP_K", 10),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "meetspot-engine"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Environment: getEnv("APP_ENV", "development"),
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
