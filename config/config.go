package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"rental-comps/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	Locations []string
	MinBeds   *float64
	MaxBeds   *float64
	MinBaths  *float64
	MaxBaths  *float64
	MinSqft   *float64
	MaxSqft   *float64
	MinPrice  *float64
	MaxPrice  *float64

	ProfilePath string

	FetchBackend    string
	ChromeBin       string
	FetchTimeoutSec int
	EnrichLimit     int
	EnrichRateMs    int
	MaxRetries      int

	OutputDir      string
	ReportTimezone string

	HTTPPort    string
	CORSOrigins []string

	LogLevel string
	LogColor bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return fromEnv()
}

func fromEnv() *Config {
	return &Config{
		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "comps"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "comps123"),
		PostgresDB:       getEnv("POSTGRES_DB", "rental_comps"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		Locations: getEnvList("LOCATIONS", []string{"Moon Valley", "85022"}),
		MinBeds:   getEnvFloatPtr("MIN_BEDS"),
		MaxBeds:   getEnvFloatPtr("MAX_BEDS"),
		MinBaths:  getEnvFloatPtr("MIN_BATHS"),
		MaxBaths:  getEnvFloatPtr("MAX_BATHS"),
		MinSqft:   getEnvFloatPtr("MIN_SQFT"),
		MaxSqft:   getEnvFloatPtr("MAX_SQFT"),
		MinPrice:  getEnvFloatPtr("MIN_PRICE"),
		MaxPrice:  getEnvFloatPtr("MAX_PRICE"),

		ProfilePath: getEnv("PROFILE_PATH", "./profile.yaml"),

		FetchBackend:    strings.ToLower(getEnv("FETCH_BACKEND", "http")),
		ChromeBin:       getEnv("CHROME_BIN", ""),
		FetchTimeoutSec: getEnvInt("FETCH_TIMEOUT_SEC", 30),
		EnrichLimit:     getEnvInt("ENRICH_LIMIT", 5),
		EnrichRateMs:    getEnvInt("ENRICH_RATE_LIMIT_MS", 0),
		MaxRetries:      getEnvInt("MAX_RETRIES", 5),

		OutputDir:      getEnv("OUTPUT_DIR", "./output"),
		ReportTimezone: getEnv("REPORT_TIMEZONE", "America/Phoenix"),

		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogColor: getEnvBool("LOG_COLOR", true),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// Criteria returns the search criteria for one configured location.
func (c *Config) Criteria(location string) models.SearchCriteria {
	return models.SearchCriteria{
		Location: location,
		Beds:     models.Range{Min: c.MinBeds, Max: c.MaxBeds},
		Baths:    models.Range{Min: c.MinBaths, Max: c.MaxBaths},
		Sqft:     models.Range{Min: c.MinSqft, Max: c.MaxSqft},
		Price:    models.Range{Min: c.MinPrice, Max: c.MaxPrice},
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvFloatPtr returns nil when the variable is unset or not a number.
func getEnvFloatPtr(key string) *float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		log.Printf("[config] Ignoring %s=%q: not a number", key, val)
		return nil
	}
	return &f
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
