package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"reviewdesk/internal/logger"
)

// Supported store drivers
const (
	StoreMongo    = "mongo"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreBolt     = "bolt"
	StoreMemory   = "memory"
)

// Development-only staff credentials; Validate rejects them when LOG_MODE is prod
const (
	DefaultStaffPassword = "password123"
	DefaultJWTSecret     = "super-secret-key-change-in-production"
)

// StaffConfig holds dashboard login settings
type StaffConfig struct {
	Username  string
	Password  string
	JWTSecret string
	TokenTTL  time.Duration
}

// Config is built once at startup and passed to every component that needs it
type Config struct {
	Port    string
	LogMode string

	StoreDriver string
	MongoURI    string
	MongoDB     string
	SQLitePath  string
	PostgresDSN string
	BoltPath    string

	// Empty RedisURI selects the in-process list cache
	RedisURI string
	CacheTTL time.Duration

	ClassifierRulesFile string

	FinalizeAsync   bool
	FinalizeTimeout time.Duration

	CORSAllowedOrigins string

	Staff StaffConfig
	AI    *AIConfig
}

// ConfigError lists every missing or invalid setting found by Validate
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + strings.Join(e.Missing, ", ")
}

// Load reads an optional .env file, then the process environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables without validating it
func FromEnv() *Config {
	return &Config{
		Port:    getEnv("PORT", "8080"),
		LogMode: getEnv("LOG_MODE", "dev"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "reviewdesk"),
		SQLitePath:  getEnv("SQLITE_PATH", "reviewdesk.db"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		BoltPath:    getEnv("BOLT_PATH", "reviewdesk.bolt"),

		RedisURI: getEnv("REDIS_URI", ""),
		CacheTTL: time.Duration(getEnvInt("CACHE_TTL_SECONDS", 600)) * time.Second,

		ClassifierRulesFile: getEnv("CLASSIFIER_RULES_FILE", ""),

		FinalizeAsync:   getEnvBool("FINALIZE_ASYNC", true),
		FinalizeTimeout: time.Duration(getEnvInt("FINALIZE_TIMEOUT_SECONDS", 60)) * time.Second,

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),

		Staff: StaffConfig{
			Username:  getEnv("STAFF_USERNAME", "admin"),
			Password:  getEnv("STAFF_PASSWORD", DefaultStaffPassword),
			JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),
			TokenTTL:  time.Duration(getEnvInt("STAFF_TOKEN_TTL_HOURS", 12)) * time.Hour,
		},
		AI: DefaultAIConfig(),
	}
}

// Validate reports every missing credential or unusable setting at once.
func (c *Config) Validate() error {
	var missing []string
	if c.AI == nil {
		missing = append(missing, "LLM_PROVIDER")
	} else {
		missing = append(missing, c.AI.missing()...)
	}

	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
	case StorePostgres:
		if c.PostgresDSN == "" {
			missing = append(missing, "POSTGRES_DSN")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			missing = append(missing, "SQLITE_PATH")
		}
	case StoreBolt:
		if c.BoltPath == "" {
			missing = append(missing, "BOLT_PATH")
		}
	case StoreMemory:
	default:
		missing = append(missing, "STORE_DRIVER (unknown driver "+c.StoreDriver+")")
	}

	if c.Staff.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if logger.IsProduction(c.LogMode) {
		if c.Staff.Password == DefaultStaffPassword {
			missing = append(missing, "STAFF_PASSWORD (default not allowed in prod)")
		}
		if c.Staff.JWTSecret == DefaultJWTSecret {
			missing = append(missing, "JWT_SECRET (default not allowed in prod)")
		}
	}
	// zero disables the listing cache
	if c.CacheTTL < 0 {
		missing = append(missing, "CACHE_TTL_SECONDS")
	}

	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// UsesDefaultStaffCredentials reports whether the development password or secret is in effect
func (c *Config) UsesDefaultStaffCredentials() bool {
	return c.Staff.Password == DefaultStaffPassword || c.Staff.JWTSecret == DefaultJWTSecret
}

// RedisAddr strips the redis:// scheme the way docker-compose style URIs are often written
func (c *Config) RedisAddr() string {
	return strings.TrimPrefix(c.RedisURI, "redis://")
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
