package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Password hashing modes understood by AUTH_PASSWORD_HASHING.
const (
	HashingPlain  = "plain"
	HashingBcrypt = "bcrypt"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Postgres SQLConfig
	MySQL    SQLConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	CORS     CORSConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// StorageConfig selects the storage backend.
type StorageConfig struct {
	Driver string
}

// SQLConfig holds connection values for a SQL backend.
type SQLConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	PasswordHashing       string
	BcryptCost            int
	ProtectUsers          bool
	BootstrapUsername     string
	BootstrapPassword     string
}

// CORSConfig lists the values sent on every response.
type CORSConfig struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "catalog-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		},
		Postgres: SQLConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations/postgres"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		MySQL: SQLConfig{
			DSN:            os.Getenv("MYSQL_DSN"),
			MaxConns:       int32(getEnvAsInt("MYSQL_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("MYSQL_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("MYSQL_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("MYSQL_MIGRATIONS_DIR", "migrations/mysql"),
			ConnMaxIdleSec: int32(getEnvAsInt("MYSQL_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("MYSQL_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			CacheTTL: getEnvAsDuration("REDIS_CACHE_TTL", 5*time.Minute),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             os.Getenv("AUTH_JWT_SECRET"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 15),
			PasswordHashing:       strings.ToLower(getEnv("AUTH_PASSWORD_HASHING", HashingPlain)),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			ProtectUsers:          getEnvAsBool("AUTH_PROTECT_USERS", true),
			BootstrapUsername:     os.Getenv("AUTH_BOOTSTRAP_USERNAME"),
			BootstrapPassword:     os.Getenv("AUTH_BOOTSTRAP_PASSWORD"),
		},
		CORS: CORSConfig{
			AllowOrigin:  getEnv("CORS_ALLOW_ORIGIN", "*"),
			AllowMethods: getEnv("CORS_ALLOW_METHODS", "GET, POST, PUT, DELETE, OPTIONS"),
			AllowHeaders: getEnv("CORS_ALLOW_HEADERS", "Content-Type, Authorization"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required"))
	}
	if c.Auth.AccessTokenTTLMinutes <= 0 {
		errs = append(errs, fmt.Errorf("AUTH_ACCESS_TOKEN_TTL_MINUTES must be positive, got %d", c.Auth.AccessTokenTTLMinutes))
	}
	switch c.Auth.PasswordHashing {
	case HashingPlain, HashingBcrypt:
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_PASSWORD_HASHING %q", c.Auth.PasswordHashing))
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required for the postgres driver"))
		}
	case DriverMySQL:
		if c.MySQL.DSN == "" {
			errs = append(errs, errors.New("MYSQL_DSN is required for the mysql driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}
	return errors.Join(errs...)
}

// SecretKey returns the token signing secret.
func (c *Config) SecretKey() []byte {
	return []byte(c.Auth.JWTSecret)
}

// DBConnectionInfo returns the DSN for the selected SQL driver, or "" for memory.
func (c *Config) DBConnectionInfo() string {
	switch c.Storage.Driver {
	case DriverPostgres:
		return c.Postgres.DSN
	case DriverMySQL:
		return c.MySQL.DSN
	default:
		return ""
	}
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL is the lifetime given to tokens issued at login.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
