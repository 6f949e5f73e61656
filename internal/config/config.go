package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Storage back ends.
const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
	StorageSQLite = "sqlite"
)

// Config holds the service configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Seed     SeedConfig
}

// AppConfig holds the HTTP and logging settings.
type AppConfig struct {
	Host            string
	Port            int
	GinLogging      bool
	LogLevel        string
	ShutdownTimeout time.Duration
}

// DatabaseConfig selects and configures the storage back end.
type DatabaseConfig struct {
	Storage    string
	Host       string
	User       string
	Password   string
	Name       string
	SQLitePath string
}

// SeedConfig configures the initial data. An empty File means the built-in seed data.
type SeedConfig struct {
	Enabled bool
	File    string
}

// Load reads the configuration from the environment. Variables from a .env file in the working
// directory are added first, without overriding variables that are already set.
//
// Usage example:
// > PORT=8080 STORAGE=mysql DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 go run ./cmd/service
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("could not parse PORT env variable: %w", err)
	}
	cfg := &Config{
		App: AppConfig{
			Host:            getEnv("HOST", ""),
			Port:            port,
			GinLogging:      !strings.EqualFold(os.Getenv("GIN_LOGGING"), "off"),
			LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
			ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Storage:    strings.ToLower(getEnv("STORAGE", StorageMemory)),
			Host:       getEnv("DBHOST", "localhost:3306"),
			User:       os.Getenv("DBUSER"),
			Password:   os.Getenv("DBPWD"),
			Name:       getEnv("DBNAME", "test"),
			SQLitePath: getEnv("SQLITE_PATH", "contact-console.db"),
		},
		Seed: SeedConfig{
			Enabled: getEnvAsBool("SEED", true),
			File:    os.Getenv("SEED_FILE"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.App.Port < 1 || c.App.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.App.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	switch c.Database.Storage {
	case StorageMemory, StorageSQLite:
	case StorageMySQL:
		if c.Database.User == "" {
			return fmt.Errorf("DBUSER must be set for mysql storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Database.Storage)
	}
	return nil
}

// Addr is the address the HTTP server listens on.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Driver returns the database/sql driver name of the storage back end, or "" for memory storage.
func (c *DatabaseConfig) Driver() string {
	switch c.Storage {
	case StorageMySQL:
		return "mysql"
	case StorageSQLite:
		return "sqlite"
	}
	return ""
}

// DSN returns the data source name for the storage back end.
func (c *DatabaseConfig) DSN() string {
	switch c.Storage {
	case StorageMySQL:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = c.Host
		mc.DBName = c.Name
		mc.ParseTime = true
		mc.ClientFoundRows = true
		return mc.FormatDSN()
	case StorageSQLite:
		return "file:" + c.SQLitePath + "?_time_format=sqlite"
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
