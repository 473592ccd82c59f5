// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Database types
const (
	SQLiteDatabase   = "sqlite"
	PostgresDatabase = "postgres"
)

const defaultAuthSecret = "88888888888888888888888888888888"

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName                    string   `mapstructure:"appname"`
	AppPort                    string   `mapstructure:"appport"`
	Environment                string   `mapstructure:"environment"`
	LogLevel                   LogLevel `mapstructure:"loglevel"`
	AuthSecret                 string   `mapstructure:"authsecret"`
	LoginSessionTimeoutSeconds int      `mapstructure:"loginsessiontimeoutseconds"`
	AdminEmail                 string   `mapstructure:"adminemail"`
	AdminPassword              string   `mapstructure:"adminpassword"`
	SeedOnStart                bool     `mapstructure:"seedonstart"`
	CORSOrigins                string   `mapstructure:"corsorigins"`

	// File paths
	DatabasePath string `mapstructure:"storagepath"`
	DatabaseName string `mapstructure:"-"` // Derived from other settings
	GeoDBPath    string `mapstructure:"geodbpath"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Database settings
	DatabaseType         string `mapstructure:"dbtype"`
	DatabaseURL          string `mapstructure:"databaseurl"`
	DatabaseMaxOpenConns int    `mapstructure:"dbmaxopenconns"`
	DatabaseMaxIdleConns int    `mapstructure:"dbmaxidleconns"`

	// Public read cache
	CacheTTLSeconds int `mapstructure:"cachettlseconds"`

	// Job scheduling settings
	JobIntervalSeconds   int `mapstructure:"jobintervalseconds"`
	ContactRetentionDays int `mapstructure:"contactretentiondays"`

	// Revalidation webhook fired after content writes
	RevalidationURL    string `mapstructure:"revalidationurl"`
	RevalidationSecret string `mapstructure:"revalidationsecret"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()

		v.SetDefault("appname", "portfolio")
		v.SetDefault("appport", "3000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("authsecret", defaultAuthSecret)
		v.SetDefault("loginsessiontimeoutseconds", 604800) // 1 week
		v.SetDefault("adminemail", "admin@example.com")
		v.SetDefault("seedonstart", false)
		v.SetDefault("corsorigins", "*")
		v.SetDefault("storagepath", "storage")
		v.SetDefault("geodbpath", "storage/GeoLite2-Country.mmdb")
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)
		v.SetDefault("dbtype", SQLiteDatabase)
		v.SetDefault("dbmaxopenconns", 0)
		v.SetDefault("dbmaxidleconns", 0)
		v.SetDefault("cachettlseconds", 60)
		v.SetDefault("jobintervalseconds", 60)
		v.SetDefault("contactretentiondays", 365)

		v.BindEnv("appname", "PORTFOLIO_APP_NAME")
		v.BindEnv("appport", "PORTFOLIO_APP_PORT")
		v.BindEnv("environment", "PORTFOLIO_ENV")
		v.BindEnv("loglevel", "PORTFOLIO_LOG_LEVEL")
		v.BindEnv("authsecret", "PORTFOLIO_AUTH_SECRET")
		v.BindEnv("loginsessiontimeoutseconds", "PORTFOLIO_LOGIN_SESSION_TIMEOUT_SECONDS")
		v.BindEnv("adminemail", "PORTFOLIO_ADMIN_EMAIL")
		v.BindEnv("adminpassword", "PORTFOLIO_ADMIN_PASSWORD")
		v.BindEnv("seedonstart", "PORTFOLIO_SEED_ON_START")
		v.BindEnv("corsorigins", "PORTFOLIO_CORS_ORIGINS")
		v.BindEnv("storagepath", "PORTFOLIO_STORAGE_PATH")
		v.BindEnv("geodbpath", "PORTFOLIO_GEO_DB_PATH")
		v.BindEnv("logsdir", "PORTFOLIO_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "PORTFOLIO_LOGS_MAX_SIZE_IN_MB")
		v.BindEnv("logsmaxbackups", "PORTFOLIO_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "PORTFOLIO_LOGS_MAX_AGE_IN_DAYS")
		v.BindEnv("dbtype", "PORTFOLIO_DB_TYPE")
		v.BindEnv("databaseurl", "DATABASE_URL")
		v.BindEnv("dbmaxopenconns", "PORTFOLIO_DB_MAX_OPEN_CONNS")
		v.BindEnv("dbmaxidleconns", "PORTFOLIO_DB_MAX_IDLE_CONNS")
		v.BindEnv("cachettlseconds", "PORTFOLIO_CACHE_TTL_SECONDS")
		v.BindEnv("jobintervalseconds", "PORTFOLIO_JOB_INTERVAL_SECONDS")
		v.BindEnv("contactretentiondays", "PORTFOLIO_CONTACT_RETENTION_DAYS")
		v.BindEnv("revalidationurl", "PORTFOLIO_REVALIDATION_URL")
		v.BindEnv("revalidationsecret", "PORTFOLIO_REVALIDATION_SECRET")

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("config: failed to unmarshal configuration: %v", err)
		}

		if err := cfg.validate(); err != nil {
			log.Fatalf("config: invalid configuration: %v", err)
		}

		cfg.DatabaseName = cfg.GetDatabasePath()
	})
	return cfg
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	validDBTypes := map[string]bool{
		SQLiteDatabase:   true,
		PostgresDatabase: true,
	}
	if !validDBTypes[c.DatabaseType] {
		return fmt.Errorf("invalid database type: %s", c.DatabaseType)
	}
	if c.DatabaseType == PostgresDatabase && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when using %s", PostgresDatabase)
	}

	if c.AuthSecret == "" {
		return fmt.Errorf("auth secret is required")
	}
	if c.IsProduction() && c.AuthSecret == defaultAuthSecret {
		return fmt.Errorf("production requires a unique PORTFOLIO_AUTH_SECRET (cannot use default)")
	}

	return nil
}

// GetDatabasePath returns the SQLite file path based on environment
func (c *Config) GetDatabasePath() string {
	if c.DatabaseName == "" {
		c.DatabaseName = filepath.Join(c.DatabasePath,
			fmt.Sprintf("%s-%s.db", c.AppName, c.Environment))
	}
	return c.DatabaseName
}

// DatabaseDSN returns the connection string for the configured database type.
func (c *Config) DatabaseDSN() string {
	if c.DatabaseType == PostgresDatabase {
		return c.DatabaseURL
	}
	return c.GetDatabasePath()
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// GetPort returns the HTTP server port.
func (c *Config) GetPort() string {
	return c.AppPort
}

// GetAppName returns the application name.
func (c *Config) GetAppName() string {
	return c.AppName
}

// GetPublicDirectory is empty: static assets are embedded in the binary.
func (c *Config) GetPublicDirectory() string {
	return ""
}

// GetAssetsPrefix returns the URL prefix static assets are served under.
func (c *Config) GetAssetsPrefix() string {
	return "/static"
}

// GetSessionSecret returns the key signing session cookies and bearer tokens.
func (c *Config) GetSessionSecret() string {
	return c.AuthSecret
}

// GetLoginSessionTimeout returns the login session timeout in seconds.
// Used for the admin session cookie and bearer token lifetime.
func (c *Config) GetLoginSessionTimeout() int {
	return c.LoginSessionTimeoutSeconds
}

// GetCORSOrigins returns the allowed origins for the public API.
func (c *Config) GetCORSOrigins() string {
	origins := strings.TrimSpace(c.CORSOrigins)
	if origins == "" {
		return "*"
	}
	return origins
}

// GetMaxOpenConns returns the appropriate MaxOpenConns value based on environment
// If explicitly set via env var, uses that value. Otherwise:
// - Test: 1
// - Development/Production: 10
func (c *Config) GetMaxOpenConns() int {
	if c.DatabaseMaxOpenConns > 0 {
		return c.DatabaseMaxOpenConns
	}

	if c.Environment == Test {
		return 1
	}

	return 10
}

// GetMaxIdleConns returns the appropriate MaxIdleConns value based on environment
func (c *Config) GetMaxIdleConns() int {
	if c.DatabaseMaxIdleConns > 0 {
		return c.DatabaseMaxIdleConns
	}

	if c.Environment == Test {
		return 1
	}

	return 5
}

// GetLogLevel returns the log level as a string.
func (c *Config) GetLogLevel() string {
	return string(c.LogLevel)
}

// GetLogDirectory returns the logs directory.
func (c *Config) GetLogDirectory() string {
	return c.LogsDirectory
}

// GetLogMaxSizeMB returns the max log file size in MB.
func (c *Config) GetLogMaxSizeMB() int {
	return c.LogsMaxSizeInMb
}

// GetLogMaxBackups returns the max number of log backups.
func (c *Config) GetLogMaxBackups() int {
	return c.LogsMaxBackups
}

// GetLogMaxAgeDays returns the max age in days for log files.
func (c *Config) GetLogMaxAgeDays() int {
	return c.LogsMaxAgeInDays
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
