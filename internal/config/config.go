package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Backend settings
	APIURL      string
	HTTPTimeout time.Duration

	// Logging settings; an empty LogFile means the user config directory
	LogFile   string
	LogLevel  string
	LogFormat string

	// Client-side preferences file; empty means the user config directory
	PreferencesPath string

	// List view settings
	PageSize int

	// Development backend settings
	ServeAddr   string
	StorageType string
	SeedFile    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBDatabase  string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags that override configuration
type Flags struct {
	APIURL      string
	LogFile     string
	LogLevel    string
	ServeAddr   string
	StorageType string
	SeedFile    string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		APIURL:      DefaultAPIURL,
		HTTPTimeout: DefaultHTTPTimeout,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		PageSize:    DefaultPageSize,
		ServeAddr:   DefaultServeAddr,
		StorageType: DefaultStorageType,
		DBHost:      DefaultDBHost,
		DBPort:      DefaultDBPort,
		DBUser:      DefaultDBUser,
		DBDatabase:  DefaultDBDatabase,
	}
}

// Load creates a config from defaults, the .env file and the environment
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	cfg := New()
	cfg.APIURL = getEnv("TCM_API_URL", cfg.APIURL)
	cfg.LogFile = getEnv("TCM_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("TCM_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("TCM_LOG_FORMAT", cfg.LogFormat)
	cfg.PreferencesPath = getEnv("TCM_PREFERENCES_PATH", cfg.PreferencesPath)
	cfg.ServeAddr = getEnv("TCM_SERVE_ADDR", cfg.ServeAddr)
	cfg.StorageType = getEnv("TCM_STORAGE", cfg.StorageType)
	cfg.SeedFile = getEnv("TCM_SEED_FILE", cfg.SeedFile)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USERNAME", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBDatabase = getEnv("DB_DATABASE", cfg.DBDatabase)

	if v := os.Getenv("TCM_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TCM_HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyFlags overrides configuration with non-empty command-line flags
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.APIURL != "" {
		c.APIURL = flags.APIURL
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.ServeAddr != "" {
		c.ServeAddr = flags.ServeAddr
	}
	if flags.StorageType != "" {
		c.StorageType = flags.StorageType
	}
	if flags.SeedFile != "" {
		c.SeedFile = flags.SeedFile
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url must be http or https: %s", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api url has no host: %s", c.APIURL)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http timeout must not be negative: %s", c.HTTPTimeout)
	}
	switch c.StorageType {
	case "memory", "mysql":
	default:
		return fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}
	return nil
}

// GetAPIURL returns the backend base URL without a trailing slash
func (c *Config) GetAPIURL() string {
	return strings.TrimRight(c.APIURL, "/")
}

// GetPreferencesPath returns the file holding persisted UI preferences.
// Falls back to the working directory when no user config directory exists.
func (c *Config) GetPreferencesPath() string {
	if c.PreferencesPath != "" {
		return c.PreferencesPath
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", DefaultAppDir, DefaultPreferencesFile)
	}
	return filepath.Join(dir, DefaultAppDir, DefaultPreferencesFile)
}

// GetLogFile returns the log output: "-", stderr, stdout or a file path.
// Without an explicit setting the file sits next to the preferences.
func (c *Config) GetLogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", DefaultAppDir, DefaultLogFile)
	}
	return filepath.Join(dir, DefaultAppDir, DefaultLogFile)
}

// GetDSN returns the MySQL data source name for the development backend.
// With withDatabase false it connects to the server only, so the database can be created.
func (c *Config) GetDSN(withDatabase bool) string {
	db := ""
	if withDatabase {
		db = c.DBDatabase
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, db)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
