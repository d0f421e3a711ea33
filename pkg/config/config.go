package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Storage
	DBPath string `mapstructure:"db_path"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Session settings
	SessionSecret string        `mapstructure:"session_secret"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`

	// Weather provider
	OpenWeatherAPIKey  string        `mapstructure:"openweather_api_key"`
	OpenWeatherBaseURL string        `mapstructure:"openweather_base_url"`
	OpenWeatherUnits   string        `mapstructure:"openweather_units"`
	OpenWeatherTimeout time.Duration `mapstructure:"openweather_timeout"`

	// Optional logging settings
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "text" or "json"

	// Static paths
	ConfigPath string
}

const (
	DefaultDBPath             = "users.db"
	DefaultAPIHost            = "127.0.0.1"
	DefaultAPIPort            = 5000
	DefaultSessionTTL         = 24 * time.Hour
	DefaultOpenWeatherBaseURL = "http://api.openweathermap.org/data/2.5"
	DefaultOpenWeatherUnits   = "metric"
	DefaultOpenWeatherTimeout = 10 * time.Second
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultEnvFile            = ".env"
	EnvPrefix                 = "SKYBOARD"
)

// Load reads configuration from an optional YAML file, the environment and
// a .env file in the working directory. An empty configPath skips the file.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", DefaultEnvFile, err)
	}

	v := viper.New()

	// Set defaults
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("ssl_cert", "")
	v.SetDefault("ssl_key", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("session_ttl", DefaultSessionTTL)
	v.SetDefault("cookie_secure", false)
	v.SetDefault("openweather_api_key", "")
	v.SetDefault("openweather_base_url", DefaultOpenWeatherBaseURL)
	v.SetDefault("openweather_units", DefaultOpenWeatherUnits)
	v.SetDefault("openweather_timeout", DefaultOpenWeatherTimeout)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	// The provider key keeps its conventional unprefixed name.
	if err := v.BindEnv("openweather_api_key", EnvPrefix+"_OPENWEATHER_API_KEY", "OPENWEATHER_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ConfigPath = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port must be between 1 and 65535")
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}

	switch c.OpenWeatherUnits {
	case "metric", "imperial", "standard":
	default:
		return fmt.Errorf("openweather_units must be 'metric', 'imperial' or 'standard'")
	}

	if c.OpenWeatherBaseURL == "" {
		return fmt.Errorf("openweather_base_url is required")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be 'text' or 'json'")
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return os.Getenv(EnvPrefix+"_DEV_MODE") == "1"
}
