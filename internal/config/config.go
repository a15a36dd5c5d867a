package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DIAS_UTEIS_SERVER_ADDR
const EnvPrefix = "DIAS_UTEIS"

// Config represents application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	ReadTimeout    string   `mapstructure:"read_timeout"`
	WriteTimeout   string   `mapstructure:"write_timeout"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
	SessionIdleTTL string   `mapstructure:"session_idle_ttl"`
	SweepInterval  string   `mapstructure:"sweep_interval"`
	SystemTray     bool     `mapstructure:"system_tray"` // Show system tray icon (Windows only)
}

// CalendarConfig represents calendar defaults for new sessions
type CalendarConfig struct {
	HoursPerDay   string `mapstructure:"hours_per_day"`
	Year          int    `mapstructure:"year"`            // 0 = current year
	MaxRangeYears int    `mapstructure:"max_range_years"` // Longest selectable range
}

// AuthConfig represents Basic Auth configuration
type AuthConfig struct {
	File string `mapstructure:"file"` // Empty disables authentication
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.session_idle_ttl", "12h")
	v.SetDefault("server.sweep_interval", "10m")
	v.SetDefault("server.system_tray", false)
	v.SetDefault("calendar.hours_per_day", "8")
	v.SetDefault("calendar.year", 0)
	v.SetDefault("calendar.max_range_years", 10)
	v.SetDefault("auth.file", "")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.level", "info")
}

// Load loads configuration from file. Without an explicit path a missing
// config file is not an error and the defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.dias-uteis")
		v.AddConfigPath("/etc/dias-uteis")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	for name, value := range map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.session_idle_ttl": c.Server.SessionIdleTTL,
		"server.sweep_interval":   c.Server.SweepInterval,
	} {
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	if c.Calendar.HoursPerDay != "" {
		hours, err := decimal.NewFromString(c.Calendar.HoursPerDay)
		if err != nil {
			return fmt.Errorf("calendar.hours_per_day: %w", err)
		}
		if !hours.IsPositive() {
			return fmt.Errorf("calendar.hours_per_day must be positive")
		}
	}
	if c.Calendar.Year != 0 && c.Calendar.Year < 1583 {
		return fmt.Errorf("calendar.year must be 1583 or later, got %d", c.Calendar.Year)
	}
	if c.Calendar.MaxRangeYears < 0 {
		return fmt.Errorf("calendar.max_range_years must be positive, got %d", c.Calendar.MaxRangeYears)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got '%s'", c.Logging.Level)
	}

	return nil
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

// GetReadTimeout returns the HTTP read timeout
func (c *ServerConfig) GetReadTimeout() time.Duration {
	return parseDuration(c.ReadTimeout, 15*time.Second)
}

// GetWriteTimeout returns the HTTP write timeout
func (c *ServerConfig) GetWriteTimeout() time.Duration {
	return parseDuration(c.WriteTimeout, 15*time.Second)
}

// GetSessionIdleTTL returns how long an unused session is kept
func (c *ServerConfig) GetSessionIdleTTL() time.Duration {
	return parseDuration(c.SessionIdleTTL, 12*time.Hour)
}

// GetSweepInterval returns how often idle sessions are evicted
func (c *ServerConfig) GetSweepInterval() time.Duration {
	return parseDuration(c.SweepInterval, 10*time.Minute)
}

// GetHoursPerDay returns the default hours per working day. Default: 8
func (c *CalendarConfig) GetHoursPerDay() decimal.Decimal {
	hours, err := decimal.NewFromString(c.HoursPerDay)
	if err != nil || !hours.IsPositive() {
		return decimal.NewFromInt(8)
	}
	return hours
}

// GetMaxRangeYears returns the longest selectable range in years. Default: 10
func (c *CalendarConfig) GetMaxRangeYears() int {
	if c.MaxRangeYears <= 0 {
		return 10
	}
	return c.MaxRangeYears
}

// GetYear returns the configured initial year, or the year of now
func (c *CalendarConfig) GetYear(now time.Time) int {
	if c.Year == 0 {
		return now.Year()
	}
	return c.Year
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Auth.File = os.ExpandEnv(c.Auth.File)
	c.Logging.File = os.ExpandEnv(c.Logging.File)
}
