package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Publish  PublishConfig  `mapstructure:"publish"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig locates the persisted calendar file
type CalendarConfig struct {
	File string `mapstructure:"file"`
}

// HolidaysConfig configures the public-holiday provider and cache
type HolidaysConfig struct {
	CacheDir string `mapstructure:"cache_dir"`
	APIURL   string `mapstructure:"api_url"`
	Country  string `mapstructure:"country"`
	Timeout  string `mapstructure:"timeout"`
}

// PublishConfig configures the git publish step. Remote may embed a
// token; it usually comes from the REPO_URL environment variable (a
// local .env file is honored) rather than the config file.
type PublishConfig struct {
	Remote      string `mapstructure:"remote"`
	Branch      string `mapstructure:"branch"`
	AuthorName  string `mapstructure:"author_name"`
	AuthorEmail string `mapstructure:"author_email"`
}

// LogConfig configures logging output
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing config file is fine:
// every setting has a default so the tool runs with no configuration
// at all.
func Load(configPath string) (*Config, error) {
	// Secrets like REPO_URL may live next to the binary in a .env file
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("calendar.file", "calendar.json")
	v.SetDefault("holidays.cache_dir", ".holiday-cache")
	v.SetDefault("holidays.api_url", "https://date.nager.at")
	v.SetDefault("holidays.country", "ES")
	v.SetDefault("holidays.timeout", "10s")
	v.SetDefault("publish.branch", "main")
	v.SetDefault("publish.author_name", "care-calendar-bot")
	v.SetDefault("publish.author_email", "care-calendar@bot.local")
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.care-calendar")
	}

	// Read environment variables
	v.AutomaticEnv()

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

	if config.Publish.Remote == "" {
		config.Publish.Remote = os.Getenv("REPO_URL")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Calendar.File == "" {
		return fmt.Errorf("calendar.file is required")
	}
	if c.Holidays.Country == "" {
		return fmt.Errorf("holidays.country is required")
	}
	if c.Holidays.APIURL == "" {
		return fmt.Errorf("holidays.api_url is required")
	}
	if c.Holidays.Timeout != "" {
		if _, err := time.ParseDuration(c.Holidays.Timeout); err != nil {
			return fmt.Errorf("holidays.timeout is not a duration: %w", err)
		}
	}
	return nil
}

// GetTimeout returns the holiday fetch timeout duration
func (c *HolidaysConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Calendar.File = os.ExpandEnv(c.Calendar.File)
	c.Holidays.CacheDir = os.ExpandEnv(c.Holidays.CacheDir)
	c.Publish.Remote = os.ExpandEnv(c.Publish.Remote)
}
