package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Paging  PagingConfig  `mapstructure:"paging"`
	Google  GoogleConfig  `mapstructure:"google"`
	Browser BrowserConfig `mapstructure:"browser"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
	Store   StoreConfig   `mapstructure:"store"`
}

// ServerConfig holds the backend endpoints
type ServerConfig struct {
	URL               string        `mapstructure:"url"`                // Movie API
	RecommendationURL string        `mapstructure:"recommendation_url"` // Recommendation service
	Timeout           time.Duration `mapstructure:"timeout"`            // Applies to every call
}

// PagingConfig tunes the paginated lists
type PagingConfig struct {
	RollbackOnFailure bool `mapstructure:"rollback_on_failure"` // Retry a failed page instead of skipping it
}

// GoogleConfig holds the OAuth client used for Google sign-in
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

// BrowserConfig selects the command that opens links
type BrowserConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// StoreConfig holds the local database location. An empty path keeps
// everything in memory.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:               "http://localhost:8080",
			RecommendationURL: "http://localhost:8000",
			Timeout:           2 * time.Minute,
		},
		Paging: PagingConfig{
			RollbackOnFailure: false,
		},
		UI: UIConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Store: StoreConfig{
			Path: defaultDataPath(),
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	return filepath.Join(defaultDataPath(), "reel.log")
}

// defaultDataPath returns the directory for the database and logs
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// ConfigDir returns the directory SaveConfig writes to
func ConfigDir() string {
	return defaultConfigPath()
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return load(viper.GetViper(), defaultConfigPath(), ".")
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides, e.g. REEL_SERVER_URL
	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.recommendation_url", cfg.Server.RecommendationURL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("paging.rollback_on_failure", cfg.Paging.RollbackOnFailure)
	v.SetDefault("google.client_id", cfg.Google.ClientID)
	v.SetDefault("google.client_secret", cfg.Google.ClientSecret)
	v.SetDefault("browser.command", cfg.Browser.Command)
	v.SetDefault("browser.args", cfg.Browser.Args)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("store.path", cfg.Store.Path)
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return save(viper.GetViper(), cfg, defaultConfigPath())
}

func save(v *viper.Viper, cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.recommendation_url", cfg.Server.RecommendationURL)
	v.Set("server.timeout", cfg.Server.Timeout.String())

	v.Set("paging.rollback_on_failure", cfg.Paging.RollbackOnFailure)

	v.Set("google.client_id", cfg.Google.ClientID)
	v.Set("google.client_secret", cfg.Google.ClientSecret)

	v.Set("browser.command", cfg.Browser.Command)
	v.Set("browser.args", cfg.Browser.Args)

	v.Set("ui.theme", cfg.UI.Theme)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	v.Set("store.path", cfg.Store.Path)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if both service URLs are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.RecommendationURL != ""
}

// GoogleEnabled reports whether Google sign-in can be offered
func (c *Config) GoogleEnabled() bool {
	return c.Google.ClientID != ""
}
