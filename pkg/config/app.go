package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the tool's own configuration, read from headcount.toml.
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Settings SettingsConfig `toml:"settings"`
	Run      RunConfig      `toml:"run"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig configures the HTTP upload surface.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
	// MaxUploadMB bounds the multipart form kept in memory.
	MaxUploadMB int `toml:"max_upload_mb"`
}

// SettingsConfig locates the settings document.
type SettingsConfig struct {
	Path string `toml:"path"`
}

// RunConfig holds defaults for a reconciliation run.
type RunConfig struct {
	DefaultShift    string `toml:"default_shift"`
	ExcludeNewHires bool   `toml:"exclude_new_hires"`
	NewHireDays     int    `toml:"new_hire_days"`
	SampleLimit     int    `toml:"sample_limit"`
	TopN            int    `toml:"top_n"`
	DisableDA       bool   `toml:"disable_da"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        8080,
			MaxUploadMB: 64,
		},
		Settings: SettingsConfig{
			Path: "config/settings.json",
		},
		Run: RunConfig{
			DefaultShift:    "Day",
			ExcludeNewHires: false,
			NewHireDays:     3,
			SampleLimit:     200,
			TopN:            10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadAppConfig reads the TOML file at path over the defaults, then applies
// environment overrides (a .env file in the working directory is honored).
// A missing file is not an error.
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	_ = godotenv.Load()
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides fields from HEADCOUNT_* environment variables.
func (c *AppConfig) ApplyEnv() {
	if v := os.Getenv("HEADCOUNT_SETTINGS"); v != "" {
		c.Settings.Path = v
	}
	if v := os.Getenv("HEADCOUNT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("HEADCOUNT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HEADCOUNT_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}
