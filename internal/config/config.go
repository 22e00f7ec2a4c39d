package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	UI     UIConfig     `mapstructure:"ui"`
	Photo  PhotoConfig  `mapstructure:"photo"`
	Notify NotifyConfig `mapstructure:"notify"`
	Log    LogConfig    `mapstructure:"log"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol" validate:"max=4"`
}

// PhotoConfig controls the photo picker.
type PhotoConfig struct {
	Dir        string   `mapstructure:"dir" validate:"required"`
	Extensions []string `mapstructure:"extensions" validate:"required,min=1,dive,startswith=."`
}

// NotifyConfig selects notification backends.
type NotifyConfig struct {
	Backends  []string `mapstructure:"backends" validate:"dive,oneof=desktop log inbox"`
	Command   string   `mapstructure:"command" validate:"required_if_backend_desktop"`
	Args      []string `mapstructure:"args"`
	InboxPath string   `mapstructure:"inbox_path"`
}

// LogConfig holds the log file sink.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error disabled"`
}

// DefaultPath returns the config file used when neither a flag nor PRODUCTCAP_CONFIG is set.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "productcap", "config.toml")
}

func dataDir() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, "productcap")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state", "productcap")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("photo.dir", os.Getenv("HOME"))
	v.SetDefault("photo.extensions", []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".heic"})
	v.SetDefault("notify.backends", []string{"log", "desktop"})
	v.SetDefault("notify.command", "notify-send")
	v.SetDefault("notify.args", []string{})
	v.SetDefault("notify.inbox_path", filepath.Join(dataDir(), "inbox.db"))
	v.SetDefault("log.path", filepath.Join(dataDir(), "productcap.log"))
	v.SetDefault("log.level", "info")
}

// Load reads configuration from file and env. Env var overrides use prefix PRODUCTCAP_.
// path wins over PRODUCTCAP_CONFIG, which wins over DefaultPath. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("PRODUCTCAP_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PRODUCTCAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !asNotFound(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Save writes the provided config to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("photo.dir", cfg.Photo.Dir)
	v.Set("photo.extensions", cfg.Photo.Extensions)
	v.Set("notify.backends", cfg.Notify.Backends)
	v.Set("notify.command", cfg.Notify.Command)
	v.Set("notify.args", cfg.Notify.Args)
	v.Set("notify.inbox_path", cfg.Notify.InboxPath)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
