package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appName            = "mcdash"
	defaultConfigName  = "config"
	defaultConfigType  = "yaml"
	defaultURL         = "http://localhost:8080"
	defaultDatabase    = "session.db"
	defaultLogFile     = "mcdash.log"
	defaultLogLevel    = "info"
	defaultFastPolling = 2 * time.Second
	defaultSlowPolling = 5 * time.Second
	envPrefix          = "MCDASH"
)

type Config struct {
	URL          string        `mapstructure:"url"`
	Username     string        `mapstructure:"username"`
	DataDir      string        `mapstructure:"data_dir"`
	DatabasePath string        `mapstructure:"database_path"`
	LogFile      string        `mapstructure:"log_file"`
	LogLevel     string        `mapstructure:"log_level"`
	FastInterval time.Duration `mapstructure:"fast_interval"`
	SlowInterval time.Duration `mapstructure:"slow_interval"`

	// ConfigFile is the file the values were read from, empty if none.
	ConfigFile string `mapstructure:"-"`
}

// DefaultDir is the per-user directory holding config.yaml, the session
// database and the log file.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config directory: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

// Load reads configDir/config.yaml, creating it with defaults on first run.
// MCDASH_* environment variables override the file. When file is set it is
// used instead and never created.
func Load(configDir, file string) (*Config, error) {
	v := viper.New()
	setDefaults(v, configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, err
		}
		v.SetConfigName(defaultConfigName)
		v.SetConfigType(defaultConfigType)
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		path := filepath.Join(configDir, defaultConfigName+"."+defaultConfigType)
		if err := v.SafeWriteConfigAs(path); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
	}

	cfg := &Config{
		URL:          v.GetString("url"),
		Username:     v.GetString("username"),
		DataDir:      v.GetString("data_dir"),
		DatabasePath: v.GetString("database_path"),
		LogFile:      v.GetString("log_file"),
		LogLevel:     v.GetString("log_level"),
		FastInterval: v.GetDuration("poll.fast_interval"),
		SlowInterval: v.GetDuration("poll.slow_interval"),
		ConfigFile:   v.ConfigFileUsed(),
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.DataDir, defaultDatabase)
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, defaultLogFile)
	}
	if cfg.FastInterval <= 0 {
		cfg.FastInterval = defaultFastPolling
	}
	if cfg.SlowInterval <= 0 {
		cfg.SlowInterval = defaultSlowPolling
	}

	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("url", defaultURL)
	v.SetDefault("username", "")
	v.SetDefault("data_dir", configDir)
	v.SetDefault("database_path", "")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("poll.fast_interval", defaultFastPolling.String())
	v.SetDefault("poll.slow_interval", defaultSlowPolling.String())
}

func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("url must not be empty")
	}
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return fmt.Errorf("url must start with http:// or https://, got %q", c.URL)
	}
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	return nil
}

// EnsureDirs creates the directories the session database and log file
// live in.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, filepath.Dir(c.DatabasePath), filepath.Dir(c.LogFile)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory '%s': %w", dir, err)
		}
	}
	return nil
}
