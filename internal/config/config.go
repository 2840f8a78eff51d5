package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// relative to the XDG config directories.
	xdgConfigFile = "mnkgame/config.yml"
	localConfig   = "config.yml"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string `yaml:"log-level" env:"MNK_LOG_LEVEL" env-default:"warn"`
	Board    Board  `yaml:"board"`
	Redis    Redis  `yaml:"redis"`
}

type Board struct {
	Rows int `yaml:"rows" env:"MNK_ROWS" env-default:"3"`
	Cols int `yaml:"cols" env:"MNK_COLS" env-default:"3"`
	K    int `yaml:"k" env:"MNK_K" env-default:"3"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"MNK_REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"MNK_REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"MNK_REDIS_PORT" env-default:"6379"`
	DB      int    `yaml:"db" env:"MNK_REDIS_DB" env-default:"0"`
}

// MustLoad - loads the config file at path, or discovers one when path is empty.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

// Load reads the config from path. With an empty path it searches the XDG
// config directories and then the working directory; if no file is found the
// config comes from environment variables and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		path = discover()
	}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Board.Rows <= 0 || that.Board.Cols <= 0 {
		return fmt.Errorf("%w: board must have at least one row and column, got %dx%d",
			ErrInvalidConfig, that.Board.Rows, that.Board.Cols)
	}

	if that.Board.K < 1 {
		return fmt.Errorf("%w: k must be at least 1, got %d", ErrInvalidConfig, that.Board.K)
	}

	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, that.LogLevel)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func discover() string {
	if path, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		return path
	}

	if _, err := os.Stat(localConfig); err == nil {
		return localConfig
	}

	return ""
}
