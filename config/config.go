package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Debug    bool `yaml:"debug" env:"MOVIES_DEBUG" env-default:"false"`
	DB       DB   `yaml:"db"`
	SkipSeed bool `yaml:"skip_seed" env:"MOVIES_SKIP_SEED"`
	TopLimit int  `yaml:"top_limit" env:"MOVIES_TOP_LIMIT" env-default:"10"`
}

type DB struct {
	Path        string        `yaml:"path" env:"MOVIES_DB_PATH" env-default:"advanced_movies.db"`
	BusyTimeout time.Duration `yaml:"busy_timeout" env:"MOVIES_DB_BUSY_TIMEOUT" env-default:"5s"`
}

// Load reads configPath when it is set and exists, then applies environment
// overrides. With no file, defaults and the environment are used.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
				return nil, fmt.Errorf("read config %s: %w", configPath, err)
			}
			return &cfg, cfg.validate()
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", configPath, err)
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, cfg.validate()
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.DB.Path == "" {
		return errors.New("config: db.path must not be empty")
	}
	if c.TopLimit <= 0 {
		return fmt.Errorf("config: top_limit must be positive, got %d", c.TopLimit)
	}
	return nil
}
