package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		Slot string `yaml:"slot"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
}

// DefaultSlot is the well-known key the board is persisted under when the
// config does not name one.
const DefaultSlot = "trivia_game_data"

// Load reads YAML config from path. A missing file is not an error: the
// service runs fine on defaults alone.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return withDefaults(cfg), nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return withDefaults(cfg), nil
}

func withDefaults(cfg Config) Config {
	if cfg.Storage.Slot == "" {
		cfg.Storage.Slot = DefaultSlot
	}
	if cfg.SQLite.Path == "" && cfg.Redis.Addr == "" && cfg.Postgres.URL == "" {
		cfg.SQLite.Path = "./trivia-board.db"
	}
	return cfg
}
