package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Rizwanrichu87/studio/internal/storage"
)

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type AIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type StatsConfig struct {
	// WindowDays is the trailing window for missed days and completion rate.
	WindowDays int `mapstructure:"window_days"`
}

type Config struct {
	DB     DBConfig     `mapstructure:"db"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	AI     AIConfig     `mapstructure:"ai"`
	Stats  StatsConfig  `mapstructure:"stats"`
}

func Default() *Config {
	dbPath, err := storage.DefaultDBPath()
	if err != nil {
		dbPath = "habits.db"
	}
	return &Config{
		DB:     DBConfig{Path: dbPath},
		Log:    LogConfig{Level: "warn"},
		Server: ServerConfig{Addr: ":8080"},
		AI:     AIConfig{Model: "gemini-2.0-flash"},
		Stats:  StatsConfig{WindowDays: 7},
	}
}

// DefaultPath returns ~/.habitstudio/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".habitstudio", "config.yaml")
}

// Load reads the YAML config at path (DefaultPath when empty) over the
// defaults, then applies HS_* environment overrides such as HS_DB_PATH.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("db.path", def.DB.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.development", def.Log.Development)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("ai.api_key", def.AI.APIKey)
	v.SetDefault("ai.model", def.AI.Model)
	v.SetDefault("stats.window_days", def.Stats.WindowDays)

	v.SetEnvPrefix("HS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	overrideFromEnv(cfg)
	if cfg.Stats.WindowDays <= 0 {
		cfg.Stats.WindowDays = def.Stats.WindowDays
	}
	return cfg, nil
}

// overrideFromEnv accepts the provider's own key variable when none is configured.
func overrideFromEnv(cfg *Config) {
	if cfg.AI.APIKey == "" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			cfg.AI.APIKey = key
		} else if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			cfg.AI.APIKey = key
		}
	}
}
