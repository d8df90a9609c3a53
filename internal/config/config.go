package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

// Config is the full application configuration.
type Config struct {
	Server struct {
		Addr              string   `yaml:"addr"`
		MaxEntries        int      `yaml:"max_entries"`
		MaxScore          int      `yaml:"max_score"`
		ResetPassword     string   `yaml:"reset_password"`
		ResetPasswordHash string   `yaml:"reset_password_hash"`
		CORSOrigins       []string `yaml:"cors_origins"`
		RequestTimeout    string   `yaml:"request_timeout"`
	} `yaml:"server"`
	Storage struct {
		Driver string `yaml:"driver"`
		Path   string `yaml:"path"`
		DSN    string `yaml:"dsn"`
		Redis  struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Key      string `yaml:"key"`
		} `yaml:"redis"`
	} `yaml:"storage"`
	Client struct {
		ServerURL string `yaml:"server_url"`
		Timeout   string `yaml:"timeout"`
	} `yaml:"client"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Server.MaxEntries = leaderboard.MaxEntries
	cfg.Server.MaxScore = 100000
	cfg.Server.RequestTimeout = "10s"
	cfg.Storage.Driver = "sqlite"
	cfg.Client.ServerURL = "http://localhost:8080"
	cfg.Client.Timeout = "5s"
	cfg.Log.Level = "info"
	return cfg
}

// Load builds the configuration: defaults, then the YAML file at path (a
// missing file is fine), then environment variables. A .env file in the
// working directory is loaded into the environment first.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	setString(&cfg.Client.ServerURL, "MATHBLITZ_SERVER_URL")
	setString(&cfg.Server.Addr, "MATHBLITZ_ADDR")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MATHBLITZ_ADDR") == "" {
		cfg.Server.Addr = ":" + port
	}
	setString(&cfg.Server.ResetPassword, "MATHBLITZ_RESET_PASSWORD")
	setString(&cfg.Server.ResetPasswordHash, "MATHBLITZ_RESET_PASSWORD_HASH")
	setString(&cfg.Storage.Driver, "MATHBLITZ_STORAGE")
	setString(&cfg.Storage.Path, "MATHBLITZ_DB")
	setString(&cfg.Storage.DSN, "MATHBLITZ_DSN")
	setString(&cfg.Storage.Redis.Addr, "MATHBLITZ_REDIS_ADDR")
	setString(&cfg.Storage.Redis.Password, "MATHBLITZ_REDIS_PASSWORD")
	setString(&cfg.Log.Level, "MATHBLITZ_LOG_LEVEL")
	setString(&cfg.Log.File, "MATHBLITZ_LOG_FILE")
	if v := os.Getenv("MATHBLITZ_MAX_SCORE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MaxScore = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Server.MaxEntries <= 0 {
		return fmt.Errorf("server.max_entries must be positive, got %d", c.Server.MaxEntries)
	}
	if c.Server.MaxScore <= 0 {
		return fmt.Errorf("server.max_score must be positive, got %d", c.Server.MaxScore)
	}
	switch c.Storage.Driver {
	case "memory", "file", "sqlite", "redis", "postgres":
	default:
		return fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver)
	}
	if c.Storage.Driver == "file" && c.Storage.Path == "" {
		return errors.New("storage.path is required for the file driver")
	}
	if c.Storage.Driver == "postgres" && c.Storage.DSN == "" {
		return errors.New("storage.dsn is required for the postgres driver")
	}
	if c.Storage.Driver == "redis" && c.Storage.Redis.Addr == "" {
		return errors.New("storage.redis.addr is required for the redis driver")
	}
	return nil
}

// ResetEnabled reports whether any reset password is configured.
func (c Config) ResetEnabled() bool {
	return c.Server.ResetPassword != "" || c.Server.ResetPasswordHash != ""
}

// ClientTimeout returns the leaderboard client timeout.
func (c Config) ClientTimeout() time.Duration {
	return TTLDuration(c.Client.Timeout, leaderboard.DefaultTimeout)
}

// RequestTimeout returns the server per-request timeout.
func (c Config) RequestTimeout() time.Duration {
	return TTLDuration(c.Server.RequestTimeout, 10*time.Second)
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
