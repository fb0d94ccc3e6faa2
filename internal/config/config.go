// Package config loads server configuration.
//
// Values are resolved in three layers, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. an optional TOML file (pagecraft.toml)
//  3. environment variables
//
// Example file:
//
//	[server]
//	addr = ":8080"
//
//	[auth]
//	token_ttl = "168h"
//
//	[store]
//	backend = "mongo"
//	database = "pagecraft"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
// The token secret and Mongo URI are usually supplied through
// ACCESS_TOKEN_SECRET and MONGODB_URI rather than the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

// DefaultFile is the config file looked up in the working directory when no
// path is given.
const DefaultFile = "pagecraft.toml"

// Store backends.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the full server configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Auth   AuthConfig   `toml:"auth"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `toml:"addr" env:"PAGECRAFT_ADDR"`
	InsecureCookies bool          `toml:"insecure_cookies" env:"PAGECRAFT_INSECURE_COOKIES"`
	ReadTimeout     time.Duration `toml:"read_timeout" env:"PAGECRAFT_READ_TIMEOUT"`
	WriteTimeout    time.Duration `toml:"write_timeout" env:"PAGECRAFT_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"PAGECRAFT_SHUTDOWN_TIMEOUT"`
}

// AuthConfig configures access tokens.
type AuthConfig struct {
	Secret   string        `toml:"secret" env:"ACCESS_TOKEN_SECRET"`
	TokenTTL time.Duration `toml:"token_ttl" env:"PAGECRAFT_TOKEN_TTL"`
}

// StoreConfig selects the user store.
type StoreConfig struct {
	Backend  string `toml:"backend" env:"PAGECRAFT_STORE"`
	MongoURI string `toml:"mongo_uri" env:"MONGODB_URI"`
	Database string `toml:"database" env:"PAGECRAFT_MONGO_DATABASE"`
}

// CacheConfig selects the export artifact cache.
type CacheConfig struct {
	Backend       string        `toml:"backend" env:"PAGECRAFT_CACHE"`
	Dir           string        `toml:"dir" env:"PAGECRAFT_CACHE_DIR"`
	RedisAddr     string        `toml:"redis_addr" env:"PAGECRAFT_REDIS_ADDR"`
	RedisPassword string        `toml:"redis_password" env:"PAGECRAFT_REDIS_PASSWORD"`
	RedisDB       int           `toml:"redis_db" env:"PAGECRAFT_REDIS_DB"`
	Prefix        string        `toml:"prefix" env:"PAGECRAFT_CACHE_PREFIX"`
	TTL           time.Duration `toml:"ttl" env:"PAGECRAFT_CACHE_TTL"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" env:"PAGECRAFT_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL: 7 * 24 * time.Hour,
		},
		Store: StoreConfig{
			Backend:  StoreMongo,
			Database: "pagecraft",
		},
		Cache: CacheConfig{
			Backend: CacheNone,
			Prefix:  "pagecraft:",
			TTL:     24 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load resolves the configuration. An empty path reads DefaultFile if it
// exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := loadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func (c *Config) normalize() {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	c.Auth.Secret = strings.TrimSpace(c.Auth.Secret)
}

// Validate reports the first setting that prevents the server from starting.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongo store")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis cache")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
