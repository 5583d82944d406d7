// Package config loads stackscope settings.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults
//  2. a TOML file (--config, ./stackscope.toml or
//     $XDG_CONFIG_HOME/stackscope/config.toml)
//  3. a .env file in the working directory
//  4. the process environment
//
// A .env file never overrides variables already set in the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const appName = "stackscope"

// Backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config holds every tunable of the CLI and the API server.
type Config struct {
	GitHub GitHub `toml:"github"`
	Server Server `toml:"server"`
	Client Client `toml:"client"`
	Store  Store  `toml:"store"`
	Cache  Cache  `toml:"cache"`
	Redis  Redis  `toml:"redis"`
	Mongo  Mongo  `toml:"mongo"`
	Log    Log    `toml:"log"`

	// File is the TOML file that was loaded, if any.
	File string `toml:"-"`
}

type GitHub struct {
	Token  string `toml:"token"`
	APIURL string `toml:"api_url"`
}

type Server struct {
	Port int `toml:"port"`
}

// Client configures how the CLI reaches the aggregation API. An empty APIURL
// runs the aggregation in-process.
type Client struct {
	APIURL string `toml:"api_url"`
}

type Store struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
}

type Cache struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
}

type Redis struct {
	Addr string `toml:"addr"`
}

type Mongo struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		GitHub: GitHub{APIURL: "https://api.github.com"},
		Server: Server{Port: 5000},
		Store:  Store{Backend: BackendFile},
		Cache:  Cache{Backend: BackendFile},
		Redis:  Redis{Addr: "localhost:6379"},
		Mongo:  Mongo{URI: "mongodb://localhost:27017", Database: appName},
		Log:    Log{Level: "info"},
	}
}

// Load builds the configuration. An explicit path must exist; without one the
// default locations are tried and silently skipped when absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := resolveFile(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		if err := cfg.decodeFile(file); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return path, nil
	}
	for _, p := range defaultFiles() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

func defaultFiles() []string {
	files := []string{appName + ".toml"}
	if dir, err := ConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, "config.toml"))
	}
	return files
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("parse %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	c.File = path
	return nil
}

// applyEnv overlays environment variables. getenv is os.Getenv outside tests.
func (c *Config) applyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.GitHub.Token, "GITHUB_TOKEN")
	set(&c.GitHub.APIURL, "GITHUB_API_URL")
	set(&c.Client.APIURL, "STACKSCOPE_API_URL")
	set(&c.Store.Backend, "STACKSCOPE_STORE")
	set(&c.Store.Dir, "STACKSCOPE_STORE_DIR")
	set(&c.Cache.Backend, "STACKSCOPE_CACHE")
	set(&c.Cache.Dir, "STACKSCOPE_CACHE_DIR")
	set(&c.Redis.Addr, "REDIS_ADDR")
	set(&c.Mongo.URI, "MONGO_URI")
	set(&c.Mongo.Database, "MONGO_DATABASE")
	set(&c.Log.Level, "STACKSCOPE_LOG_LEVEL")

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %q is not a number", v)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendFile, BackendRedis, BackendMongo:
	default:
		errs = append(errs, fmt.Errorf("store backend %q: want file, redis or mongo", c.Store.Backend))
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		errs = append(errs, fmt.Errorf("cache backend %q: want file, redis or none", c.Cache.Backend))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Server.Port))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level %q: %w", c.Log.Level, err))
	}
	return errors.Join(errs...)
}

// LogLevel returns the configured level, falling back to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Addr is the listen address of the API server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

// ConfigDir returns the XDG config directory (~/.config/stackscope/).
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// CacheDir returns the XDG cache directory (~/.cache/stackscope/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// StoreDir is where the file snapshot store lives.
func (c *Config) StoreDir() (string, error) {
	if c.Store.Dir != "" {
		return c.Store.Dir, nil
	}
	return ConfigDir()
}

// CacheDirPath is where the file cache lives.
func (c *Config) CacheDirPath() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return CacheDir()
}
