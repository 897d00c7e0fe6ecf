package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// EnvPath names the environment variable that overrides the config file location.
const EnvPath = "STUDYFLOW_CONFIG"

// Durable storage drivers, used once a session is signed in.
const (
	DriverSQLite = "sqlite"
	DriverS3     = "s3"
)

// Config is the studyflow configuration file.
type Config struct {
	DataDir    string           `toml:"data_dir"`
	LogLevel   string           `toml:"log_level"`
	Session    SessionConfig    `toml:"session"`
	Storage    StorageConfig    `toml:"storage"`
	Categories []CategoryConfig `toml:"categories,omitempty"`
}

// SessionConfig identifies the signed-in user. An empty UserID means the
// timetable is kept locally.
type SessionConfig struct {
	UserID string `toml:"user_id"`
}

// StorageConfig selects the durable backend.
// This uses a tagged union pattern - Driver determines which sub-table is relevant.
type StorageConfig struct {
	Driver string       `toml:"driver"` // "sqlite" (default) or "s3"
	SQLite SQLiteConfig `toml:"sqlite"`
	S3     S3Config     `toml:"s3"`
}

// SQLiteConfig holds the database location for the sqlite driver.
type SQLiteConfig struct {
	Path string `toml:"path"`
}

// S3Config holds bucket settings for the s3 driver.
type S3Config struct {
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint,omitempty"`
	Prefix    string `toml:"prefix,omitempty"`
	PathStyle bool   `toml:"path_style,omitempty"`

	// Static credentials. When empty the default AWS credential chain is used.
	AccessKeyID     string `toml:"access_key_id,omitempty"`
	SecretAccessKey string `toml:"secret_access_key,omitempty"`
}

// CategoryConfig is a user-defined category and its display color.
type CategoryConfig struct {
	Name  string `toml:"name"`
	Color string `toml:"color"`
}

// Dir returns the default studyflow directory under homeDir.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, ".studyflow")
}

// Path returns the config file location: $STUDYFLOW_CONFIG when set,
// otherwise ~/.studyflow/config.toml.
func Path(homeDir string) string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return filepath.Join(Dir(homeDir), "config.toml")
}

// Default returns the configuration used when no file exists.
func Default(homeDir string) *Config {
	cfg := &Config{}
	cfg.applyDefaults(homeDir)
	return cfg
}

func (c *Config) applyDefaults(homeDir string) {
	if c.DataDir == "" {
		c.DataDir = Dir(homeDir)
	}
	c.DataDir = expand(c.DataDir)
	c.Storage.SQLite.Path = expand(c.Storage.SQLite.Path)
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.Storage.SQLite.Path == "" {
		c.Storage.SQLite.Path = filepath.Join(c.DataDir, "studyflow.db")
	}
}

// expand resolves a leading "~" in p. Paths it cannot expand are kept.
func expand(p string) string {
	if e, err := homedir.Expand(p); err == nil {
		return e
	}
	return p
}

// Validate checks the storage settings.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
	case DriverS3:
		if c.Storage.S3.Bucket == "" {
			return errors.New("storage.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// LocalDir is where signed-out timetables are kept.
func (c *Config) LocalDir() string {
	return filepath.Join(c.DataDir, "local")
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Load reads the config at path and fills in defaults. A missing file
// yields Default(homeDir).
func Load(path, homeDir string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(homeDir), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	cfg.applyDefaults(homeDir)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
