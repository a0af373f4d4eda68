// ABOUTME: mtbmaint configuration: blob backend selection, data dir, logging and S3 settings.
// ABOUTME: Reads ~/.config/mtbmaint/config.json, then .env and MTBMAINT_* environment overrides.

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/harperreed/mtbmaint/internal/logger"
	"github.com/harperreed/mtbmaint/internal/storage"
)

// Backend names accepted in the backend setting.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MTBMAINT_"

// Config stores mtbmaint configuration.
type Config struct {
	// Backend selects where the snapshot blob lives: "badger" (default),
	// "sqlite", "s3" or "memory".
	Backend string `json:"backend,omitempty" validate:"omitempty,oneof=badger sqlite s3 memory"`

	// DataDir is the root directory for the local backends.
	// Supports ~ expansion. Defaults to ~/.local/share/mtbmaint.
	DataDir string `json:"data_dir,omitempty"`

	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=console json"`

	S3Bucket          string `json:"s3_bucket,omitempty" validate:"required_if=Backend s3"`
	S3Region          string `json:"s3_region,omitempty"`
	S3Endpoint        string `json:"s3_endpoint,omitempty" validate:"omitempty,url"`
	S3Prefix          string `json:"s3_prefix,omitempty"`
	S3AccessKeyID     string `json:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `json:"s3_secret_access_key,omitempty" validate:"required_with=S3AccessKeyID"`
	S3PathStyle       bool   `json:"s3_path_style,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "badger".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendBadger
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks setting values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from MTBMAINT_* variables looked up through
// getenv. Unset or empty variables leave the setting alone.
func (c *Config) ApplyEnv(getenv func(string) string) {
	str := func(name string, dst *string) {
		if v := getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	str("BACKEND", &c.Backend)
	str("DATA_DIR", &c.DataDir)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("S3_BUCKET", &c.S3Bucket)
	str("S3_REGION", &c.S3Region)
	str("S3_ENDPOINT", &c.S3Endpoint)
	str("S3_PREFIX", &c.S3Prefix)
	str("S3_ACCESS_KEY_ID", &c.S3AccessKeyID)
	str("S3_SECRET_ACCESS_KEY", &c.S3SecretAccessKey)
	if v := getenv(EnvPrefix + "S3_PATH_STYLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.S3PathStyle = b
		}
	}
}

// LoggerConfig returns the logger settings.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat}
}

// S3Config returns the S3 backend settings.
func (c *Config) S3Config() storage.S3Config {
	return storage.S3Config{
		Bucket:          c.S3Bucket,
		Region:          c.S3Region,
		Endpoint:        c.S3Endpoint,
		Prefix:          c.S3Prefix,
		AccessKeyID:     c.S3AccessKeyID,
		SecretAccessKey: c.S3SecretAccessKey,
		PathStyle:       c.S3PathStyle,
	}
}

// OpenBlobs opens the blob store for the configured backend.
func (c *Config) OpenBlobs(ctx context.Context) (storage.BlobStore, error) {
	return OpenBackend(ctx, c.GetBackend(), c)
}

// OpenBackend opens the named backend using c for its settings. Migration
// uses it to open a backend other than the configured one.
func OpenBackend(ctx context.Context, backend string, c *Config) (storage.BlobStore, error) {
	dataDir := c.GetDataDir()

	var (
		blobs storage.BlobStore
		err   error
	)
	switch backend {
	case BackendBadger:
		blobs, err = storage.OpenBadger(storage.DefaultBadgerPath(dataDir))
	case BackendSQLite:
		blobs, err = storage.OpenSQLite(storage.DefaultSQLitePath(dataDir))
	case BackendS3:
		blobs, err = storage.OpenS3(ctx, c.S3Config())
	case BackendMemory:
		blobs = storage.NewMemoryBlobs()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", backend, err)
	}
	return blobs, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "mtbmaint", "config.json")
}

// Load reads config from disk, applies .env and environment overrides, and
// validates the result. A missing file yields the defaults.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
