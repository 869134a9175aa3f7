// Package config loads vboard runtime configuration from TOML files and
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL     = "http://127.0.0.1:7880"
	DefaultDBFileName = ".vboard.db"
	DefaultLogLevel   = "info"

	DefaultBoardSlug = "b"
	DefaultBoardName = "Random"

	DefaultPostPreviewLimit = 3

	DefaultUploadMaxBodyBytes  int64 = 100 * 1024 * 1024
	DefaultMultipartMaxMemory  int64 = 8 * 1024 * 1024
	DefaultVoiceExtension            = "mp3"
	DefaultVoiceMediaType            = "audio/mpeg"

	BlobBackendLocal = "local"
	BlobBackendS3    = "s3"

	configDirEnvKey = "VBOARD_CONFIG_DIR"
	configFileName  = ".vboard.toml"
)

// BoardConfig names a board seeded at server startup.
type BoardConfig struct {
	Slug string `toml:"slug"`
	Name string `toml:"name"`
}

// S3Config holds S3-compatible object storage settings.
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
}

// BlobConfig selects and configures the blob storage backend.
type BlobConfig struct {
	Backend   string   `toml:"backend"`
	LocalRoot string   `toml:"local_root"`
	S3        S3Config `toml:"s3"`
}

// MediaConfig defines the accepted attachment types.
type MediaConfig struct {
	ImageTypes     map[string]string `toml:"image_types"`
	VoiceExtension string            `toml:"voice_extension"`
	VoiceMediaType string            `toml:"voice_media_type"`
}

// UploadConfig bounds multipart upload handling.
type UploadConfig struct {
	MaxBodyBytes       int64 `toml:"max_body_bytes"`
	MultipartMaxMemory int64 `toml:"multipart_max_memory"`
}

// Config defines runtime configuration for vboard.
type Config struct {
	APIURL           string       `toml:"api_url"`
	DBPath           string       `toml:"db_path"`
	LogLevel         string       `toml:"log_level"`
	DefaultBoard     BoardConfig  `toml:"default_board"`
	Blobs            BlobConfig   `toml:"blobs"`
	Media            MediaConfig  `toml:"media"`
	PostPreviewLimit int          `toml:"post_preview_limit"`
	Uploads          UploadConfig `toml:"uploads"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		DBPath:   "",
		LogLevel: DefaultLogLevel,
		DefaultBoard: BoardConfig{
			Slug: DefaultBoardSlug,
			Name: DefaultBoardName,
		},
		Blobs: BlobConfig{
			Backend: BlobBackendLocal,
		},
		Media: MediaConfig{
			VoiceExtension: DefaultVoiceExtension,
			VoiceMediaType: DefaultVoiceMediaType,
		},
		PostPreviewLimit: DefaultPostPreviewLimit,
		Uploads: UploadConfig{
			MaxBodyBytes:       DefaultUploadMaxBodyBytes,
			MultipartMaxMemory: DefaultMultipartMaxMemory,
		},
	}
}

// Load reads config from the global file and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	if err := loadFileIfExists(path, &cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}

	cfg.normalizeDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GlobalPath returns the path to the config file, honoring the config dir
// override.
func GlobalPath() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(configDirEnvKey)); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

func loadFileIfExists(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if apiURL := os.Getenv("VBOARD_API_URL"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dbPath := os.Getenv("VBOARD_DB"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if backend := os.Getenv("VBOARD_BLOB_BACKEND"); backend != "" {
		cfg.Blobs.Backend = backend
	}
	if root := os.Getenv("VBOARD_BLOB_LOCAL_ROOT"); root != "" {
		cfg.Blobs.LocalRoot = root
	}
	if endpoint := os.Getenv("VBOARD_S3_ENDPOINT"); endpoint != "" {
		cfg.Blobs.S3.Endpoint = endpoint
	}
	if accessKey := os.Getenv("VBOARD_S3_ACCESS_KEY"); accessKey != "" {
		cfg.Blobs.S3.AccessKey = accessKey
	}
	if secretKey := os.Getenv("VBOARD_S3_SECRET_KEY"); secretKey != "" {
		cfg.Blobs.S3.SecretKey = secretKey
	}
	if bucket := os.Getenv("VBOARD_S3_BUCKET"); bucket != "" {
		cfg.Blobs.S3.Bucket = bucket
	}
	if raw := strings.TrimSpace(os.Getenv("VBOARD_S3_USE_SSL")); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			cfg.Blobs.S3.UseSSL = parsed
		}
	}
}

func (c *Config) normalizeDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.DefaultBoard.Slug == "" {
		c.DefaultBoard.Slug = DefaultBoardSlug
	}
	if c.DefaultBoard.Name == "" {
		c.DefaultBoard.Name = DefaultBoardName
	}
	if c.Blobs.Backend == "" {
		c.Blobs.Backend = BlobBackendLocal
	}
	if c.Media.VoiceExtension == "" {
		c.Media.VoiceExtension = DefaultVoiceExtension
	}
	if c.Media.VoiceMediaType == "" {
		c.Media.VoiceMediaType = DefaultVoiceMediaType
	}
	if c.PostPreviewLimit <= 0 {
		c.PostPreviewLimit = DefaultPostPreviewLimit
	}
	if c.Uploads.MaxBodyBytes <= 0 {
		c.Uploads.MaxBodyBytes = DefaultUploadMaxBodyBytes
	}
	if c.Uploads.MultipartMaxMemory <= 0 {
		c.Uploads.MultipartMaxMemory = DefaultMultipartMaxMemory
	}
}

func (c *Config) validate() error {
	switch c.Blobs.Backend {
	case BlobBackendLocal:
		return nil
	case BlobBackendS3:
		if c.Blobs.S3.Endpoint == "" {
			return fmt.Errorf("blobs.s3.endpoint is required for the s3 backend")
		}
		if c.Blobs.S3.Bucket == "" {
			return fmt.Errorf("blobs.s3.bucket is required for the s3 backend")
		}
		return nil
	default:
		return fmt.Errorf("unknown blob backend %q: valid backends are %s and %s",
			c.Blobs.Backend, BlobBackendLocal, BlobBackendS3)
	}
}
