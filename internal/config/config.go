package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	Upload   UploadConfig   `yaml:"upload"`
	Poller   PollerConfig   `yaml:"poller"`
	Uploader UploaderConfig `yaml:"uploader"`
	Storage  StorageConfig  `yaml:"storage"`
	Session  SessionConfig  `yaml:"session"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type BackendConfig struct {
	BaseURL        string            `yaml:"base_url"`
	UploadEndpoint string            `yaml:"upload_endpoint"`
	TextEndpoint   string            `yaml:"text_endpoint"`
	ReviewEndpoint string            `yaml:"review_endpoint"`
	ListEndpoint   string            `yaml:"list_endpoint"`
	Timeout        time.Duration     `yaml:"timeout"`
	Auth           BackendAuthConfig `yaml:"auth"`
}

// BackendAuthConfig is optional token auth against the backend. Auth is
// disabled when Username is empty.
type BackendAuthConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	TokenExpires time.Duration `yaml:"token_expires"`
}

type UploadConfig struct {
	MaxFileSize       int64    `yaml:"max_file_size"`
	AllowedMimeTypes  []string `yaml:"allowed_mime_types"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
	MinTextLength     int      `yaml:"min_text_length"`
	MaxTextLength     int      `yaml:"max_text_length"`
}

type PollerConfig struct {
	Interval    time.Duration `yaml:"interval"`
	MaxAttempts int           `yaml:"max_attempts"`
}

type UploaderConfig struct {
	URL      string `yaml:"url"`
	S3Bucket string `yaml:"s3_bucket"`
	S3Path   string `yaml:"s3_path"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// SessionConfig selects the flash-message cache engine: "memory" keeps
// entries in-process, "redis" uses an external cache.
type SessionConfig struct {
	Engine string        `yaml:"engine"`
	TTL    time.Duration `yaml:"ttl"`
	Redis  RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Upload.MaxFileSize == 0 {
		c.Upload.MaxFileSize = 10 * 1024 * 1024
	}
	if c.Upload.MinTextLength == 0 {
		c.Upload.MinTextLength = 10
	}
	if c.Upload.MaxTextLength == 0 {
		c.Upload.MaxTextLength = 50000
	}
	if c.Poller.Interval == 0 {
		c.Poller.Interval = 2 * time.Second
	}
	if c.Poller.MaxAttempts == 0 {
		c.Poller.MaxAttempts = 60
	}
	if c.Session.Engine == "" {
		c.Session.Engine = "memory"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 30 * time.Minute
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 60 * time.Second
	}
}

// BackendURL joins the backend base URL with an endpoint path.
func (c *Config) BackendURL(endpoint string) string {
	return strings.TrimRight(c.Backend.BaseURL, "/") + endpoint
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Session.Redis.Host, c.Session.Redis.Port)
}
