package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

// Config holds all client configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig
	Logger      LoggerConfig

	// Backend API
	API APIConfig

	// Session - persisted token
	Session SessionConfig

	// Redis - optional token store backend
	Redis RedisConfig

	// Sync - report list polling
	Sync SyncConfig

	// Download - local artifact directory
	Download DownloadConfig

	// MinIO - optional artifact mirror
	MinIO MinIOConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// APIConfig is the configuration for the report backend.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
	// MaxBodyBytes caps any response body, downloaded artifacts included.
	MaxBodyBytes int64
}

// SessionConfig selects where the session token is persisted.
type SessionConfig struct {
	Store     string // file | redis | memory
	TokenFile string
	RedisKey  string
}

// RedisConfig is the configuration for Redis
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SyncConfig drives the report list synchronizer.
type SyncConfig struct {
	PollInterval   time.Duration
	ReconcileDelay time.Duration
}

// DownloadConfig is where downloaded artifacts are written.
type DownloadConfig struct {
	Dir string
}

// MinIOConfig is the configuration for MinIO
type MinIOConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

// Load loads configuration using Viper. configFile may be empty, in which case
// reportctl.yaml is searched in the usual places.
func Load(configFile string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("reportctl")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "reportctl"))
		}
	}

	// Enable environment variable override
	v.SetEnvPrefix("REPORTCTL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	// Read config file (optional - will use env vars if file not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Logger
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// API
	cfg.API.BaseURL = strings.TrimRight(v.GetString("api.base_url"), "/")
	cfg.API.Timeout = v.GetDuration("api.timeout")
	cfg.API.Retries = v.GetInt("api.retries")
	cfg.API.RetryWait = v.GetDuration("api.retry_wait")
	cfg.API.MaxBodyBytes = v.GetInt64("api.max_body_bytes")

	// Session
	cfg.Session.Store = v.GetString("session.store")
	cfg.Session.TokenFile = v.GetString("session.token_file")
	cfg.Session.RedisKey = v.GetString("session.redis_key")

	// Redis
	cfg.Redis.Host = v.GetString("redis.host")
	cfg.Redis.Port = v.GetInt("redis.port")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")

	// Sync
	cfg.Sync.PollInterval = v.GetDuration("sync.poll_interval")
	cfg.Sync.ReconcileDelay = v.GetDuration("sync.reconcile_delay")

	// Download
	cfg.Download.Dir = v.GetString("download.dir")

	// MinIO
	cfg.MinIO.Enabled = v.GetBool("minio.enabled")
	cfg.MinIO.Endpoint = v.GetString("minio.endpoint")
	cfg.MinIO.AccessKey = v.GetString("minio.access_key")
	cfg.MinIO.SecretKey = v.GetString("minio.secret_key")
	cfg.MinIO.UseSSL = v.GetBool("minio.use_ssl")
	cfg.MinIO.Region = v.GetString("minio.region")
	cfg.MinIO.Bucket = v.GetString("minio.bucket")

	if cfg.Session.TokenFile == "" {
		cfg.Session.TokenFile = defaultTokenFile()
	}

	// Validate required fields
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Environment
	v.SetDefault("environment.name", "production")

	// Logger
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	// API
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retries", 2)
	v.SetDefault("api.retry_wait", 500*time.Millisecond)
	v.SetDefault("api.max_body_bytes", 64<<20)

	// Session
	v.SetDefault("session.store", TokenStoreFile)
	v.SetDefault("session.redis_key", "reportctl:auth_token")

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Sync
	v.SetDefault("sync.poll_interval", 30*time.Second)
	v.SetDefault("sync.reconcile_delay", 5*time.Second)

	// Download
	v.SetDefault("download.dir", ".")

	// MinIO
	v.SetDefault("minio.enabled", false)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.region", "us-east-1")
	v.SetDefault("minio.bucket", "code-reports")
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if cfg.API.MaxBodyBytes <= 0 {
		return fmt.Errorf("api.max_body_bytes must be positive")
	}

	switch cfg.Session.Store {
	case TokenStoreFile, TokenStoreMemory:
	case TokenStoreRedis:
		if cfg.Redis.Host == "" {
			return fmt.Errorf("redis.host is required when session.store is redis")
		}
		if cfg.Session.RedisKey == "" {
			return fmt.Errorf("session.redis_key is required when session.store is redis")
		}
	default:
		return fmt.Errorf("session.store must be one of file, redis, memory; got %q", cfg.Session.Store)
	}

	if cfg.Sync.PollInterval <= 0 {
		return fmt.Errorf("sync.poll_interval must be positive")
	}
	if cfg.Sync.ReconcileDelay < 0 {
		return fmt.Errorf("sync.reconcile_delay must not be negative")
	}

	if cfg.MinIO.Enabled {
		if cfg.MinIO.AccessKey == "" || cfg.MinIO.SecretKey == "" {
			return fmt.Errorf("minio.access_key and minio.secret_key are required when minio.enabled")
		}
		if cfg.MinIO.Bucket == "" {
			return fmt.Errorf("minio.bucket is required when minio.enabled")
		}
	}

	return nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".reportctl_token"
	}
	return filepath.Join(dir, "reportctl", "token")
}
