package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const (
	StoreDriverRedis    = "redis"
	StoreDriverMySQL    = "mysql"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Port           int    `env:"PORT" envDefault:"3000"`
	Env            string `env:"ENV" envDefault:"development"`
	LogPath        string `env:"LOG_PATH" envDefault:"./go.log"`
	EnableTracer   bool   `env:"ENABLE_TRACER" envDefault:"false"`
	EnableMetric   bool   `env:"ENABLE_METRIC" envDefault:"false"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"33554432"`

	Store StoreConfig
	Blob  BlobConfig
	Cache CacheConfig
}

type StoreConfig struct {
	Driver        string `env:"STORE_DRIVER" envDefault:"redis"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	DSN           string `env:"DB_DSN"`
}

type BlobConfig struct {
	Bucket          string   `env:"S3_BUCKET,required,notEmpty"`
	Region          string   `env:"S3_REGION" envDefault:"us-east-1"`
	Endpoint        string   `env:"S3_ENDPOINT"`
	UsePathStyle    bool     `env:"S3_USE_PATH_STYLE" envDefault:"false"`
	PublicBaseURL   string   `env:"S3_PUBLIC_BASE_URL"`
	AccessKeyID     string   `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string   `env:"AWS_SECRET_ACCESS_KEY"`
	Folder          string   `env:"BLOB_FOLDER" envDefault:"personalized_files"`
	AllowedFormats  []string `env:"BLOB_ALLOWED_FORMATS" envDefault:"jpg,png,pdf,docx" envSeparator:","`
}

type CacheConfig struct {
	Size int           `env:"CACHE_SIZE" envDefault:"1024"`
	TTL  time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse env failed")
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case StoreDriverRedis, StoreDriverMemory:
	case StoreDriverMySQL, StoreDriverPostgres, StoreDriverSQLite:
		if c.Store.DSN == "" {
			return errors.Errorf("DB_DSN is required for store driver %s", c.Store.Driver)
		}
	default:
		return errors.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("port out of range: %d", c.Port)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if c.Cache.Size <= 0 {
		return errors.New("CACHE_SIZE must be positive")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	return nil
}
