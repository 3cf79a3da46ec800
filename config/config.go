package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Uploads       UploadsConfig
	ObjectStorage ObjectStorageConfig
	Products      ProductsConfig
	Client        ClientConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
}

// UploadsConfig is where the apply endpoint writes CVs
type UploadsConfig struct {
	Dir         string
	MaxUploadMB int64
}

// ObjectStorageConfig enables an optional S3-compatible mirror of stored CVs
type ObjectStorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	Prefix          string
	UsePathStyle    bool
}

// Enabled reports whether credentials and a bucket are configured
func (o ObjectStorageConfig) Enabled() bool {
	return o.AccessKeyID != "" && o.SecretAccessKey != "" && o.BucketName != ""
}

// ProductsConfig points at the external catalogue API used by product search
type ProductsConfig struct {
	APIHost         string
	CacheTTLSeconds int
	TimeoutSeconds  int
}

// ClientConfig is read by the applicant CLI
type ClientConfig struct {
	CareersAPIURL  string
	TimeoutSeconds int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadClient reads configuration for the applicant CLI. Server-only keys are not validated.
func LoadClient() (*Config, error) {
	cfg := load()
	if cfg.Client.CareersAPIURL == "" {
		return nil, fmt.Errorf("CAREERS_API_URL is required")
	}
	return cfg, nil
}

func load() *Config {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://oreline.az,https://www.oreline.az")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("UPLOADS_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("OBJECT_STORAGE_ENDPOINT", "https://storage.yandexcloud.net")
	v.SetDefault("OBJECT_STORAGE_REGION", "ru-central1")
	v.SetDefault("OBJECT_STORAGE_PREFIX", "careers/cv")
	v.SetDefault("OBJECT_STORAGE_PATH_STYLE", false)
	v.SetDefault("PRODUCTS_CACHE_TTL", 300)
	v.SetDefault("PRODUCTS_TIMEOUT_SECONDS", 10)
	v.SetDefault("CAREERS_API_URL", "http://localhost:8081")
	v.SetDefault("CAREERS_CLIENT_TIMEOUT_SECONDS", 120)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "careers-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "oreline-web")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "careers-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Uploads: UploadsConfig{
			Dir:         v.GetString("UPLOADS_DIR"),
			MaxUploadMB: v.GetInt64("MAX_UPLOAD_MB"),
		},
		ObjectStorage: ObjectStorageConfig{
			AccessKeyID:     v.GetString("OBJECT_STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("OBJECT_STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("OBJECT_STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("OBJECT_STORAGE_ENDPOINT"),
			Region:          v.GetString("OBJECT_STORAGE_REGION"),
			Prefix:          v.GetString("OBJECT_STORAGE_PREFIX"),
			UsePathStyle:    v.GetBool("OBJECT_STORAGE_PATH_STYLE"),
		},
		Products: ProductsConfig{
			APIHost:         strings.TrimRight(v.GetString("PRODUCTS_API_HOST"), "/"),
			CacheTTLSeconds: v.GetInt("PRODUCTS_CACHE_TTL"),
			TimeoutSeconds:  v.GetInt("PRODUCTS_TIMEOUT_SECONDS"),
		},
		Client: ClientConfig{
			CareersAPIURL:  strings.TrimRight(v.GetString("CAREERS_API_URL"), "/"),
			TimeoutSeconds: v.GetInt("CAREERS_CLIENT_TIMEOUT_SECONDS"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}
}

// splitList parses a comma-separated list, dropping blanks
func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if strings.TrimSpace(c.Uploads.Dir) == "" {
		return fmt.Errorf("UPLOADS_DIR is required")
	}
	if c.Uploads.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}

	// Mirror credentials and bucket come as a set
	store := c.ObjectStorage
	if (store.AccessKeyID != "" || store.SecretAccessKey != "") && !store.Enabled() {
		return fmt.Errorf("OBJECT_STORAGE_ACCESS_KEY_ID, OBJECT_STORAGE_SECRET_ACCESS_KEY and OBJECT_STORAGE_BUCKET_NAME must be set together")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// MaxUploadBytes is the request body limit for the apply endpoint
func (c *Config) MaxUploadBytes() int64 {
	return c.Uploads.MaxUploadMB * 1024 * 1024
}

// ProductsCacheTTL converts the configured TTL
func (c *Config) ProductsCacheTTL() time.Duration {
	return time.Duration(c.Products.CacheTTLSeconds) * time.Second
}

// SearchEnabled reports whether product search has an upstream to call
func (c *Config) SearchEnabled() bool {
	return c.Products.APIHost != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
