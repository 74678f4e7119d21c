// Package config loads application settings from the environment.
// File: config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSessionSecret is only acceptable outside production.
const DefaultSessionSecret = "dev-session-secret-change-me-please"

// ------------------- configuration structs -------------------

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Metrics  MetricsConfig
	Tracing  TracingConfig
	Seed     SeedConfig
	Log      LogConfig
}

// AppConfig holds HTTP and session settings
type AppConfig struct {
	Env           string
	Port          string
	BaseURL       string
	BusinessName  string
	SessionSecret string
	SecureCookies bool
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// DatabaseConfig selects the persistence driver.
// Driver is "postgres" (DSN is a connection string) or "sqlite" (DSN is a file path).
type DatabaseConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

// StorageConfig selects the blob storage driver ("s3" or "memory").
type StorageConfig struct {
	Driver       string
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	PublicURL    string
	UsePathStyle bool
	MenuBucket   string
	AvatarBucket string
}

// MetricsConfig controls CloudWatch publishing
type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// TracingConfig controls AWS X-Ray instrumentation
type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

// SeedConfig describes the admin created when the admin table is empty
type SeedConfig struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
	File  string
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// ------------------- loading -------------------

// Load reads `.env` (if present) and the process environment.
// Keys map to env vars by upper-casing and replacing "." with "_",
// e.g. storage.menu_bucket -> STORAGE_MENU_BUCKET.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:           v.GetString("app.env"),
			Port:          v.GetString("app.port"),
			BaseURL:       v.GetString("app.base_url"),
			BusinessName:  v.GetString("app.business_name"),
			SessionSecret: v.GetString("app.session_secret"),
			SecureCookies: v.GetBool("app.secure_cookies"),
			ReadTimeout:   v.GetDuration("app.read_timeout"),
			WriteTimeout:  v.GetDuration("app.write_timeout"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("database.driver")),
			DSN:          v.GetString("database.dsn"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
		},
		Storage: StorageConfig{
			Driver:       strings.ToLower(v.GetString("storage.driver")),
			Endpoint:     v.GetString("storage.endpoint"),
			Region:       v.GetString("storage.region"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			PublicURL:    strings.TrimRight(v.GetString("storage.public_url"), "/"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
			MenuBucket:   v.GetString("storage.menu_bucket"),
			AvatarBucket: v.GetString("storage.avatar_bucket"),
		},
		Metrics: MetricsConfig{
			Enabled:   v.GetBool("metrics.enabled"),
			Namespace: v.GetString("metrics.namespace"),
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("tracing.enabled"),
			ServiceName: v.GetString("tracing.service_name"),
		},
		Seed: SeedConfig{
			AdminUsername: v.GetString("seed.admin_username"),
			AdminEmail:    v.GetString("seed.admin_email"),
			AdminPassword: v.GetString("seed.admin_password"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("app.business_name", "Jagdamba Caterers")
	v.SetDefault("app.session_secret", DefaultSessionSecret)
	v.SetDefault("app.secure_cookies", false)
	v.SetDefault("app.read_timeout", 15*time.Second)
	v.SetDefault("app.write_timeout", 30*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "catering.db")
	v.SetDefault("database.max_open_conns", 10)

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.region", "ap-south-1")
	v.SetDefault("storage.use_path_style", true)
	v.SetDefault("storage.menu_bucket", "menu-images")
	v.SetDefault("storage.avatar_bucket", "admin-avatars")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "CateringAdmin")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "catering-admin")

	v.SetDefault("seed.admin_username", "admin")
	v.SetDefault("seed.admin_email", "admin@example.com")
	v.SetDefault("seed.admin_password", "")

	v.SetDefault("log.level", "") // empty: debug outside production, info in production
	v.SetDefault("log.file", "")
}

// ------------------- validation -------------------

// Validate checks settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	var errs []error

	if c.IsProduction() && (c.App.SessionSecret == DefaultSessionSecret || len(c.App.SessionSecret) < 32) {
		errs = append(errs, errors.New("APP_SESSION_SECRET must be set to at least 32 characters in production"))
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN is required"))
	}

	switch c.Storage.Driver {
	case "memory":
	case "s3":
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			errs = append(errs, errors.New("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.Storage.Driver))
	}

	return errors.Join(errs...)
}
