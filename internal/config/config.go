// Package config loads process configuration once at startup. Request code
// never consults the environment directly; everything it needs arrives
// through an explicit *Config reference.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings sourced from environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	OAuth    OAuthConfig    `mapstructure:"oauth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	AllowOrigin string `mapstructure:"allow_origin"`
}

// AllowedOrigins splits the comma separated allow_origin value.
func (s ServerConfig) AllowedOrigins() []string {
	return strings.Split(s.AllowOrigin, ",")
}

// DatabaseConfig contains connection options for PostgreSQL. When UseConnStr
// is set the full connection string wins over the individual fields.
type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	UseConnStr bool   `mapstructure:"use_conn_str"`
	ConnStr    string `mapstructure:"conn_str"`
}

// JWTConfig contains token signing settings.
type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	Issuer    string        `mapstructure:"issuer"`
	AccessTTL time.Duration `mapstructure:"access_ttl"`
}

// OAuthConfig contains the Google OAuth client settings.
type OAuthConfig struct {
	GoogleClientID     string `mapstructure:"google_client_id"`
	GoogleClientSecret string `mapstructure:"google_client_secret"`
	RedirectURL        string `mapstructure:"redirect_url"`
}

// StorageConfig contains the upload store settings.
type StorageConfig struct {
	UploadDir      string `mapstructure:"upload_dir"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

// RedisConfig contains the optional Redis connection used by the token
// blacklist. An empty Addr selects the in-memory store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AdminConfig holds the bootstrap admin credentials. When both fields are set
// an admin account is created at startup if none exists.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// Load reads configuration from environment variables with defaults applied.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allow_origin", "http://localhost:3000")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.use_conn_str", false)
	v.SetDefault("jwt.issuer", "job-portal-backend")
	v.SetDefault("jwt.access_ttl", time.Hour)
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.max_upload_bytes", 2<<20)
	v.SetDefault("redis.db", 0)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"server.port":                "PORT",
		"server.allow_origin":        "ALLOW_ORIGIN",
		"database.host":              "DB_HOST",
		"database.port":              "DB_PORT",
		"database.user":              "DB_USERNAME",
		"database.password":          "DB_PASSWORD",
		"database.name":              "DB_DATABASE",
		"database.use_conn_str":      "USE_CONNECTION_STR",
		"database.conn_str":          "DB_CONNECTION_STR",
		"jwt.secret":                 "SECRET_KEY",
		"jwt.issuer":                 "JWT_ISSUER",
		"jwt.access_ttl":             "ACCESS_TOKEN_TTL",
		"oauth.google_client_id":     "GOOGLE_AUTH_CLIENT",
		"oauth.google_client_secret": "GOOGLE_AUTH_SECRET",
		"oauth.redirect_url":         "OAUTH_REDIRECT_URL",
		"storage.upload_dir":         "UPLOAD_DIR",
		"storage.max_upload_bytes":   "MAX_UPLOAD_BYTES",
		"redis.addr":                 "REDIS_ADDR",
		"redis.password":             "REDIS_PASSWORD",
		"redis.db":                   "REDIS_DB",
		"admin.email":                "ADMIN_EMAIL",
		"admin.password":             "ADMIN_PASSWORD",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.Server.Port <= 0 {
		return errors.New("server port must be positive")
	}
	if cfg.JWT.Secret == "" {
		return errors.New("jwt secret is required")
	}
	if cfg.JWT.AccessTTL <= 0 {
		return errors.New("jwt access ttl must be positive")
	}
	if cfg.Database.UseConnStr {
		if cfg.Database.ConnStr == "" {
			return errors.New("database connection string is required when use_conn_str is set")
		}
	} else {
		if cfg.Database.Host == "" {
			return errors.New("database host is required")
		}
		if cfg.Database.Port <= 0 {
			return errors.New("database port must be positive")
		}
		if cfg.Database.User == "" {
			return errors.New("database user is required")
		}
		if cfg.Database.Password == "" {
			return errors.New("database password is required")
		}
		if cfg.Database.Name == "" {
			return errors.New("database name is required")
		}
	}
	if cfg.Storage.UploadDir == "" {
		return errors.New("storage upload dir is required")
	}
	if cfg.Storage.MaxUploadBytes <= 0 {
		return errors.New("storage max upload bytes must be positive")
	}
	return nil
}
