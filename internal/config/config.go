package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	AppMode        string
	Port           string
	LogLevel       string
	AllowedOrigins string
	Database       DatabaseConfig
	JWT            JWTConfig
	Cookie         CookieConfig
	Redis          RedisConfig
	Storage        StorageConfig
	Admin          AdminConfig
	Cron           CronConfig
	RateLimit      RateLimitConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // mysql, postgres, sqlite
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	DSN      string // overrides the fields above when set
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	Issuer           string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds auth cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// RedisConfig holds redis configuration. An empty Addr disables redis.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	StatsTTLSecs int
}

// StorageConfig holds image storage configuration
type StorageConfig struct {
	Driver    string // local, minio, s3
	LocalPath string
	PublicURL string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// AdminConfig holds the seeded admin account
type AdminConfig struct {
	Email          string
	Password       string
	NombreCompleto string
}

// RateLimitConfig holds requests per minute per IP. Zero disables a limiter.
type RateLimitConfig struct {
	General int
	Auth    int
}

// CronConfig holds background job schedules
type CronConfig struct {
	TokenCleanup string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	appMode := strings.TrimSpace(v.GetString("APP_MODE"))
	if appMode == "" {
		appMode = "dev"
	}
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	prefix := "DEV_"
	if appMode == "prod" {
		prefix = "PROD_"
	}

	cfg := &Config{
		AppMode:        appMode,
		Port:           v.GetString("PORT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		AllowedOrigins: v.GetString("ALLOWED_ORIGINS"),
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString(prefix + "DB_HOST"),
			Port:     v.GetString(prefix + "DB_PORT"),
			User:     v.GetString(prefix + "DB_USER"),
			Password: v.GetString(prefix + "DB_PASS"),
			DBName:   v.GetString(prefix + "DB_NAME"),
			DSN:      v.GetString("DB_DSN"),
		},
		JWT: JWTConfig{
			Secret:           v.GetString(prefix + "JWT_SECRET"),
			RefreshSecret:    v.GetString(prefix + "JWT_REFRESH_SECRET"),
			Issuer:           v.GetString("JWT_ISSUER"),
			AccessTokenMins:  v.GetInt("ACCESS_TOKEN_MINUTES"),
			RefreshTokenDays: v.GetInt("REFRESH_TOKEN_DAYS"),
		},
		Cookie: CookieConfig{
			Secure:   v.GetBool(prefix + "COOKIE_SECURE"),
			SameSite: v.GetString("COOKIE_SAMESITE"),
			Domain:   v.GetString("COOKIE_DOMAIN"),
		},
		Redis: RedisConfig{
			Addr:         v.GetString("REDIS_ADDR"),
			Password:     v.GetString("REDIS_PASSWORD"),
			DB:           v.GetInt("REDIS_DB"),
			StatsTTLSecs: v.GetInt("STATS_CACHE_SECONDS"),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(v.GetString("STORAGE_DRIVER")),
			LocalPath: v.GetString("STORAGE_LOCAL_PATH"),
			PublicURL: strings.TrimRight(v.GetString("STORAGE_PUBLIC_URL"), "/"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
		},
		Admin: AdminConfig{
			Email:          v.GetString("ADMIN_EMAIL"),
			Password:       v.GetString("ADMIN_PASSWORD"),
			NombreCompleto: v.GetString("ADMIN_NOMBRE"),
		},
		Cron: CronConfig{
			TokenCleanup: v.GetString("TOKEN_CLEANUP_CRON"),
		},
		RateLimit: RateLimitConfig{
			General: v.GetInt("RATE_LIMIT"),
			Auth:    v.GetInt("AUTH_RATE_LIMIT"),
		},
	}

	if cfg.IsProd() {
		if err := cfg.validateProd(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

const (
	defaultJWTSecret        = "chatarra_dev_secret_change_me"
	defaultJWTRefreshSecret = "chatarra_dev_refresh_secret_change_me"
	defaultAdminPassword    = "admin123456"
)

// validateProd rejects secrets that are empty or left at a dev default
func (c *Config) validateProd() error {
	if c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}
	if c.JWT.RefreshSecret == "" || c.JWT.RefreshSecret == defaultJWTRefreshSecret {
		return fmt.Errorf("PROD_JWT_REFRESH_SECRET must be set in prod mode")
	}
	if c.Admin.Password == defaultAdminPassword {
		return fmt.Errorf("ADMIN_PASSWORD must be changed from the default in prod mode")
	}
	return nil
}

// setDefaults registers defaults for every key read by FromViper
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_MODE", "dev")
	v.SetDefault("PORT", "8081")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_DRIVER", "mysql")
	for _, p := range []string{"DEV_", "PROD_"} {
		v.SetDefault(p+"DB_HOST", "localhost")
		v.SetDefault(p+"DB_PORT", "3306")
		v.SetDefault(p+"DB_USER", "root")
		v.SetDefault(p+"DB_PASS", "")
		v.SetDefault(p+"DB_NAME", "chatarra_db")
		v.SetDefault(p+"COOKIE_SECURE", p == "PROD_")
	}
	v.SetDefault("DEV_JWT_SECRET", defaultJWTSecret)
	v.SetDefault("DEV_JWT_REFRESH_SECRET", defaultJWTRefreshSecret)
	v.SetDefault("JWT_ISSUER", "chatarra-market")
	v.SetDefault("ACCESS_TOKEN_MINUTES", 1440)
	v.SetDefault("REFRESH_TOKEN_DAYS", 7)

	v.SetDefault("COOKIE_SAMESITE", "lax")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STATS_CACHE_SECONDS", 60)

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_LOCAL_PATH", "./uploads")
	v.SetDefault("STORAGE_PUBLIC_URL", "/uploads")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_BUCKET", "chatarra-ofertas")

	v.SetDefault("ADMIN_EMAIL", "admin@chatarra.com")
	v.SetDefault("ADMIN_PASSWORD", defaultAdminPassword)
	v.SetDefault("ADMIN_NOMBRE", "Administrador")

	v.SetDefault("TOKEN_CLEANUP_CRON", "0 3 * * *")
	v.SetDefault("RATE_LIMIT", 100)
	v.SetDefault("AUTH_RATE_LIMIT", 5)
}

// NewDefaults returns a viper instance carrying only the defaults
func NewDefaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		return "http://localhost:3000,http://localhost:5173"
	}
	return c.AllowedOrigins
}
