package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. Values come from the process
// environment, optionally seeded from a .env file in the working directory.
type Config struct {
	Port        int    `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	BaseURL     string `env:"BASE_URL" env-default:"http://localhost:8080"`

	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig

	// Comma-separated list of origins allowed by CORS.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type DatabaseConfig struct {
	Host          string `env:"DB_HOST" env-required:"true"`
	Port          int    `env:"DB_PORT" env-default:"5432"`
	User          string `env:"DB_USERNAME" env-required:"true"`
	Password      string `env:"DB_PASSWORD" env-required:"true"`
	Name          string `env:"DB_DATABASE" env-required:"true"`
	AdminUser     string `env:"DB_ADMIN_USER"`
	AdminPassword string `env:"DB_ADMIN_PASSWORD"`
	SSLMode       string `env:"DB_SSLMODE" env-default:"disable"`
	MaxConns      int    `env:"DB_MAX_CONNS" env-default:"25"`
	MinConns      int    `env:"DB_MIN_CONNS" env-default:"5"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type SessionConfig struct {
	Secret string `env:"SESSION_SECRET" env-required:"true"`
}

// Load reads .env (when present) and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Session.Secret) < 16 {
		return errors.New("SESSION_SECRET must be at least 16 characters")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid BASE_URL: %w", err)
	}
	if len(c.AllowedOrigins()) == 0 {
		return errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// AllowedOrigins splits CORSAllowedOrigins.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DSN is the connection string of the application database.
func (d DatabaseConfig) DSN() string {
	return d.dsn(d.User, d.Password, d.Name)
}

// AdminDSN connects to the maintenance database with the admin account,
// falling back to the application account.
func (d DatabaseConfig) AdminDSN() string {
	user, password := d.AdminUser, d.AdminPassword
	if user == "" {
		user, password = d.User, d.Password
	}
	return d.dsn(user, password, "postgres")
}

func (d DatabaseConfig) dsn(user, password, name string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// Redacted is DSN with the password removed, for logs.
func (d DatabaseConfig) Redacted() string {
	return fmt.Sprintf("postgres://%s:***@%s:%d/%s", d.User, d.Host, d.Port, d.Name)
}
