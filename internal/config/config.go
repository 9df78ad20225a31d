// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"PORT"`
	ServerTimeout time.Duration `mapstructure:"-"`

	// CORS
	CORSAllowedOrigins []string `mapstructure:"-"`

	// Database Configuration
	DBUser           string        `mapstructure:"DB_USER"`
	DBKey            string        `mapstructure:"DB_KEY"`
	DBClusterHost    string        `mapstructure:"DB_CLUSTER_HOST"`
	DBName           string        `mapstructure:"DB_NAME"`
	DBURI            string        `mapstructure:"MONGO_URI"`
	DBConnectTimeout time.Duration `mapstructure:"-"`

	// Credentials
	AccessTokenSecret string        `mapstructure:"ACCESS_TOKEN"`
	AccessTokenTTL    time.Duration `mapstructure:"-"`
	TokenIssuer       string        `mapstructure:"TOKEN_ISSUER"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

// ErrMissingSigningSecret is returned by Load when ACCESS_TOKEN is not set.
var ErrMissingSigningSecret = errors.New("ACCESS_TOKEN is not set; credentials cannot be signed")

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("PORT", "5000")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://blad-donate.web.app")

	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_KEY", "")
	v.SetDefault("DB_CLUSTER_HOST", "cluster0.bvbzn4c.mongodb.net")
	v.SetDefault("DB_NAME", "bladDb")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("DB_CONNECT_TIMEOUT_SECONDS", 10)

	v.SetDefault("ACCESS_TOKEN", "")
	v.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 60)
	v.SetDefault("TOKEN_ISSUER", "blad")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnectTimeout = time.Duration(v.GetInt("DB_CONNECT_TIMEOUT_SECONDS")) * time.Second
	cfg.AccessTokenTTL = time.Duration(v.GetInt("ACCESS_TOKEN_TTL_MINUTES")) * time.Minute
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AccessTokenSecret) == "" {
		return ErrMissingSigningSecret
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL_MINUTES must be positive, got %s", c.AccessTokenTTL)
	}
	if c.DBURI == "" && (c.DBUser == "" || c.DBKey == "") {
		return errors.New("database credentials missing: set MONGO_URI or both DB_USER and DB_KEY")
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	for _, origin := range c.CORSAllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			return err
		}
	}
	return nil
}

// validateOrigin accepts explicit http(s) origins only. Credentialed CORS
// cannot be combined with wildcards.
func validateOrigin(origin string) error {
	if strings.Contains(origin, "*") {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS: wildcard origin %q is not allowed with credentials", origin)
	}
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS: invalid origin %q: %w", origin, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS: origin %q must be an http:// or https:// origin", origin)
	}
	return nil
}

// MongoURI returns the connection string for the document store.
// MONGO_URI wins when set; otherwise an Atlas SRV URI is built from the parts.
func (c *Config) MongoURI() string {
	if c.DBURI != "" {
		return c.DBURI
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBKey),
		Host:     c.DBClusterHost,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
