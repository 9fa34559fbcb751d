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
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Client struct {
		BaseURL      string  `yaml:"base_url" env:"RC_API_URL"`
		Timeout      string  `yaml:"timeout" env:"RC_TIMEOUT"`
		TokenFile    string  `yaml:"token_file" env:"RC_TOKEN_FILE"`
		ExpiryLeeway string  `yaml:"expiry_leeway" env:"RC_EXPIRY_LEEWAY"`
		RateLimit    float64 `yaml:"rate_limit" env:"RC_RATE_LIMIT"`
		Burst        int     `yaml:"burst" env:"RC_BURST"`
		UserAgent    string  `yaml:"user_agent" env:"RC_USER_AGENT"`
	} `yaml:"client"`

	Server struct {
		Port           string `yaml:"port" env:"SERVER_PORT"`
		Mode           string `yaml:"mode" env:"SERVER_MODE"`
		AllowedOrigins string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`

		// RoadmapCooldown spaces out one user's placement roadmap requests; empty or 0s disables it
		RoadmapCooldown string `yaml:"roadmap_cooldown" env:"SERVER_ROADMAP_COOLDOWN"`

		// Seed creates demo accounts on startup, all sharing SeedPassword
		Seed         bool   `yaml:"seed" env:"SERVER_SEED"`
		SeedPassword string `yaml:"seed_password" env:"SERVER_SEED_PASSWORD"`
	} `yaml:"server"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// DefaultPath is where both binaries look for the config file when no flag is given.
var DefaultPath = filepath.Join("configs", "config.yaml")

// LoadConfig loads configuration from a file, an optional .env file and environment variables.
// A missing config file is not an error; defaults and the environment still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env only fills variables that are not already exported
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Client.BaseURL = "http://localhost:8080/v1"
	config.Client.Timeout = "30s"
	config.Client.TokenFile = defaultTokenFile()
	config.Client.ExpiryLeeway = "30s"
	config.Client.RateLimit = 0
	config.Client.Burst = 1
	config.Client.UserAgent = "rcctl/1.0"

	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.AllowedOrigins = "http://localhost:3000"
	config.Server.RoadmapCooldown = "10s"
	config.Server.SeedPassword = "researchconnect"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "researchconnect"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".researchconnect", "credentials.yaml")
	}
	return filepath.Join(dir, "researchconnect", "credentials.yaml")
}

// ValidateClient ensures the client section is usable
func (c *Config) ValidateClient() error {
	u, err := url.Parse(c.Client.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid client base_url %q", c.Client.BaseURL)
	}

	if _, err := time.ParseDuration(c.Client.Timeout); err != nil {
		return fmt.Errorf("invalid client timeout format: %w", err)
	}

	if _, err := time.ParseDuration(c.Client.ExpiryLeeway); err != nil {
		return fmt.Errorf("invalid client expiry_leeway format: %w", err)
	}

	if c.Client.RateLimit < 0 {
		return fmt.Errorf("client rate_limit must not be negative")
	}

	if c.Client.TokenFile == "" {
		return fmt.Errorf("client token_file is required")
	}

	return nil
}

// ValidateServer ensures the stub server section is usable
func (c *Config) ValidateServer() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Server.Seed && len(c.Server.SeedPassword) < 6 {
		return fmt.Errorf("server seed_password must be at least 6 characters")
	}

	if _, err := time.ParseDuration(c.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if c.Server.RoadmapCooldown != "" {
		if d, err := time.ParseDuration(c.Server.RoadmapCooldown); err != nil || d < 0 {
			return fmt.Errorf("invalid server roadmap_cooldown %q", c.Server.RoadmapCooldown)
		}
	}

	return nil
}

// AllowedOrigins splits the comma separated origin list
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
