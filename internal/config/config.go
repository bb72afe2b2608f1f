package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds the configuration for the Moneta server and its dependencies.
type Config struct {
	// Listen is the address the Moneta server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// SessionKey is the key used to sign session cookies.
	// If empty, a random key is generated on every start and sessions don't survive restarts.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// SecureCookies marks the session cookie as secure (HTTPS only).
	SecureCookies bool `yaml:"secure_cookies" mapstructure:"secure_cookies"`
	// BcryptCost is the cost factor used when hashing passwords.
	BcryptCost int `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
	// MaintenanceSchedule is the cron schedule for the database maintenance job.
	MaintenanceSchedule string `yaml:"maintenance_schedule" mapstructure:"maintenance_schedule"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Cache holds the asset listing cache configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
	// Assistant holds the configuration for the finance assistant.
	Assistant *AssistantConfig `yaml:"assistant" mapstructure:"assistant"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig holds the cache engine configuration.
type CacheConfig struct {
	// Type is the cache backend, either "memory" or "redis".
	Type CacheType `yaml:"type" mapstructure:"type"`
	// RedisURL is the address of the redis server (host:port).
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	// TTL is how long a user's asset listing stays cached.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// AssistantConfig holds the configuration for the generative AI assistant.
type AssistantConfig struct {
	// APIKey is the Gemini API key. Can also be set with GEMINI_API_KEY.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// Model is the Gemini model name.
	Model string `yaml:"model" mapstructure:"model"`
	// Currency is the currency the assistant is told to answer in.
	Currency string `yaml:"currency" mapstructure:"currency"`
	// Temperature controls the randomness of the output.
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
	// TopP is the nucleus sampling probability.
	TopP float32 `yaml:"top_p" mapstructure:"top_p"`
	// TopK is the top-k sampling limit.
	TopK float32 `yaml:"top_k" mapstructure:"top_k"`
	// Timeout bounds a single assistant call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error, defaults and environment variables are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()

	bindNestedEnv(v)
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("MONETA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.moneta")
		v.AddConfigPath("/etc/moneta")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with the MONETA_ prefix override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:5000")
	v.SetDefault("session_key", "")
	v.SetDefault("session_max_age", 172800) // 48 hours
	v.SetDefault("secure_cookies", false)
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("maintenance_schedule", "0 3 * * *") // daily at 03:00

	// Database defaults
	v.SetDefault("database.path", "./data/moneta.db")

	// Cache defaults
	v.SetDefault("cache.type", CacheTypeMemory)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", 5*time.Minute)

	// Assistant defaults
	v.SetDefault("assistant.model", "gemini-2.5-flash")
	v.SetDefault("assistant.currency", "rupees")
	v.SetDefault("assistant.temperature", 1)
	v.SetDefault("assistant.top_p", 0.95)
	v.SetDefault("assistant.top_k", 64)
	v.SetDefault("assistant.timeout", 60*time.Second)
}

// the assistant key is commonly exported as GEMINI_API_KEY, so bind it next to the prefixed name.
func bindNestedEnv(v *viper.Viper) {
	v.MustBindEnv("assistant.api_key", "MONETA_ASSISTANT_API_KEY", "GEMINI_API_KEY")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing moneta config")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("session max age must be greater than 0")
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.MaintenanceSchedule != "" {
		// Basic validation for cron format (5 fields)
		if len(strings.Fields(c.MaintenanceSchedule)) != 5 {
			return fmt.Errorf("maintenance schedule must be a valid cron expression with 5 fields (minute hour day month weekday)")
		}
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Cache != nil {
		switch c.Cache.Type {
		case CacheTypeMemory:
		case CacheTypeRedis:
			if c.Cache.RedisURL == "" {
				return fmt.Errorf("Redis URL is required when Redis cache is enabled") //nolint:staticcheck
			}
		default:
			return fmt.Errorf("unknown cache type %q", c.Cache.Type)
		}
		if c.Cache.TTL < 0 {
			return fmt.Errorf("cache ttl must not be negative")
		}
	} else {
		c.Cache = &CacheConfig{
			Type: CacheTypeMemory,
			TTL:  5 * time.Minute,
		}
	}

	if c.Assistant == nil {
		return fmt.Errorf("missing assistant config")
	}
	if c.Assistant.Model == "" {
		return fmt.Errorf("assistant model is required")
	}
	if c.Assistant.Timeout <= 0 {
		return fmt.Errorf("assistant timeout must be greater than 0")
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = strings.TrimSpace(c.Listen)
	c.MaintenanceSchedule = strings.TrimSpace(c.MaintenanceSchedule)

	if c.Cache != nil {
		c.Cache.RedisURL = strings.TrimSpace(c.Cache.RedisURL)
	}

	if c.Assistant != nil {
		c.Assistant.APIKey = strings.TrimSpace(c.Assistant.APIKey)
		c.Assistant.Currency = strings.TrimSpace(c.Assistant.Currency)
	}
}

// HasAssistant reports whether an API key for the assistant is configured.
func (c *Config) HasAssistant() bool {
	return c.Assistant != nil && c.Assistant.APIKey != ""
}

// GenerateSessionKey returns a random 32 byte key, hex encoded.
func GenerateSessionKey() (string, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate session key: %w", err)
	}
	return hex.EncodeToString(key), nil
}
