// Package config handles loading and managing application configuration.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Options store and ledger backends
	Storage StorageConfig

	// PayPal Pro NVP API
	PayPal PayPalConfig

	// Security settings
	Security SecurityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	GinMode         string // "debug", "release", or "test"
	ShutdownTimeout time.Duration
}

// StorageConfig selects where settings and transactions live.
type StorageConfig struct {
	OptionsBackend string // "memory" or "redis"
	RedisAddr      string
	RedisPrefix    string
	DatabaseURL    string // empty keeps the ledger in memory
}

// PayPalConfig overrides the NVP endpoints and API version.
type PayPalConfig struct {
	LiveEndpoint    string
	SandboxEndpoint string
	APIVersion      string
	Timeout         time.Duration
}

// SecurityConfig holds security-related configuration.
type SecurityConfig struct {
	NonceSecret string
	NonceTTL    time.Duration
	HostAPIKey  string // Bearer key the host platform must send (optional)
}

// Load reads configuration from environment variables.
// Returns a Config struct with all settings populated.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			GinMode:         getEnv("GIN_MODE", "debug"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Storage: StorageConfig{
			OptionsBackend: getEnv("OPTIONS_BACKEND", "memory"),
			RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPrefix:    getEnv("REDIS_PREFIX", "exchange:options:"),
			DatabaseURL:    getEnv("DATABASE_URL", ""),
		},
		PayPal: PayPalConfig{
			LiveEndpoint:    getEnv("PAYPAL_LIVE_ENDPOINT", ""),
			SandboxEndpoint: getEnv("PAYPAL_SANDBOX_ENDPOINT", ""),
			APIVersion:      getEnv("PAYPAL_API_VERSION", ""),
			Timeout:         getEnvDuration("PAYPAL_TIMEOUT", 30*time.Second),
		},
		Security: SecurityConfig{
			NonceSecret: getEnv("NONCE_SECRET", ""),
			NonceTTL:    getEnvDuration("NONCE_TTL", 12*time.Hour),
			HostAPIKey:  getEnv("HOST_API_KEY", ""),
		},
	}
}

// Debug reports whether the service runs in Gin debug mode.
func (c *Config) Debug() bool {
	return getEnvBool("DEBUG", c.Server.GinMode == "debug")
}

// getEnv retrieves an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves an environment variable as a duration with a fallback.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as a boolean with a fallback.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
