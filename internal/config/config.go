package config

import "os"

// ServerConfig holds server configuration
type ServerConfig struct {
	Addr string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	URL string
}

// HistoryConfig holds the optional postgres history store configuration.
// An empty DSN disables persistence of season history.
type HistoryConfig struct {
	DSN string
}

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	History HistoryConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", ":8090"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		History: HistoryConfig{
			DSN: getEnv("HISTORY_DSN", ""),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
