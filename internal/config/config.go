package config

import (
	"os"
	"strconv"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Bitnob   BitnobConfig
	Explorer ExplorerConfig
	Bitcoin  BitcoinConfig
	Security SecurityConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// BitnobConfig holds custody provider configuration
type BitnobConfig struct {
	APIURL string
	APIKey string
}

// ExplorerConfig holds the public explorer fallback configuration
type ExplorerConfig struct {
	APIURL string
}

// BitcoinConfig selects the chain network for the whole process.
// The value is resolved once here and threaded into constructors;
// nothing reads the environment at call time.
type BitcoinConfig struct {
	Network string // mainnet or testnet
}

// SecurityConfig holds encryption keys
type SecurityConfig struct {
	MnemonicEncryptionKey string
}

// Load loads configuration from environment variables
func Load() *Config {
	env := getEnv("SERVER_ENV", "development")

	defaultNetwork := "testnet"
	if env == "production" {
		defaultNetwork = "mainnet"
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  env,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "btccustody"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Bitnob: BitnobConfig{
			APIURL: getEnv("BITNOB_API_URL", "https://sandboxapi.bitnob.co/api/v1"),
			APIKey: getEnv("BITNOB_API_KEY", ""),
		},
		Explorer: ExplorerConfig{
			APIURL: getEnv("EXPLORER_API_URL", "https://blockchain.info"),
		},
		Bitcoin: BitcoinConfig{
			Network: getEnv("BTC_NETWORK", defaultNetwork),
		},
		Security: SecurityConfig{
			MnemonicEncryptionKey: getEnv("MNEMONIC_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
