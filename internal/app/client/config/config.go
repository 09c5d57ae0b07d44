package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:3000"
	defaultLogLevel      = "warn"
	defaultEnv           = "local"
	defaultConfigDir     = ".subtracker"
	defaultTimeout       = 30 * time.Second
	dataFile             = "client.db"
)

type Config struct {
	Env           string
	ServerAddress string
	LogLevel      string
	ConfigDir     string
	DataPath      string
	EnableTLS     bool
	Timeout       time.Duration
}

// MustLoad reads the client configuration. It exits on invalid settings.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("client config: %v", err)
	}

	return cfg
}

func Load() (*Config, error) {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("load %s: %v", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("ENABLE_TLS", false)
	v.SetDefault("HTTP_TIMEOUT", defaultTimeout)

	cfg := &Config{
		Env:           v.GetString("APP_ENV"),
		ServerAddress: v.GetString("SERVER_ADDRESS"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		EnableTLS:     v.GetBool("ENABLE_TLS"),
		Timeout:       v.GetDuration("HTTP_TIMEOUT"),
	}
	cfg.SetConfigDir(v.GetString("CONFIG_DIR"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SetConfigDir points the client at dir. The default directory lives under the user's home.
func (c *Config) SetConfigDir(dir string) {
	if dir == defaultConfigDir {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir)
		}
	}

	c.ConfigDir = dir
	c.DataPath = filepath.Join(dir, dataFile)
}

// EnsureDir creates the config directory if it does not exist yet.
func (c *Config) EnsureDir() error {
	if err := os.MkdirAll(c.ConfigDir, 0o700); err != nil {
		return fmt.Errorf("create config dir %s: %w", c.ConfigDir, err)
	}

	return nil
}

// BaseURL is the server root, scheme included.
func (c *Config) BaseURL() string {
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}

	return scheme + c.ServerAddress
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("SERVER_ADDRESS must not be empty")
	}
	if c.ConfigDir == "" {
		return fmt.Errorf("CONFIG_DIR must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}

	return nil
}

func (c *Config) IsDev() bool {
	return c.Env == "dev"
}
