package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath = ".env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSecret   = "your-secret-key-change-in-production"
	defaultAddress  = ":3000"
	defaultDataFile = "database.json"
	defaultSQLite   = "subtracker.db"
	defaultTokenTTL = 7 * 24 * time.Hour
	defaultCost     = 10
)

type Config struct {
	Env     string
	Server  Server
	Storage Storage
	Auth    Auth
	Logger  Logger
}

type Server struct {
	RunAddress      string
	ShutdownTimeout time.Duration
	// AllowedOrigin is the CORS origin; "*" allows any.
	AllowedOrigin string
}

type Storage struct {
	Driver      string
	DataFile    string
	SQLitePath  string
	DatabaseURI string
}

type Auth struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

type Logger struct {
	LogLevel string
}

// MustLoad reads .env (when present) and the process environment. It exits on invalid settings.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	return cfg
}

func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("load %s: %v", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", EnvLocal)
	v.SetDefault("STORAGE_DRIVER", DriverFile)
	v.SetDefault("DATA_FILE", defaultDataFile)
	v.SetDefault("SQLITE_PATH", defaultSQLite)
	v.SetDefault("JWT_SECRET", defaultSecret)
	v.SetDefault("TOKEN_TTL", defaultTokenTTL)
	v.SetDefault("BCRYPT_COST", defaultCost)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("FRONTEND_ORIGIN", "*")

	address := v.GetString("RUN_ADDRESS")
	if address == "" {
		if port := v.GetString("PORT"); port != "" {
			address = ":" + port
		} else {
			address = defaultAddress
		}
	}

	cfg := &Config{
		Env: v.GetString("APP_ENV"),
		Server: Server{
			RunAddress:      address,
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
			AllowedOrigin:   v.GetString("FRONTEND_ORIGIN"),
		},
		Storage: Storage{
			Driver:      v.GetString("STORAGE_DRIVER"),
			DataFile:    v.GetString("DATA_FILE"),
			SQLitePath:  v.GetString("SQLITE_PATH"),
			DatabaseURI: v.GetString("DATABASE_URI"),
		},
		Auth: Auth{
			Secret:     v.GetString("JWT_SECRET"),
			TokenTTL:   v.GetDuration("TOKEN_TTL"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Logger: Logger{LogLevel: v.GetString("LOG_LEVEL")},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverFile:
		if c.Storage.DataFile == "" {
			return fmt.Errorf("DATA_FILE must not be empty")
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must not be empty")
		}
	case DriverPostgres:
		if c.Storage.DatabaseURI == "" {
			return fmt.Errorf("DATABASE_URI is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Auth.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	return nil
}

func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}
