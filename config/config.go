package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT"        default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL"        default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT"       default:"json"`
	GinMode         string        `envconfig:"GIN_MODE"         default:"release"`
	JWTSecret       string        `envconfig:"JWT_SECRET"       required:"true"`
	JWTTTL          time.Duration `envconfig:"JWT_TTL"          default:"1h"`
	BcryptCost      int           `envconfig:"BCRYPT_COST"      default:"10"`
	AdminEmail      string        `envconfig:"ADMIN_EMAIL"`
	AdminPassword   string        `envconfig:"ADMIN_PASSWORD"`
	SeedFile        string        `envconfig:"SEED_FILE"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.JWTTTL)
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return &cfg, nil
}

func LoadConfig(logger *logrus.Logger) *Config {
	cfg, err := Load()
	if err != nil {
		logger.Fatalf("Failed to process configuration from environment variables: %v", err)
	}

	logger.Infof("Configuration loaded: HTTP Port=%s, LogLevel=%s, LogFormat=%s", cfg.HTTPPort, cfg.LogLevel, cfg.LogFormat)
	if cfg.AdminEmail != "" {
		logger.Info("Configuration loaded: bootstrap admin is set")
	}
	return cfg
}
