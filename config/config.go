package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config is the full runtime configuration. Secrets have no defaults:
// a missing value fails Load and the process never starts.
type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	JWT      JWTConfig
	Google   GoogleConfig
	Razorpay RazorpayConfig
	Upload   UploadConfig
}

type ServerConfig struct {
	Port        string   `env:"PORT" envDefault:"5000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI,required"`
	Database string `env:"MONGODB_DATABASE" envDefault:"fancyStore"`
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET,required"`
	Expiration time.Duration `env:"JWT_EXPIRATION" envDefault:"1h"`
}

type GoogleConfig struct {
	ClientID string `env:"GOOGLE_CLIENT_ID,required"`
}

type RazorpayConfig struct {
	KeyID     string `env:"RAZORPAY_KEY_ID,required"`
	KeySecret string `env:"RAZORPAY_KEY_SECRET,required"`
}

type UploadConfig struct {
	MaxBytes     int64    `env:"UPLOAD_MAX_BYTES" envDefault:"5242880"`
	AllowedTypes []string `env:"UPLOAD_ALLOWED_TYPES" envSeparator:"," envDefault:"image/jpeg,image/png,image/gif"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
