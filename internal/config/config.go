package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App     App     `envPrefix:"APP_"`
	Mongo   Mongo   `envPrefix:"MONGO_"`
	Redis   Redis   `envPrefix:"REDIS_"`
	JWT     JWT     `envPrefix:"JWT_"`
	Mail    Mail    `envPrefix:"MAIL_"`
	Captcha Captcha `envPrefix:"CAPTCHA_"`
	Minio   Minio   `envPrefix:"MINIO_"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	InternalSecretKey  string   `env:"INTERNAL_SECRET_KEY"`
}

type App struct {
	Port      string `env:"PORT" envDefault:"3001"`
	Env       string `env:"ENV" envDefault:"development"`
	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:3000"`
}

type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"storefront"`
}

type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type JWT struct {
	Secret     string        `env:"SECRET"`
	Issuer     string        `env:"ISSUER" envDefault:"storefront"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	VerifyTTL  time.Duration `env:"VERIFY_TTL" envDefault:"24h"`
}

// Mail holds SMTP settings. An empty Host disables outbound mail.
type Mail struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"465"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"no-reply@storefront.local"`
	FromName string `env:"FROM_NAME" envDefault:"Storefront"`
	SSL      bool   `env:"SSL" envDefault:"true"`
}

type Captcha struct {
	TTL    time.Duration `env:"TTL" envDefault:"5m"`
	Length int           `env:"LENGTH" envDefault:"4"`
	Width  int           `env:"WIDTH" envDefault:"120"`
	Height int           `env:"HEIGHT" envDefault:"40"`
}

// Minio configures presigned product image URLs. An empty Endpoint disables signing.
type Minio struct {
	Endpoint   string        `env:"ENDPOINT"`
	AccessKey  string        `env:"ACCESS_KEY"`
	SecretKey  string        `env:"SECRET_KEY"`
	Bucket     string        `env:"BUCKET" envDefault:"product-images"`
	UseSSL     bool          `env:"USE_SSL" envDefault:"false"`
	PresignTTL time.Duration `env:"PRESIGN_TTL" envDefault:"1h"`
}

const devJWTSecret = "storefront-dev-secret"

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LoadConfig reads .env (if present) and then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is not set")
		}
		c.JWT.Secret = devJWTSecret
	}
	if c.JWT.SessionTTL <= 0 || c.JWT.VerifyTTL <= 0 {
		return errors.New("JWT token lifetimes must be positive")
	}
	if c.Captcha.Length <= 0 {
		return errors.New("CAPTCHA_LENGTH must be positive")
	}
	if c.Mongo.URI == "" {
		return errors.New("MONGO_URI is not set")
	}
	return nil
}
