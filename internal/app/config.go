package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port          string        `mapstructure:"PORT" validate:"required,numeric"`
	DSN           string        `mapstructure:"DATABASE_URL" validate:"required"`
	ReadTimeout   time.Duration `mapstructure:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout  time.Duration `mapstructure:"WRITE_TIMEOUT" validate:"gt=0"`
	LogLevel      string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat     string        `mapstructure:"LOG_FORMAT" validate:"oneof=json text"`
	Migrate       bool          `mapstructure:"MIGRATE_ON_START"`
	EnforceAuthor bool          `mapstructure:"BLOG_ENFORCE_AUTHOR"`

	JWTSecret string `mapstructure:"JWT_SECRET"`
	JWKSURL   string `mapstructure:"AUTH_JWKS_URL" validate:"omitempty,url"`
	Issuer    string `mapstructure:"AUTH_ISSUER"`
	Audience  string `mapstructure:"AUTH_AUDIENCE"`
}

var defaults = map[string]any{
	"PORT":                "4040",
	"DATABASE_URL":        "",
	"READ_TIMEOUT":        3 * time.Second,
	"WRITE_TIMEOUT":       3 * time.Second,
	"LOG_LEVEL":           "info",
	"LOG_FORMAT":          "json",
	"MIGRATE_ON_START":    true,
	"BLOG_ENFORCE_AUTHOR": false,
	"JWT_SECRET":          "",
	"AUTH_JWKS_URL":       "",
	"AUTH_ISSUER":         "",
	"AUTH_AUDIENCE":       "",
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.JWTSecret == "" && c.JWKSURL == "" {
		return errors.New("invalid config: JWT_SECRET or AUTH_JWKS_URL must be set")
	}
	return nil
}
