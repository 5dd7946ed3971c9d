package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary     Primary           `koanf:"primary"`
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	Flutterwave FlutterwaveConfig `koanf:"flutterwave"`
	Notify      NotifyConfig      `koanf:"notify"`
	Redis       RedisConfig       `koanf:"redis"`
	Admin       AdminConfig       `koanf:"admin"`
	Logger      LoggerConfig      `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// FlutterwaveConfig configures the payment gateway client. The redirect URL
// is where the gateway sends the shopper's browser after payment; it must
// resolve to this service's callback route.
type FlutterwaveConfig struct {
	SecretKey    string        `koanf:"secret_key" validate:"required"`
	BaseURL      string        `koanf:"base_url" validate:"required"`
	RedirectURL  string        `koanf:"redirect_url" validate:"required"`
	Currency     string        `koanf:"currency" validate:"required"`
	PaymentTitle string        `koanf:"payment_title"`
	Timeout      time.Duration `koanf:"timeout" validate:"required"`
}

// NotifyConfig configures the outbound alert sink. An empty source token
// disables it.
type NotifyConfig struct {
	SourceToken string        `koanf:"source_token"`
	BaseURL     string        `koanf:"base_url"`
	Timeout     time.Duration `koanf:"timeout"`
}

// RedisConfig configures the visitor-dedupe cache. Disabled entirely when
// Enabled is false.
type RedisConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Addr         string        `koanf:"addr"`
	Password     string        `koanf:"password"`
	DB           int           `koanf:"db"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	VisitorTTL   time.Duration `koanf:"visitor_ttl"`
}

// AdminConfig holds the back-office credentials and token settings.
type AdminConfig struct {
	Username  string        `koanf:"username" validate:"required"`
	Password  string        `koanf:"password" validate:"required"`
	JWTSecret string        `koanf:"jwt_secret" validate:"required"`
	TokenTTL  time.Duration `koanf:"token_ttl" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("QUICKCART_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "QUICKCART_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	applyDefaults(mainConfig)

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Flutterwave.BaseURL == "" {
		cfg.Flutterwave.BaseURL = "https://api.flutterwave.com"
	}
	if cfg.Flutterwave.Currency == "" {
		cfg.Flutterwave.Currency = "NGN"
	}
	if cfg.Flutterwave.PaymentTitle == "" {
		cfg.Flutterwave.PaymentTitle = "QuickCart Payment"
	}
	if cfg.Flutterwave.Timeout == 0 {
		cfg.Flutterwave.Timeout = 30 * time.Second
	}
	if cfg.Notify.BaseURL == "" {
		cfg.Notify.BaseURL = "https://notify.events/api"
	}
	if cfg.Notify.Timeout == 0 {
		cfg.Notify.Timeout = 5 * time.Second
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}
	if cfg.Redis.VisitorTTL == 0 {
		cfg.Redis.VisitorTTL = 24 * time.Hour
	}
}
