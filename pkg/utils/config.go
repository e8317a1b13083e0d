package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Gateway     GatewayConfig
	Redis       RedisConfig
	Idempotency IdempotencyConfig
	Kafka       KafkaConfig
	NewRelic    NewRelicConfig
}

type AppConfig struct {
	Name         string
	Port         string
	Debug        bool
	LogPath      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
	SlowQuery   time.Duration
}

// GatewayConfig holds the Chapa credentials and the URLs handed to it on initialize.
type GatewayConfig struct {
	BaseURL     string
	SecretKey   string
	Currency    string
	CallbackURL string
	ReturnURL   string
	Timeout     time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type IdempotencyConfig struct {
	TTL     time.Duration
	LockTTL time.Duration
}

type KafkaConfig struct {
	Brokers      []string
	PaymentTopic string
}

type NewRelicConfig struct {
	Enabled    bool
	AppName    string
	LicenseKey string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "travel-booking")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("HTTP_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_WRITE_TIMEOUT", "30s")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", false)
	viper.SetDefault("DB_SLOW_QUERY", "200ms")
	viper.SetDefault("CHAPA_BASE_URL", "https://api.chapa.co/v1")
	viper.SetDefault("CHAPA_CURRENCY", "ETB")
	viper.SetDefault("CHAPA_CALLBACK_URL", "http://localhost:8000/api/payments/verify/")
	viper.SetDefault("CHAPA_RETURN_URL", "http://localhost:8000/api/payments/success/")
	viper.SetDefault("CHAPA_TIMEOUT", "15s")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("IDEMPOTENCY_TTL", "24h")
	viper.SetDefault("IDEMPOTENCY_LOCK_TTL", "30s")
	viper.SetDefault("KAFKA_PAYMENT_TOPIC", "payment-events")
	viper.SetDefault("NEW_RELIC_ENABLED", false)
	viper.SetDefault("NEW_RELIC_APP_NAME", "travel-booking")

	// .env is optional, the environment alone is enough in containers
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:         viper.GetString("APP_NAME"),
			Port:         viper.GetString("PORT"),
			Debug:        viper.GetBool("DEBUG"),
			LogPath:      viper.GetString("LOG_PATH"),
			ReadTimeout:  viper.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("HTTP_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
			SlowQuery:   viper.GetDuration("DB_SLOW_QUERY"),
		},
		Gateway: GatewayConfig{
			BaseURL:     strings.TrimRight(viper.GetString("CHAPA_BASE_URL"), "/"),
			SecretKey:   viper.GetString("CHAPA_SECRET_KEY"),
			Currency:    viper.GetString("CHAPA_CURRENCY"),
			CallbackURL: viper.GetString("CHAPA_CALLBACK_URL"),
			ReturnURL:   viper.GetString("CHAPA_RETURN_URL"),
			Timeout:     viper.GetDuration("CHAPA_TIMEOUT"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Idempotency: IdempotencyConfig{
			TTL:     viper.GetDuration("IDEMPOTENCY_TTL"),
			LockTTL: viper.GetDuration("IDEMPOTENCY_LOCK_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(viper.GetString("KAFKA_BROKERS")),
			PaymentTopic: viper.GetString("KAFKA_PAYMENT_TOPIC"),
		},
		NewRelic: NewRelicConfig{
			Enabled:    viper.GetBool("NEW_RELIC_ENABLED"),
			AppName:    viper.GetString("NEW_RELIC_APP_NAME"),
			LicenseKey: viper.GetString("NEW_RELIC_LICENSE_KEY"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.Database.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if c.Gateway.SecretKey == "" {
		missing = append(missing, "CHAPA_SECRET_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("CHAPA_TIMEOUT must be positive, got %s", c.Gateway.Timeout)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
