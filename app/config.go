package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`
	TLSCertFile    string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string   `mapstructure:"TLS_KEY_FILE"`

	StoreDriver    string        `mapstructure:"STORE_DRIVER"`
	DataDir        string        `mapstructure:"DATA_DIR"`
	PublicDir      string        `mapstructure:"PUBLIC_DIR"`
	PublicURL      string        `mapstructure:"PUBLIC_URL"`
	MaxUploadBytes int64         `mapstructure:"MAX_UPLOAD_BYTES"`
	CacheTTL       time.Duration `mapstructure:"CACHE_TTL"`

	RateLimitEnabled bool    `mapstructure:"LIMITER_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"LIMITER_RPS"`
	RateLimitBurst   int     `mapstructure:"LIMITER_BURST"`

	CoverStorage   string `mapstructure:"COVER_STORAGE"`
	MinIOEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket    string `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	DBHost     string `mapstructure:"POSTGRES_HOST"`
	DBPort     string `mapstructure:"POSTGRES_PORT"`
	DBUser     string `mapstructure:"POSTGRES_USER"`
	DBPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName     string `mapstructure:"POSTGRES_DB"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`
}

var defaults = map[string]any{
	"PORT":              "3002",
	"ENVIRONMENT":       "development",
	"VERSION":           "",
	"TRUSTED_ORIGINS":   "",
	"TLS_CERT_FILE":     "",
	"TLS_KEY_FILE":      "",
	"STORE_DRIVER":      "file",
	"DATA_DIR":          "./data",
	"PUBLIC_DIR":        "./public",
	"PUBLIC_URL":        "http://localhost:3002",
	"MAX_UPLOAD_BYTES":  5 << 20,
	"CACHE_TTL":         "0s",
	"LIMITER_ENABLED":   true,
	"LIMITER_RPS":       10,
	"LIMITER_BURST":     20,
	"COVER_STORAGE":     "disk",
	"MINIO_ENDPOINT":    "",
	"MINIO_ACCESS_KEY":  "",
	"MINIO_SECRET_KEY":  "",
	"MINIO_BUCKET":      "covers",
	"MINIO_USE_SSL":     false,
	"POSTGRES_HOST":     "",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "",
	"POSTGRES_PASSWORD": "",
	"POSTGRES_DB":       "",
	"RABBITMQ_HOST":     "",
	"RABBITMQ_PORT":     "5672",
	"RABBITMQ_USER":     "",
	"RABBITMQ_PASSWORD": "",
	"MAIL_HOST":         "",
	"MAIL_PORT":         587,
	"MAIL_USER":         "",
	"MAIL_PASSWORD":     "",
	"MAIL_SENDER":       "",
}

// loadConfig reads the env file at path. Environment variables override the
// file and a missing file leaves the defaults in place.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
