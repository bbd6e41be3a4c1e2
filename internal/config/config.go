package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string        `env:"ENV" env-default:"local"`
	TokenTTL time.Duration `env:"TOKEN_TTL" env-default:"24h"`
	Secret   string        `env:"SECRET" env-required:"true"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Minio    MinioConfig
}

type HTTPConfig struct {
	Port            int           `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// PostgresConfig — реляционное хранилище аккаунтов.
type PostgresConfig struct {
	URL string `env:"DATABASE_URL" env-required:"true"`
}

// MongoConfig — документное хранилище объявлений и застройщиков.
type MongoConfig struct {
	URI      string `env:"MONGO_URI" env-required:"true"`
	Database string `env:"MONGO_DB" env-default:"nestify"`
}

type MinioConfig struct {
	Enabled   bool          `env:"MINIO_ENABLE" env-default:"false"`
	Endpoint  string        `env:"MINIO_ENDPOINT"`
	Bucket    string        `env:"MINIO_BUCKET" env-default:"listing-photos"`
	AccessKey string        `env:"MINIO_USER"`
	SecretKey string        `env:"MINIO_PASSWORD"`
	UseSSL    bool          `env:"MINIO_USE_SSL" env-default:"false"`
	URLTTL    time.Duration `env:"MINIO_URL_TTL" env-default:"15m"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from environment: " + err.Error())
	}
	return &cfg
}
