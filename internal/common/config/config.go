package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/leonid6372/portfolio-service/pkg/log"
)

const (
	EnvProd = "prod"
	EnvTest = "test"
)

type Config struct {
	Env string `yaml:"env" env:"ENV" env-upd:""`

	Log      Log      `yaml:"log"`
	Postgres Postgres `yaml:"postgres"`
	Server   Server   `yaml:"server"`
	Auth     Auth     `yaml:"auth"`
	Quotes   Quotes   `yaml:"quotes"`
}

type Log struct {
	Level    string `yaml:"level" env:"LOG_LEVEL" env-default:"info" env-upd:""`
	Encoding string `yaml:"encoding" env:"LOG_ENCODING" env-default:"console" env-upd:""`
}

type Postgres struct {
	Database string `yaml:"database" env:"POSTGRES_DATABASE" env-upd:""`
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-upd:""`
	Schema   string `yaml:"schema" env:"POSTGRES_SCHEMA" env-default:"portfolio" env-upd:""`
	Username string `yaml:"username" env:"POSTGRES_USER" env-upd:""`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-upd:""`
	Port     int64  `yaml:"port" env:"POSTGRES_PORT" env-default:"5432" env-upd:""`
}

type Server struct {
	Port            int64         `yaml:"port" env:"SERVER_PORT" env-default:"8080" env-upd:""`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s" env-upd:""`
}

// Auth carries the token signing secret. It has no default on purpose:
// the process refuses to start without an explicitly configured secret.
type Auth struct {
	TokenSecret string `yaml:"token_secret" env:"AUTH_TOKEN_SECRET" env-upd:""`
}

type Quotes struct {
	BaseURL  string        `yaml:"base_url" env:"QUOTES_BASE_URL" env-default:"https://query1.finance.yahoo.com" env-upd:""`
	Timeout  time.Duration `yaml:"timeout" env:"QUOTES_TIMEOUT" env-default:"5s" env-upd:""`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"QUOTES_CACHE_TTL" env-default:"1m" env-upd:""`
	Retries  uint64        `yaml:"retries" env:"QUOTES_RETRIES" env-default:"2" env-upd:""`
}

func (c *Config) GetPostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Postgres.Username, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.Database)
}

func GetConfig(configPath string) *Config {
	if configPath == "" {
		log.Fatal("config path is required")
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatal(err.Error())
	}

	if err := cleanenv.UpdateEnv(&cfg); err != nil {
		log.Fatal(err.Error())
	}

	if cfg.Auth.TokenSecret == "" {
		log.Fatal("auth token secret is required")
	}

	return &cfg
}
