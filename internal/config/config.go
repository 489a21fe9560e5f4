// Package config предоставялет структуры и функции для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения запуска.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	Backend         `yaml:"backend"`
	HTTPServer      `yaml:"http_server"`
	RedisConnection `yaml:"redis_connection"`
	Session         `yaml:"session"`
	RabbitMQ        `yaml:"rabbitmq"`
	RateLimit       `yaml:"rate_limit"`
}

// Backend структура для настройки клиента внешнего REST API.
// BaseURL единственный источник адреса бэкенда: относительный путь
// (например "/api") не поддерживается, т.к. запросы идут с сервера.
type Backend struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-default:"http://localhost:5001/api"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"10s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"2s"`
	TimeoutRedis time.Duration `yaml:"timeout" env-default:"1s"`
}

// Session структура для настройки браузерных сессий.
type Session struct {
	CookieName      string        `yaml:"cookie_name" env-default:"maiolini_sid"`
	CookieSecure    bool          `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
	TokenTTL        time.Duration `yaml:"token_ttl" env-default:"168h"`
	UserCacheTTL    time.Duration `yaml:"user_cache_ttl" env-default:"1m"`
	ValidateWait    time.Duration `yaml:"validate_wait" env-default:"2s"`
	ValidateTimeout time.Duration `yaml:"validate_timeout" env-default:"10s"`
}

// RabbitMQ структура для настройки публикации заявок с формы контато.
// Пустой URL отключает брокер: заявки только пишутся в лог.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	MaxRetries int           `yaml:"max_retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
	Exchange   string        `yaml:"exchange" env-default:"leads"`
	RoutingKey string        `yaml:"routing_key" env-default:"contato"`
	Queue      string        `yaml:"queue" env-default:"leads.contato"`
}

// RateLimit структура для настройки ограничения частоты POST-запросов форм.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"1"`
	Burst int     `yaml:"burst" env-default:"5"`
}

// Load читает конфиг из файла по пути path, дополняя его переменными окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if path == "" {
		return nil, fmt.Errorf("%s: %w", op, errors.New("config path is empty"))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, завершает процесс при ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	if c.BaseURL == "" {
		return errors.New("backend base_url is required")
	}
	if c.CookieName == "" {
		return errors.New("session cookie_name is required")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Backend:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"Session:\n"+
			"  CookieName: %s\n"+
			"  TokenTTL: %s\n"+
			"  UserCacheTTL: %s\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n",
		c.Env,
		c.BaseURL,
		c.Backend.Timeout,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressRedis,
		c.User,
		c.DB,
		c.CookieName,
		c.TokenTTL,
		c.UserCacheTTL,
		c.RabbitMQ.URL != "",
		c.Exchange,
	)
}
