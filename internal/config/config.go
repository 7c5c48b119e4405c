package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/internal/domain"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Хранилища черновиков
const (
	DraftStorageMemory = "memory"
	DraftStorageRedis  = "redis"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	StudioAPI StudioAPIConfig `toml:"studio_api"`
	Drafts    DraftsConfig    `toml:"drafts"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	CORS      CORSConfig      `toml:"cors"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig параметры PostgreSQL (квитанции)
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig параметры Redis (хранилище черновиков)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StudioAPIConfig параметры REST API студий
type StudioAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// DraftsConfig параметры черновиков
type DraftsConfig struct {
	Storage         string `toml:"storage"`          // memory | redis
	TTLMinutes      int    `toml:"ttl_minutes"`      // время жизни с последнего изменения
	JanitorInterval int    `toml:"janitor_interval"` // секунды, только для memory
}

// TTL время жизни черновика
func (c DraftsConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// RateLimitConfig ограничение частоты проверки купонов на клиента
type RateLimitConfig struct {
	CouponPerMinute   int      `toml:"coupon_per_minute"`
	CouponBurst       int      `toml:"coupon_burst"`
	ReceiptsPerMinute int      `toml:"receipts_per_minute"`
	ReceiptsBurst     int      `toml:"receipts_burst"`
	TrustedProxies    []string `toml:"trusted_proxies"` // IP или CIDR; X-Forwarded-For читается только от них
}

// CORSConfig разрешенные источники SPA
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает конфигурацию из TOML файла, заполняет значения по умолчанию и проверяет ее
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "booking-flow",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		StudioAPI: StudioAPIConfig{
			Timeout: 10,
		},
		Drafts: DraftsConfig{
			Storage:         DraftStorageMemory,
			TTLMinutes:      120,
			JanitorInterval: 60,
		},
		RateLimit: RateLimitConfig{
			CouponPerMinute:   10,
			CouponBurst:       3,
			ReceiptsPerMinute: 20,
			ReceiptsBurst:     5,
		},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.StudioAPI.URL == "" {
		problems = append(problems, "studio_api.url is required")
	}
	if c.StudioAPI.Timeout <= 0 {
		problems = append(problems, "studio_api.timeout must be positive")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}

	c.Drafts.Storage = strings.ToLower(c.Drafts.Storage)
	switch c.Drafts.Storage {
	case DraftStorageMemory:
		if c.Drafts.JanitorInterval <= 0 {
			problems = append(problems, "drafts.janitor_interval must be positive")
		}
	case DraftStorageRedis:
		if c.Redis.Addr == "" {
			problems = append(problems, "redis.addr is required for redis draft storage")
		}
	default:
		problems = append(problems, fmt.Sprintf("drafts.storage must be %q or %q", DraftStorageMemory, DraftStorageRedis))
	}
	if c.Drafts.TTL() < domain.MinDraftTTL {
		problems = append(problems, fmt.Sprintf("drafts.ttl_minutes must be at least %d", int(domain.MinDraftTTL.Minutes())))
	}

	if c.RateLimit.CouponPerMinute <= 0 || c.RateLimit.CouponBurst <= 0 {
		problems = append(problems, "rate_limit.coupon_per_minute and rate_limit.coupon_burst must be positive")
	}
	if c.RateLimit.ReceiptsPerMinute <= 0 || c.RateLimit.ReceiptsBurst <= 0 {
		problems = append(problems, "rate_limit.receipts_per_minute and rate_limit.receipts_burst must be positive")
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !validProxy(proxy) {
			problems = append(problems, fmt.Sprintf("rate_limit.trusted_proxies: %q is not an IP or CIDR", proxy))
		}
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func validProxy(v string) bool {
	v = strings.TrimSpace(v)
	if _, _, err := net.ParseCIDR(v); err == nil {
		return true
	}
	return net.ParseIP(v) != nil
}
