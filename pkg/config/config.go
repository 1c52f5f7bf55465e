package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "orderlink"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	CartBackendSQL   = "sql"
	CartBackendRedis = "redis"
)

// fallbackImage is an inline SVG shown when a product row carries no image path.
const fallbackImage = `data:image/svg+xml,%3Csvg xmlns="http://www.w3.org/2000/svg" width="400" height="400"%3E%3Crect fill="%23f0f0f0" width="400" height="400"/%3E%3Ctext fill="%23999" font-family="sans-serif" font-size="24" dy="10.5" font-weight="bold" x="50%25" y="50%25" text-anchor="middle"%3ENo Image%3C/text%3E%3C/svg%3E`

type Config struct {
	App     AppConfig
	Store   StoreConfig
	Catalog CatalogConfig
	Cart    CartConfig
	DB      DBConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ORDERLINK_APP_ENV" default:"dev"`
	Port         string `envconfig:"ORDERLINK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ORDERLINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORDERLINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig is the storefront identity: where orders go and how prices render.
type StoreConfig struct {
	WhatsAppNumber string `envconfig:"ORDERLINK_WHATSAPP_NUMBER" required:"true"`
	CurrencySymbol string `envconfig:"ORDERLINK_CURRENCY_SYMBOL" default:"₹"`
	ImageFallback  string `envconfig:"ORDERLINK_IMAGE_FALLBACK"`
}

func (s *StoreConfig) validate() error {
	number := strings.TrimSpace(s.WhatsAppNumber)
	if number == "" {
		return fmt.Errorf("whatsapp number is required")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return fmt.Errorf("whatsapp number must be digits only with country code, got %q", s.WhatsAppNumber)
		}
	}
	s.WhatsAppNumber = number
	if s.ImageFallback == "" {
		s.ImageFallback = fallbackImage
	}
	return nil
}

type CatalogConfig struct {
	Path  string `envconfig:"ORDERLINK_CATALOG_PATH" default:"products.xlsx"`
	URL   string `envconfig:"ORDERLINK_CATALOG_URL"`
	Watch bool   `envconfig:"ORDERLINK_CATALOG_WATCH" default:"false"`

	FetchTimeout time.Duration `envconfig:"ORDERLINK_CATALOG_FETCH_TIMEOUT" default:"30s"`
}

type CartConfig struct {
	Backend string `envconfig:"ORDERLINK_CART_BACKEND" default:"sql"`
	Key     string `envconfig:"ORDERLINK_CART_KEY" default:"cart"`
}

func (c *CartConfig) validate() error {
	backend := strings.ToLower(strings.TrimSpace(c.Backend))
	switch backend {
	case CartBackendSQL, CartBackendRedis:
		c.Backend = backend
	default:
		return fmt.Errorf("unknown cart backend %q", c.Backend)
	}
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("cart key is required")
	}
	return nil
}

type DBConfig struct {
	Driver string `envconfig:"ORDERLINK_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"ORDERLINK_DB_DSN" default:"orderlink.db"`

	MaxOpenConns    int           `envconfig:"ORDERLINK_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"ORDERLINK_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"ORDERLINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ORDERLINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ORDERLINK_REDIS_URL"`
	Address      string        `envconfig:"ORDERLINK_REDIS_ADDR"`
	Password     string        `envconfig:"ORDERLINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORDERLINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORDERLINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORDERLINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORDERLINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORDERLINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ORDERLINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}
