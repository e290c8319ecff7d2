package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv    string          `mapstructure:"env"`
	LogLevel  string          `mapstructure:"log_level"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Cart      CartConfig      `mapstructure:"cart"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CatalogConfig struct {
	// Source is file, http, or a database backend (postgres, mysql, sqlite)
	// reading the products table at database.url.
	Source       string        `mapstructure:"source"`
	Path         string        `mapstructure:"path"`
	URL          string        `mapstructure:"url"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	Locale       string        `mapstructure:"locale"`
	Currency     string        `mapstructure:"currency"`
	PageSize     int           `mapstructure:"page_size"`
}

type CartConfig struct {
	Key string `mapstructure:"key"`
	// Backend is memory, file, redis, postgres, mysql or sqlite.
	Backend  string `mapstructure:"backend"`
	Dir      string `mapstructure:"dir"`
	MaxBytes int    `mapstructure:"max_bytes"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RateLimitConfig struct {
	RPS     float64       `mapstructure:"rps"`
	Burst   int           `mapstructure:"burst"`
	IdleTTL time.Duration `mapstructure:"idle_ttl"`
}

var (
	catalogSources = []string{"file", "http", "postgres", "mysql", "sqlite"}
	cartBackends   = []string{"memory", "file", "redis", "postgres", "mysql", "sqlite"}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "info")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "db.json")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.fetch_timeout", 10*time.Second)
	v.SetDefault("catalog.locale", "ru")
	v.SetDefault("catalog.currency", "руб.")
	v.SetDefault("catalog.page_size", 21)

	v.SetDefault("cart.key", "cart")
	v.SetDefault("cart.backend", "file")
	v.SetDefault("cart.dir", ".storefront")
	v.SetDefault("cart.max_bytes", 5<<20)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "storefront:")

	v.SetDefault("database.url", "")

	v.SetDefault("ratelimit.rps", 10.0)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("ratelimit.idle_ttl", 5*time.Minute)
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":    "log_level",
	"catalog":      "catalog.path",
	"cart-backend": "cart.backend",
	"cart-dir":     "cart.dir",
}

// Load reads configuration from defaults, an optional config file, the
// environment (STOREFRONT_ prefix, plus DATABASE_URL and REDIS_ADDR) and any
// flags present in flags. Later sources win.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", "STOREFRONT_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis.addr", "STOREFRONT_REDIS_ADDR", "REDIS_ADDR")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("storefront")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	var errs []error
	if !contains(catalogSources, c.Catalog.Source) {
		errs = append(errs, fmt.Errorf("catalog.source must be one of %v, got %q", catalogSources, c.Catalog.Source))
	}
	if c.Catalog.Source == "http" && c.Catalog.URL == "" {
		errs = append(errs, errors.New("catalog.url is required for the http source"))
	}
	if c.Catalog.PageSize <= 0 {
		errs = append(errs, errors.New("catalog.page_size must be positive"))
	}
	if !contains(cartBackends, c.Cart.Backend) {
		errs = append(errs, fmt.Errorf("cart.backend must be one of %v, got %q", cartBackends, c.Cart.Backend))
	}
	if strings.TrimSpace(c.Cart.Key) == "" {
		errs = append(errs, errors.New("cart.key is required"))
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("ratelimit.rps and ratelimit.burst must be positive"))
	}
	return errors.Join(errs...)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
