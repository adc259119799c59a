package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int
	MaxBodyBytes      int64
	MaxInFlight       int64
	CORSOrigins       []string `mapstructure:"cors_origins"`

	// whole-server token bucket; 0 disables it
	RatePerSec float64 `mapstructure:"rate_per_sec"`
	RateBurst  int     `mapstructure:"rate_burst"`
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // empty disables file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

func (j JWT) TTL() time.Duration { return time.Duration(j.AccessTokenTTLMin) * time.Minute }

// Auth tunes password hashing and the per-IP limiter on /api/auth/*.
type Auth struct {
	BcryptCost      int     `mapstructure:"bcrypt_cost"`
	HashConcurrency int     `mapstructure:"hash_concurrency"`
	RatePerSec      float64 `mapstructure:"rate_per_sec"`
	RateBurst       int     `mapstructure:"rate_burst"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"` // empty disables the cache
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttl_sec"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Config struct {
	App   App
	Log   Log
	JWT   JWT
	Auth  Auth
	DB    DB
	Redis Redis `mapstructure:"redis"`
}

var (
	ErrMissingSecret = errors.New("config: jwt.secret must be set (APP_JWT_SECRET)")
	ErrShortSecret   = errors.New("config: jwt.secret must be at least 32 bytes")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "w1-app")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 5000)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.requesttimeoutsec", 10)
	v.SetDefault("app.http.maxbodybytes", 1<<20)
	v.SetDefault("app.http.maxinflight", 300)
	v.SetDefault("app.http.cors_origins", []string{"*"})
	v.SetDefault("app.http.rate_per_sec", 500)
	v.SetDefault("app.http.rate_burst", 1000)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxsizemb", 100)
	v.SetDefault("log.maxbackups", 5)
	v.SetDefault("log.maxagedays", 30)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "w1-app")
	v.SetDefault("jwt.accesstokenttlmin", 120)

	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.hash_concurrency", 0)
	v.SetDefault("auth.rate_per_sec", 5)
	v.SetDefault("auth.rate_burst", 10)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl_sec", 300)
}

// Load reads the YAML file at path (or CONFIG_PATH) when it exists and
// applies APP_* environment overrides, e.g. APP_JWT_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate fails fast on settings the service must not start without.
// There is no fallback signing secret.
func (c *Config) Validate() error {
	switch {
	case c.JWT.Secret == "":
		return ErrMissingSecret
	case len(c.JWT.Secret) < 32:
		return ErrShortSecret
	case c.JWT.AccessTokenTTLMin <= 0:
		return fmt.Errorf("config: jwt.accesstokenttlmin must be positive, got %d", c.JWT.AccessTokenTTLMin)
	}
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("config: unsupported db.driver %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return errors.New("config: db.dsn must be set (APP_DB_DSN)")
	}
	return nil
}
