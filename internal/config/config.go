package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the persisted cart record.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageNone     = "none"
)

type Catalog struct {
	BaseURL  string
	TTL      time.Duration
	CacheCap int
	RPS      int
	Timeout  time.Duration
}

type Cart struct {
	Storage    string
	StorageKey string
	Dir        string
	Table      string
}

type Postgres struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	SSLMode  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Kafka struct {
	Brokers    []string
	Topic      string
	Group      string
	Workers    int
	Partitions int
}

type Relay struct {
	Upstream string
	Addr     string
}

type Breaker struct {
	Threshold   uint32
	OpenTimeout time.Duration
	MaxHalfOpen uint32
}

type Retry struct {
	Attempts     int
	Base         time.Duration
	Max          time.Duration
	JitterFactor float64
}

type Config struct {
	HTTPAddr        string
	AppEnv          string
	LogLevel        string
	PrefetchWorkers int

	Catalog Catalog
	Cart    Cart
	Pg      Postgres
	Redis   Redis
	Kafka   Kafka
	Relay   Relay
	Breaker Breaker
	Retry   Retry
}

// Load fatals on error for simplicity in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTPAddr:        envDefault("HTTP_ADDR", ":8080"),
		AppEnv:          strings.ToLower(envDefault("APP_ENV", "prod")),
		LogLevel:        envDefault("LOG_LEVEL", "info"),
		PrefetchWorkers: envInt("IMAGE_PREFETCH_WORKERS", 4),

		Catalog: Catalog{
			BaseURL:  strings.TrimRight(envDefault("CATALOG_BASE_URL", "https://fakestoreapi.com"), "/"),
			TTL:      envDurationMS("CATALOG_TTL", time.Hour),
			CacheCap: envInt("CATALOG_CACHE_CAP", 1000),
			RPS:      envInt("CATALOG_RPS", 20),
			Timeout:  envDurationMS("CATALOG_TIMEOUT", 15*time.Second),
		},

		Cart: Cart{
			Storage:    strings.ToLower(envDefault("CART_STORAGE", StorageFile)),
			StorageKey: envDefault("CART_STORAGE_KEY", "my-cart"),
			Dir:        envDefault("CART_DIR", "data"),
			Table:      envDefault("CART_TABLE", "storefront_kv"),
		},

		Pg: Postgres{
			Host:     strings.TrimSpace(os.Getenv("PG_HOST")),
			Port:     strings.TrimSpace(envDefault("PG_PORT", "5432")),
			DB:       strings.TrimSpace(os.Getenv("PG_DB")),
			User:     strings.TrimSpace(os.Getenv("PG_USER")),
			Password: strings.TrimSpace(os.Getenv("PG_PASSWORD")),
			SSLMode:  strings.TrimSpace(envDefault("PG_SSLMODE", "disable")),
		},

		Redis: Redis{
			Addr:     envDefault("REDIS_ADDR", "localhost:6379"),
			Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
			DB:       envInt("REDIS_DB", 0),
		},

		Kafka: Kafka{
			Brokers:    splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:      envDefault("KAFKA_TOPIC", "catalog-products"),
			Group:      envDefault("KAFKA_GROUP", "storefront"),
			Workers:    envInt("KAFKA_WORKERS", 4),
			Partitions: envInt("KAFKA_PARTITIONS", 1),
		},

		Relay: Relay{
			Upstream: strings.TrimRight(envDefault("RELAY_UPSTREAM", "https://fakestoreapi.com"), "/"),
			Addr:     strings.TrimSpace(os.Getenv("RELAY_ADDR")),
		},

		Breaker: Breaker{
			Threshold:   envUint32("BREAKER_THRESHOLD", 5),
			OpenTimeout: envDurationMS("BREAKER_OPENTIMEOUT", 10*time.Second),
			MaxHalfOpen: envUint32("BREAKER_MAXHALFOPEN", 3),
		},

		Retry: Retry{
			Attempts:     envInt("RETRY_ATTEMPTS", 3),
			Base:         envDurationMS("RETRY_BASE", 100*time.Millisecond),
			Max:          envDurationMS("RETRY_MAX", 2*time.Second),
			JitterFactor: envFloat64("RETRY_JITTERFACTOR", 0.3),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	req := map[string]string{
		"CATALOG_BASE_URL": c.Catalog.BaseURL,
		"CART_STORAGE_KEY": c.Cart.StorageKey,
	}
	switch c.Cart.Storage {
	case StorageFile:
		req["CART_DIR"] = c.Cart.Dir
	case StoragePostgres:
		req["PG_HOST"] = c.Pg.Host
		req["PG_DB"] = c.Pg.DB
		req["PG_USER"] = c.Pg.User
		req["PG_PASSWORD"] = c.Pg.Password
	case StorageRedis:
		req["REDIS_ADDR"] = c.Redis.Addr
	case StorageNone:
	default:
		return &invalidEnvError{Key: "CART_STORAGE", Value: c.Cart.Storage}
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}

	if _, err := url.Parse(c.Catalog.BaseURL); err != nil {
		return &invalidEnvError{Key: "CATALOG_BASE_URL", Value: c.Catalog.BaseURL}
	}
	if c.Catalog.CacheCap <= 0 {
		log.Printf("CATALOG_CACHE_CAP is %d, adjusting to 1", c.Catalog.CacheCap)
	}
	if c.Catalog.RPS <= 0 {
		log.Printf("CATALOG_RPS is %d, rate limit disabled", c.Catalog.RPS)
	}
	if c.Retry.Attempts < 1 {
		log.Printf("RETRY_ATTEMPTS is %d, adjusting to 1", c.Retry.Attempts)
	}
	if c.Retry.Max < c.Retry.Base {
		log.Printf("RETRY_MAX (%v) < RETRY_BASE (%v), adjusting max to base", c.Retry.Max, c.Retry.Base)
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

type invalidEnvError struct{ Key, Value string }

func (e *invalidEnvError) Error() string {
	return "invalid value for " + e.Key + ": " + strconv.Quote(e.Value)
}

// KafkaEnabled reports whether the catalog change feed should run.
func (c Config) KafkaEnabled() bool { return len(c.Kafka.Brokers) > 0 }

// DSN builds a proper Postgres URL, safely escaping user/pass and query.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Pg.User, c.Pg.Password),
		Host:   net.JoinHostPort(c.Pg.Host, c.Pg.Port),
		Path:   "/" + c.Pg.DB,
	}
	q := url.Values{}
	if c.Pg.SSLMode != "" {
		q.Set("sslmode", c.Pg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envUint32(k string, def uint32) uint32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	u, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return uint32(u)
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
