package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr string

	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	CatalogBaseURL string

	DeliveryFee      int64
	MinTopUp         int64
	OrderSettleAfter time.Duration

	TrackingSimulation         bool
	TrackingSimulationDuration time.Duration
	LocationSampleTTL          time.Duration

	RequestTimeout time.Duration
	OrderCacheTTL  time.Duration
}

// DSN is the libpq connection string shared by gorm and the migration runner.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads .env when present and then the process environment, which
// wins over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var p envParser
	cfg := Config{
		HTTPPort:   p.str("HTTP_PORT", "8080"),
		DBHost:     p.str("DB_HOST", "localhost"),
		DBPort:     p.str("DB_PORT", "5432"),
		DBUser:     p.str("DB_USER", "postgres"),
		DBPassword: p.str("DB_PASSWORD", ""),
		DBName:     p.str("DB_NAME", "marketplace"),
		DBSslMode:  p.str("DB_SSLMODE", "disable"),

		RedisAddr: p.str("REDIS_ADDR", "localhost:6379"),

		KafkaBrokers:          p.list("KAFKA_BROKERS", "localhost:9092"),
		KafkaOrderEventsTopic: p.str("KAFKA_ORDER_EVENTS_TOPIC", "marketplace.order-events"),

		CatalogBaseURL: p.str("CATALOG_BASE_URL", "http://localhost:8081"),

		DeliveryFee:      p.int64("DELIVERY_FEE", 10000),
		MinTopUp:         p.int64("MIN_TOP_UP", 10000),
		OrderSettleAfter: p.duration("ORDER_SETTLE_AFTER", 10*time.Minute),

		TrackingSimulation:         p.bool("TRACKING_SIMULATION", false),
		TrackingSimulationDuration: p.duration("TRACKING_SIMULATION_DURATION", 60*time.Second),
		LocationSampleTTL:          p.duration("LOCATION_SAMPLE_TTL", 2*time.Hour),

		RequestTimeout: p.duration("REQUEST_TIMEOUT", 5*time.Second),
		OrderCacheTTL:  p.duration("ORDER_CACHE_TTL", 5*time.Minute),
	}
	if p.err != nil {
		return Config{}, p.err
	}

	if cfg.DeliveryFee < 0 {
		return Config{}, fmt.Errorf("DELIVERY_FEE: %d is negative", cfg.DeliveryFee)
	}
	if cfg.MinTopUp <= 0 {
		return Config{}, fmt.Errorf("MIN_TOP_UP: %d is not greater than 0", cfg.MinTopUp)
	}
	return cfg, nil
}

// envParser collects every malformed variable instead of stopping at the first.
type envParser struct {
	err error
}

func (p *envParser) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *envParser) str(key, def string) string {
	if v, ok := p.lookup(key); ok {
		return v
	}
	return def
}

func (p *envParser) list(key, def string) []string {
	var out []string
	for _, part := range strings.Split(p.str(key, def), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (p *envParser) int64(key string, def int64) int64 {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (p *envParser) bool(key string, def bool) bool {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (p *envParser) duration(key string, def time.Duration) time.Duration {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}
