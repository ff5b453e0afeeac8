package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures service-level configuration.
type Config struct {
	Addr string

	// DatabaseURL selects the postgres entity/audit stores when set;
	// empty falls back to in-memory stores (dev mode).
	DatabaseURL string

	Redis RedisConfig

	// KafkaBrokers enables the Kafka audit publisher when non-empty.
	KafkaBrokers []string
	AuditTopic   string

	// StageTimeout bounds every entity-store call inside the pipeline so one
	// slow lookup cannot stall a batch.
	StageTimeout time.Duration

	// BatchWorkers caps concurrent queries inside one batch screening call.
	BatchWorkers int
}

// RedisConfig configures the optional entity-cache layer.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// EntityCacheTTL enforces retention for cached exact-lookup results. Kept
// short so a list refresh becomes visible quickly.
var EntityCacheTTL = 5 * time.Minute

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("WATCHLIST_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	topic := os.Getenv("AUDIT_TOPIC")
	if topic == "" {
		topic = "watchlist.audit.matches"
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT_MS", 500*time.Millisecond),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT_MS", 200*time.Millisecond),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT_MS", 200*time.Millisecond),
		},
		KafkaBrokers: brokers,
		AuditTopic:   topic,
		StageTimeout: envDuration("SCREEN_STAGE_TIMEOUT_MS", 250*time.Millisecond),
		BatchWorkers: envInt("SCREEN_BATCH_WORKERS", 8),
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return time.Duration(v) * time.Millisecond
		}
	}
	return fallback
}
