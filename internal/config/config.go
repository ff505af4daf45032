package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	// CartBackend selects where carts live: sqlite (default), redis or postgres.
	CartBackend string
	CartTTL     time.Duration

	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig

	FlatShippingFee       float64
	FreeShippingThreshold float64
	// PromoCodes maps codes to discount rates, e.g. "WELCOME10:0.10,LEBARAN25:0.25".
	PromoCodes map[string]float64

	// Requests per minute per IP, and login attempts per IP per 10 minutes.
	RateLimit      int
	LoginRateLimit int
}

type RedisConfig struct {
	Addrs         []string
	Password      string
	DB            int
	EventsChannel string
}

type PostgresConfig struct {
	DSN string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:        envOrDefault("PORT", "8080"),
		DBDSN:       envOrDefault("DB_DSN", "kriya.db"), // sqlite file in project root
		LogFile:     envOrDefault("LOG_FILE", "./kriya.log"),
		CartBackend: strings.ToLower(envOrDefault("CART_BACKEND", "sqlite")),
		CartTTL:     envDuration("CART_TTL", 30*24*time.Hour),
		Redis: RedisConfig{
			Addrs:         splitAndTrim(os.Getenv("REDIS_ADDRS"), ","),
			Password:      os.Getenv("REDIS_PASSWORD"),
			DB:            envInt("REDIS_DB", 0),
			EventsChannel: os.Getenv("CART_EVENTS_CHANNEL"),
		},
		Postgres: PostgresConfig{DSN: os.Getenv("POSTGRES_DSN")},
		Kafka: KafkaConfig{
			Brokers: splitAndTrim(os.Getenv("KAFKA_BROKERS"), ","),
			Topic:   envOrDefault("KAFKA_TOPIC", "cart-events"),
		},
		FlatShippingFee:       envFloat("SHIPPING_FLAT_FEE", 50000),
		FreeShippingThreshold: envFloat("FREE_SHIPPING_THRESHOLD", 5000000),
		PromoCodes:            parsePromoCodes(envOrDefault("PROMO_CODES", "WELCOME10:0.10")),
		RateLimit:             envInt("RATE_LIMIT", 60),
		LoginRateLimit:        envInt("LOGIN_RATE_LIMIT", 5),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CART_BACKEND=%s REDIS_ADDRS=%v KAFKA_BROKERS=%v PROMO_CODES=%d",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.CartBackend, cfg.Redis.Addrs, cfg.Kafka.Brokers, len(cfg.PromoCodes))
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(str, sep string) []string {
	var result []string
	for _, part := range strings.Split(str, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parsePromoCodes reads CODE:RATE pairs. Malformed pairs and rates outside
// (0, 1] are skipped.
func parsePromoCodes(s string) map[string]float64 {
	out := map[string]float64{}
	for _, pair := range splitAndTrim(s, ",") {
		code, rate, ok := strings.Cut(pair, ":")
		if !ok {
			log.Printf("[config] skipping promo code %q: want CODE:RATE", pair)
			continue
		}
		r, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
		if err != nil || r <= 0 || r > 1 {
			log.Printf("[config] skipping promo code %q: bad rate", pair)
			continue
		}
		out[strings.ToUpper(strings.TrimSpace(code))] = r
	}
	return out
}
