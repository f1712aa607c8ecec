package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=minibank;Username=postgres;Password=postgres"
const defaultHTTPAddr = ":8080"
const defaultMigrationsDir = "migrations"
const defaultRatesURL = "https://www.cbr-xml-daily.ru"
const defaultRedisAddr = "localhost:6379"
const defaultRateCacheTTL = 5 * time.Minute
const defaultChannelID = "MiniBankApp"
const defaultChannelKey = "MiniBankKey001"

type Config struct {
	HTTPAddr      string
	DatabaseDSN   string
	MigrationsDir string
	RatesURL      string
	RedisAddr     string
	RateCacheTTL  time.Duration
	ChannelID     string
	ChannelKey    string
}

func Load() (Config, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	ttl := defaultRateCacheTTL
	if raw := strings.TrimSpace(os.Getenv("RATE_CACHE_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, err
		}
		ttl = parsed
	}

	return Config{
		HTTPAddr:      envOrDefault("HTTP_ADDR", defaultHTTPAddr),
		DatabaseDSN:   normalizeConnectionString(envOrDefault("DATABASE_DSN", defaultConnectionString)),
		MigrationsDir: envOrDefault("MIGRATIONS_DIR", defaultMigrationsDir),
		RatesURL:      envOrDefault("RATES_URL", defaultRatesURL),
		RedisAddr:     envOrDefault("REDIS_ADDR", defaultRedisAddr),
		RateCacheTTL:  ttl,
		ChannelID:     envOrDefault("CHANNEL_ID", defaultChannelID),
		ChannelKey:    envOrDefault("CHANNEL_KEY", defaultChannelKey),
	}, nil
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

// normalizeConnectionString accepts either a libpq DSN or the semicolon
// `Host=...;Port=...` form older deployments still carry, and returns a
// libpq DSN.
func normalizeConnectionString(raw string) string {
	if !strings.Contains(raw, ";") && !strings.Contains(raw, "Host=") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
