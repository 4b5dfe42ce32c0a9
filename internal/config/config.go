package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/nyc-burger-co/kiosk-api/internal/pricing"
)

// Config holds application configuration loaded from the environment. Redis
// is optional: without it the idempotency and rate-limit middlewares pass
// through and health skips the probe.
type Config struct {
	AppEnv             string
	Port               string
	RedisURL           string
	CORSAllowedOrigins []string

	Prices     pricing.PriceList
	TaxRateBps int

	BurgerName     string
	PickupEstimate string

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	PaymentLatency     time.Duration
	PaymentMaxAttempts int
	PaymentWindow      time.Duration
	IdempotencyTTL     time.Duration

	LogFormat string
	LogLevel  string

	MetricsNamespace string

	TracingEnabled  bool
	TracingEndpoint string
	TracingSampling float64
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	defaults := pricing.DefaultPrices()
	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		Prices: pricing.PriceList{
			Base:      parseMoney(k.String("PRICING_BASE_CENTS"), defaults.Base),
			Patty:     parseMoney(k.String("PRICING_PATTY_CENTS"), defaults.Patty),
			Onions:    parseMoney(k.String("PRICING_ONIONS_CENTS"), defaults.Onions),
			Jalapenos: parseMoney(k.String("PRICING_JALAPENOS_CENTS"), defaults.Jalapenos),
			MenuDuo:   parseMoney(k.String("PRICING_MENU_DUO_CENTS"), defaults.MenuDuo),
		},
		TaxRateBps: parseInt(k.String("PRICING_TAX_RATE_BPS"), 875),

		BurgerName:     valueOrDefault(k.String("KIOSK_BURGER_NAME"), "NYC Knicks Burger"),
		PickupEstimate: valueOrDefault(k.String("KIOSK_PICKUP_ESTIMATE"), "15-20 minutes"),

		SessionTTL:           parseDuration(k.String("SESSION_TTL"), "1h"),
		SessionSweepInterval: parseDuration(k.String("SESSION_SWEEP_INTERVAL"), "1m"),

		PaymentLatency:     parseDuration(k.String("PAYMENT_SIM_LATENCY"), "2s"),
		PaymentMaxAttempts: parseInt(k.String("PAYMENT_MAX_ATTEMPTS"), 5),
		PaymentWindow:      parseDuration(k.String("PAYMENT_ATTEMPT_WINDOW"), "1m"),
		IdempotencyTTL:     parseDuration(k.String("IDEMPOTENCY_TTL"), "10m"),

		LogFormat: valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:  valueOrDefault(k.String("LOG_LEVEL"), "info"),

		MetricsNamespace: valueOrDefault(k.String("METRICS_NAMESPACE"), "kiosk"),

		TracingEnabled:  parseBool(k.String("TRACING_ENABLED")),
		TracingEndpoint: strings.TrimSpace(k.String("TRACING_ENDPOINT")),
		TracingSampling: parseFloat(k.String("TRACING_SAMPLING_RATIO"), 1),
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return n
}

func parseMoney(value string, fallback pricing.Money) pricing.Money {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func parseFloat(value string, fallback float64) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fallback
	}
	return f
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
