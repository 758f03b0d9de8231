package config

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress           string
	BaseURL              string
	DatabaseURI          string
	StripeSecretKey      string
	StripePublishableKey string
	StripeWebhookSecret  string
	StripeAPIURL         string
	StatusPolicy         string
	FetchTimeout         time.Duration
	ReconcileWorkers     int
	ReconcileQueueSize   int
	LogLevel             slog.Level
}

// New reads .env if present, then flags, then environment variables.
// Environment wins over flags.
func New() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}
	return Parse(flag.CommandLine, os.Args[1:])
}

func Parse(fs *flag.FlagSet, args []string) *Config {
	cfg := &Config{}

	fs.StringVar(&cfg.RunAddress, "a", ":3000", "server address and port")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "database URI, empty keeps statuses in memory")
	fs.StringVar(&cfg.BaseURL, "b", "", "public base URL used in checkout redirects")
	fs.StringVar(&cfg.StatusPolicy, "p", "last-write-wins", "status write policy: last-write-wins or monotonic")
	fs.DurationVar(&cfg.FetchTimeout, "t", 10*time.Second, "account fetch timeout")
	fs.IntVar(&cfg.ReconcileWorkers, "w", 4, "reconcile workers")
	_ = fs.Parse(args)

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.DatabaseURI = getEnv("DATABASE_URI", cfg.DatabaseURI)
	cfg.BaseURL = getEnv("BASE_URL", cfg.BaseURL)
	cfg.StatusPolicy = getEnv("STATUS_POLICY", cfg.StatusPolicy)
	cfg.StripeSecretKey = getEnv("STRIPE_SECRET_KEY", "")
	cfg.StripePublishableKey = getEnv("STRIPE_PUBLISHABLE_KEY", "")
	cfg.StripeWebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", "")
	cfg.StripeAPIURL = getEnv("STRIPE_API_URL", "")
	cfg.FetchTimeout = getDuration("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.ReconcileWorkers = getInt("RECONCILE_WORKERS", cfg.ReconcileWorkers)
	cfg.ReconcileQueueSize = getInt("RECONCILE_QUEUE_SIZE", 256)

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		cfg.LogLevel = slog.LevelInfo
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + port(cfg.RunAddress)
	}

	return cfg
}

func port(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "3000"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("ignoring invalid config value", "key", key, "value", v)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid config value", "key", key, "value", v)
		return fallback
	}
	return d
}
