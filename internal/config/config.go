package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	StripeAPIKey        string
	StripeWebhookSecret string
	SignatureTolerance  time.Duration
	SweepInterval       time.Duration
	SweepBatchSize      int
	PendingMaxAge       time.Duration
	WorkerPoolSize      int
	ShutdownTimeout     time.Duration
	OrderListLimit      int
}

const (
	defaultRunAddress         = ":8080"
	defaultSignatureTolerance = 5 * time.Minute
	defaultSweepInterval      = time.Minute
	defaultSweepBatchSize     = 32
	defaultPendingMaxAge      = 15 * time.Minute
	defaultWorkerPoolSize     = 4
	defaultShutdownTimeout    = 10 * time.Second
	defaultOrderListLimit     = 100
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		StripeAPIKey:        getString(lookup, "STRIPE_API_KEY", ""),
		StripeWebhookSecret: getString(lookup, "STRIPE_WEBHOOK_SECRET", ""),
		SignatureTolerance:  getDuration(lookup, "SIGNATURE_TOLERANCE", defaultSignatureTolerance),
		SweepInterval:       getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweepBatchSize:      getInt(lookup, "SWEEP_BATCH_SIZE", defaultSweepBatchSize),
		PendingMaxAge:       getDuration(lookup, "PENDING_MAX_AGE", defaultPendingMaxAge),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		OrderListLimit:      getInt(lookup, "ORDER_LIST_LIMIT", defaultOrderListLimit),
	}

	fs := flag.NewFlagSet("shopgate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		toleranceStr       = cfg.SignatureTolerance.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		pendingAgeStr      = cfg.PendingMaxAge.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.StripeAPIKey, "stripe-key", cfg.StripeAPIKey, "Stripe secret API key")
	fs.StringVar(&cfg.StripeWebhookSecret, "webhook-secret", cfg.StripeWebhookSecret, "Stripe webhook signing secret")
	fs.StringVar(&toleranceStr, "signature-tolerance", toleranceStr, "Accepted age of webhook signatures")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between pending payment sweeps")
	fs.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum orders per sweep batch")
	fs.StringVar(&pendingAgeStr, "pending-age", pendingAgeStr, "Age after which a Pending order is re-checked")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweep workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SignatureTolerance, err = time.ParseDuration(toleranceStr); err != nil {
		return nil, fmt.Errorf("invalid signature tolerance: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.PendingMaxAge, err = time.ParseDuration(pendingAgeStr); err != nil {
		return nil, fmt.Errorf("invalid pending age: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("STRIPE_WEBHOOK_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read webhook secret file: %w", err)
		}
		cfg.StripeWebhookSecret = string(content)
	}

	if cfg.SignatureTolerance <= 0 {
		cfg.SignatureTolerance = defaultSignatureTolerance
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}

	if cfg.PendingMaxAge <= 0 {
		cfg.PendingMaxAge = defaultPendingMaxAge
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.OrderListLimit <= 0 {
		cfg.OrderListLimit = defaultOrderListLimit
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	// The Stripe secrets are deliberately not required here: a missing
	// webhook secret surfaces as HTTP 500 on webhook deliveries until the
	// operator fixes the deployment, and checkout fails per request.
	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
