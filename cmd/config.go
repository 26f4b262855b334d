package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/pkg/errs"
)

const (
	StorageDriverS3   = "s3"
	StorageDriverDisk = "disk"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   slog.Level

	ReconcileSchedule           string
	PendingInvoiceSweepSchedule string
	PendingInvoiceMaxAge        time.Duration
	InvoiceTriggerTimeout       time.Duration
	StampTimeout                time.Duration

	FacturapiAPIURL  string
	FacturapiAPIKey  string
	FacturapiTimeout time.Duration

	StorageDriver    string
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	StorageDir       string
	StoragePublicURL string
}

// LoadConfig reads the configuration through getenv, usually os.Getenv after
// the optional .env file has been loaded.
func LoadConfig(getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:   env("HTTP_PORT", "8080"),
		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD"),
		DBName:     env("DB_NAME", "fleet"),
		DBSslMode:  env("DB_SSLMODE", "disable"),

		ReconcileSchedule:           env("RECONCILE_SCHEDULE", "@every 1h"),
		PendingInvoiceSweepSchedule: env("PENDING_INVOICE_SWEEP_SCHEDULE", "@every 5m"),

		FacturapiAPIURL: env("FACTURAPI_API_URL", "https://www.facturapi.io/v2"),
		FacturapiAPIKey: getenv("FACTURAPI_API_KEY"),

		StorageDriver:    strings.ToLower(env("STORAGE_DRIVER", StorageDriverDisk)),
		S3Bucket:         getenv("S3_BUCKET"),
		S3Region:         env("S3_REGION", "us-east-1"),
		S3Endpoint:       getenv("S3_ENDPOINT"),
		S3AccessKey:      getenv("S3_ACCESS_KEY"),
		S3SecretKey:      getenv("S3_SECRET_KEY"),
		StorageDir:       env("STORAGE_DIR", "./data/invoices"),
		StoragePublicURL: getenv("STORAGE_PUBLIC_URL"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}

	durations := []struct {
		key      string
		fallback string
		dest     *time.Duration
	}{
		{"PENDING_INVOICE_MAX_AGE", "15m", &cfg.PendingInvoiceMaxAge},
		{"INVOICE_TRIGGER_TIMEOUT", "1m", &cfg.InvoiceTriggerTimeout},
		{"FACTURAPI_TIMEOUT", "30s", &cfg.FacturapiTimeout},
		{"STAMP_TIMEOUT", commands.DefaultStampIssueTimeout.String(), &cfg.StampTimeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(env(d.key, d.fallback))
		if err != nil {
			return Config{}, errs.NewValueIsInvalidErrorWithCause(d.key, err)
		}
		if v <= 0 {
			return Config{}, errs.NewValueIsInvalidErrorWithCause(d.key, fmt.Errorf("%s is not positive", v))
		}
		*d.dest = v
	}

	if cfg.StampTimeout < cfg.FacturapiTimeout {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("STAMP_TIMEOUT",
			fmt.Errorf("%s is shorter than FACTURAPI_TIMEOUT %s", cfg.StampTimeout, cfg.FacturapiTimeout))
	}
	// The sweep must not fail an invoice whose stamp is still inside its window.
	if window := cfg.StampTimeout + commands.StampFinishTimeout; cfg.PendingInvoiceMaxAge <= window {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("PENDING_INVOICE_MAX_AGE",
			fmt.Errorf("%s does not exceed the stamp window %s", cfg.PendingInvoiceMaxAge, window))
	}

	switch cfg.StorageDriver {
	case StorageDriverS3:
		if cfg.S3Bucket == "" {
			return Config{}, errs.NewValueIsRequiredError("S3_BUCKET")
		}
	case StorageDriverDisk:
	default:
		return Config{}, errs.NewValueIsInvalidErrorWithCause("STORAGE_DRIVER",
			fmt.Errorf("%q is not one of s3, disk", cfg.StorageDriver))
	}

	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
