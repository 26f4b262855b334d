package cmd_test

import (
	"log/slog"
	"testing"
	"time"

	"fleet/cmd"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(envOf(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "@every 1h", cfg.ReconcileSchedule)
	assert.Equal(t, 15*time.Minute, cfg.PendingInvoiceMaxAge)
	assert.Equal(t, time.Minute, cfg.InvoiceTriggerTimeout)
	assert.Equal(t, 30*time.Second, cfg.FacturapiTimeout)
	assert.Equal(t, 5*time.Minute, cfg.StampTimeout)
	assert.Greater(t, cfg.PendingInvoiceMaxAge, cfg.StampTimeout)
	assert.Equal(t, cmd.StorageDriverDisk, cfg.StorageDriver)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := cmd.LoadConfig(envOf(map[string]string{
		"HTTP_PORT":          "9000",
		"LOG_LEVEL":          "debug",
		"RECONCILE_SCHEDULE": "0 */5 * * * *",
		"FACTURAPI_TIMEOUT":  "5s",
		"STORAGE_DRIVER":     "S3",
		"S3_BUCKET":          "invoices",
		"DB_HOST":            "db",
		"DB_PASSWORD":        "secret",
	}))

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "0 */5 * * * *", cfg.ReconcileSchedule)
	assert.Equal(t, 5*time.Second, cfg.FacturapiTimeout)
	assert.Equal(t, cmd.StorageDriverS3, cfg.StorageDriver)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=fleet sslmode=disable", cfg.DSN())
}

func TestLoadConfig_StampWindow(t *testing.T) {
	cfg, err := cmd.LoadConfig(envOf(map[string]string{
		"STAMP_TIMEOUT":           "2m",
		"PENDING_INVOICE_MAX_AGE": "3m",
	}))

	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.StampTimeout)
	assert.Equal(t, 3*time.Minute, cfg.PendingInvoiceMaxAge)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]struct {
		env     map[string]string
		wantErr error
	}{
		"log level":         {map[string]string{"LOG_LEVEL": "loud"}, errs.ErrValueIsInvalid},
		"duration":          {map[string]string{"PENDING_INVOICE_MAX_AGE": "soon"}, errs.ErrValueIsInvalid},
		"negative timeout":  {map[string]string{"INVOICE_TRIGGER_TIMEOUT": "-1s"}, errs.ErrValueIsInvalid},
		"storage driver":    {map[string]string{"STORAGE_DRIVER": "ftp"}, errs.ErrValueIsInvalid},
		"s3 without bucket": {map[string]string{"STORAGE_DRIVER": "s3"}, errs.ErrValueIsRequired},
		"stamp shorter than one call": {
			map[string]string{"STAMP_TIMEOUT": "10s", "FACTURAPI_TIMEOUT": "30s"},
			errs.ErrValueIsInvalid,
		},
		"max age inside stamp window": {
			map[string]string{"PENDING_INVOICE_MAX_AGE": "5m"},
			errs.ErrValueIsInvalid,
		},
		"slow fiscal service": {
			map[string]string{"FACTURAPI_TIMEOUT": "10m"},
			errs.ErrValueIsInvalid,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := cmd.LoadConfig(envOf(tt.env))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
