package auditrepo_test

import (
	"context"
	"testing"
	"time"

	"fleet/internal/adapters/out/postgres/auditrepo"
	"fleet/internal/adapters/out/postgres/pgtest"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/ports"

	"github.com/stretchr/testify/require"
)

func TestGormAuditLog_Record(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()

	database, err := pgtest.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Terminate(context.Background()) })

	teamID := kernel.NewUUID()
	entry := ports.AuditEntry{
		Actor:      kernel.NewUUID(),
		TeamID:     &teamID,
		Action:     "trip.cancel",
		EntityType: "trip",
		EntityID:   kernel.NewUUID().String(),
		Details:    map[string]any{"status": "CANCELLED"},
		At:         time.Now().UTC(),
	}

	require.NoError(t, auditrepo.NewGormAuditLog(database.DB).Record(ctx, entry))
	require.NoError(t, auditrepo.NewGormAuditLog(database.DB).Record(ctx, ports.AuditEntry{
		Actor: entry.Actor, Action: "invoice.stamp", EntityType: "invoice", EntityID: "x", At: entry.At,
	}))

	var row struct {
		Action string
		Status string
	}
	require.NoError(t, database.DB.Raw(
		`SELECT action, details->>'status' AS status FROM audit_logs WHERE entity_id = ?`, entry.EntityID,
	).Scan(&row).Error)
	require.Equal(t, "trip.cancel", row.Action)
	require.Equal(t, "CANCELLED", row.Status)
}
