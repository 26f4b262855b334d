package ports

import (
	"context"
	"time"

	"fleet/internal/core/domain/model/kernel"
)

// AuditEntry records who did what to which entity.
type AuditEntry struct {
	Actor      kernel.UUID
	TeamID     *kernel.UUID
	Action     string
	EntityType string
	EntityID   string
	Details    map[string]any
	At         time.Time
}

type AuditLog interface {
	Record(ctx context.Context, entry AuditEntry) error
}
