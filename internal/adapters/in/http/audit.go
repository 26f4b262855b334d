package http

import (
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// record writes an audit entry for a completed command. Failures are logged only;
// the command has already committed.
func (s *Server) record(c echo.Context, action, entityType string, entityID, teamID kernel.UUID, details map[string]any) {
	ctx := c.Request().Context()
	entry := ports.AuditEntry{
		Actor:      actorFrom(c),
		TeamID:     &teamID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID.String(),
		Details:    details,
		At:         s.clock.Now(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "audit log write failed", "action", action, "entity_id", entry.EntityID, "error", err)
	}
}
