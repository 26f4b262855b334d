package ports

import (
	"context"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/team"
)

// Authorizer answers team membership questions.
type Authorizer interface {
	// HasRole reports whether actor is a member of teamID with at least role.
	HasRole(ctx context.Context, actor, teamID kernel.UUID, role team.Role) (bool, error)
}
