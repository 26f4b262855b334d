// Package access holds the team membership check shared by commands and queries.
package access

import (
	"context"
	"errors"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/team"
	"fleet/internal/core/ports"
)

// ErrNotTeamMember is returned by RequireMember. Callers translate it: a validation
// error when the team id came from the request, a not found error when the team was
// derived from an existing entity, so foreign ids are not disclosed.
var ErrNotTeamMember = errors.New("actor is not a member of the team")

// RequireMember fails unless actor holds at least team.User in teamID.
func RequireMember(ctx context.Context, auth ports.Authorizer, actor, teamID kernel.UUID) error {
	ok, err := auth.HasRole(ctx, actor, teamID, team.User)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotTeamMember
	}
	return nil
}
