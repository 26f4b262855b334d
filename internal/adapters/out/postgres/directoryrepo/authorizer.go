package directoryrepo

import (
	"context"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/team"

	"gorm.io/gorm"
)

// GormAuthorizer answers membership questions from team_members.
type GormAuthorizer struct {
	db *gorm.DB
}

func NewGormAuthorizer(db *gorm.DB) *GormAuthorizer {
	return &GormAuthorizer{db: db}
}

func (a *GormAuthorizer) HasRole(ctx context.Context, actor, teamID kernel.UUID, role team.Role) (bool, error) {
	var roles []string
	err := a.db.WithContext(ctx).Table("team_members").
		Where("team_id = ? AND user_id = ?", teamID.Bytes(), actor.Bytes()).
		Pluck("role", &roles).Error
	if err != nil {
		return false, err
	}

	for _, name := range roles {
		held, parseErr := team.ParseRole(name)
		if parseErr != nil {
			return false, parseErr
		}
		if held.Satisfies(role) {
			return true, nil
		}
	}
	return false, nil
}
