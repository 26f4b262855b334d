package team_test

import (
	"testing"

	"fleet/internal/core/domain/model/team"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Satisfies(t *testing.T) {
	assert.True(t, team.Owner.Satisfies(team.User))
	assert.True(t, team.Admin.Satisfies(team.Admin))
	assert.False(t, team.User.Satisfies(team.Admin))
	assert.False(t, team.UnknownRole.Satisfies(team.User))
}

func TestParseRole(t *testing.T) {
	r, err := team.ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, team.Admin, r)

	_, err = team.ParseRole("GUEST")
	assert.Error(t, err)
}
