// Package team models membership roles inside a team.
package team

import (
	"fmt"

	"fleet/internal/pkg/errs"
)

// Role is ordered: a higher role satisfies every requirement a lower one does.
type Role int

const (
	UnknownRole Role = iota
	User
	Admin
	Owner
)

var roleNames = map[Role]string{
	User:  "USER",
	Admin: "ADMIN",
	Owner: "OWNER",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

func ParseRole(name string) (Role, error) {
	for r, n := range roleNames {
		if n == name {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", name))
}

// Satisfies reports whether a member holding r may act where required is needed.
func (r Role) Satisfies(required Role) bool {
	if _, ok := roleNames[r]; !ok {
		return false
	}
	return r >= required
}
