package http

import (
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return toID(name, raw)
}

func toID(name string, raw uuid.UUID) (kernel.UUID, error) {
	id, err := kernel.UUIDFromRaw(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

type listParams struct {
	TeamID uuid.UUID
	Page   *int
	Limit  *int
	Search *string
	Status *string
}

func bindListParams(c echo.Context) (listParams, error) {
	var p listParams
	query := c.QueryParams()

	if err := runtime.BindQueryParameter("form", true, true, "teamId", query, &p.TeamID); err != nil {
		return listParams{}, errs.NewValueIsInvalidErrorWithCause("teamId", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &p.Page); err != nil {
		return listParams{}, errs.NewValueIsInvalidErrorWithCause("page", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &p.Limit); err != nil {
		return listParams{}, errs.NewValueIsInvalidErrorWithCause("limit", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "search", query, &p.Search); err != nil {
		return listParams{}, errs.NewValueIsInvalidErrorWithCause("search", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", query, &p.Status); err != nil {
		return listParams{}, errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	return p, nil
}

func (p listParams) teamID() (kernel.UUID, error) {
	return toID("teamId", p.TeamID)
}

func (p listParams) page() (queries.Page, error) {
	return queries.NewPage(deref(p.Page), deref(p.Limit))
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
