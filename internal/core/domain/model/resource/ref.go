package resource

import (
	"fmt"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
)

// Kind distinguishes the two reservable resource types.
type Kind int

const (
	UnknownKind Kind = iota
	Driver
	Vehicle
)

func (k Kind) String() string {
	switch k {
	case Driver:
		return "driver"
	case Vehicle:
		return "vehicle"
	default:
		return "unknown"
	}
}

// Ref points at a single driver or vehicle.
type Ref struct {
	kind Kind
	id   kernel.UUID
}

func NewDriverRef(id kernel.UUID) Ref {
	return Ref{kind: Driver, id: id}
}

func NewVehicleRef(id kernel.UUID) Ref {
	return Ref{kind: Vehicle, id: id}
}

func (r Ref) Kind() Kind {
	return r.kind
}

func (r Ref) ID() kernel.UUID {
	return r.id
}

// Validate rejects refs with an unknown kind or an unset id.
func (r Ref) Validate() error {
	if r.kind != Driver && r.kind != Vehicle {
		return errs.NewValueIsInvalidErrorWithCause("resource kind", fmt.Errorf("%d is not a valid kind", r.kind))
	}
	return r.id.Validate()
}

// String renders "driver 550e8400-..." for logs and error messages.
func (r Ref) String() string {
	return r.kind.String() + " " + r.id.String()
}
