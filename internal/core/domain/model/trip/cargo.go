package trip

import (
	"errors"
	"fmt"
	"strings"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

// CargoItem is a piece of freight carried on a trip. Cargo is always replaced as a whole,
// so items have no behaviour beyond validation.
type CargoItem struct {
	id       kernel.UUID
	name     string
	weightKg float64
	imageURL string
	notes    string

	guard guard.ConstructorGuard
}

var ErrCargoItemIsNotConstructed = errors.New("CargoItem must be created via NewCargoItem or RestoreCargoItem")

// NewCargoItem validates name (non-blank) and weight (> 0). imageURL and notes are optional.
func NewCargoItem(name string, weightKg float64, imageURL, notes string) (*CargoItem, error) {
	return RestoreCargoItem(kernel.NewUUID(), name, weightKg, imageURL, notes)
}

// RestoreCargoItem rebuilds a stored item, applying the same validation as NewCargoItem.
func RestoreCargoItem(id kernel.UUID, name string, weightKg float64, imageURL, notes string) (*CargoItem, error) {
	name = strings.TrimSpace(name)
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("cargo name")
	}
	if weightKg <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("cargo weight", fmt.Errorf("%v kg is not greater than 0", weightKg))
	}
	return &CargoItem{
		id:       id,
		name:     name,
		weightKg: weightKg,
		imageURL: strings.TrimSpace(imageURL),
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c *CargoItem) Validate() error {
	if c == nil {
		return ErrCargoItemIsNotConstructed
	}
	return c.guard.Validate(ErrCargoItemIsNotConstructed)
}

func (c *CargoItem) ID() kernel.UUID { return c.id }
func (c *CargoItem) Name() string { return c.name }
func (c *CargoItem) WeightKg() float64 { return c.weightKg }
func (c *CargoItem) ImageURL() string { return c.imageURL }
func (c *CargoItem) Notes() string { return c.notes }
