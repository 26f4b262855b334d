package ports

import "fleet/internal/core/domain/model/kernel"

// InvoiceTrigger starts invoice creation for a freshly committed trip.
// It must not block the caller and never reports failures back.
type InvoiceTrigger interface {
	Trigger(tripID kernel.UUID)
}
