package invoice

import (
	"errors"
	"strings"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"
	"fleet/internal/pkg/guard"
)

var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice")

// Invoice is the billing record of a single trip.
//
// Amounts are fixed at creation: tax is TaxRate of the subtotal and total is
// subtotal plus tax, both rounded to cents. Failed stamping never changes them.
type Invoice struct {
	id       kernel.UUID
	tripID   kernel.UUID
	teamID   kernel.UUID
	subtotal kernel.Money
	tax      kernel.Money
	total    kernel.Money
	status   Status

	issued    IssuedDocument
	artifacts Artifacts

	failureReason      string
	cancellationReason string
	cancelledAt        *time.Time

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewInvoice creates a Draft invoice for a trip priced at subtotal.
func NewInvoice(tripID, teamID kernel.UUID, subtotal kernel.Money, now time.Time) (*Invoice, error) {
	if err := errors.Join(
		wrapRequired("tripId", tripID.Validate()),
		wrapRequired("teamId", teamID.Validate()),
	); err != nil {
		return nil, err
	}

	tax := subtotal.Mul(TaxRate)
	return &Invoice{
		id:        kernel.NewUUID(),
		tripID:    tripID,
		teamID:    teamID,
		subtotal:  subtotal,
		tax:       tax,
		total:     subtotal.Add(tax),
		status:    Draft,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Record is the persisted shape of an invoice, used by RestoreInvoice.
type Record struct {
	ID                 kernel.UUID
	TripID             kernel.UUID
	TeamID             kernel.UUID
	Subtotal           kernel.Money
	Tax                kernel.Money
	Total              kernel.Money
	Status             Status
	Issued             IssuedDocument
	Artifacts          Artifacts
	FailureReason      string
	CancellationReason string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RestoreInvoice rebuilds an invoice from storage without running transition checks.
func RestoreInvoice(r Record) (*Invoice, error) {
	if err := errors.Join(r.ID.Validate(), r.TripID.Validate(), r.TeamID.Validate(), r.Status.Validate()); err != nil {
		return nil, err
	}
	return &Invoice{
		id:                 r.ID,
		tripID:             r.TripID,
		teamID:             r.TeamID,
		subtotal:           r.Subtotal,
		tax:                r.Tax,
		total:              r.Total,
		status:             r.Status,
		issued:             r.Issued,
		artifacts:          r.Artifacts,
		failureReason:      r.FailureReason,
		cancellationReason: r.CancellationReason,
		cancelledAt:        r.CancelledAt,
		createdAt:          r.CreatedAt,
		updatedAt:          r.UpdatedAt,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (i *Invoice) Validate() error {
	if i == nil {
		return ErrInvoiceIsNotConstructed
	}
	return i.guard.Validate(ErrInvoiceIsNotConstructed)
}

func (i *Invoice) ID() kernel.UUID { return i.id }
func (i *Invoice) TripID() kernel.UUID { return i.tripID }
func (i *Invoice) TeamID() kernel.UUID { return i.teamID }
func (i *Invoice) Subtotal() kernel.Money { return i.subtotal }
func (i *Invoice) Tax() kernel.Money { return i.tax }
func (i *Invoice) Total() kernel.Money { return i.total }
func (i *Invoice) Status() Status { return i.status }
func (i *Invoice) Issued() IssuedDocument { return i.issued }
func (i *Invoice) Artifacts() Artifacts { return i.artifacts }
func (i *Invoice) FailureReason() string { return i.failureReason }
func (i *Invoice) CancellationReason() string { return i.cancellationReason }
func (i *Invoice) CancelledAt() *time.Time { return i.cancelledAt }
func (i *Invoice) CreatedAt() time.Time { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time { return i.updatedAt }

// BeginStamp moves Draft to Pending. The caller commits this before contacting the
// fiscal service.
func (i *Invoice) BeginStamp(now time.Time) error {
	return i.moveTo(Pending, now)
}

// MarkStamped records the issued document and stored artifacts.
func (i *Invoice) MarkStamped(doc IssuedDocument, artifacts Artifacts, now time.Time) error {
	if doc.ExternalID == "" {
		return errs.NewValueIsRequiredError("external document id")
	}
	if err := i.moveTo(Stamped, now); err != nil {
		return err
	}
	i.issued = doc
	i.artifacts = artifacts
	i.failureReason = ""
	return nil
}

// MarkFailed moves Pending to Error and keeps the reason for operators.
func (i *Invoice) MarkFailed(reason string, now time.Time) error {
	if err := i.moveTo(Error, now); err != nil {
		return err
	}
	i.failureReason = reason
	return nil
}

// MarkFailedAfterIssue is MarkFailed for a failure that happened after the fiscal
// service issued doc. The document is kept so a retry downloads it instead of
// issuing a new one. A doc without ExternalID is ignored.
func (i *Invoice) MarkFailedAfterIssue(reason string, doc IssuedDocument, now time.Time) error {
	if err := i.MarkFailed(reason, now); err != nil {
		return err
	}
	if doc.ExternalID != "" {
		i.issued = doc
	}
	return nil
}

// ResetForRetry moves Error back to Draft so the invoice can be stamped again.
func (i *Invoice) ResetForRetry(now time.Time) error {
	if err := i.moveTo(Draft, now); err != nil {
		return err
	}
	i.failureReason = ""
	return nil
}

// Cancel moves Stamped to Cancelled. A blank reason becomes DefaultCancellationReason.
func (i *Invoice) Cancel(reason string, now time.Time) error {
	if err := i.moveTo(Cancelled, now); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancellationReason
	}
	i.cancellationReason = reason
	at := now
	i.cancelledAt = &at
	return nil
}

// IsStuckPending reports whether the invoice has sat in Pending longer than maxAge.
func (i *Invoice) IsStuckPending(now time.Time, maxAge time.Duration) bool {
	return i.status == Pending && now.Sub(i.updatedAt) > maxAge
}

func (i *Invoice) moveTo(target Status, now time.Time) error {
	next, err := i.status.TransitionTo(target)
	if err != nil {
		return err
	}
	i.status = next
	i.updatedAt = now
	return nil
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
