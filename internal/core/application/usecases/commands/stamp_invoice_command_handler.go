package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/domain/services"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"
)

const (
	fiscalServiceName  = "fiscal document service"
	storageServiceName = "object storage"

	// DefaultStampIssueTimeout bounds submission, downloads and storage of one stamp.
	DefaultStampIssueTimeout = 5 * time.Minute
	// StampFinishTimeout bounds the transaction that records Stamped or Error.
	StampFinishTimeout = 30 * time.Second
)

// StampInvoiceCommandHandler issues the fiscal document of a Draft invoice.
//
// The work is split in three steps so no transaction spans the remote calls:
//
//  1. lock the invoice, move it to Pending and commit
//  2. build the document, submit it, download the PDF and XML and store them
//  3. lock the invoice again and record Stamped, or Error with the failure reason
//
// A failure in step 2 is returned to the caller after step 3 has persisted Error.
// Step 3 runs detached from the caller's cancellation, so a dropped request still
// leaves the invoice Stamped or Error. A document issued before a failure is kept
// on the invoice and reused by the next stamp instead of being issued twice.
type StampInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	authorizer ports.Authorizer
	directory  ports.Directory
	fiscal     ports.FiscalDocumentService
	storage    ports.ObjectStorage
	builder    services.FiscalDocumentBuilder
	clock      kernel.Clock

	issueTimeout time.Duration
}

// NewStampInvoiceCommandHandler creates a handler with DefaultStampIssueTimeout.
func NewStampInvoiceCommandHandler(
	uowFactory InvoiceUoWFactory,
	authorizer ports.Authorizer,
	directory ports.Directory,
	fiscal ports.FiscalDocumentService,
	storage ports.ObjectStorage,
	builder services.FiscalDocumentBuilder,
	clock kernel.Clock,
) StampInvoiceCommandHandler {
	return StampInvoiceCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		directory:  directory,
		fiscal:     fiscal,
		storage:    storage,
		builder:    builder,
		clock:      clock,

		issueTimeout: DefaultStampIssueTimeout,
	}
}

// WithIssueTimeout returns a copy of the handler that bounds step 2 by timeout.
func (h StampInvoiceCommandHandler) WithIssueTimeout(timeout time.Duration) StampInvoiceCommandHandler {
	if timeout > 0 {
		h.issueTimeout = timeout
	}
	return h
}

func (h StampInvoiceCommandHandler) Handle(ctx context.Context, command StampInvoiceCommand) (*invoice.Invoice, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	inv, t, err := h.begin(ctx, command)
	if err != nil {
		return nil, err
	}

	issueCtx, cancelIssue := context.WithTimeout(ctx, h.issueTimeout)
	issued, artifacts, issueErr := h.issue(issueCtx, inv, t)
	cancelIssue()

	finishCtx, cancelFinish := context.WithTimeout(context.WithoutCancel(ctx), StampFinishTimeout)
	defer cancelFinish()

	inv, err = h.finish(finishCtx, inv.ID(), issued, artifacts, issueErr)
	if err != nil {
		return nil, errors.Join(issueErr, err)
	}
	if issueErr != nil {
		return inv, issueErr
	}
	return inv, nil
}

func (h StampInvoiceCommandHandler) begin(ctx context.Context, command StampInvoiceCommand) (*invoice.Invoice, *trip.Trip, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inv, err := lockInvoiceForActor(ctx, uow.InvoiceRepository(), h.authorizer, command.Actor(), command.InvoiceID())
	if err != nil {
		return nil, nil, err
	}

	if err = inv.BeginStamp(h.clock.Now()); err != nil {
		return nil, nil, err
	}

	t, err := uow.TripRepository().Get(ctx, inv.TripID())
	if err != nil {
		return nil, nil, err
	}

	if err = uow.InvoiceRepository().Update(ctx, inv); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return inv, t, nil
}

func (h StampInvoiceCommandHandler) issue(
	ctx context.Context,
	inv *invoice.Invoice,
	t *trip.Trip,
) (invoice.IssuedDocument, invoice.Artifacts, error) {
	if issued := inv.Issued(); issued.ExternalID != "" {
		artifacts, err := h.storeArtifacts(ctx, inv.ID(), issued.ExternalID)
		return issued, artifacts, err
	}

	profile, err := h.directory.FiscalProfile(ctx, inv.TeamID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return invoice.IssuedDocument{}, invoice.Artifacts{}, errs.NewValueIsRequiredErrorWithCause("team fiscal profile", err)
		}
		return invoice.IssuedDocument{}, invoice.Artifacts{}, err
	}

	billing, err := h.directory.BillingInfo(ctx, t.Assignment().Client)
	if err != nil {
		return invoice.IssuedDocument{}, invoice.Artifacts{}, err
	}

	parties, err := h.directory.TripParties(ctx, t.Assignment())
	if err != nil {
		return invoice.IssuedDocument{}, invoice.Artifacts{}, err
	}

	doc, err := h.builder.Build(t, profile, billing, parties)
	if err != nil {
		return invoice.IssuedDocument{}, invoice.Artifacts{}, err
	}

	issued, err := h.fiscal.CreateDocument(ctx, doc)
	if err != nil {
		return invoice.IssuedDocument{}, invoice.Artifacts{}, asExternal(fiscalServiceName, "create document", err)
	}

	artifacts, err := h.storeArtifacts(ctx, inv.ID(), issued.ExternalID)
	if err != nil {
		return issued, invoice.Artifacts{}, err
	}

	return issued, artifacts, nil
}

func (h StampInvoiceCommandHandler) storeArtifacts(
	ctx context.Context,
	invoiceID kernel.UUID,
	externalID string,
) (invoice.Artifacts, error) {
	pdf, err := h.fiscal.Download(ctx, externalID, ports.FormatPDF)
	if err != nil {
		return invoice.Artifacts{}, asExternal(fiscalServiceName, "download pdf", err)
	}
	xml, err := h.fiscal.Download(ctx, externalID, ports.FormatXML)
	if err != nil {
		return invoice.Artifacts{}, asExternal(fiscalServiceName, "download xml", err)
	}

	pdfURL, err := h.storage.Put(ctx, ArtifactKey(invoiceID, ports.FormatPDF), pdf, "application/pdf")
	if err != nil {
		return invoice.Artifacts{}, asExternal(storageServiceName, "store pdf", err)
	}
	xmlURL, err := h.storage.Put(ctx, ArtifactKey(invoiceID, ports.FormatXML), xml, "application/xml")
	if err != nil {
		return invoice.Artifacts{}, asExternal(storageServiceName, "store xml", err)
	}

	return invoice.Artifacts{PDFURL: pdfURL, XMLURL: xmlURL}, nil
}

func (h StampInvoiceCommandHandler) finish(
	ctx context.Context,
	invoiceID kernel.UUID,
	issued invoice.IssuedDocument,
	artifacts invoice.Artifacts,
	issueErr error,
) (*invoice.Invoice, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoices := uow.InvoiceRepository()
	inv, err := invoices.GetForUpdate(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if issueErr != nil {
		err = inv.MarkFailedAfterIssue(issueErr.Error(), issued, now)
	} else {
		err = inv.MarkStamped(issued, artifacts, now)
	}
	if err != nil {
		return nil, err
	}

	if err = invoices.Update(ctx, inv); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return inv, nil
}

// ArtifactKey is the storage key of an invoice artifact, e.g. "invoices/<id>/invoice.pdf".
func ArtifactKey(invoiceID kernel.UUID, format ports.ArtifactFormat) string {
	return fmt.Sprintf("invoices/%s/invoice.%s", invoiceID, format)
}

// asExternal keeps typed errors from the adapters and wraps anything else.
func asExternal(service, operation string, err error) error {
	var ext *errs.ExternalServiceError
	if errors.As(err, &ext) {
		return err
	}
	return errs.NewExternalServiceError(service, operation, err)
}
