package ports

import (
	"context"

	"fleet/internal/core/domain/model/invoice"
)

// ArtifactFormat selects which rendition of an issued document to download.
type ArtifactFormat string

const (
	FormatPDF ArtifactFormat = "pdf"
	FormatXML ArtifactFormat = "xml"
)

// FiscalDocumentService issues and cancels legally valid invoices.
// Implementations return errs.ExternalServiceError for remote failures.
type FiscalDocumentService interface {
	CreateDocument(ctx context.Context, doc invoice.Document) (invoice.IssuedDocument, error)
	CancelDocument(ctx context.Context, externalID, reason string) error
	Download(ctx context.Context, externalID string, format ArtifactFormat) ([]byte, error)
}
