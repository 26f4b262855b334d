// Package invoicerepo maps the Invoice aggregate onto the invoices table.
package invoicerepo

import (
	"time"

	"fleet/internal/core/domain/model/invoice"
	"fleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TripID             uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	TeamID             uuid.UUID       `gorm:"type:uuid;not null"`
	Subtotal           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Tax                decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total              decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status             string          `gorm:"type:varchar(16);not null"`
	ExternalID         string
	Number             string
	Folio              string
	FiscalUUID         string
	RemotePDFURL       string `gorm:"column:remote_pdf_url"`
	RemoteXMLURL       string `gorm:"column:remote_xml_url"`
	PDFURL             string `gorm:"column:pdf_url"`
	XMLURL             string `gorm:"column:xml_url"`
	FailureReason      string
	CancellationReason string
	CancelledAt        *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	issued := inv.Issued()
	return InvoiceDTO{
		ID:                 inv.ID().Bytes(),
		TripID:             inv.TripID().Bytes(),
		TeamID:             inv.TeamID().Bytes(),
		Subtotal:           inv.Subtotal().Decimal(),
		Tax:                inv.Tax().Decimal(),
		Total:              inv.Total().Decimal(),
		Status:             inv.Status().String(),
		ExternalID:         issued.ExternalID,
		Number:             issued.Number,
		Folio:              issued.Folio,
		FiscalUUID:         issued.FiscalUUID,
		RemotePDFURL:       issued.PDFURL,
		RemoteXMLURL:       issued.XMLURL,
		PDFURL:             inv.Artifacts().PDFURL,
		XMLURL:             inv.Artifacts().XMLURL,
		FailureReason:      inv.FailureReason(),
		CancellationReason: inv.CancellationReason(),
		CancelledAt:        inv.CancelledAt(),
		CreatedAt:          inv.CreatedAt(),
		UpdatedAt:          inv.UpdatedAt(),
	}
}

// columns are the values Update writes; a map keeps empty strings and NULLs.
func (d InvoiceDTO) columns() map[string]any {
	return map[string]any{
		"status":              d.Status,
		"external_id":         d.ExternalID,
		"number":              d.Number,
		"folio":               d.Folio,
		"fiscal_uuid":         d.FiscalUUID,
		"remote_pdf_url":      d.RemotePDFURL,
		"remote_xml_url":      d.RemoteXMLURL,
		"pdf_url":             d.PDFURL,
		"xml_url":             d.XMLURL,
		"failure_reason":      d.FailureReason,
		"cancellation_reason": d.CancellationReason,
		"cancelled_at":        d.CancelledAt,
		"updated_at":          d.UpdatedAt,
	}
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	tripID, err := kernel.UUIDFromRaw(dto.TripID)
	if err != nil {
		return nil, err
	}
	teamID, err := kernel.UUIDFromRaw(dto.TeamID)
	if err != nil {
		return nil, err
	}
	status, err := invoice.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	amounts := make([]kernel.Money, 0, 3)
	for _, d := range []decimal.Decimal{dto.Subtotal, dto.Tax, dto.Total} {
		m, moneyErr := kernel.NewMoney(d)
		if moneyErr != nil {
			return nil, moneyErr
		}
		amounts = append(amounts, m)
	}

	var cancelledAt *time.Time
	if dto.CancelledAt != nil {
		at := dto.CancelledAt.UTC()
		cancelledAt = &at
	}

	return invoice.RestoreInvoice(invoice.Record{
		ID:       id,
		TripID:   tripID,
		TeamID:   teamID,
		Subtotal: amounts[0],
		Tax:      amounts[1],
		Total:    amounts[2],
		Status:   status,
		Issued: invoice.IssuedDocument{
			ExternalID: dto.ExternalID,
			Number:     dto.Number,
			Folio:      dto.Folio,
			FiscalUUID: dto.FiscalUUID,
			PDFURL:     dto.RemotePDFURL,
			XMLURL:     dto.RemoteXMLURL,
		},
		Artifacts:          invoice.Artifacts{PDFURL: dto.PDFURL, XMLURL: dto.XMLURL},
		FailureReason:      dto.FailureReason,
		CancellationReason: dto.CancellationReason,
		CancelledAt:        cancelledAt,
		CreatedAt:          dto.CreatedAt.UTC(),
		UpdatedAt:          dto.UpdatedAt.UTC(),
	})
}
