package facturapi

import "fleet/internal/core/domain/model/invoice"

type invoiceRequest struct {
	Customer         customer   `json:"customer"`
	Items            []lineItem `json:"items"`
	Use              string     `json:"use"`
	PaymentForm      string     `json:"payment_form"`
	PaymentMethod    string     `json:"payment_method,omitempty"`
	PDFCustomSection string     `json:"pdf_custom_section,omitempty"`
}

type customer struct {
	LegalName string  `json:"legal_name"`
	Email     string  `json:"email,omitempty"`
	TaxID     string  `json:"tax_id"`
	TaxSystem string  `json:"tax_system"`
	Address   address `json:"address"`
}

type address struct {
	Zip          string `json:"zip"`
	Street       string `json:"street,omitempty"`
	Exterior     string `json:"exterior,omitempty"`
	Interior     string `json:"interior,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
}

type lineItem struct {
	Quantity int     `json:"quantity"`
	Product  product `json:"product"`
}

type product struct {
	Description string  `json:"description"`
	ProductKey  string  `json:"product_key"`
	Price       float64 `json:"price"`
	Taxes       []tax   `json:"taxes"`
}

type tax struct {
	Type string  `json:"type"`
	Rate float64 `json:"rate"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type invoiceResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Folio  string `json:"folio"`
	UUID   string `json:"uuid"`
	PDFURL string `json:"pdf_url"`
	XMLURL string `json:"xml_url"`
}

func newInvoiceRequest(doc invoice.Document) invoiceRequest {
	items := make([]lineItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, lineItem{
			Quantity: it.Quantity,
			Product: product{
				Description: it.Description,
				ProductKey:  it.ProductKey,
				Price:       it.Price.Float64(),
				Taxes:       []tax{{Type: "IVA", Rate: it.TaxRate.InexactFloat64()}},
			},
		})
	}

	c := doc.Customer
	return invoiceRequest{
		Customer: customer{
			LegalName: c.LegalName,
			Email:     c.Email,
			TaxID:     c.TaxID,
			TaxSystem: c.TaxSystem,
			Address: address{
				Zip:          c.Address.Zip,
				Street:       c.Address.Street,
				Exterior:     c.Address.Exterior,
				Interior:     c.Address.Interior,
				Neighborhood: c.Address.Neighborhood,
				City:         c.Address.City,
				State:        c.Address.State,
				Country:      c.Address.Country,
			},
		},
		Items:            items,
		Use:              doc.Use,
		PaymentForm:      doc.PaymentForm,
		PaymentMethod:    doc.PaymentMethod,
		PDFCustomSection: doc.CustomSection,
	}
}

func (r invoiceResponse) toDomain() invoice.IssuedDocument {
	return invoice.IssuedDocument{
		ExternalID: r.ID,
		Number:     r.Number,
		Folio:      r.Folio,
		FiscalUUID: r.UUID,
		PDFURL:     r.PDFURL,
		XMLURL:     r.XMLURL,
	}
}
