package mapping

import (
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	"github.com/tidybooks/tidybooks_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to its model form.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:         d.InvoiceID,
		CompanyID:         d.CompanyID,
		ContactID:         d.ContactID,
		InvoiceNo:         d.InvoiceNo,
		InvoiceDate:       d.InvoiceDate,
		DueDate:           d.DueDate,
		Status:            string(d.Status),
		Subtotal:          d.Subtotal,
		TaxTotal:          d.TaxTotal,
		Total:             d.Total,
		TemplateID:        d.TemplateID,
		Notes:             d.Notes,
		CustomFieldValues: d.CustomFieldValues,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to its domain form.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:         m.InvoiceID,
		CompanyID:         m.CompanyID,
		ContactID:         m.ContactID,
		InvoiceNo:         m.InvoiceNo,
		InvoiceDate:       m.InvoiceDate,
		DueDate:           m.DueDate,
		Status:            domain.InvoiceStatus(m.Status),
		Subtotal:          m.Subtotal,
		TaxTotal:          m.TaxTotal,
		Total:             m.Total,
		TemplateID:        m.TemplateID,
		Notes:             m.Notes,
		CustomFieldValues: m.CustomFieldValues,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceLine converts a domain InvoiceLine to its model form.
func ToModelInvoiceLine(d domain.InvoiceLine) models.InvoiceLine {
	return models.InvoiceLine{
		LineID:      d.LineID,
		InvoiceID:   d.InvoiceID,
		ItemName:    d.ItemName,
		ItemCode:    d.ItemCode,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Discount:    d.Discount,
		TaxRate:     d.TaxRate,
		Amount:      d.Amount,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoiceLine converts a model InvoiceLine to its domain form.
func ToDomainInvoiceLine(m models.InvoiceLine) domain.InvoiceLine {
	return domain.InvoiceLine{
		LineID:      m.LineID,
		InvoiceID:   m.InvoiceID,
		ItemName:    m.ItemName,
		ItemCode:    m.ItemCode,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Discount:    m.Discount,
		TaxRate:     m.TaxRate,
		Amount:      m.Amount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceLineSlice converts model lines to domain lines.
func ToDomainInvoiceLineSlice(ms []models.InvoiceLine) []domain.InvoiceLine {
	ds := make([]domain.InvoiceLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceLine(m)
	}
	return ds
}
