package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the database representation of a customer billing document.
// CustomFieldValues is stored as a JSONB column.
type Invoice struct {
	InvoiceID         string            `db:"invoice_id"`
	CompanyID         string            `db:"company_id"`
	ContactID         string            `db:"contact_id"`
	InvoiceNo         string            `db:"invoice_no"`
	InvoiceDate       time.Time         `db:"invoice_date"`
	DueDate           time.Time         `db:"due_date"`
	Status            string            `db:"status"`
	Subtotal          decimal.Decimal   `db:"subtotal"`
	TaxTotal          decimal.Decimal   `db:"tax_total"`
	Total             decimal.Decimal   `db:"total"`
	TemplateID        string            `db:"template_id"` // Nullable
	Notes             string            `db:"notes"`
	CustomFieldValues map[string]string `db:"custom_field_values"`
	AuditFields
}

// InvoiceLine is the database representation of one invoice line item.
type InvoiceLine struct {
	LineID      string          `db:"line_id"`
	InvoiceID   string          `db:"invoice_id"`
	ItemName    string          `db:"item_name"`
	ItemCode    string          `db:"item_code"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Discount    decimal.Decimal `db:"discount"`
	TaxRate     decimal.Decimal `db:"tax_rate"`
	Amount      decimal.Decimal `db:"amount"`
	AuditFields
}
