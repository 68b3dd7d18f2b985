package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the stored lifecycle state of an invoice.
// OVERDUE is deliberately absent: it is never persisted. An invoice is
// overdue for display and reporting purposes when its stored status is
// DRAFT or SENT and its due date has passed; see EffectiveStatus.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceOverdue   InvoiceStatus = "OVERDUE" // computed-only, see above
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// IsTerminal reports whether no transition leads out of the status.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoicePaid || s == InvoiceCancelled
}

// IsOpen reports whether the invoice still counts toward receivables.
func (s InvoiceStatus) IsOpen() bool {
	return s == InvoiceDraft || s == InvoiceSent
}

// IsEditable reports whether line items may be changed or the invoice deleted.
func (s InvoiceStatus) IsEditable() bool {
	return s == InvoiceDraft || s == InvoiceCancelled
}

// CanTransitionTo reports whether a stored-status transition is allowed.
// Allowed edges: DRAFT->SENT, DRAFT->PAID, SENT->PAID, and any non-terminal
// status -> CANCELLED. OVERDUE is not a settable target.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch target {
	case InvoiceSent:
		return s == InvoiceDraft
	case InvoicePaid:
		return s == InvoiceDraft || s == InvoiceSent
	case InvoiceCancelled:
		return !s.IsTerminal()
	default:
		return false
	}
}

// Invoice is a customer billing document. It tracks revenue and receivables
// independently of journal postings and feeds the aggregate reports.
type Invoice struct {
	InvoiceID         string            `json:"invoiceID"` // Primary Key (UUID)
	CompanyID         string            `json:"companyID"` // FK -> companies.company_id (Not Null)
	ContactID         string            `json:"contactID"` // FK -> contacts.contact_id (Not Null)
	InvoiceNo         string            `json:"invoiceNo"` // Sequential per company per year, "INV-2026-001"
	InvoiceDate       time.Time         `json:"invoiceDate"`
	DueDate           time.Time         `json:"dueDate"`
	Status            InvoiceStatus     `json:"status"`
	Subtotal          decimal.Decimal   `json:"subtotal"` // Always recomputed from lines, never client input
	TaxTotal          decimal.Decimal   `json:"taxTotal"`
	Total             decimal.Decimal   `json:"total"`
	TemplateID        string            `json:"templateID"` // Nullable PDF template reference
	Notes             string            `json:"notes"`
	CustomFieldValues map[string]string `json:"customFieldValues,omitempty"`
	AuditFields
	Lines []InvoiceLine `json:"lines,omitempty"`
}

// EffectiveStatus returns the status as it should be shown and reported:
// the stored status, except that open invoices past their due date read as
// OVERDUE. Recomputed at every read; never written back.
func (inv *Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if inv.Status.IsOpen() && inv.DueDate.Before(now) {
		return InvoiceOverdue
	}
	return inv.Status
}

// InvoiceLine is a single line item of an invoice.
type InvoiceLine struct {
	LineID      string          `json:"lineID"`    // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"` // FK -> invoices.invoice_id (Not Null)
	ItemName    string          `json:"itemName"`
	ItemCode    string          `json:"itemCode"`    // Nullable
	Description string          `json:"description"` // Nullable
	Quantity    decimal.Decimal `json:"quantity"`    // > 0
	UnitPrice   decimal.Decimal `json:"unitPrice"`   // >= 0
	Discount    decimal.Decimal `json:"discount"`    // percent, 0..100
	TaxRate     decimal.Decimal `json:"taxRate"`     // percent, 0..100
	Amount      decimal.Decimal `json:"amount"`      // Derived; recomputed whenever lines change
	AuditFields
}
