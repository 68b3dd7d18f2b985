package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// InvoiceLineRequest is one line item of an invoice create/update request.
// Amount is deliberately absent: line amounts and document totals are
// always recomputed server-side.
type InvoiceLineRequest struct {
	ItemName    string          `json:"itemName"`
	ItemCode    string          `json:"itemCode"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"taxRate"`
}

// CreateInvoiceRequest defines the data needed to create an invoice.
type CreateInvoiceRequest struct {
	ContactID         string               `json:"contactId" binding:"required"`
	Date              string               `json:"date" binding:"required,datetime=2006-01-02"`
	DueDate           string               `json:"dueDate" binding:"required,datetime=2006-01-02"`
	TemplateID        string               `json:"templateId"`
	Notes             string               `json:"notes"`
	CustomFieldValues map[string]string    `json:"customFieldValues"`
	Lines             []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest defines the data allowed when editing an invoice.
// Only DRAFT and CANCELLED invoices accept it. Lines, when present,
// replace the existing lines wholesale.
type UpdateInvoiceRequest struct {
	ContactID         *string              `json:"contactId"`
	Date              *string              `json:"date" binding:"omitempty,datetime=2006-01-02"`
	DueDate           *string              `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	TemplateID        *string              `json:"templateId"`
	Notes             *string              `json:"notes"`
	CustomFieldValues map[string]string    `json:"customFieldValues"`
	Lines             []InvoiceLineRequest `json:"lines"`
}

// TransitionInvoiceStatusRequest requests a stored-status transition.
// OVERDUE is not a settable target; it is derived at read time.
type TransitionInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required,oneof=SENT PAID CANCELLED"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status    *string    `form:"status"`
	ContactID *string    `form:"contactId"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=50"`
	NextToken *string    `form:"nextToken"`
}

// InvoiceLineResponse defines the data returned for an invoice line.
type InvoiceLineResponse struct {
	LineID      string          `json:"lineID"`
	ItemName    string          `json:"itemName"`
	ItemCode    string          `json:"itemCode,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse defines the data returned for an invoice. Status is the
// effective status: open invoices past their due date read as OVERDUE.
type InvoiceResponse struct {
	InvoiceID         string                `json:"invoiceID"`
	ContactID         string                `json:"contactID"`
	InvoiceNo         string                `json:"invoiceNo"`
	Date              time.Time             `json:"date"`
	DueDate           time.Time             `json:"dueDate"`
	Status            domain.InvoiceStatus  `json:"status"`
	Subtotal          decimal.Decimal       `json:"subtotal"`
	TaxTotal          decimal.Decimal       `json:"taxTotal"`
	Total             decimal.Decimal       `json:"total"`
	TemplateID        string                `json:"templateID,omitempty"`
	Notes             string                `json:"notes,omitempty"`
	CustomFieldValues map[string]string     `json:"customFieldValues,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	Lines             []InvoiceLineResponse `json:"lines,omitempty"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToInvoiceLineResponse converts a domain.InvoiceLine to its DTO.
func ToInvoiceLineResponse(l *domain.InvoiceLine) InvoiceLineResponse {
	return InvoiceLineResponse{
		LineID:      l.LineID,
		ItemName:    l.ItemName,
		ItemCode:    l.ItemCode,
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Discount:    l.Discount,
		TaxRate:     l.TaxRate,
		Amount:      l.Amount,
	}
}

// ToInvoiceResponse converts a domain.Invoice to its DTO, deriving the
// effective status as of now.
func ToInvoiceResponse(inv *domain.Invoice, now time.Time) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:         inv.InvoiceID,
		ContactID:         inv.ContactID,
		InvoiceNo:         inv.InvoiceNo,
		Date:              inv.InvoiceDate,
		DueDate:           inv.DueDate,
		Status:            inv.EffectiveStatus(now),
		Subtotal:          inv.Subtotal,
		TaxTotal:          inv.TaxTotal,
		Total:             inv.Total,
		TemplateID:        inv.TemplateID,
		Notes:             inv.Notes,
		CustomFieldValues: inv.CustomFieldValues,
		CreatedAt:         inv.CreatedAt,
	}
	if len(inv.Lines) > 0 {
		resp.Lines = make([]InvoiceLineResponse, len(inv.Lines))
		for i := range inv.Lines {
			resp.Lines[i] = ToInvoiceLineResponse(&inv.Lines[i])
		}
	}
	return resp
}
