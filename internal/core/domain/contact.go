package domain

import "github.com/shopspring/decimal"

// ContactType classifies a contact as a customer, a vendor, or both.
type ContactType string

const (
	ContactCustomer ContactType = "CUSTOMER"
	ContactVendor   ContactType = "VENDOR"
	ContactBoth     ContactType = "BOTH"
)

// CanBeBilled reports whether invoices may be raised against the contact.
func (t ContactType) CanBeBilled() bool {
	return t == ContactCustomer || t == ContactBoth
}

// Contact represents a customer or vendor referenced by invoices and bills.
type Contact struct {
	ContactID       string          `json:"contactID"` // Primary Key (UUID)
	CompanyID       string          `json:"companyID"` // FK -> companies.company_id (Not Null)
	Name            string          `json:"name"`
	ContactType     ContactType     `json:"contactType"`
	Email           string          `json:"email"`           // Nullable
	Phone           string          `json:"phone"`           // Nullable
	CreditTermsDays int             `json:"creditTermsDays"` // Default payment terms in days
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}
