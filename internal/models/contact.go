package models

import "github.com/shopspring/decimal"

// Contact is the database representation of a customer/vendor.
type Contact struct {
	ContactID       string          `db:"contact_id"`
	CompanyID       string          `db:"company_id"`
	Name            string          `db:"name"`
	ContactType     string          `db:"contact_type"`
	Email           string          `db:"email"`
	Phone           string          `db:"phone"`
	CreditTermsDays int             `db:"credit_terms_days"`
	CreditLimit     decimal.Decimal `db:"credit_limit"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
