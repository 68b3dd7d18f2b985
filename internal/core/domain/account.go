package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsDebitNormal reports whether a debit increases the account balance.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a ledger account within the chart of accounts.
// Code is unique per company; ParentAccountID forms a forest of accounts.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	CompanyID       string      `json:"companyID"`       // FK -> companies.company_id (Not Null)
	Code            string      `json:"code"`            // User-facing code, unique per company (e.g. "1000")
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Nullable self-referencing FK; empty string means root
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`
	AuditFields
}
