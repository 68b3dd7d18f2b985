package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum difference between total debits and total
// credits an entry may carry and still be considered balanced. Stored values
// are exact decimals; the tolerance only forgives sub-cent input noise.
var BalanceTolerance = decimal.RequireFromString("0.01")

// JournalEntry represents a single double-entry transaction. It owns its
// lines; an entry and its lines are always written and deleted together.
type JournalEntry struct {
	EntryID     string    `json:"entryID"`     // Primary Key (UUID)
	CompanyID   string    `json:"companyID"`   // FK -> companies.company_id (Not Null)
	EntryNo     string    `json:"entryNo"`     // Sequential per company, e.g. "JE-00042"
	EntryDate   time.Time `json:"entryDate"`   // Date the event occurred
	Description string    `json:"description"` // Nullable user description
	Reference   string    `json:"reference"`   // Nullable external reference
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"` // Loaded separately on reads
}

// JournalLine is a single line of a journal entry, affecting one account.
// Debit and Credit are both non-negative; normally exactly one is nonzero.
type JournalLine struct {
	LineID      string          `json:"lineID"`      // Primary Key (UUID)
	EntryID     string          `json:"entryID"`     // FK -> journal_entries.entry_id (Not Null)
	AccountID   string          `json:"accountID"`   // FK -> accounts.account_id (Not Null)
	Description string          `json:"description"` // Nullable
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	AuditFields
}

// Net returns debit minus credit for the line.
func (l JournalLine) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}
