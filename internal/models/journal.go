package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the database representation of a double-entry transaction.
type JournalEntry struct {
	EntryID     string    `db:"entry_id"`
	CompanyID   string    `db:"company_id"`
	EntryNo     string    `db:"entry_no"`
	EntryDate   time.Time `db:"entry_date"`
	Description string    `db:"description"`
	Reference   string    `db:"reference"`
	AuditFields
}

// JournalLine is the database representation of one line of an entry.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	AuditFields
}
