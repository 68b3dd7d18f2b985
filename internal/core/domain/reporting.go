package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is a single account's net position for a period, split
// into the debit or credit column depending on the sign of its net balance.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every account with a nonzero net balance in the
// period. Balanced is exposed as a property of the report itself so callers
// can surface a ledger that fails to balance.
type TrialBalanceReport struct {
	From        time.Time         `json:"from"`
	To          time.Time         `json:"to"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// AccountAmount is an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport is a profit and loss statement for a period.
//
// Revenue is the greater of journal-derived revenue and the paid-invoice
// total for the period: some tenants post revenue only via invoices, others
// only via journal entries, and the report must not under-report either
// path. Expense accounts coded 5000-5999 are treated as cost of goods sold.
type PAndLReport struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	RevenueAccounts []AccountAmount `json:"revenueAccounts"`
	CogsAccounts    []AccountAmount `json:"cogsAccounts"`
	ExpenseAccounts []AccountAmount `json:"expenseAccounts"`
	Revenue         decimal.Decimal `json:"revenue"`
	Cogs            decimal.Decimal `json:"cogs"`
	Expenses        decimal.Decimal `json:"expenses"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	NetProfit       decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport is an as-of-date snapshot of cumulative balances.
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// OpenInvoice is the slice of invoice data the aging calculator consumes:
// every invoice whose stored status is neither PAID nor CANCELLED, joined
// with its contact's name.
type OpenInvoice struct {
	InvoiceID   string          `json:"invoiceID"`
	ContactID   string          `json:"contactID"`
	ContactName string          `json:"contactName"`
	DueDate     time.Time       `json:"dueDate"`
	Total       decimal.Decimal `json:"total"`
}

// AgingRow is one contact's open balance bucketed by days overdue.
type AgingRow struct {
	ContactID   string          `json:"contactID"`
	ContactName string          `json:"contactName"`
	Current     decimal.Decimal `json:"current"`
	Days31to60  decimal.Decimal `json:"days31to60"`
	Days61to90  decimal.Decimal `json:"days61to90"`
	Over90      decimal.Decimal `json:"over90"`
	Total       decimal.Decimal `json:"total"`
}

// AgingReport is an aged receivables or aged payables report. The grand
// total is summed per bucket column across rows, not derived from the
// per-row totals, so cross-row rounding cannot drift the columns apart.
type AgingReport struct {
	AsOf       time.Time       `json:"asOf"`
	Rows       []AgingRow      `json:"rows"`
	Current    decimal.Decimal `json:"current"`
	Days31to60 decimal.Decimal `json:"days31to60"`
	Days61to90 decimal.Decimal `json:"days61to90"`
	Over90     decimal.Decimal `json:"over90"`
	Total      decimal.Decimal `json:"total"`
}
