package domain

import "github.com/shopspring/decimal"

// CashFlowPoint is one month of the trailing cash flow series.
// NetCash is a running cumulative balance carried across the window: month
// N includes all prior months in the window, not just that month's delta.
type CashFlowPoint struct {
	Month    string          `json:"month"` // "2026-03"
	MoneyIn  decimal.Decimal `json:"moneyIn"`
	MoneyOut decimal.Decimal `json:"moneyOut"`
	NetCash  decimal.Decimal `json:"netCash"`
}

// TopExpense is one account's share of the current month's displayed
// top expenses. Percent is relative to the displayed subset, not to the
// company's total expense.
type TopExpense struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
	Percent     decimal.Decimal `json:"percent"`
}

// DashboardSummary is the single-page rollup for the landing page.
type DashboardSummary struct {
	RevenueThisMonth       decimal.Decimal `json:"revenueThisMonth"`
	RevenueLastMonth       decimal.Decimal `json:"revenueLastMonth"`
	RevenueChangePct       decimal.Decimal `json:"revenueChangePct"`
	OutstandingReceivables decimal.Decimal `json:"outstandingReceivables"`
	OpenInvoiceCount       int             `json:"openInvoiceCount"`
	CashFlow               []CashFlowPoint `json:"cashFlow"`
	TopExpenses            []TopExpense    `json:"topExpenses"`
}
