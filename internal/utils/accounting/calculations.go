package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// EntryTotals sums the debit and credit sides of a set of journal lines.
func EntryTotals(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateEntryBalance checks the double-entry invariant for a set of lines:
// all amounts non-negative, at least one nonzero amount, and total debits
// equal to total credits within domain.BalanceTolerance. The returned error
// carries the offending sums so the caller can correct the input.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("entry has no lines")
	}

	hasAmount := false
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line amounts must be non-negative for account %s", line.AccountID)
		}
		if line.Debit.IsPositive() || line.Credit.IsPositive() {
			hasAmount = true
		}
	}
	if !hasAmount {
		return fmt.Errorf("entry has no line with a nonzero debit or credit")
	}

	totalDebit, totalCredit := EntryTotals(lines)
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(domain.BalanceTolerance) {
		return fmt.Errorf("debits %s do not equal credits %s", totalDebit.String(), totalCredit.String())
	}
	return nil
}

// NormalBalance converts a raw net (debit minus credit) into the account's
// natural sign: debit-normal accounts (ASSET, EXPENSE) keep the sign,
// credit-normal accounts (LIABILITY, EQUITY, REVENUE) have it inverted.
func NormalBalance(accountType domain.AccountType, net decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return net
	}
	return net.Neg()
}

// LineNet returns quantity * unitPrice * (1 - discount/100), rounded to 2
// decimal places. This is the pre-tax value of an invoice line.
func LineNet(quantity, unitPrice, discount decimal.Decimal) decimal.Decimal {
	discountFactor := decimal.NewFromInt(1).Sub(discount.Div(hundred))
	return quantity.Mul(unitPrice).Mul(discountFactor).Round(2)
}

// ComputeLineAmount returns the tax-inclusive amount of an invoice line:
// quantity * unitPrice * (1 - discount/100) * (1 + taxRate/100), rounded
// to 2 decimal places. Tax is applied to the rounded net so the line's
// amount always equals its net plus its tax exactly.
func ComputeLineAmount(quantity, unitPrice, discount, taxRate decimal.Decimal) decimal.Decimal {
	net := LineNet(quantity, unitPrice, discount)
	tax := net.Mul(taxRate.Div(hundred)).Round(2)
	return net.Add(tax)
}

// ComputeInvoiceTotals recomputes each line's Amount in place and returns
// the invoice-level subtotal (sum of pre-tax nets), taxTotal and total.
// Client-submitted amounts are never trusted; this is the only way invoice
// totals are produced.
func ComputeInvoiceTotals(lines []domain.InvoiceLine) (subtotal, taxTotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	taxTotal = decimal.Zero
	for i := range lines {
		net := LineNet(lines[i].Quantity, lines[i].UnitPrice, lines[i].Discount)
		tax := net.Mul(lines[i].TaxRate.Div(hundred)).Round(2)
		lines[i].Amount = net.Add(tax)
		subtotal = subtotal.Add(net)
		taxTotal = taxTotal.Add(tax)
	}
	total = subtotal.Add(taxTotal)
	return subtotal, taxTotal, total
}

// RevenueChangePercent computes the month-over-month revenue change as a
// percentage. A zero previous month yields 100 when the current month is
// positive and 0 otherwise, signalling growth from a zero base without
// dividing by zero.
func RevenueChangePercent(thisMonth, lastMonth decimal.Decimal) decimal.Decimal {
	if lastMonth.IsZero() {
		if thisMonth.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return thisMonth.Sub(lastMonth).Div(lastMonth).Mul(hundred).Round(2)
}
