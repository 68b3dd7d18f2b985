package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/utils/accounting"
)

// Cost-of-goods-sold expense accounts live in the 5000 code block.
const (
	cogsCodeLow  = 5000
	cogsCodeHigh = 6000
)

// reportingService implements the ReportingSvcFacade interface. All methods
// are read-only; the numbers for each report come from a single aggregate
// query plus in-memory shaping.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	invoiceRepo   portsrepo.InvoiceReader
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingCompanyAuthorizer adds the company authorizer dependency
func WithReportingCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, invoiceRepo portsrepo.InvoiceReader, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		reportingRepo: reportingRepo,
		invoiceRepo:   invoiceRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func validateRange(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: report range end precedes start", apperrors.ErrValidation)
	}
	return nil
}

// GetTrialBalance builds the trial balance over an inclusive date range.
// Each account's net movement lands in the debit column when positive and
// the credit column when negative; accounts with zero net movement are
// left out of the report.
func (s *reportingService) GetTrialBalance(ctx context.Context, userID string, companyID string, from time.Time, to time.Time) (*domain.TrialBalanceReport, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	nets, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load trial balance data", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to get trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		From:        from,
		To:          to,
		Rows:        make([]domain.TrialBalanceRow, 0, len(nets)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, n := range nets {
		// Accounts that netted to zero over the range carry no information.
		if n.Net.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   n.AccountID,
			AccountCode: n.Code,
			AccountName: n.Name,
			AccountType: n.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if n.Net.IsPositive() {
			row.Debit = n.Net
		} else if n.Net.IsNegative() {
			row.Credit = n.Net.Neg()
		}
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}
	report.Balanced = report.TotalDebit.Sub(report.TotalCredit).Abs().LessThanOrEqual(domain.BalanceTolerance)
	return report, nil
}

// GetProfitAndLoss builds the P&L over an inclusive date range. Revenue is
// reconciled against the invoice subledger: when the paid-invoice total
// exceeds the journal's revenue postings, the larger figure is reported.
func (s *reportingService) GetProfitAndLoss(ctx context.Context, userID string, companyID string, from time.Time, to time.Time) (*domain.PAndLReport, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	nets, err := s.reportingRepo.GetProfitAndLossData(ctx, companyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load profit and loss data", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to get profit and loss data: %w", err)
	}

	report := &domain.PAndLReport{
		From:            from,
		To:              to,
		RevenueAccounts: []domain.AccountAmount{},
		CogsAccounts:    []domain.AccountAmount{},
		ExpenseAccounts: []domain.AccountAmount{},
		Revenue:         decimal.Zero,
		Cogs:            decimal.Zero,
		Expenses:        decimal.Zero,
	}

	journalRevenue := decimal.Zero
	for _, n := range nets {
		// Flip to the account type's normal balance so revenue and
		// expense amounts both read as positive figures.
		amount := accounting.NormalBalance(n.AccountType, n.Net)
		entry := domain.AccountAmount{
			AccountID: n.AccountID,
			Code:      n.Code,
			Name:      n.Name,
			NetAmount: amount,
		}
		switch n.AccountType {
		case domain.Revenue:
			journalRevenue = journalRevenue.Add(amount)
			report.RevenueAccounts = append(report.RevenueAccounts, entry)
		case domain.Expense:
			if isCogsCode(n.Code) {
				report.Cogs = report.Cogs.Add(amount)
				report.CogsAccounts = append(report.CogsAccounts, entry)
			} else {
				report.Expenses = report.Expenses.Add(amount)
				report.ExpenseAccounts = append(report.ExpenseAccounts, entry)
			}
		}
	}

	// The repo range is half-open; extend the inclusive user range by a day.
	paidTotal, err := s.invoiceRepo.SumPaidInvoiceTotals(ctx, companyID, from, to.AddDate(0, 0, 1))
	if err != nil {
		s.LogError(ctx, err, "Failed to load paid invoice totals", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to get paid invoice totals: %w", err)
	}

	report.Revenue = decimal.Max(journalRevenue, paidTotal)
	report.GrossProfit = report.Revenue.Sub(report.Cogs)
	report.NetProfit = report.GrossProfit.Sub(report.Expenses)
	return report, nil
}

// isCogsCode reports whether a numeric account code falls in the COGS block.
func isCogsCode(code string) bool {
	n, err := strconv.Atoi(code)
	if err != nil {
		return false
	}
	return n >= cogsCodeLow && n < cogsCodeHigh
}

// GetBalanceSheet builds the balance sheet as of the end of the given day.
func (s *reportingService) GetBalanceSheet(ctx context.Context, userID string, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	nets, err := s.reportingRepo.GetBalanceSheetData(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load balance sheet data", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to get balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, n := range nets {
		amount := accounting.NormalBalance(n.AccountType, n.Net)
		entry := domain.AccountAmount{
			AccountID: n.AccountID,
			Code:      n.Code,
			Name:      n.Name,
			NetAmount: amount,
		}
		switch n.AccountType {
		case domain.Asset:
			report.TotalAssets = report.TotalAssets.Add(amount)
			report.Assets = append(report.Assets, entry)
		case domain.Liability:
			report.TotalLiabilities = report.TotalLiabilities.Add(amount)
			report.Liabilities = append(report.Liabilities, entry)
		case domain.Equity:
			report.TotalEquity = report.TotalEquity.Add(amount)
			report.Equity = append(report.Equity, entry)
		}
	}
	return report, nil
}

// GetAgedReceivables buckets open customer invoices by days overdue.
func (s *reportingService) GetAgedReceivables(ctx context.Context, userID string, companyID string, asOf time.Time) (*domain.AgingReport, error) {
	return s.agingReport(ctx, userID, companyID, asOf, []domain.ContactType{domain.ContactCustomer, domain.ContactBoth})
}

// GetAgedPayables buckets open vendor invoices by days overdue.
func (s *reportingService) GetAgedPayables(ctx context.Context, userID string, companyID string, asOf time.Time) (*domain.AgingReport, error) {
	return s.agingReport(ctx, userID, companyID, asOf, []domain.ContactType{domain.ContactVendor, domain.ContactBoth})
}

func (s *reportingService) agingReport(ctx context.Context, userID string, companyID string, asOf time.Time, contactTypes []domain.ContactType) (*domain.AgingReport, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	open, err := s.invoiceRepo.ListOpenInvoices(ctx, companyID, contactTypes)
	if err != nil {
		s.LogError(ctx, err, "Failed to load open invoices", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list open invoices: %w", err)
	}

	asOf = accounting.Midnight(asOf)
	report := &domain.AgingReport{
		AsOf:       asOf,
		Rows:       []domain.AgingRow{},
		Current:    decimal.Zero,
		Days31to60: decimal.Zero,
		Days61to90: decimal.Zero,
		Over90:     decimal.Zero,
		Total:      decimal.Zero,
	}

	byContact := make(map[string]*domain.AgingRow)
	for _, inv := range open {
		row, ok := byContact[inv.ContactID]
		if !ok {
			row = &domain.AgingRow{
				ContactID:   inv.ContactID,
				ContactName: inv.ContactName,
				Current:     decimal.Zero,
				Days31to60:  decimal.Zero,
				Days61to90:  decimal.Zero,
				Over90:      decimal.Zero,
				Total:       decimal.Zero,
			}
			byContact[inv.ContactID] = row
		}

		days := accounting.DaysOverdue(inv.DueDate, asOf)
		switch accounting.BucketFor(days) {
		case accounting.BucketCurrent:
			row.Current = row.Current.Add(inv.Total)
			report.Current = report.Current.Add(inv.Total)
		case accounting.Bucket31to60:
			row.Days31to60 = row.Days31to60.Add(inv.Total)
			report.Days31to60 = report.Days31to60.Add(inv.Total)
		case accounting.Bucket61to90:
			row.Days61to90 = row.Days61to90.Add(inv.Total)
			report.Days61to90 = report.Days61to90.Add(inv.Total)
		case accounting.BucketOver90:
			row.Over90 = row.Over90.Add(inv.Total)
			report.Over90 = report.Over90.Add(inv.Total)
		}
		row.Total = row.Total.Add(inv.Total)
		report.Total = report.Total.Add(inv.Total)
	}

	for _, row := range byContact {
		report.Rows = append(report.Rows, *row)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].ContactName != report.Rows[j].ContactName {
			return report.Rows[i].ContactName < report.Rows[j].ContactName
		}
		return report.Rows[i].ContactID < report.Rows[j].ContactID
	})
	return report, nil
}
