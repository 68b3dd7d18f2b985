package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
	"github.com/tidybooks/tidybooks_backend/internal/utils/accounting"
)

var (
	ErrEntryMinLines   = errors.New("journal entry must have at least two lines")
	ErrAccountInactive = errors.New("cannot post to an inactive account")
)

const (
	defaultEntryPageSize = 50
	maxEntryPageSize     = 100
)

// journalService provides core journal entry operations.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalCompanyAuthorizer adds the company authorizer dependency
func WithJournalCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) JournalServiceOption {
	return func(s *journalService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates and persists a journal entry with its lines.
func (s *journalService) CreateEntry(ctx context.Context, userID string, companyID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	entryDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, req.Date)
	}

	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEntryMinLines)
	}

	now := time.Now()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	seen := make(map[string]struct{}, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			AuditFields: audit,
		}
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			accountIDs = append(accountIDs, l.AccountID)
		}
	}
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		s.LogDebug(ctx, "Journal entry rejected", slog.String("reason", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, userID, companyID, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		if !accounts[id].IsActive {
			return nil, fmt.Errorf("%w: account %s: %w", apperrors.ErrValidation, id, ErrAccountInactive)
		}
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		CompanyID:   companyID,
		EntryDate:   entryDate,
		Description: req.Description,
		Reference:   req.Reference,
		AuditFields: audit,
	}

	saved, err := s.journalRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal entry",
			slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	saved.Lines = lines

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", saved.EntryID),
		slog.String("entry_no", saved.EntryNo),
		slog.String("company_id", companyID))
	return saved, nil
}

// GetEntryByID returns a single journal entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, userID string, companyID string, entryID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries returns a page of journal entries with lines attached.
func (s *journalService) ListEntries(ctx context.Context, userID string, companyID string, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, companyID, params.From, params.To, limit, params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if len(entries) == 0 {
		return []domain.JournalEntry{}, nil, nil
	}

	entryIDs := make([]string, len(entries))
	for i := range entries {
		entryIDs[i] = entries[i].EntryID
	}
	linesByEntry, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load journal lines: %w", err)
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nextToken, nil
}

// DeleteEntry removes a journal entry and its lines.
func (s *journalService) DeleteEntry(ctx context.Context, userID string, companyID string, entryID string) error {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return err
	}
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to get journal entry: %w", err)
	}
	if entry.CompanyID != companyID {
		return apperrors.ErrNotFound
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry deleted",
		slog.String("entry_id", entryID),
		slog.String("entry_no", entry.EntryNo),
		slog.String("company_id", companyID))
	return nil
}
