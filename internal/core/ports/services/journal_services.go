package services

import (
	"context"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
)

// JournalSvcFacade defines operations on journal entries.
type JournalSvcFacade interface {
	// CreateEntry validates balance and account references, assigns the
	// entry number and persists entry plus lines atomically.
	CreateEntry(ctx context.Context, userID string, companyID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, userID string, companyID string, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, userID string, companyID string, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error)
	DeleteEntry(ctx context.Context, userID string, companyID string, entryID string) error
}
