package repositories

import (
	"context"
	"time"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of a single entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by
	// entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)

	// ListEntries retrieves entries of a company ordered by date, optionally
	// restricted to a date window (inclusive on both ends), with token
	// pagination.
	ListEntries(ctx context.Context, companyID string, from, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines write operations for journal entry data.
type EntryWriter interface {
	// SaveEntry reserves the next per-company entry number and persists the
	// entry together with all its lines in a single transaction. The
	// returned entry carries the assigned EntryNo.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error)

	// DeleteEntry removes the entry and all its lines in one transaction.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	EntryReader
	EntryWriter
}
