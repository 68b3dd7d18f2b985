package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// CreateJournalLineRequest is one line of a new journal entry. Debit and
// credit are both non-negative; normally exactly one is nonzero.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountId" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest defines the data needed to post a journal entry.
// Dates are calendar dates in YYYY-MM-DD form.
type CreateJournalEntryRequest struct {
	Date        string                     `json:"date" binding:"required,datetime=2006-01-02"`
	Description string                     `json:"description"`
	Reference   string                     `json:"reference"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=50"`
	NextToken *string    `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	EntryNo     string                `json:"entryNo"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
	Reference   string                `json:"reference"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Description: l.Description,
		Debit:       l.Debit,
		Credit:      l.Credit,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     e.EntryID,
		EntryNo:     e.EntryNo,
		Date:        e.EntryDate,
		Description: e.Description,
		Reference:   e.Reference,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(&e.Lines[i])
		}
	}
	return resp
}
