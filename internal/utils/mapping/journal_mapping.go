package mapping

import (
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	"github.com/tidybooks/tidybooks_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its model form.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		CompanyID:   d.CompanyID,
		EntryNo:     d.EntryNo,
		EntryDate:   d.EntryDate,
		Description: d.Description,
		Reference:   d.Reference,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to its domain form.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		CompanyID:   m.CompanyID,
		EntryNo:     m.EntryNo,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		Reference:   m.Reference,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to its model form.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to its domain form.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts model lines to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
