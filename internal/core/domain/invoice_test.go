package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from   domain.InvoiceStatus
		to     domain.InvoiceStatus
		want   bool
	}{
		{domain.InvoiceDraft, domain.InvoiceSent, true},
		{domain.InvoiceDraft, domain.InvoicePaid, true},
		{domain.InvoiceDraft, domain.InvoiceCancelled, true},
		{domain.InvoiceSent, domain.InvoicePaid, true},
		{domain.InvoiceSent, domain.InvoiceCancelled, true},
		{domain.InvoiceSent, domain.InvoiceSent, false},
		{domain.InvoiceSent, domain.InvoiceDraft, false},
		{domain.InvoicePaid, domain.InvoiceCancelled, false},
		{domain.InvoicePaid, domain.InvoiceSent, false},
		{domain.InvoiceCancelled, domain.InvoiceSent, false},
		{domain.InvoiceCancelled, domain.InvoiceCancelled, false},
		{domain.InvoiceDraft, domain.InvoiceOverdue, false},
		{domain.InvoiceSent, domain.InvoiceOverdue, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestInvoiceStatus_Predicates(t *testing.T) {
	assert.True(t, domain.InvoiceDraft.IsOpen())
	assert.True(t, domain.InvoiceSent.IsOpen())
	assert.False(t, domain.InvoicePaid.IsOpen())
	assert.False(t, domain.InvoiceCancelled.IsOpen())

	assert.True(t, domain.InvoiceDraft.IsEditable())
	assert.True(t, domain.InvoiceCancelled.IsEditable())
	assert.False(t, domain.InvoiceSent.IsEditable())
	assert.False(t, domain.InvoicePaid.IsEditable())

	assert.True(t, domain.InvoicePaid.IsTerminal())
	assert.True(t, domain.InvoiceCancelled.IsTerminal())
	assert.False(t, domain.InvoiceDraft.IsTerminal())
}

func TestInvoice_EffectiveStatus(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	pastDue := domain.Invoice{Status: domain.InvoiceSent, DueDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, domain.InvoiceOverdue, pastDue.EffectiveStatus(now))

	draftPastDue := domain.Invoice{Status: domain.InvoiceDraft, DueDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, domain.InvoiceOverdue, draftPastDue.EffectiveStatus(now))

	notYetDue := domain.Invoice{Status: domain.InvoiceSent, DueDate: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, domain.InvoiceSent, notYetDue.EffectiveStatus(now))

	// Terminal statuses never read as overdue
	paid := domain.Invoice{Status: domain.InvoicePaid, DueDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, domain.InvoicePaid, paid.EffectiveStatus(now))

	cancelled := domain.Invoice{Status: domain.InvoiceCancelled, DueDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, domain.InvoiceCancelled, cancelled.EffectiveStatus(now))
}
