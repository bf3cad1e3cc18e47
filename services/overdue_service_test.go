package services

import (
	"testing"
	"time"

	"aiinvoice-backend/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepOverdue(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOverdueService(db, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC) }

	seed := []models.Invoice{
		{ID: uuid.New(), Owner: "u", InvoiceNumber: "INV-PAST", Status: "unpaid", DueDate: "2026-08-01"},
		{ID: uuid.New(), Owner: "u", InvoiceNumber: "INV-TODAY", Status: "unpaid", DueDate: "2026-08-28"},
		{ID: uuid.New(), Owner: "u", InvoiceNumber: "INV-FUTURE", Status: "unpaid", DueDate: "2026-09-15"},
		{ID: uuid.New(), Owner: "u", InvoiceNumber: "INV-NODUE", Status: "unpaid", DueDate: ""},
		{ID: uuid.New(), Owner: "u", InvoiceNumber: "INV-PAID", Status: "paid", DueDate: "2026-08-01"},
		{ID: uuid.New(), Owner: "u", InvoiceNumber: "INV-DRAFT", Status: "draft", DueDate: "2026-08-01"},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	svc.SweepOverdue()

	status := func(number string) string {
		var inv models.Invoice
		require.NoError(t, db.First(&inv, "invoice_number = ?", number).Error)
		return inv.Status
	}

	assert.Equal(t, "overdue", status("INV-PAST"))
	assert.Equal(t, "unpaid", status("INV-TODAY"), "due today is not overdue yet")
	assert.Equal(t, "unpaid", status("INV-FUTURE"))
	assert.Equal(t, "unpaid", status("INV-NODUE"))
	assert.Equal(t, "paid", status("INV-PAID"))
	assert.Equal(t, "draft", status("INV-DRAFT"), "only unpaid invoices are swept")
}
