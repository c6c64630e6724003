package proforma

import (
	"testing"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProformaInvoice(t *testing.T) {
	today := shared.NewDate(2025, 3, 10)

	_, err := NewProformaInvoice("PRO-00001", "Cafe Nord", "", "MBER-00001", "Mutfak - Berlin", today, 30)
	assert.Error(t, err)

	p, err := NewProformaInvoice("PRO-00001", "Cafe Nord", "SO-00001", "MBER-00001", "Mutfak - Berlin", today, 0)
	require.NoError(t, err)
	assert.Equal(t, today, p.InvoiceDate)
	assert.Equal(t, shared.NewDate(2025, 4, 9), p.DueDate)
}

func TestProformaInvoice_TotalsAndSubmit(t *testing.T) {
	p, err := NewProformaInvoice("PRO-00001", "Cafe Nord", "SO-00001", "MBER-00001", "Mutfak - Berlin", shared.NewDate(2025, 3, 10), 30)
	require.NoError(t, err)

	p.AddItem("TOM", "Tomato", decimal.NewFromInt(2), decimal.NewFromInt(3), decimal.NewFromInt(6))
	p.AddItem("BAS", "Basil", decimal.NewFromInt(1), decimal.RequireFromString("1.5"), decimal.RequireFromString("1.5"))
	assert.Equal(t, "Mutfak - Berlin", p.Items[1].SupplierCompany)
	assert.Equal(t, 2, p.Items[1].Idx)

	require.NoError(t, p.Submit())
	assert.Equal(t, "7.5", p.GrandTotal.String())
	assert.Len(t, p.GetDomainEvents(), 1)
	assert.Error(t, p.Submit())
}

func TestAttachmentName(t *testing.T) {
	assert.Equal(t, "Proforma_MBER-00001.json", AttachmentName("MBER-00001", ".json"))
}
