package trade

import (
	"testing"
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *SalesOrder {
	t.Helper()
	o, err := NewSalesOrder("SO-00001", "Culinary", "Cafe Nord", shared.NewDate(2025, 3, 10))
	require.NoError(t, err)
	return o
}

func TestNewSalesOrder(t *testing.T) {
	_, err := NewSalesOrder("SO-1", "", "Cafe Nord", time.Now())
	assert.Error(t, err)
	_, err = NewSalesOrder("SO-1", "Culinary", "", time.Now())
	assert.Error(t, err)
	_, err = NewSalesOrder("SO-1", "Culinary", "Cafe Nord", time.Time{})
	assert.Error(t, err)

	o := newTestOrder(t)
	assert.Equal(t, DocStatusDraft, o.DocStatus)
	assert.Equal(t, "Draft", o.DocStatus.String())
}

func TestSalesOrder_AddItemAndTotals(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AddItem(SalesOrderItem{ItemCode: "TOM", Qty: decimal.NewFromInt(3), Rate: decimal.RequireFromString("2.5")}))
	require.NoError(t, o.AddItem(SalesOrderItem{ItemCode: "BAS", Qty: decimal.NewFromInt(2), Rate: decimal.NewFromInt(4)}))

	assert.Equal(t, "7.5", o.Items[0].Amount.String())
	assert.Equal(t, 2, o.Items[1].Idx)
	assert.Equal(t, "15.5", o.GrandTotal.String())

	assert.Error(t, o.AddItem(SalesOrderItem{ItemCode: "", Qty: decimal.NewFromInt(1)}))
	assert.Error(t, o.AddItem(SalesOrderItem{ItemCode: "X", Qty: decimal.Zero}))
	assert.Error(t, o.AddItem(SalesOrderItem{ItemCode: "X", Qty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(-1)}))
}

func TestSalesOrder_ApplyAgreementPrice(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AddItem(SalesOrderItem{ItemCode: "TOM", Qty: decimal.NewFromInt(4), Rate: decimal.NewFromInt(1)}))

	o.ApplyAgreementPrice(0, decimal.RequireFromString("3.25"), "Metro")
	o.CalculateTotals()

	line := o.Items[0]
	assert.True(t, line.RateLocked)
	assert.Equal(t, "Metro", line.Supplier)
	assert.Equal(t, "3.25", line.PriceListRate.String())
	assert.Equal(t, "13", line.Amount.String())
	assert.Equal(t, "13", o.GrandTotal.String())
}

func TestSalesOrder_SubmitCancel(t *testing.T) {
	o := newTestOrder(t)
	err := o.Submit()
	require.Error(t, err)

	require.NoError(t, o.AddItem(SalesOrderItem{ItemCode: "TOM", Qty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(2)}))
	require.NoError(t, o.Submit())
	assert.Equal(t, DocStatusSubmitted, o.DocStatus)
	require.Len(t, o.GetDomainEvents(), 1)
	ev, ok := o.GetDomainEvents()[0].(*SalesOrderSubmittedEvent)
	require.True(t, ok)
	assert.Equal(t, "SO-00001", ev.Name)
	assert.Equal(t, "2", ev.GrandTotal.String())

	assert.Error(t, o.Submit())
	assert.Error(t, o.AddItem(SalesOrderItem{ItemCode: "BAS", Qty: decimal.NewFromInt(1)}))

	require.NoError(t, o.Cancel())
	assert.Error(t, o.Cancel())
}

func TestSalesOrder_PostingDate(t *testing.T) {
	today := shared.NewDate(2025, 5, 1)
	o := newTestOrder(t)
	assert.Equal(t, shared.NewDate(2025, 3, 10), o.PostingDate(today))

	delivery := shared.NewDate(2025, 3, 12)
	o.TransactionDate = time.Time{}
	o.DeliveryDate = &delivery
	assert.Equal(t, delivery, o.PostingDate(today))

	o.DeliveryDate = nil
	assert.Equal(t, today, o.PostingDate(today))
}

func TestSalesOrder_SetDeliveryDate(t *testing.T) {
	o := newTestOrder(t)
	before := shared.NewDate(2025, 3, 9)
	assert.Error(t, o.SetDeliveryDate(&before))
	after := shared.NewDate(2025, 3, 11)
	require.NoError(t, o.SetDeliveryDate(&after))
	assert.Equal(t, after, *o.DeliveryDate)
	require.NoError(t, o.SetDeliveryDate(nil))
	assert.Nil(t, o.DeliveryDate)
}

func TestNewChildOrder(t *testing.T) {
	parent := newTestOrder(t)
	parent.Currency = "EUR"
	parent.SetAddresses("Cafe Nord-Shipping", "Cafe Nord-Billing")

	child, err := NewChildOrder(parent, "MBER-00001", "Mutfak - Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Cafe Nord", child.Customer)
	assert.Equal(t, parent.TransactionDate, *child.DeliveryDate, "delivery falls back to transaction date")
	assert.Equal(t, "Cafe Nord-Shipping", child.ShippingAddress)
	assert.Equal(t, "SO-00001", child.SourceWebSO)
	assert.True(t, child.IsChild())
	assert.False(t, parent.IsChild())

	line := SalesOrderItem{ItemCode: "TOM", ItemName: "Tomato", Qty: decimal.NewFromInt(2), Rate: decimal.NewFromInt(3), Supplier: "Metro", RateLocked: true}
	require.NoError(t, child.CopyLine(line))
	assert.Equal(t, "6", child.GrandTotal.String())
	assert.Equal(t, "Metro", child.Items[0].Supplier)
}

func TestSlugifyPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MBER", "MBER"},
		{"  mutfak berlin  ", "MUTFAK-BERLIN"},
		{"Pasta & Co.", "PASTA--CO"},
		{"Şiş Köfte  Evi", "SIS-KOFTE-EVI"},
		{"Işık", "ISIK"},
		{"", "BRAND"},
		{"   ", "BRAND"},
		{"%%%", "BRAND"},
		{"abcdefghijklmnopqrstuvwxyz0123456789", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugifyPrefix(tt.in))
		})
	}
}

func TestCompanyPrefix(t *testing.T) {
	assert.Equal(t, "MBER", CompanyPrefix("mber", "Mutfak - Berlin"))
	assert.Equal(t, "MUTFAK---BERLIN", CompanyPrefix(" ", "Mutfak - Berlin"))
}

func TestSalesOrder_ReplaceItems(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AddItem(SalesOrderItem{ItemCode: "TOM", Qty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(2)}))

	err := o.ReplaceItems([]SalesOrderItem{
		{ItemCode: "BAS", Qty: decimal.NewFromInt(2), Rate: decimal.NewFromInt(3)},
		{ItemCode: "", Qty: decimal.NewFromInt(1)},
	})
	assert.Error(t, err)
	require.Len(t, o.Items, 1, "a rejected replacement keeps the old lines")
	assert.Equal(t, "TOM", o.Items[0].ItemCode)

	require.NoError(t, o.ReplaceItems([]SalesOrderItem{
		{ItemCode: "BAS", Qty: decimal.NewFromInt(2), Rate: decimal.NewFromInt(3)},
	}))
	assert.Equal(t, "6", o.GrandTotal.String())

	require.NoError(t, o.Submit())
	assert.Error(t, o.ReplaceItems(nil))
}
