package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	pricingapp "github.com/culinary/backend/internal/application/pricing"
	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/pricing"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/domain/trade"
	"github.com/culinary/backend/internal/infrastructure/cache"
	"github.com/culinary/backend/internal/infrastructure/event"
	"github.com/culinary/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var dec = decimal.RequireFromString

type fixture struct {
	repos    *testutil.Repos
	clock    *testutil.MovableClock
	pricer   *AgreementPricer
	orders   *SalesOrderService
	splitter *OrderSplitter
	bus      *event.InMemoryEventBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := testutil.NewRepos(t)
	clock := testutil.NewMovableClock(2025, 3, 10)
	settings := DefaultSettings()
	rates := pricingapp.NewRateService(repos.ItemPrices, repos.Exchanges, repos.Items, repos.Suppliers,
		repos.Companies, pricingapp.DefaultSettings(), zap.NewNop())
	pricer := NewAgreementPricer(repos.Agreements, rates, clock, settings, zap.NewNop())
	orders := NewSalesOrderService(repos.Orders, repos.Items, pricer, repos.Tx, repos.Naming, clock, zap.NewNop())
	splitter := NewOrderSplitter(repos.Orders, repos.Items, repos.Companies, repos.Addresses, repos.Brands,
		repos.Naming, repos.Tx, settings, zap.NewNop())

	bus := event.NewInMemoryEventBus(zap.NewNop())
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	bus.Subscribe(event.NewIdempotentHandler(NewOrderSplitHandler(splitter, repos.Orders, zap.NewNop()), store, zap.NewNop()))
	orders.SetEventPublisher(bus)
	splitter.SetEventPublisher(bus)

	f := &fixture{repos: repos, clock: clock, pricer: pricer, orders: orders, splitter: splitter, bus: bus}
	f.seed(t)
	return f
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	for _, a := range []struct{ name, pincode string }{
		{"Kitchen Berlin", "10115"},
		{"Kitchen Hamburg", "20095"},
		{"Cafe Nord Shipping", "20095"},
		{"Cafe Nord Office", ""},
	} {
		addr, err := partner.NewAddress(a.name, "Street 1", "City", a.pincode, "Germany")
		require.NoError(t, err)
		require.NoError(t, f.repos.Addresses.Save(ctx, addr))
	}

	for _, c := range []struct{ name, abbr, address string }{
		{"Culinary", "CUL", ""},
		{"Mutfak - Berlin", "MBER", "Kitchen Berlin"},
		{"Mutfak - Hamburg", "MHAM", "Kitchen Hamburg"},
		{"Pasta Co", "", ""},
	} {
		company, err := partner.NewCompany(c.name, c.abbr, "EUR")
		require.NoError(t, err)
		if c.address != "" {
			company.SetDefaultAddress(c.address)
		}
		require.NoError(t, f.repos.Companies.Save(ctx, company))
	}

	saucy, err := partner.NewBrand("Saucy")
	require.NoError(t, err)
	saucy.DefaultCompany = "Mutfak - Berlin"
	require.NoError(t, f.repos.Brands.Save(ctx, saucy))

	for _, it := range []struct {
		code, name, brand string
		kitchen           bool
	}{
		{"TOM", "Tomato Soup", "", true},
		{"PEN", "Penne", "Pasta Co", false},
		{"SAU", "Tomato Sauce", "Saucy", false},
		{"NAP", "Napkins", "Nobody", false},
		{"WAT", "Water", "", false},
	} {
		item, err := catalog.NewItem(it.code, it.name)
		require.NoError(t, err)
		item.Brand = it.brand
		item.IsKitchenItem = it.kitchen
		require.NoError(t, f.repos.Items.Save(ctx, item))
	}

	a, err := agreement.NewAgreement("AGR-00001", "Cafe Nord", "Fresh Farms",
		testutil.DayPtr(2025, 3, 1), testutil.DayPtr(2025, 3, 31))
	require.NoError(t, err)
	a.SetItems([]agreement.Item{
		{ItemCode: "TOM", Currency: "EUR", PriceListRate: dec("4.50")},
		{ItemCode: "PEN", Currency: "EUR", PriceListRate: dec("2.00")},
		{ItemCode: "SAU", Currency: "EUR", PriceListRate: dec("3.00")},
		{ItemCode: "NAP", Currency: "EUR", PriceListRate: dec("0.50")},
		{ItemCode: "WAT", Currency: "EUR", PriceListRate: dec("1.00")},
	})
	require.NoError(t, a.Submit(shared.Today(f.clock)))
	require.NoError(t, f.repos.Agreements.Save(ctx, a))
}

func line(code, qty string) SalesOrderItemInput {
	return SalesOrderItemInput{ItemCode: code, Qty: dec(qty)}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestSalesOrderService_CreatePricesFromAgreement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.orders.Create(ctx, CreateSalesOrderRequest{
		Company:  "Culinary",
		Customer: "Cafe Nord",
		Items:    []SalesOrderItemInput{line("TOM", "2"), {ItemCode: "PEN", Qty: dec("3"), Rate: dec("9.99")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "SO-00001", resp.Name)
	assert.Equal(t, "2025-03-10", resp.TransactionDate)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Equal(t, "Tomato Soup", resp.Items[0].ItemName)
	assert.True(t, dec("4.50").Equal(resp.Items[0].Rate))
	assert.True(t, resp.Items[0].RateLocked)
	assert.Equal(t, "Fresh Farms", resp.Items[0].Supplier)
	assert.True(t, dec("2.00").Equal(resp.Items[1].Rate), "agreement rate overrides the entered rate")
	assert.True(t, dec("15").Equal(resp.GrandTotal))

	tests := []struct {
		name string
		date string
		item string
		code string
	}{
		{"item outside agreements", "2025-03-10", "XYZ", agreement.ErrCodeItemNotInAgreement},
		{"agreement not started", "2025-02-10", "TOM", agreement.ErrCodeNotYetValid},
		{"agreement expired", "2025-04-10", "TOM", agreement.ErrCodeExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.Create(ctx, CreateSalesOrderRequest{
				Company:         "Culinary",
				Customer:        "Cafe Nord",
				TransactionDate: tt.date,
				Items:           []SalesOrderItemInput{line(tt.item, "1")},
			})
			requireCode(t, err, tt.code)
		})
	}
}

func TestSalesOrderService_ConvertsCurrency(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ce, err := pricing.NewCurrencyExchange("EUR", "USD", testutil.Day(2025, 3, 1), dec("1.10"))
	require.NoError(t, err)
	require.NoError(t, f.repos.Exchanges.Save(ctx, ce))

	resp, err := f.orders.Create(ctx, CreateSalesOrderRequest{
		Company:  "Culinary",
		Customer: "Cafe Nord",
		Currency: "usd",
		Items:    []SalesOrderItemInput{line("PEN", "1")},
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", resp.Currency)
	assert.True(t, dec("2.2").Equal(resp.Items[0].Rate))

	price, err := f.orders.ItemPriceFromAgreement(ctx, ItemPriceQuery{
		Customer: "Cafe Nord", ItemCode: "PEN", PostingDate: "2025-03-15", Currency: "USD",
	})
	require.NoError(t, err)
	require.True(t, price.Found())
	assert.True(t, dec("2.2").Equal(*price.PriceListRate))
	assert.Equal(t, "Fresh Farms", price.Supplier)

	price, err = f.orders.ItemPriceFromAgreement(ctx, ItemPriceQuery{
		Customer: "Cafe Nord", ItemCode: "PEN", PostingDate: "2025-05-01",
	})
	require.NoError(t, err)
	assert.False(t, price.Found())
}

func TestSalesOrderService_UpdateAndCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.orders.Create(ctx, CreateSalesOrderRequest{
		Company: "Bistro", Customer: "Cafe Nord", Items: []SalesOrderItemInput{line("TOM", "1")},
	})
	require.NoError(t, err)

	delivery := "2025-03-12"
	updated, err := f.orders.Update(ctx, resp.Name, UpdateSalesOrderRequest{
		DeliveryDate: &delivery,
		Items:        []SalesOrderItemInput{line("TOM", "1"), line("WAT", "6")},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", *updated.DeliveryDate)
	assert.Len(t, updated.Items, 2)
	assert.True(t, dec("10.5").Equal(updated.GrandTotal))

	early := "2025-03-01"
	_, err = f.orders.Update(ctx, resp.Name, UpdateSalesOrderRequest{DeliveryDate: &early})
	requireCode(t, err, trade.ErrCodeInvalidDeliveryDate)

	submitted, err := f.orders.Submit(ctx, resp.Name)
	require.NoError(t, err)
	assert.Equal(t, "Submitted", submitted.Status)
	_, err = f.orders.Update(ctx, resp.Name, UpdateSalesOrderRequest{})
	requireCode(t, err, trade.ErrCodeNotDraft)

	children, err := f.orders.ListChildren(ctx, resp.Name)
	require.NoError(t, err)
	assert.Empty(t, children, "orders of other companies are not split")

	cancelled, err := f.orders.Cancel(ctx, resp.Name)
	require.NoError(t, err)
	assert.Equal(t, 2, cancelled.DocStatus)
	_, err = f.orders.Cancel(ctx, resp.Name)
	requireCode(t, err, trade.ErrCodeAlreadyCancelled)
}

func TestSubmit_SplitsIntoChildOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.orders.Create(ctx, CreateSalesOrderRequest{
		Company:         "Culinary",
		Customer:        "Cafe Nord",
		DeliveryDate:    "2025-03-14",
		ShippingAddress: "Cafe Nord Shipping",
		CustomerAddress: "Cafe Nord Office",
		Items: []SalesOrderItemInput{
			line("TOM", "2"), line("PEN", "4"), line("SAU", "1"), line("NAP", "10"), line("WAT", "3"),
		},
	})
	require.NoError(t, err)
	_, err = f.orders.Submit(ctx, resp.Name)
	require.NoError(t, err)

	children, err := f.orders.ListChildren(ctx, resp.Name)
	require.NoError(t, err)
	require.Len(t, children, 3)

	byCompany := make(map[string]SalesOrderResponse, len(children))
	for _, c := range children {
		byCompany[c.Company] = c
		assert.Equal(t, resp.Name, c.SourceWebSO)
		assert.Equal(t, 1, c.DocStatus)
		assert.Equal(t, "2025-03-14", *c.DeliveryDate)
		assert.Equal(t, "Cafe Nord Shipping", c.ShippingAddress)
	}

	kitchen, ok := byCompany["Mutfak - Hamburg"]
	require.True(t, ok, "kitchen chosen by matching pincode")
	assert.Equal(t, "MHAM-00001", kitchen.Name)
	require.Len(t, kitchen.Items, 1)
	assert.Equal(t, "TOM", kitchen.Items[0].ItemCode)
	assert.True(t, dec("9").Equal(kitchen.GrandTotal))

	pasta, ok := byCompany["Pasta Co"]
	require.True(t, ok, "brand routed to the company named like it")
	assert.Equal(t, "PASTA-CO-00001", pasta.Name)
	assert.True(t, dec("8").Equal(pasta.GrandTotal))

	saucy, ok := byCompany["Mutfak - Berlin"]
	require.True(t, ok, "brand routed to its default company")
	assert.Equal(t, "MBER-00001", saucy.Name)

	t.Run("splitting again creates nothing", func(t *testing.T) {
		again, err := f.splitter.SplitByName(ctx, resp.Name)
		require.NoError(t, err)
		assert.Empty(t, again.Children)
	})
}

func TestSplit_KitchenRouting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	submit := func(t *testing.T, shipping string) []SalesOrderResponse {
		t.Helper()
		resp, err := f.orders.Create(ctx, CreateSalesOrderRequest{
			Company: "Culinary", Customer: "Cafe Nord", ShippingAddress: shipping,
			Items: []SalesOrderItemInput{line("TOM", "1")},
		})
		require.NoError(t, err)
		_, err = f.orders.Submit(ctx, resp.Name)
		require.NoError(t, err)
		children, err := f.orders.ListChildren(ctx, resp.Name)
		require.NoError(t, err)
		return children
	}

	assert.Empty(t, submit(t, ""), "no shipping pincode, no kitchen")
	assert.Empty(t, submit(t, "Cafe Nord Office"), "address without pincode")

	addr, err := partner.NewAddress("Munich Branch", "Street 2", "Munich", "80331", "Germany")
	require.NoError(t, err)
	require.NoError(t, f.repos.Addresses.Save(ctx, addr))
	children := submit(t, "Munich Branch")
	require.Len(t, children, 1)
	assert.Equal(t, "Mutfak - Berlin", children[0].Company, "first kitchen when no pincode matches")
}

func TestSplit_RequiresSubmittedOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.orders.Create(ctx, CreateSalesOrderRequest{
		Company: "Culinary", Customer: "Cafe Nord", Items: []SalesOrderItemInput{line("PEN", "1")},
	})
	require.NoError(t, err)
	_, err = f.splitter.SplitByName(ctx, resp.Name)
	requireCode(t, err, trade.ErrCodeNotSubmitted)
}

func TestOrderSplitHandler(t *testing.T) {
	f := newFixture(t)
	h := NewOrderSplitHandler(f.splitter, f.repos.Orders, zap.NewNop())

	assert.Equal(t, []string{trade.EventTypeSalesOrderSubmitted}, h.EventTypes())
	assert.Error(t, h.Handle(context.Background(), testutil.NewTestEvent(trade.EventTypeSalesOrderSubmitted)))

	o, err := trade.NewSalesOrder("SO-404", "Culinary", "Cafe Nord", testutil.Day(2025, 3, 10))
	require.NoError(t, err)
	err = h.Handle(context.Background(), trade.NewSalesOrderSubmittedEvent(o))
	assert.True(t, errors.Is(err, shared.ErrNotFound), "missing parent surfaces as an error")

	o.SourceWebSO = "SO-00001"
	assert.NoError(t, h.Handle(context.Background(), trade.NewSalesOrderSubmittedEvent(o)), "children are never split")
}
