package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCodes(ctx context.Context, codes []string) ([]catalog.Item, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) FindSalesItemsBySupplier(ctx context.Context, supplier string) ([]catalog.Item, error) {
	args := m.Called(ctx, supplier)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) SearchBySupplier(ctx context.Context, supplier string, search catalog.ItemSearch) ([]catalog.ItemOption, error) {
	args := m.Called(ctx, supplier, search)
	return args.Get(0).([]catalog.ItemOption), args.Error(1)
}

func (m *MockItemRepository) SearchByCustomerAgreement(ctx context.Context, customer string, date time.Time, search catalog.ItemSearch) ([]catalog.ItemOption, error) {
	args := m.Called(ctx, customer, date, search)
	return args.Get(0).([]catalog.ItemOption), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return m.Called(ctx, item).Error(0)
}

// MockBrandRepository is a mock implementation of partner.BrandRepository
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) FindByName(ctx context.Context, name string) (*partner.Brand, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Brand, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Brand), args.Get(1).(int64), args.Error(2)
}

func (m *MockBrandRepository) Save(ctx context.Context, brand *partner.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func newItemService() (*ItemService, *MockItemRepository, *MockBrandRepository) {
	items := new(MockItemRepository)
	brands := new(MockBrandRepository)
	return NewItemService(items, brands, testutil.NewMovableClock(2025, 6, 15), zap.NewNop()), items, brands
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code)
}

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("supplier display follows primary row", func(t *testing.T) {
		svc, items, brands := newItemService()
		saucy, _ := partner.NewBrand("Saucy")
		items.On("FindByCode", ctx, "SAU").Return(nil, shared.ErrNotFound)
		brands.On("FindByName", ctx, "Saucy").Return(saucy, nil)
		items.On("Save", ctx, mock.AnythingOfType("*catalog.Item")).Return(nil)

		resp, err := svc.Create(ctx, CreateItemRequest{
			Code:  " SAU ",
			Name:  "Tomato Sauce",
			Brand: "Saucy",
			Suppliers: []ItemSupplierInput{
				{Supplier: "Fresh Farms"},
				{Supplier: "Sauce Works", IsPrimary: true},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "SAU", resp.Code)
		assert.Equal(t, "Sauce Works", resp.SupplierDisplay)
		assert.True(t, resp.IsSalesItem)
		assert.Equal(t, "Nos", resp.StockUOM)
		require.Len(t, resp.Suppliers, 2)
		assert.Equal(t, 2, resp.Suppliers[1].Idx)
	})

	t.Run("duplicate code", func(t *testing.T) {
		svc, items, _ := newItemService()
		existing, _ := catalog.NewItem("TOM", "Tomato")
		items.On("FindByCode", ctx, "TOM").Return(existing, nil)

		_, err := svc.Create(ctx, CreateItemRequest{Code: "TOM"})
		requireCode(t, err, "ALREADY_EXISTS")
	})

	t.Run("unknown brand", func(t *testing.T) {
		svc, items, brands := newItemService()
		items.On("FindByCode", ctx, "NAP").Return(nil, shared.ErrNotFound)
		brands.On("FindByName", ctx, "Nobody").Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateItemRequest{Code: "NAP", Brand: "Nobody"})
		requireCode(t, err, "INVALID_BRAND")
		items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate supplier rows", func(t *testing.T) {
		svc, items, _ := newItemService()
		items.On("FindByCode", ctx, "PEN").Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateItemRequest{Code: "PEN", Suppliers: []ItemSupplierInput{
			{Supplier: "Pasta Co"}, {Supplier: "Pasta Co"},
		}})
		requireCode(t, err, "DUPLICATE_SUPPLIER")
	})
}

func TestItemService_Update(t *testing.T) {
	ctx := context.Background()
	svc, items, _ := newItemService()

	item, _ := catalog.NewItem("TOM", "Tomato")
	require.NoError(t, item.SetSuppliers([]catalog.ItemSupplier{{Supplier: "Fresh Farms"}}))
	items.On("FindByCode", ctx, "TOM").Return(item, nil)
	items.On("Save", ctx, item).Return(nil)

	kitchen, disabled, blank := true, true, ""
	resp, err := svc.Update(ctx, "TOM", UpdateItemRequest{
		Name:          &blank,
		IsKitchenItem: &kitchen,
		Disabled:      &disabled,
		Suppliers:     []ItemSupplierInput{},
	})
	require.NoError(t, err)
	assert.Equal(t, "TOM", resp.Name)
	assert.True(t, resp.IsKitchenItem)
	assert.True(t, resp.Disabled)
	assert.Empty(t, resp.Suppliers)
	assert.Empty(t, resp.SupplierDisplay)
}

func TestItemService_SearchBySupplier(t *testing.T) {
	ctx := context.Background()
	svc, items, _ := newItemService()

	for _, supplier := range []string{"", NoSupplier, "  "} {
		got, err := svc.SearchBySupplier(ctx, SupplierSearchQuery{Supplier: supplier})
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	items.AssertNotCalled(t, "SearchBySupplier", mock.Anything, mock.Anything, mock.Anything)

	want := []catalog.ItemOption{{Code: "TOM", Name: "Tomato"}}
	items.On("SearchBySupplier", ctx, "Fresh Farms", catalog.ItemSearch{
		Text: "tom", SearchField: catalog.SearchFieldName, PageLen: 20,
	}).Return(want, nil)

	got, err := svc.SearchBySupplier(ctx, SupplierSearchQuery{
		SearchQuery: SearchQuery{Txt: "tom", SearchField: "description; DROP TABLE items"},
		Supplier:    "Fresh Farms",
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestItemService_SearchByCustomerAgreement(t *testing.T) {
	ctx := context.Background()
	svc, items, _ := newItemService()

	got, err := svc.SearchByCustomerAgreement(ctx, AgreementSearchQuery{})
	require.NoError(t, err)
	assert.Empty(t, got)

	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	search := catalog.ItemSearch{SearchField: catalog.SearchFieldItemName, PageLen: 10}
	items.On("SearchByCustomerAgreement", ctx, "Cafe Nord", today, search).
		Return([]catalog.ItemOption{{Code: "SAU", Name: "Sauce"}}, nil)

	got, err = svc.SearchByCustomerAgreement(ctx, AgreementSearchQuery{
		SearchQuery: SearchQuery{SearchField: "item_name", PageLen: 10},
		Customer:    "Cafe Nord",
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	july := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	items.On("SearchByCustomerAgreement", ctx, "Cafe Nord", july, catalog.ItemSearch{}.Normalize()).
		Return([]catalog.ItemOption{{Code: "TOM", Name: "Tomato"}}, nil)
	got, err = svc.SearchByCustomerAgreement(ctx, AgreementSearchQuery{Customer: "Cafe Nord", PostingDate: " 2025-07-01 "})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "TOM", got[0].Code)

	_, err = svc.SearchByCustomerAgreement(ctx, AgreementSearchQuery{Customer: "Cafe Nord", PostingDate: "15.06.2025"})
	requireCode(t, err, "INVALID_DATE")
	items.AssertExpectations(t)
}
