package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ItemService handles item master data and the item link searches
type ItemService struct {
	items  catalog.ItemRepository
	brands partner.BrandRepository
	clock  shared.Clock
	logger *zap.Logger
}

// NewItemService creates a new ItemService
func NewItemService(items catalog.ItemRepository, brands partner.BrandRepository, clock shared.Clock, logger *zap.Logger) *ItemService {
	return &ItemService{items: items, brands: brands, clock: clock, logger: logger}
}

// Create creates an item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	_, err := s.items.FindByCode(ctx, strings.TrimSpace(req.Code))
	switch {
	case err == nil:
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Item with this code already exists")
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	item, err := catalog.NewItem(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	item.ItemGroup = req.ItemGroup
	item.Description = req.Description
	item.IsKitchenItem = req.IsKitchenItem
	if req.StockUOM != "" {
		item.StockUOM = req.StockUOM
	}
	if req.IsSalesItem != nil {
		item.IsSalesItem = *req.IsSalesItem
	}
	if err := s.setBrand(ctx, item, req.Brand); err != nil {
		return nil, err
	}
	if err := item.SetSuppliers(toSupplierRows(req.Suppliers)); err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("Item created", zap.String("item_code", item.Code))
	response := ToItemResponse(item)
	return &response, nil
}

// Update changes an item. A non-nil supplier list replaces the supplier table.
func (s *ItemService) Update(ctx context.Context, code string, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.items.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			name = item.Code
		}
		item.Name = name
	}
	if req.ItemGroup != nil {
		item.ItemGroup = *req.ItemGroup
	}
	if req.StockUOM != nil && *req.StockUOM != "" {
		item.StockUOM = *req.StockUOM
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.IsSalesItem != nil {
		item.IsSalesItem = *req.IsSalesItem
	}
	if req.IsKitchenItem != nil {
		item.IsKitchenItem = *req.IsKitchenItem
	}
	if req.Disabled != nil {
		item.Disabled = *req.Disabled
	}
	if req.Brand != nil {
		if err := s.setBrand(ctx, item, *req.Brand); err != nil {
			return nil, err
		}
	}
	if req.Suppliers != nil {
		if err := item.SetSuppliers(toSupplierRows(req.Suppliers)); err != nil {
			return nil, err
		}
	}
	item.RefreshSupplierDisplay()
	item.Touch()

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

func (s *ItemService) setBrand(ctx context.Context, item *catalog.Item, brand string) error {
	brand = strings.TrimSpace(brand)
	if brand != "" {
		if _, err := s.brands.FindByName(ctx, brand); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_BRAND", "Brand "+brand+" does not exist")
			}
			return err
		}
	}
	item.Brand = brand
	return nil
}

func toSupplierRows(in []ItemSupplierInput) []catalog.ItemSupplier {
	rows := make([]catalog.ItemSupplier, len(in))
	for i, r := range in {
		rows[i] = catalog.ItemSupplier{Supplier: r.Supplier, IsPrimary: r.IsPrimary}
	}
	return rows
}

// GetByCode retrieves an item by code
func (s *ItemService) GetByCode(ctx context.Context, code string) (*ItemResponse, error) {
	item, err := s.items.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves items with filtering and pagination
func (s *ItemService) List(ctx context.Context, q ListItemsQuery) ([]ItemResponse, int64, error) {
	items, total, err := s.items.FindAll(ctx, q.ToFilter())
	if err != nil {
		return nil, 0, err
	}
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out, total, nil
}

// SearchBySupplier returns the items listing the supplier.
// No supplier, or the placeholder, yields an empty list.
func (s *ItemService) SearchBySupplier(ctx context.Context, q SupplierSearchQuery) ([]catalog.ItemOption, error) {
	supplier := strings.TrimSpace(q.Supplier)
	if supplier == "" || supplier == NoSupplier {
		return []catalog.ItemOption{}, nil
	}
	return s.items.SearchBySupplier(ctx, supplier, q.toSearch())
}

// SearchByCustomerAgreement returns the items of the customer's agreements valid
// on the posting date, today when none is given. No customer yields an empty list.
func (s *ItemService) SearchByCustomerAgreement(ctx context.Context, q AgreementSearchQuery) ([]catalog.ItemOption, error) {
	customer := strings.TrimSpace(q.Customer)
	if customer == "" {
		return []catalog.ItemOption{}, nil
	}
	date := shared.Today(s.clock)
	if q.PostingDate != "" {
		d, err := shared.ParseDate(strings.TrimSpace(q.PostingDate))
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "Posting date must be YYYY-MM-DD")
		}
		date = d
	}
	return s.items.SearchByCustomerAgreement(ctx, customer, date, q.toSearch())
}
