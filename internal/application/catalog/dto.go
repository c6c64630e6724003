package catalog

import (
	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/culinary/backend/internal/domain/shared"
)

// NoSupplier is the placeholder clients send when no supplier is selected yet
const NoSupplier = "__NONE__"

// ==================== Item DTOs ====================

// ItemSupplierInput is one row of the item's supplier table
type ItemSupplierInput struct {
	Supplier  string `json:"supplier" binding:"required,max=140"`
	IsPrimary bool   `json:"is_primary"`
}

// CreateItemRequest represents a request to create an item
type CreateItemRequest struct {
	Code          string              `json:"item_code" binding:"required,max=140"`
	Name          string              `json:"item_name" binding:"max=140"`
	ItemGroup     string              `json:"item_group" binding:"max=140"`
	StockUOM      string              `json:"stock_uom" binding:"max=20"`
	Description   string              `json:"description"`
	Brand         string              `json:"brand" binding:"max=140"`
	IsSalesItem   *bool               `json:"is_sales_item"`
	IsKitchenItem bool                `json:"is_kitchen_item"`
	Suppliers     []ItemSupplierInput `json:"supplier_items" binding:"omitempty,dive"`
}

// UpdateItemRequest represents a request to update an item; nil fields are kept
type UpdateItemRequest struct {
	Name          *string             `json:"item_name" binding:"omitempty,max=140"`
	ItemGroup     *string             `json:"item_group" binding:"omitempty,max=140"`
	StockUOM      *string             `json:"stock_uom" binding:"omitempty,max=20"`
	Description   *string             `json:"description"`
	Brand         *string             `json:"brand" binding:"omitempty,max=140"`
	IsSalesItem   *bool               `json:"is_sales_item"`
	IsKitchenItem *bool               `json:"is_kitchen_item"`
	Disabled      *bool               `json:"disabled"`
	Suppliers     []ItemSupplierInput `json:"supplier_items" binding:"omitempty,dive"`
}

// ItemSupplierResponse is a supplier row in API responses
type ItemSupplierResponse struct {
	Idx       int    `json:"idx"`
	Supplier  string `json:"supplier"`
	IsPrimary bool   `json:"is_primary"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	Code            string                 `json:"item_code"`
	Name            string                 `json:"item_name"`
	ItemGroup       string                 `json:"item_group"`
	StockUOM        string                 `json:"stock_uom"`
	Description     string                 `json:"description"`
	Brand           string                 `json:"brand"`
	IsSalesItem     bool                   `json:"is_sales_item"`
	IsKitchenItem   bool                   `json:"is_kitchen_item"`
	Disabled        bool                   `json:"disabled"`
	SupplierDisplay string                 `json:"supplier_display"`
	Suppliers       []ItemSupplierResponse `json:"supplier_items"`
}

// ToItemResponse converts an item to its response DTO
func ToItemResponse(it *catalog.Item) ItemResponse {
	rows := make([]ItemSupplierResponse, len(it.Suppliers))
	for i, r := range it.Suppliers {
		rows[i] = ItemSupplierResponse{Idx: r.Idx, Supplier: r.Supplier, IsPrimary: r.IsPrimary}
	}
	return ItemResponse{
		Code:            it.Code,
		Name:            it.Name,
		ItemGroup:       it.ItemGroup,
		StockUOM:        it.StockUOM,
		Description:     it.Description,
		Brand:           it.Brand,
		IsSalesItem:     it.IsSalesItem,
		IsKitchenItem:   it.IsKitchenItem,
		Disabled:        it.Disabled,
		SupplierDisplay: it.SupplierDisplay,
		Suppliers:       rows,
	}
}

// ListItemsQuery represents query parameters for listing items
type ListItemsQuery struct {
	Search        string `form:"search"`
	Brand         string `form:"brand"`
	ItemGroup     string `form:"item_group"`
	IsKitchenItem *bool  `form:"is_kitchen_item"`
	Disabled      *bool  `form:"disabled"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size" binding:"omitempty,max=100"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the query into a repository filter
func (q ListItemsQuery) ToFilter() shared.Filter {
	f := shared.DefaultFilter()
	f.Search = q.Search
	f.OrderBy = "code"
	f.OrderDir = "asc"
	if q.Page > 0 {
		f.Page = q.Page
	}
	if q.PageSize > 0 {
		f.PageSize = q.PageSize
	}
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		f.OrderDir = q.OrderDir
	}
	f.Filters = make(map[string]interface{})
	if q.Brand != "" {
		f.Filters["brand"] = q.Brand
	}
	if q.ItemGroup != "" {
		f.Filters["item_group"] = q.ItemGroup
	}
	if q.IsKitchenItem != nil {
		f.Filters["is_kitchen_item"] = *q.IsKitchenItem
	}
	if q.Disabled != nil {
		f.Filters["disabled"] = *q.Disabled
	}
	return f.Normalize()
}

// ==================== Search DTOs ====================

// SearchQuery holds the link-search arguments shared by both item searches
type SearchQuery struct {
	Txt         string `form:"txt"`
	SearchField string `form:"searchfield"`
	Start       int    `form:"start" binding:"omitempty,min=0"`
	PageLen     int    `form:"page_len" binding:"omitempty,min=0,max=500"`
}

func (q SearchQuery) toSearch() catalog.ItemSearch {
	return catalog.ItemSearch{
		Text:        q.Txt,
		SearchField: catalog.SearchField(q.SearchField),
		Start:       q.Start,
		PageLen:     q.PageLen,
	}.Normalize()
}

// SupplierSearchQuery searches the items of one supplier
type SupplierSearchQuery struct {
	SearchQuery
	Supplier string `form:"supplier"`
}

// AgreementSearchQuery searches the items covered by a customer's agreements
type AgreementSearchQuery struct {
	SearchQuery
	Customer    string `form:"customer"`
	PostingDate string `form:"posting_date" binding:"omitempty,datetime=2006-01-02"`
}
