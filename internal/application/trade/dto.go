package trade

import (
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settings carries the company names and defaults the order rules depend on
type Settings struct {
	SplitCompany         string
	KitchenCompanyPrefix string
	FallbackCurrency     string
}

// DefaultSettings returns the built-in settings
func DefaultSettings() Settings {
	return Settings{
		SplitCompany:         "Culinary",
		KitchenCompanyPrefix: "Mutfak - ",
		FallbackCurrency:     "EUR",
	}
}

// ==================== Sales Order DTOs ====================

// SalesOrderItemInput is one line of a create or update request
type SalesOrderItemInput struct {
	ItemCode    string          `json:"item_code" binding:"required,max=140"`
	ItemName    string          `json:"item_name" binding:"max=140"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty" binding:"required"`
	Rate        decimal.Decimal `json:"rate"`
}

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	Company         string                `json:"company" binding:"required,max=140"`
	Customer        string                `json:"customer" binding:"required,max=140"`
	TransactionDate string                `json:"transaction_date" binding:"omitempty,datetime=2006-01-02"`
	DeliveryDate    string                `json:"delivery_date" binding:"omitempty,datetime=2006-01-02"`
	Currency        string                `json:"currency" binding:"omitempty,len=3"`
	ShippingAddress string                `json:"shipping_address_name"`
	CustomerAddress string                `json:"customer_address"`
	Items           []SalesOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateSalesOrderRequest changes a draft order. Nil fields are left alone.
type UpdateSalesOrderRequest struct {
	DeliveryDate    *string               `json:"delivery_date" binding:"omitempty,datetime=2006-01-02"`
	Currency        *string               `json:"currency" binding:"omitempty,len=3"`
	ShippingAddress *string               `json:"shipping_address_name"`
	CustomerAddress *string               `json:"customer_address"`
	Items           []SalesOrderItemInput `json:"items" binding:"omitempty,dive"`
}

// ListSalesOrdersQuery holds list query parameters
type ListSalesOrdersQuery struct {
	Company     string `form:"company"`
	Customer    string `form:"customer"`
	SourceWebSO string `form:"source_web_so"`
	DocStatus   *int   `form:"docstatus" binding:"omitempty,min=0,max=2"`
	Search      string `form:"search"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size" binding:"omitempty,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the query into a repository filter
func (q ListSalesOrdersQuery) ToFilter() trade.ListFilter {
	f := shared.DefaultFilter()
	f.Search = q.Search
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
	filter := trade.ListFilter{
		Filter:      f.Normalize(),
		Company:     q.Company,
		Customer:    q.Customer,
		SourceWebSO: q.SourceWebSO,
	}
	if q.DocStatus != nil {
		st := trade.DocStatus(*q.DocStatus)
		filter.DocStatus = &st
	}
	return filter
}

// SalesOrderItemResponse represents an order line in API responses
type SalesOrderItemResponse struct {
	Idx           int             `json:"idx"`
	ItemCode      string          `json:"item_code"`
	ItemName      string          `json:"item_name"`
	Description   string          `json:"description,omitempty"`
	Qty           decimal.Decimal `json:"qty"`
	Rate          decimal.Decimal `json:"rate"`
	PriceListRate decimal.Decimal `json:"price_list_rate"`
	Amount        decimal.Decimal `json:"amount"`
	Supplier      string          `json:"supplier,omitempty"`
	RateLocked    bool            `json:"rate_locked"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID              uuid.UUID                `json:"id"`
	Name            string                   `json:"name"`
	Company         string                   `json:"company"`
	Customer        string                   `json:"customer"`
	TransactionDate string                   `json:"transaction_date"`
	DeliveryDate    *string                  `json:"delivery_date"`
	Currency        string                   `json:"currency"`
	ShippingAddress string                   `json:"shipping_address_name,omitempty"`
	CustomerAddress string                   `json:"customer_address,omitempty"`
	DocStatus       int                      `json:"docstatus"`
	Status          string                   `json:"status"`
	SourceWebSO     string                   `json:"source_web_so,omitempty"`
	Items           []SalesOrderItemResponse `json:"items"`
	GrandTotal      decimal.Decimal          `json:"grand_total"`
	Version         int                      `json:"version"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// ToSalesOrderResponse converts a domain sales order
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	items := make([]SalesOrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = SalesOrderItemResponse{
			Idx:           it.Idx,
			ItemCode:      it.ItemCode,
			ItemName:      it.ItemName,
			Description:   it.Description,
			Qty:           it.Qty,
			Rate:          it.Rate,
			PriceListRate: it.PriceListRate,
			Amount:        it.Amount,
			Supplier:      it.Supplier,
			RateLocked:    it.RateLocked,
		}
	}
	var delivery *string
	if o.DeliveryDate != nil {
		s := o.DeliveryDate.Format(time.DateOnly)
		delivery = &s
	}
	return SalesOrderResponse{
		ID:              o.ID,
		Name:            o.Name,
		Company:         o.Company,
		Customer:        o.Customer,
		TransactionDate: o.TransactionDate.Format(time.DateOnly),
		DeliveryDate:    delivery,
		Currency:        o.Currency,
		ShippingAddress: o.ShippingAddress,
		CustomerAddress: o.CustomerAddress,
		DocStatus:       int(o.DocStatus),
		Status:          o.DocStatus.String(),
		SourceWebSO:     o.SourceWebSO,
		Items:           items,
		GrandTotal:      o.GrandTotal,
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ==================== Agreement Price DTOs ====================

// ItemPriceQuery asks for the agreement price of one item
type ItemPriceQuery struct {
	Customer    string `form:"customer" binding:"required"`
	ItemCode    string `form:"item_code" binding:"required"`
	PostingDate string `form:"posting_date" binding:"omitempty,datetime=2006-01-02"`
	Currency    string `form:"currency" binding:"omitempty,len=3"`
}

// ItemPriceResult is the agreement price converted to the order currency.
// All fields are omitted when no agreement prices the item.
type ItemPriceResult struct {
	PriceListRate *decimal.Decimal `json:"price_list_rate,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	Supplier      string           `json:"supplier,omitempty"`
}

// Found reports whether an agreement priced the item
func (r ItemPriceResult) Found() bool {
	return r.PriceListRate != nil
}

// ==================== Split DTOs ====================

// SplitResponse lists the child orders a split created
type SplitResponse struct {
	Parent   string   `json:"parent"`
	Children []string `json:"children"`
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := shared.ParseDate(s)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Dates must be formatted as YYYY-MM-DD")
	}
	return &d, nil
}
