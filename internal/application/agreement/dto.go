package agreement

import (
	"time"

	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemRequest is one agreement row in create and update requests
type ItemRequest struct {
	ItemCode            string          `json:"item_code" binding:"required,max=140"`
	ItemName            string          `json:"item_name" binding:"max=140"`
	Currency            string          `json:"currency" binding:"omitempty,len=3"`
	StandardSellingRate decimal.Decimal `json:"standard_selling_rate"`
	PriceListRate       decimal.Decimal `json:"price_list_rate"`
}

// CreateAgreementRequest creates a draft agreement
type CreateAgreementRequest struct {
	Customer     string           `json:"customer" binding:"required,max=140"`
	Supplier     string           `json:"supplier" binding:"required,max=140"`
	ValidFrom    string           `json:"valid_from" binding:"omitempty,datetime=2006-01-02"`
	ValidTo      string           `json:"valid_to" binding:"omitempty,datetime=2006-01-02"`
	DiscountRate *decimal.Decimal `json:"discount_rate"`
	Items        []ItemRequest    `json:"items" binding:"dive"`
}

// UpdateAgreementRequest replaces the header and rows of a draft agreement
type UpdateAgreementRequest struct {
	Customer     string           `json:"customer" binding:"max=140"`
	Supplier     string           `json:"supplier" binding:"max=140"`
	ValidFrom    string           `json:"valid_from" binding:"omitempty,datetime=2006-01-02"`
	ValidTo      string           `json:"valid_to" binding:"omitempty,datetime=2006-01-02"`
	DiscountRate *decimal.Decimal `json:"discount_rate"`
	Items        []ItemRequest    `json:"items" binding:"dive"`
}

// ItemRateChange sets a new agreement rate for one row
type ItemRateChange struct {
	ItemCode      string          `json:"item_code" binding:"required"`
	PriceListRate decimal.Decimal `json:"price_list_rate"`
}

// UpdateAfterSubmitRequest lists changes to a submitted agreement.
// Dates, customer and supplier may be sent but must not differ.
type UpdateAfterSubmitRequest struct {
	Customer     *string          `json:"customer"`
	Supplier     *string          `json:"supplier"`
	ValidFrom    *string          `json:"valid_from" binding:"omitempty,datetime=2006-01-02"`
	ValidTo      *string          `json:"valid_to" binding:"omitempty,datetime=2006-01-02"`
	DiscountRate *decimal.Decimal `json:"discount_rate"`
	Items        []ItemRateChange `json:"items" binding:"dive"`
}

// SubmitRequest submits a draft. Replacement skips the open-agreement check.
type SubmitRequest struct {
	Replacement bool `json:"replacement"`
}

// ReplaceRequest cancels OldAgreement and submits NewAgreement in one step
type ReplaceRequest struct {
	OldAgreement string `json:"old_agreement" binding:"required"`
	NewAgreement string `json:"new_agreement" binding:"required"`
}

// ReplaceResponse reports a completed replacement
type ReplaceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CheckActiveResponse lists the submitted agreements of a customer and supplier
type CheckActiveResponse struct {
	HasActive  bool                `json:"has_active"`
	Agreements []agreement.Summary `json:"agreements"`
}

// StatusRefreshResult summarises a status refresh run
type StatusRefreshResult struct {
	Updated   int `json:"updated"`
	Total     int `json:"total"`
	Cancelled int `json:"cancelled"`
}

// CurrentPriceRow compares the rates recorded on an agreement row with today's
type CurrentPriceRow struct {
	ItemCode             string                         `json:"item_code"`
	ItemName             string                         `json:"item_name"`
	Currency             string                         `json:"currency"`
	CurrentStandardRate  decimal.Decimal                `json:"current_standard_rate"`
	CurrentAgreementRate decimal.Decimal                `json:"current_agreement_rate"`
	PriceChange          agreement.PriceChangeIndicator `json:"price_change_indicator"`
}

// ListAgreementsQuery holds list query parameters
type ListAgreementsQuery struct {
	Customer string `form:"customer"`
	Supplier string `form:"supplier"`
	Status   string `form:"status" binding:"omitempty,oneof='Not Started' Active Expired Cancelled"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the query into a repository filter
func (q ListAgreementsQuery) ToFilter() agreement.ListFilter {
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
	return agreement.ListFilter{
		Filter:   f.Normalize(),
		Customer: q.Customer,
		Supplier: q.Supplier,
		Status:   agreement.Status(q.Status),
	}
}

// ItemResponse represents an agreement row in API responses
type ItemResponse struct {
	Idx                 int             `json:"idx"`
	ItemCode            string          `json:"item_code"`
	ItemName            string          `json:"item_name"`
	Currency            string          `json:"currency"`
	StandardSellingRate decimal.Decimal `json:"standard_selling_rate"`
	PriceListRate       decimal.Decimal `json:"price_list_rate"`
}

// AgreementResponse represents an agreement in API responses
type AgreementResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Customer     string          `json:"customer"`
	Supplier     string          `json:"supplier"`
	ValidFrom    *string         `json:"valid_from"`
	ValidTo      *string         `json:"valid_to"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	PriceList    string          `json:"price_list,omitempty"`
	DocStatus    int             `json:"docstatus"`
	Status       string          `json:"status"`
	Items        []ItemResponse  `json:"items"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToAgreementResponse converts a domain agreement
func ToAgreementResponse(a *agreement.Agreement) AgreementResponse {
	items := make([]ItemResponse, len(a.Items))
	for i, it := range a.Items {
		items[i] = ItemResponse{
			Idx:                 it.Idx,
			ItemCode:            it.ItemCode,
			ItemName:            it.ItemName,
			Currency:            it.Currency,
			StandardSellingRate: it.StandardSellingRate,
			PriceListRate:       it.PriceListRate,
		}
	}
	return AgreementResponse{
		ID:           a.ID,
		Name:         a.Name,
		Customer:     a.Customer,
		Supplier:     a.Supplier,
		ValidFrom:    formatDay(a.ValidFrom),
		ValidTo:      formatDay(a.ValidTo),
		DiscountRate: a.DiscountRate,
		PriceList:    a.PriceList,
		DocStatus:    int(a.DocStatus),
		Status:       string(a.Status),
		Items:        items,
		Version:      a.Version,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

// parseDay parses an optional YYYY-MM-DD value; "" yields nil
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
