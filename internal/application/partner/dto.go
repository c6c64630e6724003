package partner

import (
	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
)

// ListQuery is the paging and search query shared by the master data lists
type ListQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the query into a repository filter
func (q ListQuery) ToFilter() shared.Filter {
	f := shared.DefaultFilter()
	f.Search = q.Search
	f.OrderBy = "name"
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
	return f.Normalize()
}

// ==================== Company DTOs ====================

// CreateCompanyRequest represents a request to create a company
type CreateCompanyRequest struct {
	Name            string `json:"name" binding:"required,max=140"`
	Abbr            string `json:"abbr" binding:"max=20"`
	DefaultCurrency string `json:"default_currency" binding:"omitempty,len=3"`
	IsGroup         bool   `json:"is_group"`
	DefaultAddress  string `json:"default_address" binding:"max=140"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	Name            string `json:"name"`
	Abbr            string `json:"abbr"`
	DefaultCurrency string `json:"default_currency"`
	IsGroup         bool   `json:"is_group"`
	DefaultAddress  string `json:"default_address,omitempty"`
}

// ToCompanyResponse converts a company to its response DTO
func ToCompanyResponse(c *partner.Company) CompanyResponse {
	return CompanyResponse{
		Name:            c.Name,
		Abbr:            c.Abbr,
		DefaultCurrency: c.DefaultCurrency,
		IsGroup:         c.IsGroup,
		DefaultAddress:  c.DefaultAddress,
	}
}

// ==================== Customer / Supplier DTOs ====================

// CreatePartyRequest creates a customer or a supplier
type CreatePartyRequest struct {
	Name            string `json:"name" binding:"required,max=140"`
	DefaultCurrency string `json:"default_currency" binding:"omitempty,len=3"`
}

// PartyResponse represents a customer or supplier in API responses
type PartyResponse struct {
	Name            string `json:"name"`
	DefaultCurrency string `json:"default_currency"`
}

// ==================== Address DTOs ====================

// CreateAddressRequest represents a request to create an address
type CreateAddressRequest struct {
	Name         string `json:"name" binding:"required,max=140"`
	AddressLine1 string `json:"address_line1" binding:"max=255"`
	City         string `json:"city" binding:"max=100"`
	Pincode      string `json:"pincode" binding:"max=20"`
	Country      string `json:"country" binding:"max=100"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
}

// ToAddressResponse converts an address to its response DTO
func ToAddressResponse(a *partner.Address) AddressResponse {
	return AddressResponse{
		Name:         a.Name,
		AddressLine1: a.AddressLine1,
		City:         a.City,
		Pincode:      a.Pincode,
		Country:      a.Country,
	}
}

// ==================== Brand DTOs ====================

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name           string   `json:"name" binding:"required,max=140"`
	DefaultCompany string   `json:"default_company" binding:"max=140"`
	Defaults       []string `json:"brand_defaults" binding:"omitempty,dive,max=140"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	Name            string   `json:"name"`
	DefaultCompany  string   `json:"default_company"`
	Defaults        []string `json:"brand_defaults"`
	ResolvedCompany string   `json:"resolved_company,omitempty"`
}

// ToBrandResponse converts a brand to its response DTO
func ToBrandResponse(b *partner.Brand) BrandResponse {
	defaults := b.Defaults
	if defaults == nil {
		defaults = []string{}
	}
	return BrandResponse{
		Name:            b.Name,
		DefaultCompany:  b.DefaultCompany,
		Defaults:        defaults,
		ResolvedCompany: b.ResolveCompany(),
	}
}
