package handler

import (
	partnerapp "github.com/culinary/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartnerHandler serves companies, customers, suppliers, addresses and brands
type PartnerHandler struct {
	BaseHandler
	companies *partnerapp.CompanyService
	parties   *partnerapp.PartyService
	addresses *partnerapp.AddressService
	brands    *partnerapp.BrandService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(
	companies *partnerapp.CompanyService,
	parties *partnerapp.PartyService,
	addresses *partnerapp.AddressService,
	brands *partnerapp.BrandService,
) *PartnerHandler {
	return &PartnerHandler{
		companies: companies,
		parties:   parties,
		addresses: addresses,
		brands:    brands,
	}
}

// ==================== Companies ====================

// CreateCompany godoc
// @ID           createCompany
// @Summary      Create a company
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCompanyRequest true "Company"
// @Success      201 {object} APIResponse[partnerapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/companies [post]
func (h *PartnerHandler) CreateCompany(c *gin.Context) {
	var req partnerapp.CreateCompanyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.companies.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetCompany godoc
// @ID           getCompany
// @Summary      Get a company by name
// @Tags         partners
// @Produce      json
// @Param        name path string true "Company name"
// @Success      200 {object} APIResponse[partnerapp.CompanyResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/companies/{name} [get]
func (h *PartnerHandler) GetCompany(c *gin.Context) {
	resp, err := h.companies.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListCompanies godoc
// @ID           listCompanies
// @Summary      List companies
// @Tags         partners
// @Produce      json
// @Param        search query string false "Name search"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]partnerapp.CompanyResponse]
// @Security     BearerAuth
// @Router       /partners/companies [get]
func (h *PartnerHandler) ListCompanies(c *gin.Context) {
	var q partnerapp.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	items, total, err := h.companies.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	f := q.ToFilter()
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// ==================== Customers ====================

// CreateCustomer godoc
// @ID           createCustomer
// @Summary      Create a customer
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreatePartyRequest true "Customer"
// @Success      201 {object} APIResponse[partnerapp.PartyResponse]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/customers [post]
func (h *PartnerHandler) CreateCustomer(c *gin.Context) {
	var req partnerapp.CreatePartyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.parties.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetCustomer godoc
// @ID           getCustomer
// @Summary      Get a customer by name
// @Tags         partners
// @Produce      json
// @Param        name path string true "Customer name"
// @Success      200 {object} APIResponse[partnerapp.PartyResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/customers/{name} [get]
func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	resp, err := h.parties.GetCustomer(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListCustomers godoc
// @ID           listCustomers
// @Summary      List customers
// @Tags         partners
// @Produce      json
// @Param        search query string false "Name search"
// @Success      200 {object} APIResponse[[]partnerapp.PartyResponse]
// @Security     BearerAuth
// @Router       /partners/customers [get]
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	var q partnerapp.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	items, total, err := h.parties.ListCustomers(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	f := q.ToFilter()
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// ==================== Suppliers ====================

// CreateSupplier godoc
// @ID           createSupplier
// @Summary      Create a supplier
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreatePartyRequest true "Supplier"
// @Success      201 {object} APIResponse[partnerapp.PartyResponse]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/suppliers [post]
func (h *PartnerHandler) CreateSupplier(c *gin.Context) {
	var req partnerapp.CreatePartyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.parties.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetSupplier godoc
// @ID           getSupplier
// @Summary      Get a supplier by name
// @Tags         partners
// @Produce      json
// @Param        name path string true "Supplier name"
// @Success      200 {object} APIResponse[partnerapp.PartyResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/suppliers/{name} [get]
func (h *PartnerHandler) GetSupplier(c *gin.Context) {
	resp, err := h.parties.GetSupplier(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListSuppliers godoc
// @ID           listSuppliers
// @Summary      List suppliers
// @Tags         partners
// @Produce      json
// @Param        search query string false "Name search"
// @Success      200 {object} APIResponse[[]partnerapp.PartyResponse]
// @Security     BearerAuth
// @Router       /partners/suppliers [get]
func (h *PartnerHandler) ListSuppliers(c *gin.Context) {
	var q partnerapp.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	items, total, err := h.parties.ListSuppliers(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	f := q.ToFilter()
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// ==================== Addresses ====================

// CreateAddress godoc
// @ID           createAddress
// @Summary      Create an address
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateAddressRequest true "Address"
// @Success      201 {object} APIResponse[partnerapp.AddressResponse]
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/addresses [post]
func (h *PartnerHandler) CreateAddress(c *gin.Context) {
	var req partnerapp.CreateAddressRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.addresses.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetAddress godoc
// @ID           getAddress
// @Summary      Get an address by name
// @Tags         partners
// @Produce      json
// @Param        name path string true "Address name"
// @Success      200 {object} APIResponse[partnerapp.AddressResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/addresses/{name} [get]
func (h *PartnerHandler) GetAddress(c *gin.Context) {
	resp, err := h.addresses.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListAddresses godoc
// @ID           listAddresses
// @Summary      List addresses
// @Tags         partners
// @Produce      json
// @Param        search query string false "Name search"
// @Success      200 {object} APIResponse[[]partnerapp.AddressResponse]
// @Security     BearerAuth
// @Router       /partners/addresses [get]
func (h *PartnerHandler) ListAddresses(c *gin.Context) {
	var q partnerapp.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	items, total, err := h.addresses.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	f := q.ToFilter()
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// ==================== Brands ====================

// CreateBrand godoc
// @ID           createBrand
// @Summary      Create a brand
// @Description  The fulfilling company is the first brand default, else the default company
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateBrandRequest true "Brand"
// @Success      201 {object} APIResponse[partnerapp.BrandResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/brands [post]
func (h *PartnerHandler) CreateBrand(c *gin.Context) {
	var req partnerapp.CreateBrandRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.brands.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetBrand godoc
// @ID           getBrand
// @Summary      Get a brand by name
// @Tags         partners
// @Produce      json
// @Param        name path string true "Brand name"
// @Success      200 {object} APIResponse[partnerapp.BrandResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/brands/{name} [get]
func (h *PartnerHandler) GetBrand(c *gin.Context) {
	resp, err := h.brands.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListBrands godoc
// @ID           listBrands
// @Summary      List brands
// @Tags         partners
// @Produce      json
// @Param        search query string false "Name search"
// @Success      200 {object} APIResponse[[]partnerapp.BrandResponse]
// @Security     BearerAuth
// @Router       /partners/brands [get]
func (h *PartnerHandler) ListBrands(c *gin.Context) {
	var q partnerapp.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	items, total, err := h.brands.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	f := q.ToFilter()
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}
