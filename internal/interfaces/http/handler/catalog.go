package handler

import (
	catalogapp "github.com/culinary/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves items and the item link searches
type CatalogHandler struct {
	BaseHandler
	items *catalogapp.ItemService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(items *catalogapp.ItemService) *CatalogHandler {
	return &CatalogHandler{items: items}
}

// CreateItem godoc
// @ID           createItem
// @Summary      Create an item
// @Description  The supplier display is derived from the primary supplier row
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateItemRequest true "Item"
// @Success      201 {object} APIResponse[catalogapp.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/items [post]
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req catalogapp.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.items.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateItem godoc
// @ID           updateItem
// @Summary      Update an item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        code path string true "Item code"
// @Param        request body catalogapp.UpdateItemRequest true "Changed fields"
// @Success      200 {object} APIResponse[catalogapp.ItemResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/items/{code} [put]
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	var req catalogapp.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.items.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetItem godoc
// @ID           getItem
// @Summary      Get an item by code
// @Tags         catalog
// @Produce      json
// @Param        code path string true "Item code"
// @Success      200 {object} APIResponse[catalogapp.ItemResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/items/{code} [get]
func (h *CatalogHandler) GetItem(c *gin.Context) {
	resp, err := h.items.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListItems godoc
// @ID           listItems
// @Summary      List items
// @Tags         catalog
// @Produce      json
// @Param        search query string false "Code or name search"
// @Param        brand query string false "Brand"
// @Param        item_group query string false "Item group"
// @Param        is_kitchen_item query bool false "Kitchen items only"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.ItemResponse]
// @Security     BearerAuth
// @Router       /catalog/items [get]
func (h *CatalogHandler) ListItems(c *gin.Context) {
	var q catalogapp.ListItemsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	items, total, err := h.items.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	f := q.ToFilter()
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// SearchBySupplier godoc
// @ID           searchItemsBySupplier
// @Summary      Items of a supplier
// @Description  Link search over the items listing the supplier. Empty for no supplier or "__NONE__".
// @Tags         catalog
// @Produce      json
// @Param        supplier query string false "Supplier"
// @Param        txt query string false "Search text"
// @Param        searchfield query string false "item_code or item_name"
// @Param        start query int false "Offset"
// @Param        page_len query int false "Limit"
// @Success      200 {object} APIResponse[[]catalog.ItemOption]
// @Security     BearerAuth
// @Router       /catalog/items/by-supplier [get]
func (h *CatalogHandler) SearchBySupplier(c *gin.Context) {
	var q catalogapp.SupplierSearchQuery
	if !h.BindQuery(c, &q) {
		return
	}
	rows, err := h.items.SearchBySupplier(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// SearchByCustomerAgreement godoc
// @ID           searchItemsByCustomerAgreement
// @Summary      Items under a customer's agreements
// @Description  Link search over items of submitted agreements valid on the posting date
// @Tags         catalog
// @Produce      json
// @Param        customer query string false "Customer"
// @Param        posting_date query string false "YYYY-MM-DD, defaults to today"
// @Param        txt query string false "Search text"
// @Param        start query int false "Offset"
// @Param        page_len query int false "Limit"
// @Success      200 {object} APIResponse[[]catalog.ItemOption]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/items/by-customer-agreement [get]
func (h *CatalogHandler) SearchByCustomerAgreement(c *gin.Context) {
	var q catalogapp.AgreementSearchQuery
	if !h.BindQuery(c, &q) {
		return
	}
	rows, err := h.items.SearchByCustomerAgreement(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
