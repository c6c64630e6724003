package handler

import (
	pricingapp "github.com/culinary/backend/internal/application/pricing"
	"github.com/gin-gonic/gin"
)

// PricingHandler serves supplier item rates, exchange rates and item prices
type PricingHandler struct {
	BaseHandler
	rates *pricingapp.RateService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(rates *pricingapp.RateService) *PricingHandler {
	return &PricingHandler{rates: rates}
}

// SupplierItemsQuery selects a supplier's items and the price currency
type SupplierItemsQuery struct {
	Supplier string `form:"supplier"`
	Currency string `form:"currency" binding:"omitempty,len=3"`
}

// ItemPricesQuery selects the price list to show
type ItemPricesQuery struct {
	PriceList string `form:"price_list" binding:"required"`
}

// SupplierItems godoc
// @ID           listSupplierItems
// @Summary      Supplier items with standard selling rates
// @Description  Items of a supplier with their current standard selling rate, used to fill agreement rows
// @Tags         pricing
// @Produce      json
// @Param        supplier query string true "Supplier"
// @Param        currency query string false "Currency, defaults to the supplier's or company's"
// @Success      200 {object} APIResponse[[]pricingapp.SupplierItemRow]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /pricing/supplier-items [get]
func (h *PricingHandler) SupplierItems(c *gin.Context) {
	var q SupplierItemsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	rows, err := h.rates.SupplierItemsWithStandardPrices(c.Request.Context(), q.Supplier, q.Currency)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// CreateCurrencyExchange godoc
// @ID           createCurrencyExchange
// @Summary      Record an exchange rate
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request body pricingapp.CreateCurrencyExchangeRequest true "Exchange rate"
// @Success      201 {object} APIResponse[pricingapp.CurrencyExchangeResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /pricing/currency-exchanges [post]
func (h *PricingHandler) CreateCurrencyExchange(c *gin.Context) {
	var req pricingapp.CreateCurrencyExchangeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.rates.CreateCurrencyExchange(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListItemPrices godoc
// @ID           listItemPrices
// @Summary      Item prices of a price list
// @Tags         pricing
// @Produce      json
// @Param        price_list query string true "Price list"
// @Success      200 {object} APIResponse[[]pricingapp.ItemPriceResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /pricing/item-prices [get]
func (h *PricingHandler) ListItemPrices(c *gin.Context) {
	var q ItemPricesQuery
	if !h.BindQuery(c, &q) {
		return
	}
	rows, err := h.rates.ListItemPrices(c.Request.Context(), q.PriceList)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
