package handler

import (
	tradeapp "github.com/culinary/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// SalesOrderHandler handles sales order API endpoints
type SalesOrderHandler struct {
	BaseHandler
	orders   *tradeapp.SalesOrderService
	splitter *tradeapp.OrderSplitter
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orders *tradeapp.SalesOrderService, splitter *tradeapp.OrderSplitter) *SalesOrderHandler {
	return &SalesOrderHandler{
		orders:   orders,
		splitter: splitter,
	}
}

// Create godoc
// @ID           createSalesOrder
// @Summary      Create a sales order
// @Description  Lines of items covered by a submitted agreement of the customer are priced from the agreement
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateSalesOrderRequest true "Sales order"
// @Success      201 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /trade/sales-orders [post]
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSalesOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @ID           updateSalesOrder
// @Summary      Update a draft sales order
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        name path string true "Sales order name"
// @Param        request body tradeapp.UpdateSalesOrderRequest true "Changed fields"
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /trade/sales-orders/{name} [put]
func (h *SalesOrderHandler) Update(c *gin.Context) {
	var req tradeapp.UpdateSalesOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.orders.Update(c.Request.Context(), c.Param("name"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get godoc
// @ID           getSalesOrder
// @Summary      Get a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        name path string true "Sales order name"
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /trade/sales-orders/{name} [get]
func (h *SalesOrderHandler) Get(c *gin.Context) {
	resp, err := h.orders.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listSalesOrders
// @Summary      List sales orders
// @Tags         sales-orders
// @Produce      json
// @Param        company query string false "Company"
// @Param        customer query string false "Customer"
// @Param        source_web_so query string false "Parent order of child orders"
// @Param        docstatus query int false "0 draft, 1 submitted, 2 cancelled"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]tradeapp.SalesOrderResponse]
// @Security     BearerAuth
// @Router       /trade/sales-orders [get]
func (h *SalesOrderHandler) List(c *gin.Context) {
	var q tradeapp.ListSalesOrdersQuery
	if !h.BindQuery(c, &q) {
		return
	}
	items, total, err := h.orders.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	f := q.ToFilter()
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// Submit godoc
// @ID           submitSalesOrder
// @Summary      Submit a sales order
// @Description  Orders of the split company are fanned out into kitchen and brand child orders after commit
// @Tags         sales-orders
// @Produce      json
// @Param        name path string true "Sales order name"
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /trade/sales-orders/{name}/submit [post]
func (h *SalesOrderHandler) Submit(c *gin.Context) {
	resp, err := h.orders.Submit(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel godoc
// @ID           cancelSalesOrder
// @Summary      Cancel a submitted sales order
// @Tags         sales-orders
// @Produce      json
// @Param        name path string true "Sales order name"
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /trade/sales-orders/{name}/cancel [post]
func (h *SalesOrderHandler) Cancel(c *gin.Context) {
	resp, err := h.orders.Cancel(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Split godoc
// @ID           splitSalesOrder
// @Summary      Split a submitted order into child orders
// @Description  Creates the missing child orders; companies that already hold a child are skipped
// @Tags         sales-orders
// @Produce      json
// @Param        name path string true "Sales order name"
// @Success      200 {object} APIResponse[tradeapp.SplitResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /trade/sales-orders/{name}/split [post]
func (h *SalesOrderHandler) Split(c *gin.Context) {
	resp, err := h.splitter.SplitByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Children godoc
// @ID           listSalesOrderChildren
// @Summary      Child orders of a parent order
// @Tags         sales-orders
// @Produce      json
// @Param        name path string true "Parent sales order name"
// @Success      200 {object} APIResponse[[]tradeapp.SalesOrderResponse]
// @Security     BearerAuth
// @Router       /trade/sales-orders/{name}/children [get]
func (h *SalesOrderHandler) Children(c *gin.Context) {
	rows, err := h.orders.ListChildren(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// ItemPrice godoc
// @ID           getAgreementItemPrice
// @Summary      Agreement price of an item
// @Description  The rate of the newest submitted agreement covering the item on the posting date, converted to the currency. Empty when none applies.
// @Tags         sales-orders
// @Produce      json
// @Param        customer query string true "Customer"
// @Param        item_code query string true "Item code"
// @Param        posting_date query string false "YYYY-MM-DD, defaults to today"
// @Param        currency query string false "Order currency"
// @Success      200 {object} APIResponse[tradeapp.ItemPriceResult]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /trade/sales-orders/item-price [get]
func (h *SalesOrderHandler) ItemPrice(c *gin.Context) {
	var q tradeapp.ItemPriceQuery
	if !h.BindQuery(c, &q) {
		return
	}
	resp, err := h.orders.ItemPriceFromAgreement(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
