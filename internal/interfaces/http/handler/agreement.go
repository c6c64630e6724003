package handler

import (
	agreementapp "github.com/culinary/backend/internal/application/agreement"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AgreementHandler serves the customer-supplier agreement lifecycle
type AgreementHandler struct {
	BaseHandler
	agreements *agreementapp.Service
}

// NewAgreementHandler creates a new AgreementHandler
func NewAgreementHandler(agreements *agreementapp.Service) *AgreementHandler {
	return &AgreementHandler{agreements: agreements}
}

// CheckActiveQuery selects the customer and supplier to check
type CheckActiveQuery struct {
	Customer string `form:"customer" binding:"required"`
	Supplier string `form:"supplier" binding:"required"`
	Exclude  string `form:"exclude"`
}

// agreementID accepts either the agreement id or its name in the path
func (h *AgreementHandler) agreementID(c *gin.Context) (uuid.UUID, bool) {
	param := c.Param("id")
	if id, err := uuid.Parse(param); err == nil {
		return id, true
	}
	a, err := h.agreements.GetByName(c.Request.Context(), param)
	if err != nil {
		h.HandleError(c, err)
		return uuid.Nil, false
	}
	return a.ID, true
}

// Create godoc
// @ID           createAgreement
// @Summary      Create a draft agreement
// @Description  Rows without a currency take the customer's default; standard rates are filled in
// @Tags         agreements
// @Accept       json
// @Produce      json
// @Param        request body agreementapp.CreateAgreementRequest true "Agreement"
// @Success      201 {object} APIResponse[agreementapp.AgreementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /agreements [post]
func (h *AgreementHandler) Create(c *gin.Context) {
	var req agreementapp.CreateAgreementRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.agreements.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update godoc
// @ID           updateAgreement
// @Summary      Replace a draft agreement
// @Tags         agreements
// @Accept       json
// @Produce      json
// @Param        id path string true "Agreement id or name"
// @Param        request body agreementapp.UpdateAgreementRequest true "Agreement"
// @Success      200 {object} APIResponse[agreementapp.AgreementResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /agreements/{id} [put]
func (h *AgreementHandler) Update(c *gin.Context) {
	id, ok := h.agreementID(c)
	if !ok {
		return
	}
	var req agreementapp.UpdateAgreementRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.agreements.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get godoc
// @ID           getAgreement
// @Summary      Get an agreement
// @Tags         agreements
// @Produce      json
// @Param        id path string true "Agreement id or name"
// @Success      200 {object} APIResponse[agreementapp.AgreementResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /agreements/{id} [get]
func (h *AgreementHandler) Get(c *gin.Context) {
	param := c.Param("id")
	var (
		resp *agreementapp.AgreementResponse
		err  error
	)
	if id, parseErr := uuid.Parse(param); parseErr == nil {
		resp, err = h.agreements.GetByID(c.Request.Context(), id)
	} else {
		resp, err = h.agreements.GetByName(c.Request.Context(), param)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listAgreements
// @Summary      List agreements
// @Tags         agreements
// @Produce      json
// @Param        customer query string false "Customer"
// @Param        supplier query string false "Supplier"
// @Param        status query string false "Not Started, Active, Expired or Cancelled"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]agreementapp.AgreementResponse]
// @Security     BearerAuth
// @Router       /agreements [get]
func (h *AgreementHandler) List(c *gin.Context) {
	var q agreementapp.ListAgreementsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	items, total, err := h.agreements.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	f := q.ToFilter()
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// Submit godoc
// @ID           submitAgreement
// @Summary      Submit an agreement
// @Description  Rejects overlapping submitted agreements unless replacement is set, then syncs the customer's price list
// @Tags         agreements
// @Accept       json
// @Produce      json
// @Param        id path string true "Agreement id or name"
// @Param        request body agreementapp.SubmitRequest false "Submit options"
// @Success      200 {object} APIResponse[agreementapp.AgreementResponse]
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /agreements/{id}/submit [post]
func (h *AgreementHandler) Submit(c *gin.Context) {
	id, ok := h.agreementID(c)
	if !ok {
		return
	}
	var req agreementapp.SubmitRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.agreements.Submit(c.Request.Context(), id, req.Replacement)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel godoc
// @ID           cancelAgreement
// @Summary      Cancel an agreement
// @Description  Removes the agreement's item prices and disables the price list when no other agreement is active
// @Tags         agreements
// @Produce      json
// @Param        id path string true "Agreement id or name"
// @Success      200 {object} APIResponse[agreementapp.AgreementResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /agreements/{id}/cancel [post]
func (h *AgreementHandler) Cancel(c *gin.Context) {
	id, ok := h.agreementID(c)
	if !ok {
		return
	}
	resp, err := h.agreements.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateAfterSubmit godoc
// @ID           updateAgreementAfterSubmit
// @Summary      Change rates of a submitted agreement
// @Description  Dates, customer and supplier are frozen; item rates and the discount may change
// @Tags         agreements
// @Accept       json
// @Produce      json
// @Param        id path string true "Agreement id or name"
// @Param        request body agreementapp.UpdateAfterSubmitRequest true "Changes"
// @Success      200 {object} APIResponse[agreementapp.AgreementResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /agreements/{id}/update-after-submit [post]
func (h *AgreementHandler) UpdateAfterSubmit(c *gin.Context) {
	id, ok := h.agreementID(c)
	if !ok {
		return
	}
	var req agreementapp.UpdateAfterSubmitRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.agreements.UpdateAfterSubmit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CurrentPrices godoc
// @ID           getAgreementCurrentPrices
// @Summary      Compare agreement rates with today's prices
// @Tags         agreements
// @Produce      json
// @Param        id path string true "Agreement id or name"
// @Success      200 {object} APIResponse[[]agreementapp.CurrentPriceRow]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /agreements/{id}/current-prices [get]
func (h *AgreementHandler) CurrentPrices(c *gin.Context) {
	id, ok := h.agreementID(c)
	if !ok {
		return
	}
	rows, err := h.agreements.LoadCurrentPrices(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// CheckActive godoc
// @ID           checkActiveAgreements
// @Summary      Submitted agreements of a customer and supplier
// @Tags         agreements
// @Produce      json
// @Param        customer query string true "Customer"
// @Param        supplier query string true "Supplier"
// @Param        exclude query string false "Agreement name to ignore"
// @Success      200 {object} APIResponse[agreementapp.CheckActiveResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /agreements/check-active [get]
func (h *AgreementHandler) CheckActive(c *gin.Context) {
	var q CheckActiveQuery
	if !h.BindQuery(c, &q) {
		return
	}
	resp, err := h.agreements.CheckActive(c.Request.Context(), q.Customer, q.Supplier, q.Exclude)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Replace godoc
// @ID           replaceAgreement
// @Summary      Replace an agreement
// @Description  Cancels the old agreement and submits the new draft in one transaction
// @Tags         agreements
// @Accept       json
// @Produce      json
// @Param        request body agreementapp.ReplaceRequest true "Old and new agreement"
// @Success      200 {object} APIResponse[agreementapp.ReplaceResponse]
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /agreements/replace [post]
func (h *AgreementHandler) Replace(c *gin.Context) {
	var req agreementapp.ReplaceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.agreements.Replace(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatuses godoc
// @ID           updateAgreementStatuses
// @Summary      Refresh agreement statuses
// @Description  Recomputes the status of every submitted agreement, as the daily job does
// @Tags         agreements
// @Produce      json
// @Success      200 {object} APIResponse[agreementapp.StatusRefreshResult]
// @Security     BearerAuth
// @Router       /agreements/update-statuses [post]
func (h *AgreementHandler) UpdateStatuses(c *gin.Context) {
	resp, err := h.agreements.UpdateAllStatuses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
