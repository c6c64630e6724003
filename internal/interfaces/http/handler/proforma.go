package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	proformaapp "github.com/culinary/backend/internal/application/proforma"
	"github.com/culinary/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// documentLinkTTL bounds the lifetime of document download links
const documentLinkTTL = 15 * time.Minute

// ProformaHandler serves proforma generation and the stored documents
type ProformaHandler struct {
	BaseHandler
	proformas *proformaapp.Service
	logger    *zap.Logger
}

// NewProformaHandler creates a new ProformaHandler
func NewProformaHandler(proformas *proformaapp.Service, logger *zap.Logger) *ProformaHandler {
	return &ProformaHandler{proformas: proformas, logger: logger}
}

// DocumentLinkResponse is a time-limited download link
type DocumentLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateForOrder godoc
// @ID           createProformasForOrder
// @Summary      Generate proformas for a split order
// @Description  One proforma per submitted child order. Failures are reported in the status field, not the HTTP status.
// @Tags         proformas
// @Produce      json
// @Param        name path string true "Parent sales order name"
// @Success      200 {object} APIResponse[proformaapp.CreateResult]
// @Security     BearerAuth
// @Router       /proformas/orders/{name} [post]
func (h *ProformaHandler) CreateForOrder(c *gin.Context) {
	result := h.proformas.CreateResult(c.Request.Context(), c.Param("name"))
	c.JSON(http.StatusOK, dto.Response{Success: result.Status == proformaapp.StatusSuccess, Data: result})
}

// FixTotals godoc
// @ID           fixProformaTotals
// @Summary      Recompute proforma grand totals
// @Tags         proformas
// @Produce      json
// @Param        name path string true "Parent sales order name"
// @Success      200 {object} APIResponse[proformaapp.FixTotalsResult]
// @Security     BearerAuth
// @Router       /proformas/orders/{name}/fix-totals [post]
func (h *ProformaHandler) FixTotals(c *gin.Context) {
	result := h.proformas.FixTotalsResult(c.Request.Context(), c.Param("name"))
	c.JSON(http.StatusOK, dto.Response{Success: result.Status == proformaapp.StatusSuccess, Data: result})
}

// ListForOrder godoc
// @ID           listProformasForOrder
// @Summary      Proformas of a parent order
// @Tags         proformas
// @Produce      json
// @Param        name path string true "Parent sales order name"
// @Success      200 {object} APIResponse[[]proformaapp.ProformaResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /proformas/orders/{name} [get]
func (h *ProformaHandler) ListForOrder(c *gin.Context) {
	rows, err := h.proformas.ListForOrder(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Get godoc
// @ID           getProforma
// @Summary      Get a proforma
// @Tags         proformas
// @Produce      json
// @Param        name path string true "Proforma name"
// @Success      200 {object} APIResponse[proformaapp.ProformaResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /proformas/{name} [get]
func (h *ProformaHandler) Get(c *gin.Context) {
	resp, err := h.proformas.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Document godoc
// @ID           getProformaDocument
// @Summary      Download the proforma document
// @Description  Streams the stored document, or returns a short-lived link with link=true
// @Tags         proformas
// @Produce      json
// @Param        name path string true "Proforma name"
// @Param        link query bool false "Return a download link instead of the file"
// @Success      200 {file} file
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /proformas/{name}/document [get]
func (h *ProformaHandler) Document(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	if link, _ := strconv.ParseBool(c.Query("link")); link {
		url, err := h.proformas.DocumentURL(ctx, name, documentLinkTTL)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, DocumentLinkResponse{URL: url, ExpiresAt: time.Now().Add(documentLinkTTL)})
		return
	}

	doc, err := h.proformas.OpenDocument(ctx, name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer doc.Body.Close()

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Header("Content-Type", doc.ContentType)
	if doc.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(doc.Size, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, doc.Body); err != nil {
		h.logger.Warn("Failed to stream proforma document", zap.String("proforma", name), zap.Error(err))
	}
}
