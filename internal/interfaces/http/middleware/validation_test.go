package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/culinary/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createOrderRequest struct {
	Customer     string `json:"customer" binding:"required"`
	DeliveryDate string `json:"delivery_date" binding:"required,datetime=2006-01-02"`
	Qty          int    `json:"qty" binding:"gt=0"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()
	r := gin.New()
	r.Use(RequestID())
	r.POST("/orders", func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})
	return r
}

func TestHandleValidationError_FieldDetails(t *testing.T) {
	r := newValidationRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders",
		strings.NewReader(`{"delivery_date":"10.03.2025","qty":0}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

	messages := map[string]string{}
	for _, d := range resp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", messages["customer"])
	assert.Equal(t, "Must be a date in 2006-01-02 format", messages["delivery_date"])
	assert.Equal(t, "Must be greater than 0", messages["qty"])
}

func TestHandleValidationError_MalformedJSON(t *testing.T) {
	r := newValidationRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"customer":`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
}

func TestHandleValidationError_Valid(t *testing.T) {
	r := newValidationRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders",
		strings.NewReader(`{"customer":"Cafe Nord","delivery_date":"2025-03-10","qty":2}`)))
	assert.Equal(t, http.StatusCreated, w.Code)
}
