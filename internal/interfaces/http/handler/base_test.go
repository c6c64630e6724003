package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/interfaces/http/dto"
	"github.com/culinary/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, getRequestID(c))

	c.Request.Header.Set("X-Request-ID", "header-id")
	assert.Equal(t, "header-id", getRequestID(c))

	c.Set("request_id", "ctx-id")
	assert.Equal(t, "ctx-id", getRequestID(c), "middleware value wins")
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"wrapped conflict", fmt.Errorf("save: %w", shared.ErrConcurrentModification), http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"overlap", shared.NewDomainError("AGREEMENT_OVERLAP", "overlap"), http.StatusConflict, "AGREEMENT_OVERLAP"},
		{"business rule", shared.NewDomainError("ITEM_NOT_IN_AGREEMENT", "no agreement"), http.StatusUnprocessableEntity, "ITEM_NOT_IN_AGREEMENT"},
		{"bad date", shared.NewDomainError("INVALID_DATE", "bad"), http.StatusBadRequest, "INVALID_DATE"},
		{"plain error", errors.New("db gone"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			h.HandleError(c, tt.err)
			testutil.AssertError(t, w, tt.status, tt.code)
		})
	}
}

func TestBaseHandler_HandleErrorHidesInternals(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h.HandleError(c, errors.New("pq: password authentication failed"))
	assert.NotContains(t, w.Body.String(), "password")
}

func TestBaseHandler_ParseUUIDParam(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	_, ok := h.ParseUUIDParam(c, "id")
	assert.False(t, ok)
	testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
}
