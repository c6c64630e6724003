package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping() error { return p.err }

func healthStatus(t *testing.T, db Pinger) (int, string) {
	t.Helper()
	r := gin.New()
	h := NewSystemHandler("1.2.3", db)
	r.GET("/health", h.Health)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	return w.Code, w.Body.String()
}

func TestSystemHandler_Health(t *testing.T) {
	code, body := healthStatus(t, stubPinger{})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"database":"up"`)
	assert.Contains(t, body, `"version":"1.2.3"`)

	code, body = healthStatus(t, stubPinger{err: errors.New("refused")})
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body, `"status":"unhealthy"`)

	code, body = healthStatus(t, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"database":"unknown"`)
}

func TestSystemHandler_Info(t *testing.T) {
	r := gin.New()
	r.GET("/info", NewSystemHandler("1.2.3", nil).GetSystemInfo)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Culinary Order API")
}
