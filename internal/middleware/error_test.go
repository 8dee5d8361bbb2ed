package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(ErrorHandler(slog.New(slog.NewTextHandler(&buf, nil))))
	r.GET("/", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
	assert.Contains(t, buf.String(), "boom")
}

func TestErrorHandlerLogsAttachedErrors(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(ErrorHandler(slog.New(slog.NewTextHandler(&buf, nil))))
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("store unavailable"))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "store unavailable")
	assert.Contains(t, buf.String(), "status=500")
}
