package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pyrocube-Network/EconomyApi/internal/middleware"
)

func TestGetLoggerFromCtx(t *testing.T) {
	assert.Nil(t, middleware.GetLoggerFromCtx(context.Background()))

	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	ctx := middleware.WithLogger(context.Background(), logger)
	assert.Same(t, logger, middleware.GetLoggerFromCtx(ctx))
}

func TestWithOperationLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := middleware.WithOperationLogger(middleware.WithLogger(context.Background(), base), "do_transaction")

	middleware.GetLoggerFromCtx(ctx).Info("applied")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "do_transaction", line["operation"])
	assert.NotEmpty(t, line["operation_id"])
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var sawCtxLogger, sawGinLogger bool
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(base), gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		sawCtxLogger = middleware.GetLoggerFromCtx(c.Request.Context()) != nil
		sawGinLogger = middleware.GetLoggerFromContext(c) != slog.Default()
		c.String(http.StatusTeapot, "short and stout")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.True(t, sawCtxLogger)
	assert.True(t, sawGinLogger)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/healthz", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
}

func TestGetLoggerFromContext_Fallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Same(t, slog.Default(), middleware.GetLoggerFromContext(c))
}
