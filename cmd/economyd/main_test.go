package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pyrocube-Network/EconomyApi/internal/core/services"
	"github.com/Pyrocube-Network/EconomyApi/internal/platform/config"
	"github.com/Pyrocube-Network/EconomyApi/internal/platform/metrics"
	"github.com/Pyrocube-Network/EconomyApi/internal/repositories/database/memory"
	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

func TestRouter_HealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	registry := prometheus.NewRegistry()
	economyMetrics := metrics.NewEconomyMetrics(registry)

	container, err := services.NewServiceContainer(cfg, memory.NewRepositoryProvider(), services.WithMetrics(economyMetrics))
	require.NoError(t, err)
	provider := services.NewEconomyProvider(container, services.WithProviderMetrics(economyMetrics))
	defer provider.Close()

	r, err := newRouter(cfg, logger, registry, provider)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	gold := economy.MustStandardCurrency("gold", "G", 2, decimal.NewFromInt(1), economy.AsPrimary())
	ok, err := provider.RegisterCurrency(context.Background(), gold).Await(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "economy_registered_currencies 1")
}
