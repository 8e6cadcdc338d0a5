package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatarra-market/internal/pkg/metrics"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(metrics.Middleware())
	app.Get("/ofertas/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/metrics", metrics.Handler())

	before := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/ofertas/:id", "200"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ofertas/42", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	after := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/ofertas/:id", "200"))
	assert.Equal(t, before+1, after)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "chatarra_http_requests_total")
}

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(metrics.OfertaTransitions.WithLabelValues("PENDIENTE", "APROBADA"))
	metrics.RecordTransition("PENDIENTE", "APROBADA")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.OfertaTransitions.WithLabelValues("PENDIENTE", "APROBADA")))
}
