package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromApp(t *testing.T) (*fiber.App, *PrometheusMiddleware) {
	t.Helper()
	m, err := NewPrometheusMiddleware(prometheus.NewRegistry())
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/documents/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Delete("/documents/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Put("/documents/:id", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusConflict, "invalid transition")
	})
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app, m
}

func TestPrometheusMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		labels []string
	}{
		{name: "route pattern", method: "GET", target: "/documents/123", labels: []string{"GET", "/documents/:id", "200"}},
		{name: "other method", method: "DELETE", target: "/documents/123", labels: []string{"DELETE", "/documents/:id", "204"}},
		{name: "fiber error status", method: "PUT", target: "/documents/123", labels: []string{"PUT", "/documents/:id", "409"}},
		{name: "no route", method: "GET", target: "/nope/42", labels: []string{"GET", unmatchedPath, "404"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, m := newPromApp(t)

			_, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil))
			require.NoError(t, err)

			assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues(tt.labels...)))
			assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
		})
	}
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	app, m := newPromApp(t)

	_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	assert.Equal(t, 0, testutil.CollectAndCount(m.requestCount))
	assert.Equal(t, 0, testutil.CollectAndCount(m.requestDuration))
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
