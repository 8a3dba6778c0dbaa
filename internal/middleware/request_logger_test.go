package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"trivia-api/internal/domain"
	"trivia-api/internal/metrics"
	"trivia-api/internal/middleware"
	"trivia-api/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedApp(m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	if m != nil {
		app.Use(middleware.Metrics(m))
	}
	app.Use(middleware.RequestLogger())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString(middleware.RequestID(c))
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return domain.NewNotFoundError("missing")
	})
	return app
}

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	resp, err := newLoggedApp(nil).Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)

	id := resp.Header.Get(middleware.RequestIDHeader)
	assert.True(t, util.IsULID(id))
}

func TestRequestLogger_KeepsClientRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-supplied")

	resp, err := newLoggedApp(nil).Test(req)
	require.NoError(t, err)
	assert.Equal(t, "client-supplied", resp.Header.Get(middleware.RequestIDHeader))
}

func TestRequestLogger_RendersErrors(t *testing.T) {
	resp, err := newLoggedApp(nil).Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "resource not found", decodeError(t, resp).Message)
}

func TestMetrics_CountsFinalStatus(t *testing.T) {
	m := metrics.New()
	app := newLoggedApp(m)

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/ok", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/missing", "404")))
}
