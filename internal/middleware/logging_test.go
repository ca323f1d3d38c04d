package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs swaps the package logger for one writing into a buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	orig := Logger
	Logger = slog.New(&ctxHandler{slog.NewTextHandler(&buf, nil)})
	t.Cleanup(func() { Logger = orig })
	return &buf
}

func TestLogLevelFromEnv(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		t.Setenv("LOG_LEVEL", in)
		assert.Equal(t, want, logLevel(), "LOG_LEVEL=%q", in)
	}
}

func TestStructuredLoggerLevelsAndSkips(t *testing.T) {
	buf := captureLogs(t)

	app := fiber.New()
	app.Use(StructuredLogger())
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/bad", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusBadRequest) })
	app.Get("/boom", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusInternalServerError) })

	for _, path := range []string{"/health", "/ok", "/bad", "/boom"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	logs := buf.String()
	// Health scrapes stay out of the access log.
	assert.NotContains(t, logs, "/health")
	assert.Contains(t, logs, "request processed")
	assert.Contains(t, logs, "request rejected")
	assert.Contains(t, logs, "request failed")
}

func TestContextMiddlewarePropagatesIdentifiers(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "req-123")
		c.Locals("userID", uint(9))
		return c.Next()
	})
	app.Use(ContextMiddleware())

	var gotRID string
	var gotUID uint
	app.Get("/t", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		gotRID, _ = ctx.Value(RequestIDKey).(string)
		gotUID, _ = ctx.Value(UserIDKey).(uint)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/t", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "req-123", gotRID)
	assert.Equal(t, uint(9), gotUID)
}
