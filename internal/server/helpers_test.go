package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"friendflow/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultLimit   int
		expectedLimit  int
		expectedOffset int
	}{
		{name: "Defaults", query: "", defaultLimit: 20, expectedLimit: 20, expectedOffset: 0},
		{name: "Explicit", query: "?limit=5&offset=10", defaultLimit: 20, expectedLimit: 5, expectedOffset: 10},
		{name: "Capped Limit", query: "?limit=5000", defaultLimit: 20, expectedLimit: maxPaginationLimit, expectedOffset: 0},
		{name: "Negative Values", query: "?limit=-1&offset=-5", defaultLimit: 20, expectedLimit: 20, expectedOffset: 0},
		{name: "Garbage", query: "?limit=abc&offset=xyz", defaultLimit: 20, expectedLimit: 20, expectedOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got Pagination
			app.Get("/", func(c *fiber.Ctx) error {
				got = parsePagination(c, tt.defaultLimit)
				return c.SendStatus(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedLimit, got.Limit)
			assert.Equal(t, tt.expectedOffset, got.Offset)
		})
	}
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{param: "id", expected: "ID"},
		{param: "userId", expected: "user ID"},
		{param: "postId", expected: "post ID"},
		{param: "username", expected: "username"},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "Validation", err: models.NewValidationError("bad input"), expected: fiber.StatusBadRequest},
		{name: "Not Found", err: models.NewNotFoundError("Post", 1), expected: fiber.StatusNotFound},
		{name: "Forbidden", err: models.NewForbiddenError("nope"), expected: fiber.StatusForbidden},
		{name: "Unauthorized", err: models.NewUnauthorizedError("who"), expected: fiber.StatusUnauthorized},
		{name: "Conflict", err: models.NewConflictError("dup"), expected: fiber.StatusConflict},
		{name: "Plain Error", err: errors.New("boom"), expected: fiber.StatusInternalServerError},
		{name: "Internal", err: models.NewInternalError(errors.New("boom")), expected: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapServiceError(tt.err))
		})
	}
}
