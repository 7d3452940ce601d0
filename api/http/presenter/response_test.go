package presenter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/captable/pkg/apperr"
)

func statusAndMessage(t *testing.T, err error) (int, string) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return FromError(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body.Message
}

func TestFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", fmt.Errorf("%w: bad shares", apperr.ErrValidation), http.StatusBadRequest},
		{"unauthorized", fmt.Errorf("%w: bad creds", apperr.ErrUnauthorized), http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("%w: not yours", apperr.ErrForbidden), http.StatusForbidden},
		{"not found", fmt.Errorf("%w: gone", apperr.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: duplicate", apperr.ErrConflict), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusAndMessage(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.err.Error(), msg)
		})
	}
}

func TestFromError_HidesInternalDetail(t *testing.T) {
	t.Parallel()

	status, msg := statusAndMessage(t, errors.New("pgx: connection refused at 10.0.0.5"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", msg)
	assert.NotContains(t, msg, "pgx")
}
