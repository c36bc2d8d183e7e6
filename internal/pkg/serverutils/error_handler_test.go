package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "validation", err: apperror.Validation("title is required"), wantStatus: 400, wantMessage: "title is required"},
		{name: "conflict stays 400", err: apperror.Conflict("Email already exists"), wantStatus: 400, wantMessage: "Email already exists"},
		{name: "not found", err: apperror.NotFound("Note not found"), wantStatus: 404, wantMessage: "Note not found"},
		{name: "unauthenticated", err: apperror.Unauthenticated("Authentication required"), wantStatus: 401, wantMessage: "Authentication required"},
		{name: "internal hides the cause", err: apperror.Internal("store failed", errors.New("pq: secret detail")), wantStatus: 500, wantMessage: "Internal server error"},
		{name: "foreign error", err: errors.New("raw"), wantStatus: 500, wantMessage: "Internal server error"},
		{name: "fiber error keeps its code", err: fiber.ErrUpgradeRequired, wantStatus: 426, wantMessage: "Upgrade Required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.NewNopLogger())})
			app.Get("/", func(ctx *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}
