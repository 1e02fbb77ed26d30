package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Message string `json:"message" validate:"required,min=1,max=10"`
	Mood    string `json:"mood" validate:"omitempty,oneof=professional genz"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		req    sampleRequest
		fields []string
	}{
		{"valid", sampleRequest{Message: "hi", Mood: "genz"}, nil},
		{"missing message", sampleRequest{}, []string{"message"}},
		{"too long and bad mood", sampleRequest{Message: "12345678901", Mood: "pirate"}, []string{"message", "mood"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/validation", func(c *fiber.Ctx) error { return ValidateRequest(sampleRequest{}) })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "missing") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db password leaked") })

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/validation", 400, "validation failed: message is required"},
		{"/fiber", 404, "missing"},
		{"/boom", 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var res Response[any]
			require.NoError(t, json.Unmarshal(body, &res))
			assert.False(t, res.Success)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}
