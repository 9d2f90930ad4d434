package util

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ruhienterprises/careers-api/internal/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `json:"full_name" validate:"required,max=5"`
	Email  string `json:"email" validate:"omitempty,email"`
	Status string `json:"status" validate:"omitempty,oneof=open closed"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(sample{Name: "Jane"}))

	err := ValidateStruct(sample{Name: "Jonathan", Email: "x", Status: "gone"})
	var formErr *FormError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, "validation failed", formErr.Message)
	assert.Equal(t, map[string]string{
		"full_name": "must be at most 5 characters",
		"email":     "must be a valid email address",
		"status":    "must be one of: open closed",
	}, formErr.Errors)

	err = ValidateStruct(sample{})
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, "is required", formErr.Errors["full_name"])
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, p := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page)
	require.NotNil(t, p)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, int64(5), p.TotalItems)
	assert.True(t, p.HasMore)
	assert.Equal(t, 3, p.From)
	assert.Equal(t, 4, p.To)

	page, p = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, page)
	assert.False(t, p.HasMore)

	page, p = Paginate(items, 9, 2)
	assert.Empty(t, page)
	assert.Zero(t, p.From)
	assert.Zero(t, p.To)

	page, p = Paginate(items, 0, 0)
	assert.Equal(t, items, page)
	assert.Nil(t, p)
}

func TestPaginateHugeValues(t *testing.T) {
	items := []int{1, 2, 3}
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{"huge page", 1 << 62, 4, []int{}},
		{"max page", math.MaxInt, 2, []int{}},
		{"huge page size", 1, math.MaxInt, []int{1, 2, 3}},
		{"both huge", math.MaxInt, math.MaxInt, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var page []int
			var p *response.Pagination
			require.NotPanics(t, func() { page, p = Paginate(items, tt.page, tt.pageSize) })
			assert.ElementsMatch(t, tt.want, page)
			require.NotNil(t, p)
			assert.Equal(t, int64(3), p.TotalItems)
			assert.False(t, p.HasMore)
		})
	}
}

func TestFormError(t *testing.T) {
	err := NewFormError("validation failed", map[string]string{"email": "is required", "full_name": "is required"})
	assert.Equal(t, "form error: validation failed (email, full_name)", err.Error())
	assert.NotNil(t, err.Details())

	bare := NewFormError("nothing to update", nil)
	assert.Equal(t, "form error: nothing to update", bare.Error())
	assert.Nil(t, bare.Details())
}

func TestFormErrorResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/fields", func(c *fiber.Ctx) error {
		return FormErrorResponse(c, NewFormError("validation failed", map[string]string{"email": "is required"}))
	})
	app.Get("/bare", func(c *fiber.Ctx) error {
		return FormErrorResponse(c, NewFormError("nothing to update", nil))
	})

	tests := []struct {
		path    string
		message string
		details map[string]any
	}{
		{"/fields", "validation failed", map[string]any{"email": "is required"}},
		{"/bare", "nothing to update", nil},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body struct {
			Success bool           `json:"success"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, tt.message, body.Message)
		assert.Equal(t, tt.details, body.Details)
	}
}
