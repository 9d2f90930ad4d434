package util

import (
	"fmt"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ruhienterprises/careers-api/internal/config"
	"github.com/ruhienterprises/careers-api/internal/response"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

// successBody and errorBody fix the key order of the JSON envelope.
type successBody struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type errorBody struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// FormError carries per-field validation messages keyed by JSON field name.
// It is rendered as a 422 whose details are the field map.
type FormError struct {
	Errors  map[string]string
	Message string
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errors,
	}
}

func (e *FormError) Error() string {
	if len(e.Errors) == 0 {
		return "form error: " + e.Message
	}
	fields := make([]string, 0, len(e.Errors))
	for name := range e.Errors {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fmt.Sprintf("form error: %s (%s)", e.Message, strings.Join(fields, ", "))
}

// Details is nil when no field is named, so the key is omitted.
func (e *FormError) Details() any {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors
}

// SuccessResponse writes the standard success envelope. Code defaults to 200.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(successBody{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	})
}

// ErrorResponse writes the standard error envelope. Code defaults to 500.
// Outside production the first error and a stack trace are attached.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	body := errorBody{Message: params.Message, Details: params.Details}
	if !config.LoadAppConfig().IsProduction() {
		body.DevMessage, body.Trace = debugInfo(params, errs)
	}
	return c.Status(code).JSON(body)
}

// FormErrorResponse renders a validation failure.
func FormErrorResponse(c *fiber.Ctx, formErr *FormError) error {
	return ErrorResponse(c, ErrorResponseFormat{
		Code:    fiber.StatusUnprocessableEntity,
		Message: formErr.Message,
		Details: formErr.Details(),
	})
}

func debugInfo(params ErrorResponseFormat, errs []error) (devMessage, trace string) {
	if len(errs) > 0 && errs[0] != nil {
		devMessage = errs[0].Error()
		trace = string(debug.Stack())
	}
	if params.DevMessage != "" {
		devMessage = params.DevMessage
	}
	if params.Trace != "" {
		trace = params.Trace
	}
	return devMessage, trace
}
