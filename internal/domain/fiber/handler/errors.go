package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ruhienterprises/careers-api/internal/middleware"
	"github.com/ruhienterprises/careers-api/internal/usecase"
	"github.com/ruhienterprises/careers-api/internal/util"
)

var errConfirmRequired = errors.New("deletion must be confirmed")

// respondError maps usecase errors onto the error envelope. Anything it does
// not recognise is reported as a 500 with fallback as the message.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var formErr *util.FormError
	switch {
	case errors.As(err, &formErr):
		return util.FormErrorResponse(c, formErr)
	case errors.Is(err, usecase.ErrJobNotFound),
		errors.Is(err, usecase.ErrApplicationNotFound),
		errors.Is(err, usecase.ErrResumeMissing):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrJobClosed),
		errors.Is(err, usecase.ErrResumeExternal):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnauthorized,
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrForbidden):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: err.Error(),
			Details: fiber.Map{"redirect": middleware.LoginPath},
		})
	case errors.Is(err, usecase.ErrUnauthorized):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnauthorized,
			Message: err.Error(),
			Details: fiber.Map{"redirect": middleware.LoginPath},
		})
	case errors.Is(err, usecase.ErrUpstream):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: fallback,
		}, err)
	case errors.Is(err, errConfirmRequired):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: err.Error(),
			Details: fiber.Map{"confirm": "repeat the request with confirm=true"},
		})
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: fallback,
	}, err)
}

func badBody(c *fiber.Ctx, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: "invalid request body",
	}, err)
}
