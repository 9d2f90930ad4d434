package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ruhienterprises/careers-api/internal/model"
	"github.com/ruhienterprises/careers-api/internal/usecase"
	"github.com/ruhienterprises/careers-api/internal/util"
	"github.com/sirupsen/logrus"
)

const (
	SessionCookie = "session"
	LoginPath     = "/admin/login"
	profileKey    = "admin_profile"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Profile, error)
}

// SessionToken reads the session cookie, falling back to a bearer token.
func SessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookie); token != "" {
		return token
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// RequireAdmin rejects requests without an active admin session before any
// admin handler runs.
func RequireAdmin(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := auth.Authenticate(c.UserContext(), SessionToken(c))
		switch {
		case errors.Is(err, usecase.ErrUnauthorized), errors.Is(err, usecase.ErrForbidden):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: err.Error(),
				Details: fiber.Map{"redirect": LoginPath},
			})
		case err != nil:
			logrus.WithError(err).Error("session check failed")
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusInternalServerError,
				Message: "failed to verify session",
				Details: fiber.Map{"redirect": LoginPath},
			}, err)
		}
		c.Locals(profileKey, profile)
		return c.Next()
	}
}

// AdminFromContext returns the profile RequireAdmin stored on the request.
func AdminFromContext(c *fiber.Ctx) (*model.Profile, bool) {
	profile, ok := c.Locals(profileKey).(*model.Profile)
	return profile, ok
}
