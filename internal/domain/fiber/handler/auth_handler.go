package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ruhienterprises/careers-api/internal/config"
	"github.com/ruhienterprises/careers-api/internal/dto"
	"github.com/ruhienterprises/careers-api/internal/middleware"
	"github.com/ruhienterprises/careers-api/internal/usecase"
	"github.com/ruhienterprises/careers-api/internal/util"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// RegisterRoutes mounts login and logout, then installs guard on admin so
// every route registered after it requires an admin session.
func (h *AuthHandler) RegisterRoutes(admin fiber.Router, guard fiber.Handler) {
	admin.Post("/login", h.Login)
	admin.Post("/logout", h.Logout)
	admin.Use(guard)
	admin.Get("/me", h.Me)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	session, err := h.uc.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "failed to sign in")
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   config.LoadAppConfig().IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success sign in",
		Data:    session,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), middleware.SessionToken(c)); err != nil {
		return respondError(c, err, "failed to sign out")
	}
	c.ClearCookie(middleware.SessionCookie)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success sign out",
		Data:    fiber.Map{"redirect": middleware.LoginPath},
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	profile, ok := middleware.AdminFromContext(c)
	if !ok {
		return respondError(c, usecase.ErrUnauthorized, "")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile",
		Data:    profile,
	})
}
