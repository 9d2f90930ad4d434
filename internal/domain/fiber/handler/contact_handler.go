package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ruhienterprises/careers-api/internal/dto"
	"github.com/ruhienterprises/careers-api/internal/middleware"
	"github.com/ruhienterprises/careers-api/internal/usecase"
	"github.com/ruhienterprises/careers-api/internal/util"
)

type ContactHandler struct {
	uc *usecase.ContactUsecase
}

func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) RegisterRoutes(public fiber.Router) {
	public.Post("/contact", middleware.RateLimiter(3, 1*time.Minute), h.Send)
}

func (h *ContactHandler) Send(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.uc.Send(c.UserContext(), req); err != nil {
		return respondError(c, err, "failed to send message")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Message sent successfully",
	})
}
