package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ruhienterprises/careers-api/internal/usecase"
	"github.com/ruhienterprises/careers-api/internal/util"
)

type StatsHandler struct {
	uc *usecase.StatsUsecase
}

func NewStatsHandler(uc *usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) RegisterRoutes(admin fiber.Router) {
	admin.Get("/stats", h.Dashboard)
}

func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, err, "failed to build statistics")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get statistics",
		Data:    stats,
	})
}
