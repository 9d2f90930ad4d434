package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ruhienterprises/careers-api/internal/dto"
	"github.com/ruhienterprises/careers-api/internal/middleware"
	"github.com/ruhienterprises/careers-api/internal/usecase"
	"github.com/ruhienterprises/careers-api/internal/util"
)

type JobHandler struct {
	uc *usecase.JobUsecase
}

func NewJobHandler(uc *usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(public, admin fiber.Router) {
	public.Get("/jobs", h.ListOpen)
	public.Get("/jobs/:id", h.Get)

	admin.Get("/jobs", h.List)
	admin.Post("/jobs", h.Create)
	admin.Get("/jobs/:id", h.Get)
	admin.Put("/jobs/:id", h.Update)
	admin.Patch("/jobs/:id/status", h.SetStatus)
}

// ListOpen serves the careers page listing, filtered by ?department=.
func (h *JobHandler) ListOpen(c *fiber.Ctx) error {
	jobs, err := h.uc.ListOpen(c.UserContext(), c.Query("department"))
	if err != nil {
		return respondError(c, err, "failed to fetch jobs")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get jobs",
		Data:    jobs,
	})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job",
		Data:    job,
	})
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	jobs, err := h.uc.ListWithCounts(c.UserContext())
	if err != nil {
		return respondError(c, err, "failed to fetch jobs")
	}
	page, pagination := util.Paginate(jobs, c.QueryInt("page"), c.QueryInt("page_size"))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get jobs",
		Data:       page,
		Pagination: pagination,
	})
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req dto.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	var createdBy string
	if profile, ok := middleware.AdminFromContext(c); ok {
		createdBy = profile.ID
	}
	job, err := h.uc.Create(c.UserContext(), req, createdBy)
	if err != nil {
		return respondError(c, err, "failed to create job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create job",
		Data:    job,
	})
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	var req dto.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	job, err := h.uc.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update job",
		Data:    job,
	})
}

func (h *JobHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.JobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	job, err := h.uc.SetStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err, "failed to update job status")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update job status",
		Data:    job,
	})
}
