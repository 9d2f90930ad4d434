package handler

import (
	"mime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ruhienterprises/careers-api/internal/dto"
	"github.com/ruhienterprises/careers-api/internal/middleware"
	"github.com/ruhienterprises/careers-api/internal/usecase"
	"github.com/ruhienterprises/careers-api/internal/util"
)

type ApplicationHandler struct {
	apps       *usecase.ApplicationUsecase
	moderation *usecase.ModerationUsecase
}

func NewApplicationHandler(apps *usecase.ApplicationUsecase, moderation *usecase.ModerationUsecase) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, moderation: moderation}
}

func (h *ApplicationHandler) RegisterRoutes(public, admin fiber.Router) {
	public.Post("/jobs/:id/applications", middleware.RateLimiter(5, 1*time.Minute), h.Submit)

	admin.Get("/jobs/:id/applications", h.ListByJob)
	admin.Get("/applications", h.List)
	admin.Post("/applications", h.CreateManual)
	admin.Get("/applications/:id", h.Get)
	admin.Put("/applications/:id", h.Edit)
	admin.Patch("/applications/:id/status", h.UpdateStatus)
	admin.Delete("/applications/:id", h.Delete)
	admin.Get("/applications/:id/resume", h.Resume)
}

// Submit takes a careers-page application for the job in the route.
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var req dto.PublicApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	jobID := c.Params("id")
	app, err := h.apps.SubmitPublic(c.UserContext(), jobID, req)
	if err != nil {
		return respondError(c, err, "failed to submit application")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Application submitted successfully",
		Data: dto.SubmittedApplicationDTO{
			Application: app,
			Redirect:    usecase.SuccessPath(jobID),
		},
	})
}

func (h *ApplicationHandler) CreateManual(c *fiber.Ctx) error {
	var req dto.ManualApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	app, err := h.apps.CreateManual(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "failed to create application")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create application",
		Data:    app,
	})
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	list, err := h.moderation.List(c.UserContext(), filterFromQuery(c))
	if err != nil {
		return respondError(c, err, "failed to fetch applications")
	}
	return h.respondList(c, list)
}

func (h *ApplicationHandler) ListByJob(c *fiber.Ctx) error {
	list, err := h.moderation.ListByJob(c.UserContext(), c.Params("id"), filterFromQuery(c))
	if err != nil {
		return respondError(c, err, "failed to fetch applications")
	}
	return h.respondList(c, list)
}

func (h *ApplicationHandler) respondList(c *fiber.Ctx, list *dto.ApplicationListDTO) error {
	page, pagination := util.Paginate(list.Applications, c.QueryInt("page"), c.QueryInt("page_size"))
	list.Applications = page
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get applications",
		Data:       list,
		Pagination: pagination,
	})
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	app, err := h.moderation.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch application")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get application",
		Data:    app,
	})
}

func (h *ApplicationHandler) Edit(c *fiber.Ctx) error {
	var req dto.ApplicationEditRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	app, err := h.moderation.Edit(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update application")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update application",
		Data:    app,
	})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	app, err := h.apps.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err, "failed to update application status")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update application status",
		Data:    app,
	})
}

// Delete removes an application. The first request without confirm=true is
// refused so the client has to ask twice.
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	if !c.QueryBool("confirm") {
		return respondError(c, errConfirmRequired, "")
	}
	if err := h.moderation.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "failed to delete application")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete application",
	})
}

// Resume returns the resume link for mode=open, otherwise streams the file as
// an attachment named after the applicant.
func (h *ApplicationHandler) Resume(c *fiber.Ctx) error {
	id := c.Params("id")
	if c.Query("mode") == "open" {
		link, err := h.moderation.ResumeLink(c.UserContext(), id)
		if err != nil {
			return respondError(c, err, "failed to open resume")
		}
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "Success get resume link",
			Data:    fiber.Map{"url": link},
		})
	}

	file, err := h.moderation.DownloadResume(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "failed to download resume")
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Set(fiber.HeaderContentDisposition, disposition)
	return c.Status(fiber.StatusOK).Send(file.Body)
}

func filterFromQuery(c *fiber.Ctx) usecase.ApplicationFilter {
	return usecase.ApplicationFilter{
		Query:          c.Query("q"),
		Status:         c.Query("status"),
		VisaStatus:     c.Query("visa_status"),
		EmploymentType: c.Query("employment_type"),
		JobID:          c.Query("job_id"),
	}
}
