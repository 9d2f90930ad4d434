package handler

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ruhienterprises/careers-api/internal/middleware"
	"github.com/ruhienterprises/careers-api/internal/usecase"
	"github.com/ruhienterprises/careers-api/internal/util"
)

const resumeField = "resume"

type ResumeHandler struct {
	uc *usecase.ResumeUsecase
}

func NewResumeHandler(uc *usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(public, admin fiber.Router) {
	public.Post("/resumes", middleware.RateLimiter(10, 1*time.Minute), h.Upload)
	admin.Post("/resumes", h.Upload)
}

// Upload validates the multipart "resume" file and stores it, returning the
// public URL to put on the application.
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile(resumeField)
	if err != nil {
		return respondError(c, util.NewFormError("resume file is required", map[string]string{
			resumeField: "resume file is required",
		}), "")
	}

	f, err := header.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read resume file",
		}, err)
	}
	defer f.Close()

	// one byte past the limit is enough to report the file as too large
	body, err := io.ReadAll(io.LimitReader(f, usecase.MaxResumeSize+1))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read resume file",
		}, err)
	}

	uploaded, err := h.uc.Upload(c.UserContext(), usecase.ResumeFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		Body:        body,
	})
	if err != nil {
		return respondError(c, err, "failed to upload resume")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success upload resume",
		Data:    uploaded,
	})
}
