package dto

import (
	"strings"

	"github.com/ruhienterprises/careers-api/internal/model"
)

type JobRequest struct {
	Title            string          `json:"title" validate:"required,max=255"`
	Department       string          `json:"department" validate:"required,max=100"`
	Location         string          `json:"location" validate:"required,max=255"`
	Type             string          `json:"type" validate:"required,max=50"`
	Description      string          `json:"description" validate:"required"`
	Requirements     []string        `json:"requirements"`
	Responsibilities []string        `json:"responsibilities"`
	Status           model.JobStatus `json:"status" validate:"omitempty,oneof=open closed"`
}

// Normalize trims fields and drops blank list entries, keeping order.
func (r *JobRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Department = strings.TrimSpace(r.Department)
	r.Location = strings.TrimSpace(r.Location)
	r.Type = strings.TrimSpace(r.Type)
	r.Description = strings.TrimSpace(r.Description)
	r.Requirements = compact(r.Requirements)
	r.Responsibilities = compact(r.Responsibilities)
}

type JobStatusRequest struct {
	Status model.JobStatus `json:"status" validate:"required,oneof=open closed"`
}

type JobSummaryDTO struct {
	model.Job
	Applications int64 `json:"applications"`
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
