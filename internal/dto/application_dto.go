package dto

import (
	"strings"

	"github.com/ruhienterprises/careers-api/internal/model"
)

// PublicApplicationRequest is the careers-page submission. The target job
// comes from the route.
type PublicApplicationRequest struct {
	FullName          string               `json:"full_name" validate:"required,max=255"`
	Email             string               `json:"email" validate:"required,email,max=255"`
	Phone             *string              `json:"phone" validate:"omitempty,max=50"`
	ResumeURL         *string              `json:"resume_url" validate:"omitempty,url"`
	CoverLetter       *string              `json:"cover_letter" validate:"omitempty,max=10000"`
	VisaStatus        model.VisaStatus     `json:"visa_status" validate:"required,oneof=H1B H4-EAD GreenCard 'US Citizen'"`
	EmploymentType    model.EmploymentType `json:"employment_type" validate:"required,oneof=W2 C2C"`
	WillingToRelocate *bool                `json:"willing_to_relocate"`
}

func (r *PublicApplicationRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = trimOptional(r.Phone)
	r.ResumeURL = trimOptional(r.ResumeURL)
	r.CoverLetter = trimOptional(r.CoverLetter)
}

// ManualApplicationRequest is an admin-entered candidate; the job and the
// visa/employment answers are optional.
type ManualApplicationRequest struct {
	JobID             *string               `json:"job_id"`
	FullName          string                `json:"full_name" validate:"required,max=255"`
	Email             string                `json:"email" validate:"required,email,max=255"`
	Phone             *string               `json:"phone" validate:"omitempty,max=50"`
	ResumeURL         *string               `json:"resume_url" validate:"omitempty,url"`
	CoverLetter       *string               `json:"cover_letter" validate:"omitempty,max=10000"`
	VisaStatus        *model.VisaStatus     `json:"visa_status" validate:"omitempty,oneof=H1B H4-EAD GreenCard 'US Citizen'"`
	EmploymentType    *model.EmploymentType `json:"employment_type" validate:"omitempty,oneof=W2 C2C"`
	WillingToRelocate *bool                 `json:"willing_to_relocate"`
}

func (r *ManualApplicationRequest) Normalize() {
	r.JobID = trimOptional(r.JobID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = trimOptional(r.Phone)
	r.ResumeURL = trimOptional(r.ResumeURL)
	r.CoverLetter = trimOptional(r.CoverLetter)
	if r.VisaStatus != nil && strings.TrimSpace(string(*r.VisaStatus)) == "" {
		r.VisaStatus = nil
	}
	if r.EmploymentType != nil && strings.TrimSpace(string(*r.EmploymentType)) == "" {
		r.EmploymentType = nil
	}
	// "none" is what the position picker sends for no job
	if r.JobID != nil && *r.JobID == "none" {
		r.JobID = nil
	}
}

// ApplicationEditRequest is the inline row edit of the moderation view.
// Nil fields are left untouched; an empty phone clears it.
type ApplicationEditRequest struct {
	FullName *string                  `json:"full_name" validate:"omitempty,min=1,max=255"`
	Email    *string                  `json:"email" validate:"omitempty,email,max=255"`
	Phone    *string                  `json:"phone" validate:"omitempty,max=50"`
	Status   *model.ApplicationStatus `json:"status" validate:"omitempty,oneof=pending reviewed accepted rejected"`
}

type StatusUpdateRequest struct {
	Status model.ApplicationStatus `json:"status" validate:"required,oneof=pending reviewed accepted rejected"`
}

type SubmittedApplicationDTO struct {
	Application *model.Application `json:"application"`
	Redirect    string             `json:"redirect"`
}

type ApplicationListDTO struct {
	Applications []model.Application `json:"applications"`
	Jobs         []model.Job         `json:"jobs"`
	Total        int                 `json:"total"`
	Matched      int                 `json:"matched"`
}

type ResumeUploadDTO struct {
	URL         string `json:"resume_url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
