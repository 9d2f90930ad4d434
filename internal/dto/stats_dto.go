package dto

import (
	"time"

	"github.com/ruhienterprises/careers-api/internal/model"
)

type PeriodCounts struct {
	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
	ThisMonth int `json:"this_month"`
}

type ApplicantApplication struct {
	JobTitle  string                  `json:"job_title"`
	Status    model.ApplicationStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
}

type ApplicantStats struct {
	Email             string                 `json:"email"`
	FullName          string                 `json:"full_name"`
	TotalApplications int                    `json:"total_applications"`
	Applications      []ApplicantApplication `json:"applications"`
}

type StatsDTO struct {
	TotalJobs              int                             `json:"total_jobs"`
	ActiveJobs             int                             `json:"active_jobs"`
	TotalApplications      int                             `json:"total_applications"`
	UniqueApplicants       int                             `json:"unique_applicants"`
	AverageApplications    float64                         `json:"average_applications_per_applicant"`
	ApplicationsByStatus   map[model.ApplicationStatus]int `json:"applications_by_status"`
	ApplicationsByPeriod   PeriodCounts                    `json:"applications_by_period"`
	JobsByPeriod           PeriodCounts                    `json:"jobs_by_period"`
	DetailedApplicantStats []ApplicantStats                `json:"detailed_applicant_stats"`
}
