package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ruhienterprises/careers-api/internal/dto"
	"github.com/ruhienterprises/careers-api/internal/model"
	"github.com/ruhienterprises/careers-api/internal/util"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type JobUsecase struct {
	jobRepo JobRepositoryInterface
	appRepo ApplicationRepositoryInterface
}

func NewJobUsecase(jobRepo JobRepositoryInterface, appRepo ApplicationRepositoryInterface) *JobUsecase {
	return &JobUsecase{jobRepo: jobRepo, appRepo: appRepo}
}

// ListOpen returns open jobs, optionally limited to one department
// (case-insensitive). "all" or "" means every department.
func (uc *JobUsecase) ListOpen(ctx context.Context, department string) ([]model.Job, error) {
	jobs, err := uc.jobRepo.GetOpenJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch open jobs: %w", err)
	}
	department = strings.TrimSpace(department)
	if !active(strings.ToLower(department)) {
		return jobs, nil
	}
	out := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if strings.EqualFold(job.Department, department) {
			out = append(out, job)
		}
	}
	return out, nil
}

func (uc *JobUsecase) Get(ctx context.Context, id string) (*model.Job, error) {
	job, err := uc.jobRepo.FindJobByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find job %s: %w", id, err)
	}
	return job, nil
}

// ListWithCounts returns every job with its number of applications.
func (uc *JobUsecase) ListWithCounts(ctx context.Context) ([]dto.JobSummaryDTO, error) {
	jobs, err := uc.jobRepo.GetJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch jobs: %w", err)
	}
	counts, err := uc.appRepo.CountByJob(ctx)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	out := make([]dto.JobSummaryDTO, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, dto.JobSummaryDTO{Job: job, Applications: counts[job.ID]})
	}
	return out, nil
}

func (uc *JobUsecase) Create(ctx context.Context, req dto.JobRequest, createdBy string) (*model.Job, error) {
	req.Normalize()
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	job := &model.Job{
		Title:            req.Title,
		Department:       req.Department,
		Location:         req.Location,
		Type:             req.Type,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Status:           req.Status,
	}
	if job.Status == "" {
		job.Status = model.JobStatusOpen
	}
	if createdBy != "" {
		job.CreatedBy = &createdBy
	}
	if err := uc.jobRepo.CreateJob(ctx, job); err != nil {
		logrus.WithError(err).WithField("title", job.Title).Error("failed to create job")
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (uc *JobUsecase) Update(ctx context.Context, id string, req dto.JobRequest) (*model.Job, error) {
	req.Normalize()
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	job, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	job.Title = req.Title
	job.Department = req.Department
	job.Location = req.Location
	job.Type = req.Type
	job.Description = req.Description
	job.Requirements = req.Requirements
	job.Responsibilities = req.Responsibilities
	if req.Status != "" {
		job.Status = req.Status
	}
	if err := uc.jobRepo.UpdateJob(ctx, job); err != nil {
		logrus.WithError(err).WithField("job_id", id).Error("failed to update job")
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// SetStatus opens or closes a job. Closing replaces deletion and leaves the
// job's applications untouched.
func (uc *JobUsecase) SetStatus(ctx context.Context, id string, status model.JobStatus) (*model.Job, error) {
	if !status.Valid() {
		return nil, util.NewFormError("invalid status", map[string]string{"status": "must be one of: open closed"})
	}
	rows, err := uc.jobRepo.SetJobStatus(ctx, id, status)
	if err != nil {
		logrus.WithError(err).WithField("job_id", id).Error("failed to set job status")
		return nil, fmt.Errorf("set job status: %w", err)
	}
	if rows == 0 {
		return nil, ErrJobNotFound
	}
	return uc.Get(ctx, id)
}
