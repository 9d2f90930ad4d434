package usecase

import (
	"context"

	"github.com/ruhienterprises/careers-api/internal/model"
)

// Repository contracts, satisfied by the gorm repositories.

type JobRepositoryInterface interface {
	CreateJob(ctx context.Context, job *model.Job) error
	UpdateJob(ctx context.Context, job *model.Job) error
	FindJobByID(ctx context.Context, id string) (*model.Job, error)
	GetJobs(ctx context.Context) ([]model.Job, error)
	GetOpenJobs(ctx context.Context) ([]model.Job, error)
	SetJobStatus(ctx context.Context, id string, status model.JobStatus) (int64, error)
}

type ApplicationRepositoryInterface interface {
	Create(ctx context.Context, app *model.Application) error
	FindAll(ctx context.Context) ([]model.Application, error)
	FindByJob(ctx context.Context, jobID string) ([]model.Application, error)
	FindByID(ctx context.Context, id string) (*model.Application, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (int64, error)
	Update(ctx context.Context, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	ResumeURLs(ctx context.Context) ([]string, error)
	CountByJob(ctx context.Context) (map[string]int64, error)
}

type ProfileRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	Save(ctx context.Context, p *model.Profile) error
}
