package repository

import (
	"context"

	"github.com/ruhienterprises/careers-api/internal/model"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

func (r *JobRepository) CreateJob(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) UpdateJob(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *JobRepository) FindJobByID(ctx context.Context, id string) (*model.Job, error) {
	var j model.Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) GetJobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) GetOpenJobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).
		Where("status = ?", model.JobStatusOpen).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// SetJobStatus touches only the job row; applications are never cascaded.
func (r *JobRepository) SetJobStatus(ctx context.Context, id string, status model.JobStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Job{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}
