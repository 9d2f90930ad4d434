package repository

import (
	"context"

	"github.com/ruhienterprises/careers-api/internal/model"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

// Create is a single insert; nothing is written when it fails.
func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Omit("Job").Create(app).Error
}

// FindAll returns every application, newest first, joined with its job.
func (r *ApplicationRepository) FindAll(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) FindByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).Preload("Job").First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Application{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}

// Update writes the given columns; keys are column names.
func (r *ApplicationRepository) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Application{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Application{})
	return res.RowsAffected, res.Error
}

// ResumeURLs lists every non-empty resume_url currently referenced.
func (r *ApplicationRepository) ResumeURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("resume_url IS NOT NULL AND resume_url <> ''").
		Pluck("resume_url", &urls).Error
	return urls, err
}

func (r *ApplicationRepository) CountByJob(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		JobID string
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Application{}).
		Select("job_id, count(*) AS total").
		Where("job_id IS NOT NULL").
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.JobID] = row.Total
	}
	return counts, nil
}
