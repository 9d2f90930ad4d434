package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ruhienterprises/careers-api/internal/dto"
	"github.com/ruhienterprises/careers-api/internal/metrics"
	"github.com/ruhienterprises/careers-api/internal/model"
	"github.com/ruhienterprises/careers-api/internal/service"
	"github.com/ruhienterprises/careers-api/internal/util"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ApplicationUsecase struct {
	appRepo ApplicationRepositoryInterface
	jobRepo JobRepositoryInterface
	storage service.StorageServiceInterface
}

func NewApplicationUsecase(appRepo ApplicationRepositoryInterface, jobRepo JobRepositoryInterface, storage service.StorageServiceInterface) *ApplicationUsecase {
	return &ApplicationUsecase{appRepo: appRepo, jobRepo: jobRepo, storage: storage}
}

// SuccessPath is where the careers page sends an applicant after submitting.
func SuccessPath(jobID string) string {
	return fmt.Sprintf("/careers/%s/success", jobID)
}

// SubmitPublic records an applicant's submission for an open job.
func (uc *ApplicationUsecase) SubmitPublic(ctx context.Context, jobID string, req dto.PublicApplicationRequest) (*model.Application, error) {
	req.Normalize()
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := uc.checkResumeURL(req.ResumeURL); err != nil {
		return nil, err
	}

	job, err := uc.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != model.JobStatusOpen {
		return nil, ErrJobClosed
	}

	visa := req.VisaStatus
	employment := req.EmploymentType
	app := &model.Application{
		JobID:          &job.ID,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		ResumeURL:      req.ResumeURL,
		CoverLetter:    req.CoverLetter,
		VisaStatus:     &visa,
		EmploymentType: &employment,
	}
	if req.WillingToRelocate != nil {
		app.WillingToRelocate = *req.WillingToRelocate
	}
	return uc.create(ctx, app, "public")
}

// CreateManual records a candidate entered by an admin. The job is optional.
func (uc *ApplicationUsecase) CreateManual(ctx context.Context, req dto.ManualApplicationRequest) (*model.Application, error) {
	req.Normalize()
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := uc.checkResumeURL(req.ResumeURL); err != nil {
		return nil, err
	}

	app := &model.Application{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		ResumeURL:      req.ResumeURL,
		CoverLetter:    req.CoverLetter,
		VisaStatus:     req.VisaStatus,
		EmploymentType: req.EmploymentType,
	}
	if req.JobID != nil {
		job, err := uc.findJob(ctx, *req.JobID)
		if err != nil {
			return nil, err
		}
		app.JobID = &job.ID
	}
	if req.WillingToRelocate != nil {
		app.WillingToRelocate = *req.WillingToRelocate
	}
	return uc.create(ctx, app, "manual")
}

// UpdateStatus moves an application to any of the four statuses. There is
// no transition table and no version check: the last write wins.
func (uc *ApplicationUsecase) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	if !status.Valid() {
		return nil, util.NewFormError("invalid status", map[string]string{
			"status": "must be one of: pending reviewed accepted rejected",
		})
	}

	rows, err := uc.appRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		logrus.WithError(err).WithField("application_id", id).Error("failed to update application status")
		return nil, fmt.Errorf("update status: %w", err)
	}
	if rows == 0 {
		return nil, ErrApplicationNotFound
	}
	metrics.StatusChanges.WithLabelValues(string(status)).Inc()
	return uc.find(ctx, id)
}

func (uc *ApplicationUsecase) create(ctx context.Context, app *model.Application, flow string) (*model.Application, error) {
	app.Status = model.ApplicationStatusPending
	if err := uc.appRepo.Create(ctx, app); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"flow": flow, "email": app.Email}).Error("failed to create application")
		return nil, fmt.Errorf("create application: %w", err)
	}
	metrics.ApplicationsSubmitted.WithLabelValues(flow).Inc()
	return app, nil
}

// checkResumeURL only lets through links to objects in the resume bucket.
func (uc *ApplicationUsecase) checkResumeURL(resumeURL *string) error {
	if resumeURL == nil {
		return nil
	}
	if _, ok := uc.storage.ObjectKey(*resumeURL); !ok {
		return util.NewFormError("invalid resume link", map[string]string{
			"resume_url": "must be a resume uploaded through this site",
		})
	}
	return nil
}

func (uc *ApplicationUsecase) findJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := uc.jobRepo.FindJobByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find job %s: %w", id, err)
	}
	return job, nil
}

func (uc *ApplicationUsecase) find(ctx context.Context, id string) (*model.Application, error) {
	app, err := uc.appRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find application %s: %w", id, err)
	}
	return app, nil
}
