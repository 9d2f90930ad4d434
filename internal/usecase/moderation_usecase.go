package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/ruhienterprises/careers-api/internal/dto"
	"github.com/ruhienterprises/careers-api/internal/model"
	"github.com/ruhienterprises/careers-api/internal/service"
	"github.com/ruhienterprises/careers-api/internal/util"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ApplicationFilter narrows an already fetched list. Empty fields and "all"
// match everything; every set field must match.
type ApplicationFilter struct {
	Query          string
	Status         string
	VisaStatus     string
	EmploymentType string
	JobID          string
}

func (f ApplicationFilter) Match(app model.Application) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !containsFold(app.FullName, q) && !containsFold(app.Email, q) && !containsFold(deref(app.Phone), q) {
			return false
		}
	}
	if active(f.Status) && string(app.Status) != f.Status {
		return false
	}
	if active(f.VisaStatus) && (app.VisaStatus == nil || string(*app.VisaStatus) != f.VisaStatus) {
		return false
	}
	if active(f.EmploymentType) && (app.EmploymentType == nil || string(*app.EmploymentType) != f.EmploymentType) {
		return false
	}
	if active(f.JobID) && deref(app.JobID) != f.JobID {
		return false
	}
	return true
}

// FilterApplications keeps the order of apps.
func FilterApplications(apps []model.Application, f ApplicationFilter) []model.Application {
	out := make([]model.Application, 0, len(apps))
	for _, app := range apps {
		if f.Match(app) {
			out = append(out, app)
		}
	}
	return out
}

type ResumeDownload struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ModerationUsecase backs the admin applications screens. Lists are fetched
// in full and filtered in memory.
type ModerationUsecase struct {
	appRepo ApplicationRepositoryInterface
	jobRepo JobRepositoryInterface
	storage service.StorageServiceInterface
}

func NewModerationUsecase(appRepo ApplicationRepositoryInterface, jobRepo JobRepositoryInterface, storage service.StorageServiceInterface) *ModerationUsecase {
	return &ModerationUsecase{appRepo: appRepo, jobRepo: jobRepo, storage: storage}
}

func (uc *ModerationUsecase) List(ctx context.Context, f ApplicationFilter) (*dto.ApplicationListDTO, error) {
	var (
		apps []model.Application
		jobs []model.Job
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if apps, err = uc.appRepo.FindAll(gctx); err != nil {
			logrus.WithError(err).Error("failed to fetch applications")
			return fmt.Errorf("fetch applications: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if jobs, err = uc.jobRepo.GetJobs(gctx); err != nil {
			logrus.WithError(err).Error("failed to fetch jobs")
			return fmt.Errorf("fetch jobs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	matched := FilterApplications(apps, f)
	return &dto.ApplicationListDTO{
		Applications: matched,
		Jobs:         jobs,
		Total:        len(apps),
		Matched:      len(matched),
	}, nil
}

func (uc *ModerationUsecase) ListByJob(ctx context.Context, jobID string, f ApplicationFilter) (*dto.ApplicationListDTO, error) {
	job, err := uc.jobRepo.FindJobByID(ctx, jobID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find job %s: %w", jobID, err)
	}
	apps, err := uc.appRepo.FindByJob(ctx, job.ID)
	if err != nil {
		logrus.WithError(err).WithField("job_id", jobID).Error("failed to fetch job applications")
		return nil, fmt.Errorf("fetch applications for job %s: %w", jobID, err)
	}
	matched := FilterApplications(apps, f)
	return &dto.ApplicationListDTO{
		Applications: matched,
		Jobs:         []model.Job{*job},
		Total:        len(apps),
		Matched:      len(matched),
	}, nil
}

func (uc *ModerationUsecase) Get(ctx context.Context, id string) (*model.Application, error) {
	app, err := uc.appRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find application %s: %w", id, err)
	}
	return app, nil
}

// Edit saves an inline row edit and returns the stored record.
func (uc *ModerationUsecase) Edit(ctx context.Context, id string, req dto.ApplicationEditRequest) (*model.Application, error) {
	if req.FullName != nil {
		v := strings.TrimSpace(*req.FullName)
		req.FullName = &v
	}
	if req.Email != nil {
		v := strings.TrimSpace(*req.Email)
		req.Email = &v
	}
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		if phone := strings.TrimSpace(*req.Phone); phone != "" {
			fields["phone"] = phone
		} else {
			fields["phone"] = nil
		}
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return nil, util.NewFormError("nothing to update", nil)
	}

	rows, err := uc.appRepo.Update(ctx, id, fields)
	if err != nil {
		logrus.WithError(err).WithField("application_id", id).Error("failed to update application")
		return nil, fmt.Errorf("update application: %w", err)
	}
	if rows == 0 {
		return nil, ErrApplicationNotFound
	}
	return uc.Get(ctx, id)
}

func (uc *ModerationUsecase) Delete(ctx context.Context, id string) error {
	rows, err := uc.appRepo.Delete(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("application_id", id).Error("failed to delete application")
		return fmt.Errorf("delete application: %w", err)
	}
	if rows == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// ResumeLink returns the stored resume URL for opening directly.
func (uc *ModerationUsecase) ResumeLink(ctx context.Context, id string) (string, error) {
	app, err := uc.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if deref(app.ResumeURL) == "" {
		return "", ErrResumeMissing
	}
	return *app.ResumeURL, nil
}

// DownloadResume fetches the blob from the resume bucket and names it after
// the applicant. Links pointing anywhere else are never fetched.
func (uc *ModerationUsecase) DownloadResume(ctx context.Context, id string) (*ResumeDownload, error) {
	app, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if deref(app.ResumeURL) == "" {
		return nil, ErrResumeMissing
	}
	key, ok := uc.storage.ObjectKey(*app.ResumeURL)
	if !ok {
		logrus.WithFields(logrus.Fields{"application_id": id, "resume_url": *app.ResumeURL}).Warn("refusing to download resume outside the bucket")
		return nil, ErrResumeExternal
	}
	body, contentType, err := uc.storage.Download(ctx, key)
	if err != nil {
		logrus.WithError(err).WithField("application_id", id).Error("failed to download resume")
		return nil, fmt.Errorf("download resume: %w: %w", ErrUpstream, err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &ResumeDownload{
		Filename:    ResumeFilename(app.FullName, *app.ResumeURL),
		ContentType: contentType,
		Body:        body,
	}, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// ResumeFilename builds "<Full_Name>_resume.<ext>" from the applicant's name
// and the extension of the stored object, defaulting to pdf.
func ResumeFilename(fullName, resumeURL string) string {
	ext := "pdf"
	p := resumeURL
	if u, err := url.Parse(resumeURL); err == nil {
		p = u.Path
	}
	if e := sanitizeExt(strings.TrimPrefix(path.Ext(p), ".")); e != "" {
		ext = e
	}
	name := whitespace.ReplaceAllString(strings.TrimSpace(fullName), "_")
	return fmt.Sprintf("%s_resume.%s", name, ext)
}

func active(v string) bool {
	return v != "" && v != "all"
}

func containsFold(s, lowerSub string) bool {
	return strings.Contains(strings.ToLower(s), lowerSub)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
