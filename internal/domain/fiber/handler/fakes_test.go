package handler

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/ruhienterprises/careers-api/internal/model"
	"github.com/ruhienterprises/careers-api/internal/service"
	"gorm.io/gorm"
)

var errObjectMissing = errors.New("object not found")

// memDB backs every repository interface with one in-memory store.
type memDB struct {
	mu       sync.Mutex
	jobs     map[string]model.Job
	apps     []model.Application
	profiles map[string]model.Profile
}

func newMemDB() *memDB {
	return &memDB{jobs: map[string]model.Job{}, profiles: map[string]model.Profile{}}
}

type memJobs struct{ db *memDB }

func (r memJobs) CreateJob(_ context.Context, job *model.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	r.db.jobs[job.ID] = *job
	return nil
}

func (r memJobs) UpdateJob(_ context.Context, job *model.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.jobs[job.ID] = *job
	return nil
}

func (r memJobs) FindJobByID(_ context.Context, id string) (*model.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	job, ok := r.db.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &job, nil
}

func (r memJobs) GetJobs(_ context.Context) ([]model.Job, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]model.Job, 0, len(r.db.jobs))
	for _, job := range r.db.jobs {
		out = append(out, job)
	}
	return out, nil
}

func (r memJobs) GetOpenJobs(ctx context.Context) ([]model.Job, error) {
	all, _ := r.GetJobs(ctx)
	var out []model.Job
	for _, job := range all {
		if job.Status == model.JobStatusOpen {
			out = append(out, job)
		}
	}
	return out, nil
}

func (r memJobs) SetJobStatus(_ context.Context, id string, status model.JobStatus) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	job, ok := r.db.jobs[id]
	if !ok {
		return 0, nil
	}
	job.Status = status
	r.db.jobs[id] = job
	return 1, nil
}

type memApps struct{ db *memDB }

func (r memApps) Create(_ context.Context, app *model.Application) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	r.db.apps = append(r.db.apps, *app)
	return nil
}

func (r memApps) FindAll(_ context.Context) ([]model.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]model.Application, 0, len(r.db.apps))
	for i := len(r.db.apps) - 1; i >= 0; i-- {
		out = append(out, r.db.apps[i])
	}
	return out, nil
}

func (r memApps) FindByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	all, _ := r.FindAll(ctx)
	out := []model.Application{}
	for _, app := range all {
		if app.JobID != nil && *app.JobID == jobID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r memApps) FindByID(_ context.Context, id string) (*model.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, app := range r.db.apps {
		if app.ID == id {
			return &app, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memApps) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (int64, error) {
	return r.Update(ctx, id, map[string]any{"status": status})
}

func (r memApps) Update(_ context.Context, id string, fields map[string]any) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.apps {
		if r.db.apps[i].ID != id {
			continue
		}
		if v, ok := fields["status"]; ok {
			r.db.apps[i].Status = v.(model.ApplicationStatus)
		}
		if v, ok := fields["full_name"]; ok {
			r.db.apps[i].FullName = v.(string)
		}
		return 1, nil
	}
	return 0, nil
}

func (r memApps) Delete(_ context.Context, id string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, app := range r.db.apps {
		if app.ID == id {
			r.db.apps = append(r.db.apps[:i], r.db.apps[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r memApps) ResumeURLs(context.Context) ([]string, error) { return nil, nil }

func (r memApps) CountByJob(context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type memProfiles struct{ db *memDB }

func (r memProfiles) FindByEmail(_ context.Context, email string) (*model.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memProfiles) FindByID(_ context.Context, id string) (*model.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r memProfiles) Save(_ context.Context, p *model.Profile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.db.profiles[p.ID] = *p
	return nil
}

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (s *memStorage) Upload(_ context.Context, key string, body io.Reader, _ service.UploadOptions) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return nil
}

func (s *memStorage) PublicURL(key string) string {
	return "https://storage.test/public/resumes/" + key
}

func (s *memStorage) ObjectKey(publicURL string) (string, bool) {
	key, ok := strings.CutPrefix(publicURL, s.PublicURL(""))
	return key, ok && service.ValidObjectKey(key)
}

func (s *memStorage) Download(_ context.Context, key string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[key]
	if !ok {
		return nil, "", errObjectMissing
	}
	return data, "application/pdf", nil
}

func (s *memStorage) List(context.Context, string) ([]service.StorageObject, error) { return nil, nil }

func (s *memStorage) Remove(context.Context, []string) error { return nil }

type nopEmail struct{}

func (nopEmail) SendTemplate(context.Context, string, map[string]string) error { return nil }
