package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ruhienterprises/careers-api/internal/model"
	"github.com/ruhienterprises/careers-api/internal/service"
	"gorm.io/gorm"
)

var errBoom = errors.New("boom")

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*model.Job
	err  error
}

func newFakeJobRepo(jobs ...model.Job) *fakeJobRepo {
	r := &fakeJobRepo{jobs: make(map[string]*model.Job)}
	for i := range jobs {
		job := jobs[i]
		r.jobs[job.ID] = &job
	}
	return r
}

func (r *fakeJobRepo) CreateJob(_ context.Context, job *model.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.CreatedAt = time.Now()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *fakeJobRepo) UpdateJob(_ context.Context, job *model.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *fakeJobRepo) FindJobByID(_ context.Context, id string) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	job, ok := r.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *job
	return &cp, nil
}

func (r *fakeJobRepo) GetJobs(_ context.Context) ([]model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]model.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeJobRepo) GetOpenJobs(ctx context.Context) ([]model.Job, error) {
	jobs, err := r.GetJobs(ctx)
	if err != nil {
		return nil, err
	}
	out := jobs[:0]
	for _, job := range jobs {
		if job.Status == model.JobStatusOpen {
			out = append(out, job)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) SetJobStatus(_ context.Context, id string, status model.JobStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	job, ok := r.jobs[id]
	if !ok {
		return 0, nil
	}
	job.Status = status
	return 1, nil
}

// fakeAppRepo keeps applications in insertion order; reads return newest
// first like the gorm repository.
type fakeAppRepo struct {
	mu        sync.Mutex
	apps      []*model.Application
	jobs      *fakeJobRepo
	createErr error
}

func newFakeAppRepo(jobs *fakeJobRepo, apps ...model.Application) *fakeAppRepo {
	r := &fakeAppRepo{jobs: jobs}
	for i := range apps {
		app := apps[i]
		r.apps = append(r.apps, &app)
	}
	return r
}

func (r *fakeAppRepo) Create(_ context.Context, app *model.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = time.Now()
	cp := *app
	r.apps = append(r.apps, &cp)
	return nil
}

func (r *fakeAppRepo) withJob(app model.Application) model.Application {
	if app.JobID != nil && r.jobs != nil {
		if job, err := r.jobs.FindJobByID(context.Background(), *app.JobID); err == nil {
			app.Job = job
		}
	}
	return app
}

func (r *fakeAppRepo) FindAll(_ context.Context) ([]model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Application, 0, len(r.apps))
	for i := len(r.apps) - 1; i >= 0; i-- {
		out = append(out, r.withJob(*r.apps[i]))
	}
	return out, nil
}

func (r *fakeAppRepo) FindByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	all, _ := r.FindAll(ctx)
	out := []model.Application{}
	for _, app := range all {
		if app.JobID != nil && *app.JobID == jobID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *fakeAppRepo) FindByID(_ context.Context, id string) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.ID == id {
			cp := r.withJob(*app)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAppRepo) UpdateStatus(_ context.Context, id string, status model.ApplicationStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.ID == id {
			app.Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeAppRepo) Update(_ context.Context, id string, fields map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.ID != id {
			continue
		}
		for k, v := range fields {
			switch k {
			case "full_name":
				app.FullName = v.(string)
			case "email":
				app.Email = v.(string)
			case "phone":
				if v == nil {
					app.Phone = nil
				} else {
					s := v.(string)
					app.Phone = &s
				}
			case "status":
				app.Status = v.(model.ApplicationStatus)
			}
		}
		return 1, nil
	}
	return 0, nil
}

func (r *fakeAppRepo) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, app := range r.apps {
		if app.ID == id {
			r.apps = append(r.apps[:i], r.apps[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeAppRepo) ResumeURLs(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, app := range r.apps {
		if app.ResumeURL != nil {
			out = append(out, *app.ResumeURL)
		}
	}
	return out, nil
}

func (r *fakeAppRepo) CountByJob(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]int64{}
	for _, app := range r.apps {
		if app.JobID != nil {
			out[*app.JobID]++
		}
	}
	return out, nil
}

func (r *fakeAppRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (r *fakeProfileRepo) FindByEmail(_ context.Context, email string) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id string) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Save(_ context.Context, p *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

type uploadCall struct {
	Key  string
	Body []byte
	Opts service.UploadOptions
}

type fakeStorage struct {
	mu        sync.Mutex
	uploads   []uploadCall
	objects   []service.StorageObject
	removed   []string
	downloads []string
	files     map[string][]byte
	uploadErr error
}

func (s *fakeStorage) Upload(_ context.Context, key string, body io.Reader, opts service.UploadOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return s.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.uploads = append(s.uploads, uploadCall{Key: key, Body: data, Opts: opts})
	return nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return "https://storage.test/public/resumes/" + key
}

func (s *fakeStorage) ObjectKey(publicURL string) (string, bool) {
	key, ok := strings.CutPrefix(publicURL, s.PublicURL(""))
	return key, ok && service.ValidObjectKey(key)
}

func (s *fakeStorage) Download(_ context.Context, key string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloads = append(s.downloads, key)
	data, ok := s.files[key]
	if !ok {
		return nil, "", errBoom
	}
	return data, "application/pdf", nil
}

func (s *fakeStorage) List(_ context.Context, _ string) ([]service.StorageObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]service.StorageObject(nil), s.objects...), nil
}

func (s *fakeStorage) Remove(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, keys...)
	return nil
}

type fakePDF struct {
	pages int
	err   error
}

func (p fakePDF) PageCount([]byte) (int, error) {
	return p.pages, p.err
}

type fakeEmail struct {
	templateID string
	params     map[string]string
	calls      int
	err        error
}

func (e *fakeEmail) SendTemplate(_ context.Context, templateID string, params map[string]string) error {
	e.calls++
	e.templateID = templateID
	e.params = params
	return e.err
}

func strPtr(s string) *string { return &s }
