package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ruhienterprises/careers-api/internal/dto"
	"github.com/ruhienterprises/careers-api/internal/model"
	"golang.org/x/sync/errgroup"
)

const unknownPosition = "Unknown Position"

type StatsUsecase struct {
	appRepo ApplicationRepositoryInterface
	jobRepo JobRepositoryInterface
	now     func() time.Time
}

func NewStatsUsecase(appRepo ApplicationRepositoryInterface, jobRepo JobRepositoryInterface) *StatsUsecase {
	return &StatsUsecase{appRepo: appRepo, jobRepo: jobRepo, now: time.Now}
}

func (uc *StatsUsecase) Dashboard(ctx context.Context) (*dto.StatsDTO, error) {
	var (
		jobs []model.Job
		apps []model.Application
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if jobs, err = uc.jobRepo.GetJobs(gctx); err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if apps, err = uc.appRepo.FindAll(gctx); err != nil {
			return fmt.Errorf("fetch applications: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats := BuildStats(jobs, apps, uc.now())
	return &stats, nil
}

// BuildStats rolls up the dashboard figures. Periods are anchored at local
// midnight of now: today, the last 7 days, and the last calendar month.
// apps are expected newest first; per-applicant entries keep that order.
func BuildStats(jobs []model.Job, apps []model.Application, now time.Time) dto.StatsDTO {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := today.AddDate(0, 0, -7)
	monthAgo := today.AddDate(0, -1, 0)

	stats := dto.StatsDTO{
		TotalJobs:              len(jobs),
		TotalApplications:      len(apps),
		ApplicationsByStatus:   make(map[model.ApplicationStatus]int, len(model.ApplicationStatuses)),
		DetailedApplicantStats: []dto.ApplicantStats{},
	}
	for _, s := range model.ApplicationStatuses {
		stats.ApplicationsByStatus[s] = 0
	}

	for _, job := range jobs {
		if job.Status == model.JobStatusOpen {
			stats.ActiveJobs++
		}
		countPeriod(&stats.JobsByPeriod, job.CreatedAt, today, weekAgo, monthAgo)
	}

	byEmail := map[string]int{}
	for _, app := range apps {
		if _, ok := stats.ApplicationsByStatus[app.Status]; ok {
			stats.ApplicationsByStatus[app.Status]++
		}
		countPeriod(&stats.ApplicationsByPeriod, app.CreatedAt, today, weekAgo, monthAgo)

		title := unknownPosition
		if app.Job != nil && app.Job.Title != "" {
			title = app.Job.Title
		}
		entry := dto.ApplicantApplication{JobTitle: title, Status: app.Status, CreatedAt: app.CreatedAt}

		idx, ok := byEmail[app.Email]
		if !ok {
			idx = len(stats.DetailedApplicantStats)
			byEmail[app.Email] = idx
			stats.DetailedApplicantStats = append(stats.DetailedApplicantStats, dto.ApplicantStats{
				Email:    app.Email,
				FullName: app.FullName,
			})
		}
		applicant := &stats.DetailedApplicantStats[idx]
		applicant.TotalApplications++
		applicant.Applications = append(applicant.Applications, entry)
	}

	sort.SliceStable(stats.DetailedApplicantStats, func(i, j int) bool {
		return stats.DetailedApplicantStats[i].TotalApplications > stats.DetailedApplicantStats[j].TotalApplications
	})

	stats.UniqueApplicants = len(stats.DetailedApplicantStats)
	if stats.UniqueApplicants > 0 {
		stats.AverageApplications = float64(stats.TotalApplications) / float64(stats.UniqueApplicants)
	}
	return stats
}

func countPeriod(p *dto.PeriodCounts, at, today, weekAgo, monthAgo time.Time) {
	if !at.Before(today) {
		p.Today++
	}
	if !at.Before(weekAgo) {
		p.ThisWeek++
	}
	if !at.Before(monthAgo) {
		p.ThisMonth++
	}
}
