package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ruhienterprises/careers-api/internal/metrics"
	"github.com/ruhienterprises/careers-api/internal/service"
	"github.com/sirupsen/logrus"
)

// SweepUsecase removes uploaded resumes that no application points at once
// they are older than maxAge.
type SweepUsecase struct {
	appRepo ApplicationRepositoryInterface
	storage service.StorageServiceInterface
	maxAge  time.Duration
}

func NewSweepUsecase(appRepo ApplicationRepositoryInterface, storage service.StorageServiceInterface, maxAge time.Duration) *SweepUsecase {
	return &SweepUsecase{appRepo: appRepo, storage: storage, maxAge: maxAge}
}

// Sweep returns the number of objects removed.
func (uc *SweepUsecase) Sweep(ctx context.Context, now time.Time) (int, error) {
	objects, err := uc.storage.List(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("list resumes: %w", err)
	}
	urls, err := uc.appRepo.ResumeURLs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list referenced resumes: %w", err)
	}
	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		referenced[u] = struct{}{}
	}

	var orphans []string
	for _, obj := range objects {
		if obj.Name == "" || now.Sub(obj.CreatedAt) < uc.maxAge {
			continue
		}
		if _, ok := referenced[uc.storage.PublicURL(obj.Name)]; ok {
			continue
		}
		orphans = append(orphans, obj.Name)
	}
	if len(orphans) == 0 {
		return 0, nil
	}
	if err := uc.storage.Remove(ctx, orphans); err != nil {
		return 0, fmt.Errorf("remove orphaned resumes: %w", err)
	}
	metrics.OrphansSwept.Add(float64(len(orphans)))
	return len(orphans), nil
}

// Run sweeps every interval until ctx is done.
func (uc *SweepUsecase) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := uc.Sweep(ctx, now)
			if err != nil {
				logrus.WithError(err).Error("orphan resume sweep failed")
				continue
			}
			if removed > 0 {
				logrus.WithField("removed", removed).Info("orphan resumes removed")
			}
		}
	}
}
