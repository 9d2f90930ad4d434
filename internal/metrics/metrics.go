package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ApplicationsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "intake",
			Name:      "applications_submitted_total",
			Help:      "Applications persisted, by intake flow.",
		},
		[]string{"flow"},
	)
	ResumeUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "intake",
			Name:      "resume_uploads_total",
			Help:      "Resume upload attempts, by outcome.",
		},
		[]string{"outcome"},
	)
	StatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "moderation",
			Name:      "status_changes_total",
			Help:      "Application status updates, by new status.",
		},
		[]string{"status"},
	)
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "http",
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter, by route.",
		},
		[]string{"route"},
	)
	OrphansSwept = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "careers",
			Subsystem: "storage",
			Name:      "orphan_resumes_removed_total",
			Help:      "Uploaded resumes removed because no application referenced them.",
		},
	)
)

var registerOnce sync.Once

func init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ApplicationsSubmitted, ResumeUploads, StatusChanges, RateLimited, OrphansSwept)
	})
}
