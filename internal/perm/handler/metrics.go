package handler

import (
	"time"

	"permd/internal/perm/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "permd_decisions_total",
		Help: "Permission decisions by result and resolution source.",
	}, []string{"result", "source"})

	checkDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "permd_check_duration_seconds",
		Help:    "Latency of permission checks, store lookups included.",
		Buckets: prometheus.DefBuckets,
	})
)

func observeDecision(decision *model.Decision, elapsed time.Duration) {
	result := "deny"
	if decision.Allowed {
		result = "allow"
	}
	decisionsTotal.WithLabelValues(result, string(decision.Source)).Inc()
	checkDuration.Observe(elapsed.Seconds())
}
