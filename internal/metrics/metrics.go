package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service-level metrics, exposed through the /metrics endpoint.
var (
	PollCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corner_alert_poll_cycles_total",
		Help: "Number of completed scoring poll cycles.",
	})

	FeedErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corner_alert_feed_errors_total",
		Help: "Number of transient feed errors skipped by the polling loop.",
	})

	AlertsFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corner_alert_alerts_fired_total",
		Help: "Number of alerts that passed the timing gate.",
	})

	DispatchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corner_alert_dispatch_failures_total",
		Help: "Number of notification dispatch failures (never retried into the same window).",
	})

	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corner_alert_persist_failures_total",
		Help: "Number of alert-record insert failures queued for retry.",
	})

	TrackedMatches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "corner_alert_tracked_matches",
		Help: "Number of matches currently being monitored.",
	})

	OutcomesResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corner_alert_outcomes_resolved_total",
		Help: "Number of alert outcomes resolved, by result.",
	}, []string{"result"})
)
