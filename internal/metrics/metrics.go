package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenant_transitions_total",
			Help: "Successful tenant lifecycle transitions by action.",
		},
		[]string{"action"},
	)

	TransitionConflictsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tenant_transition_conflicts_total",
		Help: "Transitions rejected by the optimistic version check.",
	})

	AuditEntriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_entries_total",
		Help: "Audit ledger entries written.",
	})

	HistoryAppendsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "edit_history_appends_total",
		Help: "Edit-history entries appended.",
	})

	NotificationFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Lifecycle notifications that failed to deliver.",
	})

	NotificationDropsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_drops_total",
		Help: "Lifecycle notifications dropped because the queue was full.",
	})
)

// Init registers all engine metrics with the default registry.
func Init() {
	prometheus.MustRegister(
		TransitionsTotal,
		TransitionConflictsTotal,
		AuditEntriesTotal,
		HistoryAppendsTotal,
		NotificationFailuresTotal,
		NotificationDropsTotal,
	)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
