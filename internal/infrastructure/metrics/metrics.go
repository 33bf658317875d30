// Package metrics registers the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger metrics
var (
	AccountsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifeadmin_accounts_opened_total",
		Help: "Total number of accounts opened",
	})

	TransactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifeadmin_transactions_recorded_total",
			Help: "Total number of transactions recorded by kind",
		},
		[]string{"kind"},
	)

	TransactionsAmended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifeadmin_transactions_amended_total",
		Help: "Total number of transactions amended",
	})

	TransactionsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifeadmin_transactions_removed_total",
		Help: "Total number of transactions removed",
	})
)

// Reminder metrics
var (
	RemindersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifeadmin_reminders_completed_total",
		Help: "Total number of reminders marked completed",
	})

	RemindersFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifeadmin_reminders_fired_total",
		Help: "Total number of due reminder notifications published",
	})
)

// Sync metrics
var (
	SyncWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifeadmin_sync_writes_total",
			Help: "Total number of durable writes by collection and result",
		},
		[]string{"collection", "result"},
	)

	SyncQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lifeadmin_sync_queue_depth",
		Help: "Number of write intents waiting to be persisted",
	})

	SyncDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifeadmin_sync_dropped_total",
		Help: "Total number of write intents dropped because the queue was full",
	})
)

// HTTP metrics
var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifeadmin_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lifeadmin_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Auth metrics
var (
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifeadmin_auth_attempts_total",
			Help: "Total number of authentication attempts by result",
		},
		[]string{"result"},
	)
)
