package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MonitorsCreatedTotal counts the monitors created via the registry.
	MonitorsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_registry_monitors_created_total",
		Help: "Total number of monitors created.",
	}, []string{"name"})

	// MonitorsDeletedTotal counts the monitors deleted via the registry.
	MonitorsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitor_registry_monitors_deleted_total",
		Help: "Total number of monitors deleted.",
	})

	// ValidationErrorsTotal counts monitor field validation failures.
	ValidationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_registry_validation_errors_total",
		Help: "Total number of rejected monitor mutations, by failing field.",
	}, []string{"field"})

	// RemoteSyncErrorsTotal counts failed remote store operations.
	RemoteSyncErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_registry_remote_sync_errors_total",
		Help: "Total number of failed remote store operations, by operation.",
	}, []string{"operation"})

	// RefreshSkippedRecordsTotal counts remote records dropped during
	// refresh because they failed validation.
	RefreshSkippedRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitor_registry_refresh_skipped_records_total",
		Help: "Total number of invalid remote records skipped during refresh.",
	})
)
