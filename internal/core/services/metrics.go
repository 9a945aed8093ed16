package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drycleaner_store_operations_total",
			Help: "Store operations by name and result (ok, error).",
		},
		[]string{"operation", "result"},
	)

	storeReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drycleaner_store_reloads_total",
			Help: "Collection fetches by collection and trigger.",
		},
		[]string{"collection", "trigger"},
	)

	storeChangeEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drycleaner_store_change_events_total",
			Help: "Change notifications received from the database.",
		},
		[]string{"table", "op"},
	)

	auditEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drycleaner_audit_entries_total",
			Help: "Audit entries by outcome (written, retried, dropped).",
		},
		[]string{"result"},
	)

	auditQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "drycleaner_audit_queue_depth",
			Help: "Audit entries waiting to be written.",
		},
	)
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
