package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	HouseholdsRegistered prometheus.Counter
	TanksRegistered      prometheus.Counter
	RefillsRecorded      prometheus.Counter
	RefillLiters         prometheus.Counter
	ReportsCreated       prometheus.Counter
	ReportsResolved      prometheus.Counter
	DashboardBuilds      prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		HouseholdsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aguasur_households_registered_total",
			Help: "Total number of households registered in the system",
		}),
		TanksRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aguasur_tanks_registered_total",
			Help: "Total number of water tanks registered in the system",
		}),
		RefillsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aguasur_refills_recorded_total",
			Help: "Total number of tank refill events recorded",
		}),
		RefillLiters: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aguasur_refill_liters_total",
			Help: "Total liters of water supplied through recorded refills",
		}),
		ReportsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aguasur_reports_created_total",
			Help: "Total number of incident reports created",
		}),
		ReportsResolved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aguasur_reports_resolved_total",
			Help: "Total number of incident reports resolved or closed",
		}),
		DashboardBuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aguasur_dashboard_builds_total",
			Help: "Total number of dashboard aggregations served",
		}),
	}
}
