package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Booking outcomes recorded by the reservation path.
const (
	OutcomeBooked   = "booked"
	OutcomeConflict = "conflict"
	OutcomeHeld     = "held"
	OutcomeError    = "error"
)

// SchedulerMetrics exposes counters/histograms for booking flows.
type SchedulerMetrics struct {
	reservations   *prometheus.CounterVec
	searchOutcomes *prometheus.CounterVec
	doctorsSkipped prometheus.Counter
	searchLatency  prometheus.Histogram
}

func NewSchedulerMetrics(reg prometheus.Registerer) *SchedulerMetrics {
	m := &SchedulerMetrics{
		reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "reservation",
			Name:      "attempts_total",
			Help:      "Reservation attempts by outcome",
		}, []string{"source", "outcome"}),
		searchOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "search",
			Name:      "outcomes_total",
			Help:      "Auto-booking searches by terminal status",
		}, []string{"status"}),
		doctorsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "search",
			Name:      "doctors_skipped_total",
			Help:      "Doctors skipped because their availability could not be parsed",
		}),
		searchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Latency of auto-booking searches",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.reservations, m.searchOutcomes, m.doctorsSkipped, m.searchLatency)
	return m
}

func (m *SchedulerMetrics) ObserveReservation(source, outcome string) {
	if m == nil {
		return
	}
	m.reservations.WithLabelValues(source, outcome).Inc()
}

func (m *SchedulerMetrics) ObserveSearch(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.searchOutcomes.WithLabelValues(status).Inc()
	m.searchLatency.Observe(elapsed.Seconds())
}

func (m *SchedulerMetrics) ObserveDoctorSkipped() {
	if m == nil {
		return
	}
	m.doctorsSkipped.Inc()
}
