package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// FunnelMetrics exposes counters/histograms for the booking funnel.
type FunnelMetrics struct {
	transitions     *prometheus.CounterVec
	rejected        *prometheus.CounterVec
	offersPresented *prometheus.CounterVec
	bookings        prometheus.Counter
	eventLatency    *prometheus.HistogramVec
	activeSessions  prometheus.Gauge
}

func NewFunnelMetrics(reg prometheus.Registerer) *FunnelMetrics {
	m := &FunnelMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "packrat",
			Subsystem: "funnel",
			Name:      "transitions_total",
			Help:      "State transitions applied by conversations",
		}, []string{"from", "to", "event"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "packrat",
			Subsystem: "funnel",
			Name:      "rejected_events_total",
			Help:      "Events rejected by conversations",
		}, []string{"state", "event", "reason"}),
		offersPresented: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "packrat",
			Subsystem: "funnel",
			Name:      "offers_presented_total",
			Help:      "Priced offers presented to customers",
		}, []string{"offer_id", "discounted"}),
		bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "packrat",
			Subsystem: "funnel",
			Name:      "bookings_completed_total",
			Help:      "Conversations that reached the confirmation",
		}),
		eventLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "packrat",
			Subsystem: "funnel",
			Name:      "event_duration_seconds",
			Help:      "Time to handle an event including paced replies",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"event"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "packrat",
			Subsystem: "funnel",
			Name:      "active_sessions",
			Help:      "Conversations currently held in memory",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitions, m.rejected, m.offersPresented, m.bookings, m.eventLatency, m.activeSessions)
	return m
}

func (m *FunnelMetrics) ObserveTransition(from, to, event string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to, event).Inc()
}

func (m *FunnelMetrics) ObserveRejected(state, event, reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(state, event, reason).Inc()
}

func (m *FunnelMetrics) ObserveOfferPresented(offerID string, discounted bool) {
	if m == nil {
		return
	}
	m.offersPresented.WithLabelValues(offerID, strconv.FormatBool(discounted)).Inc()
}

func (m *FunnelMetrics) ObserveBookingCompleted() {
	if m == nil {
		return
	}
	m.bookings.Inc()
}

func (m *FunnelMetrics) ObserveEventLatency(event string, seconds float64) {
	if m == nil {
		return
	}
	m.eventLatency.WithLabelValues(event).Observe(seconds)
}

// SetActiveSessions records the size of the session registry.
func (m *FunnelMetrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
