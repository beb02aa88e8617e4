package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the lottery server.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	Logins         *prometheus.CounterVec
	RoundsOpened   prometheus.Counter
	RoundsClosed   prometheus.Counter
	Winners        prometheus.Counter
	DrawsSubmitted prometheus.Counter
}

// New creates and registers all collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lottery_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		RoundsOpened: f.NewCounter(prometheus.CounterOpts{
			Name: "lottery_rounds_opened_total",
			Help: "Master draws created",
		}),
		RoundsClosed: f.NewCounter(prometheus.CounterOpts{
			Name: "lottery_rounds_closed_total",
			Help: "Rounds settled",
		}),
		Winners: f.NewCounter(prometheus.CounterOpts{
			Name: "lottery_winners_total",
			Help: "Participant draws that matched the master draw",
		}),
		DrawsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "lottery_draws_submitted_total",
			Help: "Participant draws accepted",
		}),
	}
}

// ObserveLogin counts a login attempt outcome.
func (m *Metrics) ObserveLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

// IncRoundsOpened counts a new master draw.
func (m *Metrics) IncRoundsOpened() {
	if m == nil {
		return
	}
	m.RoundsOpened.Inc()
}

// ObserveRoundClosed counts a settled round and its winners.
func (m *Metrics) ObserveRoundClosed(winners int) {
	if m == nil {
		return
	}
	m.RoundsClosed.Inc()
	m.Winners.Add(float64(winners))
}

// IncDrawsSubmitted counts an accepted participant draw.
func (m *Metrics) IncDrawsSubmitted() {
	if m == nil {
		return
	}
	m.DrawsSubmitted.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
