package middleware

import "github.com/prometheus/client_golang/prometheus"

// SessionMetrics counts session lifecycle events. A nil *SessionMetrics is valid
// and records nothing.
type SessionMetrics struct {
	started       prometheus.Counter
	startFailures prometheus.Counter
	saves         prometheus.Counter
	saveFailures  prometheus.Counter
	duration      prometheus.Histogram
}

// NewSessionMetrics creates the session metrics and registers them with reg.
// It panics if registration fails, like prometheus.MustRegister.
func NewSessionMetrics(reg prometheus.Registerer) *SessionMetrics {
	m := &SessionMetrics{
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_sessions_started_total",
			Help: "Sessions started by the HTTP middleware",
		}),
		startFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_session_start_failures_total",
			Help: "Session starts that failed",
		}),
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_session_saves_total",
			Help: "Sessions saved after the handler returned",
		}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_session_save_failures_total",
			Help: "Session saves that failed",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "engine_session_save_duration_seconds",
			Help:    "Time spent persisting sessions",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
	}
	reg.MustRegister(m.started, m.startFailures, m.saves, m.saveFailures, m.duration)
	return m
}

func (m *SessionMetrics) start(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.startFailures.Inc()
		return
	}
	m.started.Inc()
}

func (m *SessionMetrics) save(seconds float64, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(seconds)
	if err != nil {
		m.saveFailures.Inc()
		return
	}
	m.saves.Inc()
}

// Started returns the counter of successful session starts.
func (m *SessionMetrics) Started() prometheus.Counter { return m.started }

// StartFailures returns the counter of failed session starts.
func (m *SessionMetrics) StartFailures() prometheus.Counter { return m.startFailures }

// Saves returns the counter of successful saves.
func (m *SessionMetrics) Saves() prometheus.Counter { return m.saves }

// SaveFailures returns the counter of failed saves.
func (m *SessionMetrics) SaveFailures() prometheus.Counter { return m.saveFailures }
