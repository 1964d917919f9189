package session

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts rounds and guesses. A nil *Metrics records nothing.
type Metrics struct {
	roundsStarted  *prometheus.CounterVec
	guesses        *prometheus.CounterVec
	roundsFinished *prometheus.CounterVec
}

// NewMetrics registers the counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		roundsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hangman",
			Name:      "rounds_started_total",
			Help:      "Rounds started, by language and word source outcome.",
		}, []string{"language", "source"}),
		guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hangman",
			Name:      "guesses_total",
			Help:      "Guesses processed, by outcome (hit, miss, rejected).",
		}, []string{"outcome"}),
		roundsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hangman",
			Name:      "rounds_finished_total",
			Help:      "Rounds that reached a terminal state, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.roundsStarted, m.guesses, m.roundsFinished)
	return m
}

func (m *Metrics) roundStarted(lang string, sourceFailed bool) {
	if m == nil {
		return
	}
	src := "ok"
	if sourceFailed {
		src = "fallback"
	}
	m.roundsStarted.WithLabelValues(lang, src).Inc()
}

func (m *Metrics) guess(outcome string) {
	if m == nil {
		return
	}
	m.guesses.WithLabelValues(outcome).Inc()
}

func (m *Metrics) roundFinished(result string) {
	if m == nil {
		return
	}
	m.roundsFinished.WithLabelValues(result).Inc()
}
