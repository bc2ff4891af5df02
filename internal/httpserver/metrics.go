// internal/httpserver/metrics.go
//
// Prometheus counters for the session API, exposed on /metrics.

package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "palabreo",
		Name:      "sessions_started_total",
		Help:      "Sessions created, by selection mode (random/daily).",
	}, []string{"mode"})

	guessesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "palabreo",
		Name:      "guesses_total",
		Help:      "Guesses received, scored vs rejected.",
	}, []string{"result"})

	sessionsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "palabreo",
		Name:      "sessions_finished_total",
		Help:      "Sessions reaching a terminal state, by outcome.",
	}, []string{"outcome"})
)
