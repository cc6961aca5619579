package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RoundsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_rounds_started_total",
			Help: "Rounds started, by game kind",
		},
		[]string{"kind"},
	)
	RoundsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_rounds_finished_total",
			Help: "Rounds that ended, by game kind and outcome (completed or abandoned)",
		},
		[]string{"kind", "outcome"},
	)
	ActiveRounds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "arcade_active_rounds",
			Help: "Rounds currently held in memory",
		},
	)
	HandoffFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_handoff_failures_total",
			Help: "Completion handoff steps that failed",
		},
		[]string{"step"},
	)
	FeedGatewayFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_feed_gateway_failures_total",
			Help: "Community feed gateway calls that failed and were absorbed",
		},
		[]string{"op"},
	)
	FeedReconciled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "arcade_feed_reconciled_posts_total",
			Help: "Cached like counts corrected by reconciliation",
		},
	)
)

func init() {
	prometheus.MustRegister(RoundsStarted)
	prometheus.MustRegister(RoundsFinished)
	prometheus.MustRegister(ActiveRounds)
	prometheus.MustRegister(HandoffFailures)
	prometheus.MustRegister(FeedGatewayFailures)
	prometheus.MustRegister(FeedReconciled)
}
