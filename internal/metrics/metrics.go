package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ModeratedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guardbot_moderated_messages_total",
		Help: "The total number of messages removed by automod, by violation",
	}, []string{"violation"})

	PunishmentsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guardbot_punishments_total",
		Help: "The total number of punishments applied, by type",
	}, []string{"type"})

	XPAwards = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guardbot_xp_awards_total",
		Help: "The total number of XP grants, by source",
	}, []string{"source"})

	LevelUps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guardbot_level_ups_total",
		Help: "The total number of level ups",
	})

	DiscordCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guardbot_discord_calls_total",
		Help: "Total number of Discord REST calls issued by the bot",
	}, []string{"action", "status"})

	EventDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "guardbot_event_duration_seconds",
		Help:    "Duration of gateway event processing",
		Buckets: prometheus.DefBuckets,
	}, []string{"event"})
)
