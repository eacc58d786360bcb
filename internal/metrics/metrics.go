package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodsync_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodsync_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5, 15},
		},
		[]string{"method", "path"},
	)

	// Real-time metrics
	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodsync_connections_active",
			Help: "Registered WebSocket connections",
		},
	)

	RoomsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moodsync_rooms_active",
			Help: "Live rooms",
		},
		[]string{"surface"}, // "room" or "match"
	)

	EventsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodsync_events_handled_total",
			Help: "Inbound events dispatched",
		},
		[]string{"event"},
	)

	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodsync_events_dropped_total",
			Help: "Inbound events discarded before dispatch",
		},
		[]string{"reason"},
	)

	MessagesRelayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodsync_messages_relayed_total",
			Help: "Frames delivered to room members",
		},
		[]string{"surface", "event"},
	)

	DeliveryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodsync_delivery_failures_total",
			Help: "Frames that could not be queued for a member",
		},
		[]string{"surface"},
	)

	CompanionReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodsync_companion_replies_total",
			Help: "Companion messages delivered",
		},
		[]string{"kind"}, // "welcome" or "reply"
	)

	// Business metrics
	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodsync_users_registered_total",
			Help: "Total users registered",
		},
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodsync_logins_total",
			Help: "Login attempts",
		},
		[]string{"result"},
	)

	AssistantResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodsync_assistant_responses_total",
			Help: "Assistant responses by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)
)
