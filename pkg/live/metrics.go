package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instruments for one Server.
type metrics struct {
	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
	eventsTotal    *prometheus.CounterVec
	eventDuration  prometheus.Histogram
	patchesSent    prometheus.Counter
	patchBytes     prometheus.Counter
	wsErrors       *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tide",
			Name:      "active_sessions",
			Help:      "Number of active live sessions",
		}),

		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tide",
			Name:      "sessions_total",
			Help:      "Total number of live sessions created",
		}),

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tide",
			Name:      "events_total",
			Help:      "Total number of client events processed",
		}, []string{"status"}),

		eventDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tide",
			Name:      "event_duration_seconds",
			Help:      "Event handling duration including flush",
			Buckets:   prometheus.DefBuckets,
		}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tide",
			Name:      "patches_sent_total",
			Help:      "Total number of patches streamed to clients",
		}),

		patchBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tide",
			Name:      "patch_bytes_total",
			Help:      "Total patch frame payload bytes sent",
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tide",
			Name:      "websocket_errors_total",
			Help:      "Total WebSocket errors by type",
		}, []string{"type"}),
	}
}
