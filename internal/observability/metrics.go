package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "friendflow_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "friendflow_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheRequests counts cache lookups by key class and outcome (hit/miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "friendflow_cache_requests_total",
		Help: "Total cache lookups by key class and outcome",
	}, []string{"key", "outcome"})

	// InteractionEvents counts domain events (post/like/comment/follow) by type.
	InteractionEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "friendflow_interaction_events_total",
		Help: "Total domain interaction events by type",
	}, []string{"event_type"})

	// WebSocketConnectionsTotal is the gauge of active feed stream connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "friendflow_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketEventsTotal counts WebSocket events by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "friendflow_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordCacheHit increments the hit counter for the key class.
func RecordCacheHit(key string) {
	CacheRequests.WithLabelValues(key, "hit").Inc()
}

// RecordCacheMiss increments the miss counter for the key class.
func RecordCacheMiss(key string) {
	CacheRequests.WithLabelValues(key, "miss").Inc()
}

// RecordInteraction increments the domain event counter for the event type.
func RecordInteraction(eventType string) {
	InteractionEvents.WithLabelValues(eventType).Inc()
}
