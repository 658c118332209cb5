package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ReservationOperations counts core operations by outcome code ("success" or an error code).
	ReservationOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotel_reservation_operations_total",
			Help: "Reservation operations by name and outcome",
		},
		[]string{"operation", "outcome"},
	)
	ActiveReservations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hotel_active_reservations",
			Help: "Reservations currently holding a room (Reserved or Checked-in)",
		},
	)

	KafkaMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_total",
			Help: "Kafka messages published or consumed",
		},
		[]string{"direction", "topic", "outcome"},
	)
	KafkaMessageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kafka_message_duration_seconds",
			Help:    "Time spent publishing or handling a Kafka message",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"direction", "topic"},
	)

	RoomsAwaitingCleaning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hotel_rooms_awaiting_cleaning",
			Help: "Rooms checked out and not yet cleaned",
		},
	)
)

// NormalizePath collapses numeric path segments so reservation ids do not
// explode label cardinality.
func NormalizePath(p string) string {
	if p == "" || p == "/" {
		return "root"
	}
	segments := strings.Split(p, "/")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if _, err := strconv.ParseInt(segment, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		duration := time.Since(start).Seconds()
		path := NormalizePath(r.URL.Path)
		RequestTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}
