package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "domain_detection"

// Исходы обработки запроса.
const (
	OutcomeOK                  = "ok"
	OutcomeDecodeError         = "decode_error"
	OutcomeClassificationError = "classification_error"
)

var (
	// RequestsTotal — обработанные запросы по исходу.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Processed requests by outcome.",
	}, []string{"outcome"})

	// RequestDuration — время от получения до ack.
	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Time from delivery to acknowledgement.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	})

	// RequestSize — размер входящего payload.
	RequestSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_size_bytes",
		Help:      "Inbound payload size.",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
	})

	// ResponseSize — размер ответа.
	ResponseSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "response_size_bytes",
		Help:      "Outbound payload size.",
		Buckets:   prometheus.LinearBuckets(16, 16, 8),
	})

	// PublishFailures — ответы, которые не удалось опубликовать.
	PublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "publish_failures_total",
		Help:      "Responses that could not be published.",
	})

	// BrokerConnected — 1, пока идёт потребление из очереди.
	BrokerConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "broker_connected",
		Help:      "1 while the worker is consuming from the broker.",
	})

	// ConnectionFailures — неудачные или оборванные сессии с брокером.
	ConnectionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connection_failures_total",
		Help:      "Broker sessions that failed or were dropped.",
	})
)
