package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	ExpeditionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExpeditionsStarted,
			Help: HelpTextExpeditionsStarted,
		},
		[]string{LabelPlanet},
	)

	ExpeditionsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExpeditionsSettled,
			Help: HelpTextExpeditionsSettled,
		},
		[]string{LabelOutcome},
	)

	ResourcesMined = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResourcesMined,
			Help: HelpTextResourcesMined,
		},
		[]string{LabelResource, LabelAction},
	)

	DangerEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDangerEvents,
			Help: HelpTextDangerEvents,
		},
		[]string{LabelType},
	)

	SettlementValue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSettlementValue,
			Help: HelpTextSettlementValue,
		},
	)
)
