package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Business metric names
const (
	MetricNameExpeditionsStarted = "expeditions_started_total"
	MetricNameExpeditionsSettled = "expeditions_settled_total"
	MetricNameResourcesMined     = "resources_mined_total"
	MetricNameDangerEvents       = "danger_events_total"
	MetricNameSettlementValue    = "settlement_value_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Business metric help text
const (
	HelpTextExpeditionsStarted = "Total number of expeditions started"
	HelpTextExpeditionsSettled = "Total number of expeditions settled by outcome"
	HelpTextResourcesMined     = "Total resource units sampled by mine, collect and explore"
	HelpTextDangerEvents       = "Total number of advisory danger events by type"
	HelpTextSettlementValue    = "Total currency credited by settlements"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelPlanet   = "planet"
	LabelOutcome  = "outcome"
	LabelResource = "resource"
	LabelAction   = "action"
)

// Settlement outcome label values
const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "late_return"
	OutcomeTimedOut = "timed_out"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Log messages
const (
	LogMsgUnexpectedPayload = "Unexpected event payload type"
)
