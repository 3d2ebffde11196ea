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

// Expansion metric names
const (
	MetricNameBOMExpansions        = "bom_expansions_total"
	MetricNameBOMExpansionErrors   = "bom_expansion_errors_total"
	MetricNameBOMUnresolved        = "bom_unresolved_ingredients_total"
	MetricNameBOMExpansionDuration = "bom_expansion_duration_seconds"
	MetricNameBOMBatchSize         = "bom_batch_size"
)

// Catalog metric names
const (
	MetricNameCatalogWrites      = "catalog_writes_total"
	MetricNameGraphCacheRequests = "graph_cache_requests_total"
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

// Expansion metric help text
const (
	HelpTextBOMExpansions        = "Total number of bill-of-materials expansions by operation"
	HelpTextBOMExpansionErrors   = "Total number of failed expansions by reason"
	HelpTextBOMUnresolved        = "Total number of dangling ingredient references skipped during expansion"
	HelpTextBOMExpansionDuration = "Expansion latency in seconds by operation"
	HelpTextBOMBatchSize         = "Number of top-level items per multi-item expansion"
)

// Catalog metric help text
const (
	HelpTextCatalogWrites      = "Total number of catalog mutations by operation"
	HelpTextGraphCacheRequests = "Recipe graph cache lookups by result"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelOperation = "operation"
	LabelReason    = "reason"
	LabelResult    = "result"
)

// Label values
const (
	ResultHit  = "hit"
	ResultMiss = "miss"

	ReasonNotFound = "not_found"
	ReasonDangling = "dangling"
	ReasonCyclic   = "cyclic"
	ReasonTooDeep  = "too_deep"
	ReasonInvalid  = "invalid"
	ReasonCanceled = "canceled"
	ReasonStore    = "store"
)

// ============================================================================
// Buckets
// ============================================================================

var (
	// HTTPLatencyBuckets covers fast API calls up to slow batch expansions
	HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

	// ExpansionLatencyBuckets is tuned for in-process graph walks
	ExpansionLatencyBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}

	// BatchSizeBuckets covers shopping lists from one to a few hundred lines
	BatchSizeBuckets = []float64{1, 2, 5, 10, 25, 50, 100, 250}
)
