package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Standard Tracing Fields (Context level)
// These fields are propagated through the call chain
// ============================================

const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldRunID is the ingestion pipeline run ID
	FieldRunID = "run_id"

	// FieldVideoID is the source platform video ID
	FieldVideoID = "video_id"

	// FieldReviewID is the pending review ID
	FieldReviewID = "review_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldSource is the ingestion source identifier (manual, discovery)
	FieldSource = "source"
)

// ============================================
// Standard Metric Fields (Entry level)
// These fields are used for aggregation and alerting
// ============================================

const (
	// FieldStep is the pipeline step name
	FieldStep = "step"

	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is a payload size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"
)
