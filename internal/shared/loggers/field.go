package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldWebstrateID = "webstrate_id"
	FieldUserID      = "user_id"
	FieldEventKind   = "event_kind"
	FieldPartitionId = "partition_id"
	FieldQueryType   = "query_type"
)
