package logging

// 構造化ログのキー。各アプリはこの名前で出力し、ログ基盤側の検索条件を揃える。
const (
	FieldTraceID    = "trace_id"
	FieldEventID    = "event_id"
	FieldError      = "error"
	FieldSrcIP      = "src_ip"
	FieldLatencyMs  = "latency_ms"
	FieldHTTPStatus = "http_status"
	FieldDeviceID   = "device_id" // MaskDeviceIDを通してから出力する
	FieldNodeID     = "node_id"
	FieldAction     = "action"
	FieldRule       = "matched_rule"
	FieldReason     = "reason"
)
