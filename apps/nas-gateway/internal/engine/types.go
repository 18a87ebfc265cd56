package engine

// HTTPヘッダ名
const (
	HeaderTraceID     = "X-Trace-ID"
	HeaderContentType = "Content-Type"
)

// Content-Type
const (
	ContentTypeJSON = "application/json"
)

// disconnectRequest は切断リクエストのJSONボディ
type disconnectRequest struct {
	DeviceID  string `json:"device_id"`
	NetworkID string `json:"network_id"`
}

// ProblemDetails はRFC 7807エラーレスポンスを表す
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}
