package engine

import (
	"errors"
	"fmt"
)

// センチネルエラー
var (
	// ErrCircuitOpen はCircuit BreakerがOpen状態の場合のエラー
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrInvalidResponse は認可エンジンからのレスポンスが不正な場合のエラー
	ErrInvalidResponse = errors.New("invalid response from authz engine")

	// ErrTraceIDMissing はコンテキストにTrace IDが設定されていない場合のエラー
	ErrTraceIDMissing = errors.New("trace id missing in context")
)

// APIError はHTTP APIエラーを表す
type APIError struct {
	StatusCode int
	Message    string
	Details    *ProblemDetails
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("authz engine error: %d %s - %s", e.StatusCode, e.Details.Title, e.Details.Detail)
	}
	return fmt.Sprintf("authz engine error: %d %s", e.StatusCode, e.Message)
}

// IsServerError はサーバーエラーかどうかを判定する
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ConnectionError は接続エラーを表す
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}
