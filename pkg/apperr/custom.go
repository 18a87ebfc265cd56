package apperr

import (
	"fmt"
	"strings"
)

// ValidationError は入力項目単位の検証エラー。errors.IsでErrInvalidRequestに一致する。
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

// NotifyError はWebhook通知先との通信エラー。StatusCodeは応答がない場合0。
type NotifyError struct {
	Endpoint   string
	StatusCode int
	Cause      error
}

func NewNotifyError(endpoint string, statusCode int, cause error) *NotifyError {
	return &NotifyError{Endpoint: endpoint, StatusCode: statusCode, Cause: cause}
}

func (e *NotifyError) Error() string {
	var b strings.Builder
	b.WriteString("notify " + e.Endpoint)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *NotifyError) Unwrap() error { return e.Cause }

// StoreError はValkeyコマンドの失敗。Operationにはコマンド名を入れる。
type StoreError struct {
	Operation string
	Key       string
	Cause     error
}

func NewStoreError(operation, key string, cause error) *StoreError {
	return &StoreError{Operation: operation, Key: key, Cause: cause}
}

func (e *StoreError) Error() string {
	msg := "valkey " + e.Operation
	if e.Key != "" {
		msg += " " + e.Key
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error { return e.Cause }
