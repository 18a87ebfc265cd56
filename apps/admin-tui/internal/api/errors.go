package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/oyaguma3/fleetguard/pkg/httputil"
)

// ErrConnection はauthz-serverに接続できない場合のエラー
var ErrConnection = errors.New("admin api connection failed")

// APIError は管理APIのエラーレスポンスを表す。
type APIError struct {
	StatusCode int
	Problem    *httputil.ProblemDetail
}

// Error はエラーメッセージを返す。
func (e *APIError) Error() string {
	if e.Problem != nil {
		if e.Problem.Detail != "" {
			return fmt.Sprintf("admin api error: status=%d, %s: %s", e.StatusCode, e.Problem.Title, e.Problem.Detail)
		}
		return fmt.Sprintf("admin api error: status=%d, %s", e.StatusCode, e.Problem.Title)
	}
	return fmt.Sprintf("admin api error: status=%d", e.StatusCode)
}

// IsNotFound はerrが404応答かどうかを返す。
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized はerrが認証エラー応答かどうかを返す。
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}
