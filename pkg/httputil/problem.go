// Package httputil はHTTP関連のユーティリティを提供する。
package httputil

import (
	"errors"
	"net/http"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
)

// ContentType はRFC 7807で定義されたContent-Typeヘッダー値。
const ContentType = "application/problem+json"

// ProblemDetail はRFC 7807準拠のエラーレスポンス。
type ProblemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Problem はstatusに対応する標準タイトルでProblemDetailを生成する。
func Problem(status int, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

func BadRequest(detail string) *ProblemDetail   { return Problem(http.StatusBadRequest, detail) }
func Unauthorized(detail string) *ProblemDetail { return Problem(http.StatusUnauthorized, detail) }
func Forbidden(detail string) *ProblemDetail    { return Problem(http.StatusForbidden, detail) }
func NotFound(detail string) *ProblemDetail     { return Problem(http.StatusNotFound, detail) }
func TooManyRequests(detail string) *ProblemDetail {
	return Problem(http.StatusTooManyRequests, detail)
}
func InternalServerError(detail string) *ProblemDetail {
	return Problem(http.StatusInternalServerError, detail)
}

// errorStatus は共通エラーとHTTPステータスの対応。先頭から順に照合する。
var errorStatus = []struct {
	err    error
	status int
}{
	{apperr.ErrStoreUnavailable, http.StatusServiceUnavailable},
	{apperr.ErrInvalidRequest, http.StatusBadRequest},
	{apperr.ErrInvalidTelemetry, http.StatusBadRequest},
	{apperr.ErrInvalidDeviceID, http.StatusBadRequest},
	{apperr.ErrDeviceNotFound, http.StatusNotFound},
	{apperr.ErrNodeNotFound, http.StatusNotFound},
	{apperr.ErrNetworkNotFound, http.StatusNotFound},
	{apperr.ErrAlertNotFound, http.StatusNotFound},
	{apperr.ErrFindingNotFound, http.StatusNotFound},
	{apperr.ErrBlockNotFound, http.StatusNotFound},
	{apperr.ErrCertificateInvalid, http.StatusUnprocessableEntity},
	{apperr.ErrCertificateExpired, http.StatusUnprocessableEntity},
	{apperr.ErrCertificateRevoked, http.StatusUnprocessableEntity},
	{apperr.ErrRateLimited, http.StatusTooManyRequests},
}

// FromError は共通エラーを対応するProblemDetailに変換する。
// 未知のエラーは500とし、内部情報はDetailに含めない。
func FromError(err error) *ProblemDetail {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return BadRequest(ve.Field + ": " + ve.Message)
	}
	for _, m := range errorStatus {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.status == http.StatusServiceUnavailable {
			return Problem(m.status, "store unavailable, retry later")
		}
		return Problem(m.status, err.Error())
	}
	return InternalServerError("")
}
