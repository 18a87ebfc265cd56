package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
)

func TestProblem(t *testing.T) {
	tests := []struct {
		name      string
		p         *ProblemDetail
		wantCode  int
		wantTitle string
	}{
		{"BadRequest", BadRequest("missing device_id"), http.StatusBadRequest, "Bad Request"},
		{"Unauthorized", Unauthorized("x"), http.StatusUnauthorized, "Unauthorized"},
		{"Forbidden", Forbidden("x"), http.StatusForbidden, "Forbidden"},
		{"NotFound", NotFound("x"), http.StatusNotFound, "Not Found"},
		{"TooManyRequests", TooManyRequests("x"), http.StatusTooManyRequests, "Too Many Requests"},
		{"InternalServerError", InternalServerError("x"), http.StatusInternalServerError, "Internal Server Error"},
		{"任意のステータス", Problem(http.StatusRequestEntityTooLarge, "x"), http.StatusRequestEntityTooLarge, "Request Entity Too Large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Type != "about:blank" {
				t.Errorf("Type = %q, want about:blank", tt.p.Type)
			}
			if tt.p.Status != tt.wantCode || tt.p.Title != tt.wantTitle {
				t.Errorf("Status/Title = %d/%q, want %d/%q", tt.p.Status, tt.p.Title, tt.wantCode, tt.wantTitle)
			}
		})
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantDetail string
	}{
		{"バリデーション", apperr.NewValidationError("action", "required"), http.StatusBadRequest, "action: required"},
		{"テレメトリ不正", fmt.Errorf("%w: metric out of range", apperr.ErrInvalidTelemetry), http.StatusBadRequest, "invalid telemetry: metric out of range"},
		{"ストア停止", apperr.NewStoreError("GET", "k", apperr.ErrStoreUnavailable), http.StatusServiceUnavailable, "store unavailable, retry later"},
		{"デバイスなし", apperr.ErrDeviceNotFound, http.StatusNotFound, apperr.ErrDeviceNotFound.Error()},
		{"アラートなし", apperr.ErrAlertNotFound, http.StatusNotFound, apperr.ErrAlertNotFound.Error()},
		{"レート制限", apperr.ErrRateLimited, http.StatusTooManyRequests, apperr.ErrRateLimited.Error()},
		{"証明書期限切れ", apperr.ErrCertificateExpired, http.StatusUnprocessableEntity, apperr.ErrCertificateExpired.Error()},
		{"未知のエラーは詳細を隠す", errors.New("secret internals"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			if got.Status != tt.wantCode {
				t.Errorf("Status = %d, want %d", got.Status, tt.wantCode)
			}
			if got.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", got.Detail, tt.wantDetail)
			}
		})
	}
}
