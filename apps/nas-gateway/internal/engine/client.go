// Package engine は認可エンジン（authz-server）のHTTPクライアントを提供する。
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/config"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/sony/gobreaker"
)

// Client は認可エンジンクライアントの実装
type Client struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	baseURL    string
}

// NewClient は新しい認可エンジンクライアントを生成する。
func NewClient(cfg *config.Config) *Client {
	dialer := &net.Dialer{Timeout: config.EngineConnectTimeout}
	httpClient := resty.New().
		SetTimeout(config.EngineRequestTimeout).
		SetTransport(&http.Transport{DialContext: dialer.DialContext})

	cbSettings := gobreaker.Settings{
		Name:        config.CBName,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					"event_id", "CB_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					"event_id", "CB_HALF_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					"event_id", "CB_CLOSE",
					"cb_name", name,
				)
			}
		},
	}

	return &Client{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		baseURL:    strings.TrimRight(cfg.EngineURL, "/"),
	}
}

// Decide は認可判定を要求する。
// 拒否はエラーではなくAllowed=falseの結果として返す。
func (c *Client) Decide(ctx context.Context, req *model.DecisionRequest) (*model.DecisionResult, error) {
	body, err := c.post(ctx, "/api/v1/decisions", req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var res model.DecisionResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}
	if res.Reason == "" {
		return nil, fmt.Errorf("%w: empty reason", ErrInvalidResponse)
	}
	return &res, nil
}

// Disconnect はデバイスの接続解除を通知する。
func (c *Client) Disconnect(ctx context.Context, deviceID, networkID string) error {
	_, err := c.post(ctx, "/api/v1/disconnect", &disconnectRequest{DeviceID: deviceID, NetworkID: networkID}, http.StatusNoContent)
	return err
}

// post はCircuit Breaker経由でJSONをPOSTし、期待したステータスのボディを返す。
func (c *Client) post(ctx context.Context, path string, payload any, wantStatus int) ([]byte, error) {
	traceID, ok := ctx.Value(traceIDKey{}).(string)
	if !ok || traceID == "" {
		return nil, ErrTraceIDMissing
	}

	start := time.Now()

	result, err := c.cb.Execute(func() (any, error) {
		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderTraceID, traceID).
			SetHeader(HeaderContentType, ContentTypeJSON).
			SetBody(payload).
			Post(c.baseURL + path)

		if err != nil {
			return nil, &ConnectionError{Cause: err}
		}

		latencyMs := time.Since(start).Milliseconds()
		statusCode := resp.StatusCode()

		// CB失敗判定対象: 5xx（501除く）
		if statusCode >= 500 && statusCode != 501 {
			apiErr := c.parseAPIError(statusCode, resp.Body())
			slog.Error("authz engine error",
				"event_id", "ENGINE_API_ERR",
				"trace_id", traceID,
				"error", apiErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			return nil, apiErr
		}

		// CB失敗判定対象外のエラー
		if statusCode != wantStatus {
			apiErr := c.parseAPIError(statusCode, resp.Body())
			slog.Error("authz engine error",
				"event_id", "ENGINE_API_ERR",
				"trace_id", traceID,
				"error", apiErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			return apiErr, nil
		}

		slog.Debug("authz engine success",
			"trace_id", traceID,
			"path", path,
			"latency_ms", latencyMs,
		)
		return resp.Body(), nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", apperr.ErrEngineUnavailable, ErrCircuitOpen)
		}
		return nil, fmt.Errorf("%w: %w", apperr.ErrEngineUnavailable, err)
	}

	if apiErr, ok := result.(*APIError); ok {
		return nil, apiErr
	}
	body, ok := result.([]byte)
	if !ok {
		return nil, ErrInvalidResponse
	}
	return body, nil
}

// parseAPIError はHTTPエラーレスポンスをAPIErrorに変換する。
func (c *Client) parseAPIError(statusCode int, body []byte) *APIError {
	var details ProblemDetails
	if err := json.Unmarshal(body, &details); err == nil && details.Title != "" {
		return &APIError{
			StatusCode: statusCode,
			Message:    details.Title,
			Details:    &details,
		}
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}

// traceIDKey はコンテキストからTrace IDを取得するためのキー型
type traceIDKey struct{}

// WithTraceID はコンテキストにTrace IDを設定する。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}
