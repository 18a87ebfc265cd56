// Package notify は管理者へのアラート通知を提供する。
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/sony/gobreaker"
)

// EventAlert はWebhookペイロードのイベント種別。
const EventAlert = "fleetguard.alert"

// Payload はWebhookに送信するJSONボディ。
type Payload struct {
	Event  string       `json:"event"`
	Alert  *model.Alert `json:"alert"`
	SentAt int64        `json:"sent_at"`
}

// WebhookNotifier はWebhookでアラートを通知する。
// 通知先の障害時はCircuit Breakerで呼び出しを遮断する。
type WebhookNotifier struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	url        string
	now        func() time.Time
}

// NewWebhookNotifier は新しいWebhookNotifierを生成する。
func NewWebhookNotifier(cfg *config.Config) *WebhookNotifier {
	dialer := &net.Dialer{Timeout: config.NotifyConnectTimeout}
	httpClient := resty.New().
		SetTimeout(config.NotifyRequestTimeout).
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

	return &WebhookNotifier{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		url:        cfg.AdminWebhookURL,
		now:        time.Now,
	}
}

// Notify はアラートをWebhookに送信する。
// 2xx応答で配送確認とし、それ以外はNotifyErrorを返す。
func (n *WebhookNotifier) Notify(ctx context.Context, alert *model.Alert) error {
	start := time.Now()

	result, err := n.cb.Execute(func() (any, error) {
		resp, err := n.httpClient.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(&Payload{Event: EventAlert, Alert: alert, SentAt: n.now().Unix()}).
			Post(n.url)
		if err != nil {
			return nil, apperr.NewNotifyError(n.url, 0, fmt.Errorf("%w: %v", apperr.ErrNotifierUnavailable, err))
		}

		status := resp.StatusCode()
		// 5xxのみCBの失敗として数える
		if status >= http.StatusInternalServerError {
			return nil, apperr.NewNotifyError(n.url, status, apperr.ErrNotifierUnavailable)
		}
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return apperr.NewNotifyError(n.url, status, nil), nil
		}
		return nil, nil
	})

	latencyMs := time.Since(start).Milliseconds()
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = apperr.NewNotifyError(n.url, 0, fmt.Errorf("%w: circuit open", apperr.ErrNotifierUnavailable))
		}
		slog.Error("webhook notify failed",
			"event_id", "NOTIFY_ERR",
			"alert_id", alert.ID,
			"error", err.Error(),
			"latency_ms", latencyMs,
		)
		return err
	}
	if nerr, ok := result.(*apperr.NotifyError); ok {
		slog.Warn("webhook rejected notification",
			"event_id", "NOTIFY_REJECTED",
			"alert_id", alert.ID,
			"http_status", nerr.StatusCode,
			"latency_ms", latencyMs,
		)
		return nerr
	}

	slog.Debug("webhook notify success",
		"alert_id", alert.ID,
		"latency_ms", latencyMs,
	)
	return nil
}
