package dto

import "github.com/oyaguma3/fleetguard/pkg/model"

// HealthResponse はヘルスチェックレスポンスを表す。
type HealthResponse struct {
	Status string `json:"status"`
}

// TelemetryResponse はテレメトリ受付レスポンスを表す。
type TelemetryResponse struct {
	Accepted          bool                     `json:"accepted"`
	Discarded         bool                     `json:"discarded,omitempty"`
	Findings          []*model.AnomalyFinding  `json:"findings"`
	Escalation        *model.EscalationOutcome `json:"escalation,omitempty"`
	EscalationPending bool                     `json:"escalation_pending,omitempty"`
}

// DeviceStatusResponse はデバイスの状態照会レスポンスを表す。
type DeviceStatusResponse struct {
	Device  *model.Device         `json:"device"`
	State   model.EscalationState `json:"state"`
	Block   *model.Block          `json:"block,omitempty"`
	Warning *model.Warning        `json:"warning,omitempty"`
	Trust   *model.TrustScore     `json:"trust"`
	Usage   int64                 `json:"usage"`

	RateWindow   string        `json:"rate_window"`
	RateCounters []RateCounter `json:"rate_counters"`
}

// RateCounter は現在のウィンドウにおけるアクションごとの試行回数を表す。
type RateCounter struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
	Limit  int    `json:"limit"`
}

// RevokeResponse は証明書シリアル失効レスポンスを表す。
type RevokeResponse struct {
	Serial           string   `json:"serial"`
	DeactivatedNodes []string `json:"deactivated_nodes"`
}
