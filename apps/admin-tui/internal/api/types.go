package api

import "github.com/oyaguma3/fleetguard/pkg/model"

// DeviceInput はデバイス登録・更新の入力を表す。
type DeviceInput struct {
	SupportedFeatures []string   `json:"supported_features"`
	Quota             int64      `json:"quota"`
	Mode              model.Mode `json:"mode"`
	Role              string     `json:"role,omitempty"`
	Protocol          string     `json:"protocol,omitempty"`
}

// NetworkInput はネットワーク登録・更新の入力を表す。
type NetworkInput struct {
	Name       string `json:"name,omitempty"`
	MaxDevices int64  `json:"max_devices"`
}

// DeviceStatus はデバイスの状態照会結果を表す。
type DeviceStatus struct {
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

// RevokeResult は証明書シリアル失効の結果を表す。
type RevokeResult struct {
	Serial           string   `json:"serial"`
	DeactivatedNodes []string `json:"deactivated_nodes"`
}

type revokeRequest struct {
	Serial string `json:"serial"`
}
