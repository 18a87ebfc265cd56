// Package dto はリクエスト・レスポンスのデータ転送オブジェクトを定義する。
package dto

import "github.com/oyaguma3/fleetguard/pkg/model"

// DisconnectRequest は切断リクエストを表す。
type DisconnectRequest struct {
	DeviceID  string `json:"device_id" binding:"required"`
	NetworkID string `json:"network_id" binding:"required"`
}

// DeviceRequest はデバイス登録・更新リクエストを表す。
type DeviceRequest struct {
	SupportedFeatures []string   `json:"supported_features"`
	Quota             int64      `json:"quota" binding:"gte=0"`
	Mode              model.Mode `json:"mode" binding:"required"`
	Role              string     `json:"role,omitempty"`
	Protocol          string     `json:"protocol,omitempty"`
}

// NetworkRequest はネットワーク登録・更新リクエストを表す。
type NetworkRequest struct {
	Name       string `json:"name,omitempty"`
	MaxDevices int64  `json:"max_devices" binding:"gte=0"`
}

// RevokeRequest は証明書シリアル失効リクエストを表す。
type RevokeRequest struct {
	Serial string `json:"serial" binding:"required"`
}
