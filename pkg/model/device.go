// Package model は共通データ構造体を提供する。
package model

import "slices"

// Mode はデバイスのデータ方向モードを表す。
type Mode string

const (
	// ModeRead は受信のみ
	ModeRead Mode = "read"
	// ModeWrite は送信のみ
	ModeWrite Mode = "write"
	// ModeBoth は送受信
	ModeBoth Mode = "both"
)

// Valid はモードが定義済みの値かどうかを返す。
func (m Mode) Valid() bool {
	switch m {
	case ModeRead, ModeWrite, ModeBoth:
		return true
	}
	return false
}

// RoleNetworkAdmin はリソース割り当てを許可されたデバイスロール。
const RoleNetworkAdmin = "network_admin"

// Device は登録済みデバイスを表す。
// 削除はせず、ブラックリスト登録で無効化する。
// Valkeyキー: dev:{DeviceID}
type Device struct {
	ID                string   `json:"id" redis:"id"`                       // デバイス識別子（MACアドレス等）
	SupportedFeatures []string `json:"supported_features" redis:"features"` // 宣言済み機能（JSON配列で保存）
	Quota             int64    `json:"quota" redis:"quota"`                 // 帯域クォータ（バイト）
	Mode              Mode     `json:"mode" redis:"mode"`                   // データ方向モード
	Role              string   `json:"role,omitempty" redis:"role"`         // デバイスロール
	Protocol          string   `json:"protocol,omitempty" redis:"protocol"` // 主プロトコル（任意）
	CreatedAt         int64    `json:"created_at" redis:"created_at"`       // 登録時刻（Unix秒）
	UpdatedAt         int64    `json:"updated_at" redis:"updated_at"`       // 更新時刻（Unix秒）
	Blacklisted       bool     `json:"blacklisted" redis:"-"`               // ブラックリスト状態（blacklistセットから付与）
}

// Supports はfeatureが宣言済み機能に含まれるかを返す。
func (d *Device) Supports(feature string) bool {
	return slices.Contains(d.SupportedFeatures, feature)
}

// Network はデバイスの接続先ネットワークを表す。
// Valkeyキー: net:{NetworkID}
type Network struct {
	ID         string `json:"id" redis:"id"`                   // ネットワーク識別子
	Name       string `json:"name,omitempty" redis:"name"`     // 表示名
	MaxDevices int64  `json:"max_devices" redis:"max_devices"` // 最大接続デバイス数
}

// Session はデバイスの認証済みセッションを表す。
// デバイスごとに最大1件で、再認証時は置き換える。
// Valkeyキー: sess:{DeviceID}
type Session struct {
	DeviceID        string `json:"device_id" redis:"device_id"`               // デバイス識別子
	AuthenticatedAt int64  `json:"authenticated_at" redis:"authenticated_at"` // 認証時刻（Unix秒）
	ExpiresAt       int64  `json:"expires_at" redis:"expires_at"`             // 有効期限（Unix秒）
}

// ActiveAt はnow時点でセッションが有効かどうかを返す。
func (s *Session) ActiveAt(now int64) bool {
	return s != nil && now < s.ExpiresAt
}

// Connection はネットワークへのデバイス接続を表す。
// Valkeyキー: conn:{NetworkID}（フィールド: DeviceID、値: 接続時刻）
type Connection struct {
	NetworkID     string `json:"network_id"`     // ネットワーク識別子
	DeviceID      string `json:"device_id"`      // デバイス識別子
	EstablishedAt int64  `json:"established_at"` // 接続時刻（Unix秒）
}
