package model

import "slices"

// プロトコル種別
const (
	ProtocolWiFi      = "wifi"
	ProtocolBLE       = "ble"
	ProtocolBluetooth = "bluetooth"
	ProtocolZigbee    = "zigbee"
	ProtocolLoRa      = "lora"
	ProtocolLoRaWAN   = "lorawan"
)

// KnownProtocols は監視ノードが宣言可能なプロトコルの一覧。
var KnownProtocols = []string{
	ProtocolWiFi, ProtocolBLE, ProtocolBluetooth, ProtocolZigbee, ProtocolLoRa, ProtocolLoRaWAN,
}

// IsKnownProtocol はpが既知のプロトコル名かどうかを返す。
func IsKnownProtocol(p string) bool {
	return slices.Contains(KnownProtocols, p)
}

// MonitoringNode は登録済み監視ノードを表す。
// 自己申告の名前ではなく公開鍵フィンガープリントをキーとする。
// Valkeyキー: node:{ID}
type MonitoringNode struct {
	ID           string   `json:"id" redis:"id"`                           // 公開鍵フィンガープリント（SHA-256, 16進数）
	Name         string   `json:"name" redis:"name"`                       // 表示名（識別には使用しない）
	Location     string   `json:"location,omitempty" redis:"location"`     // 設置場所
	Capabilities []string `json:"capabilities" redis:"capabilities"`       // 報告可能なプロトコル（JSON配列で保存）
	Issuer       string   `json:"issuer" redis:"issuer"`                   // 証明書発行者
	Serial       string   `json:"serial" redis:"serial"`                   // 証明書シリアル（16進数）
	NotAfter     int64    `json:"not_after" redis:"not_after"`             // 証明書有効期限（Unix秒）
	PublicKey    string   `json:"-" redis:"public_key"`                    // PKIX DER公開鍵（Base64）
	Active       bool     `json:"active" redis:"active"`                   // 新規テレメトリ受付可否
	RegisteredAt int64    `json:"registered_at" redis:"registered_at"`     // 初回登録時刻（Unix秒）
	RenewedAt    int64    `json:"renewed_at,omitempty" redis:"renewed_at"`
}

// CanReport はノードがprotocolを報告可能かどうかを返す。
func (n *MonitoringNode) CanReport(protocol string) bool {
	return slices.Contains(n.Capabilities, protocol)
}
