package model

// EscalationState はデバイスごとのエスカレーション状態を表す。
// 状態は保存せず、警告・ブロックのレコードから導出する。
type EscalationState string

const (
	StateNormal             EscalationState = "normal"
	StateWarned             EscalationState = "warned"
	StateTemporarilyBlocked EscalationState = "temporarily_blocked"
	StatePermanentlyBlocked EscalationState = "permanently_blocked"
)

// Alert はエスカレーションにより生成された管理者向けアラートを表す。
// Valkeyキー: alert:{ID}、インデックス: alerts, alerts:{DeviceID}
type Alert struct {
	ID               string   `json:"id" redis:"id"`
	Type             string   `json:"type" redis:"type"`
	Severity         Severity `json:"severity" redis:"severity"`                         // low, high, critical
	DeviceID         string   `json:"device_id" redis:"device_id"`
	RelatedFindingID string   `json:"related_finding_id" redis:"related_finding_id"`
	AdminNotified    bool     `json:"admin_notified" redis:"admin_notified"`             // 通知の配送確認済み
	Acknowledged     bool     `json:"acknowledged" redis:"acknowledged"`                 // 管理者が確認済み
	AcknowledgedBy   string   `json:"acknowledged_by,omitempty" redis:"acknowledged_by"`
	CreatedAt        int64    `json:"created_at" redis:"created_at"`
}

// Confirmed は管理者への通知が確認済み（配送確認または管理者の確認操作）かどうかを返す。
func (a *Alert) Confirmed() bool {
	return a.AdminNotified || a.Acknowledged
}

// BlockKind はブロックの種別を表す。
type BlockKind string

const (
	BlockTemporary BlockKind = "temporary"
	BlockPermanent BlockKind = "permanent"
)

// Block はデバイスのブロックを表す。
// 一時ブロックは自動失効し、永続ブロックは管理者の解除操作でのみ解除される。
// Valkeyキー: block:{DeviceID}、履歴: blockhist:{DeviceID}
type Block struct {
	DeviceID  string    `json:"device_id" redis:"device_id"`
	Kind      BlockKind `json:"kind" redis:"kind"`
	Reason    string    `json:"reason" redis:"reason"`
	FindingID string    `json:"finding_id,omitempty" redis:"finding_id"`
	CreatedAt int64     `json:"created_at" redis:"created_at"`
	ExpiresAt int64     `json:"expires_at,omitempty" redis:"expires_at"` // 一時ブロックのみ（Unix秒）
}

// ActiveAt はnow時点でブロックが有効かどうかを返す。
func (b *Block) ActiveAt(now int64) bool {
	if b == nil {
		return false
	}
	if b.Kind == BlockPermanent {
		return true
	}
	return now < b.ExpiresAt
}

// Warning は接続に影響しない警告を表す。
// Valkeyキー: warn:{DeviceID}
type Warning struct {
	DeviceID  string `json:"device_id" redis:"device_id"`
	FindingID string `json:"finding_id" redis:"finding_id"`
	Reason    string `json:"reason" redis:"reason"`
	CreatedAt int64  `json:"created_at" redis:"created_at"`
	ExpiresAt int64  `json:"expires_at" redis:"expires_at"`
}

// TrustScore はデバイスの信頼スコアを表す。
// Valkeyキー: trust:{DeviceID}
type TrustScore struct {
	DeviceID    string  `json:"device_id"`
	Score       float64 `json:"score"`        // 0〜100
	LastUpdated int64   `json:"last_updated"`
}

// エスカレーションで実施した処置
const (
	EscalationNone           = "none"
	EscalationWarn           = "warn"
	EscalationTempBlock      = "temp_block"
	EscalationPermanentBlock = "permanent_block"
)

// EscalationOutcome は1件の検知結果に対するエスカレーション結果を表す。
type EscalationOutcome struct {
	DeviceID        string          `json:"device_id"`
	FindingID       string          `json:"finding_id"`
	PreviousState   EscalationState `json:"previous_state"`
	State           EscalationState `json:"state"`
	Action          string          `json:"action"`
	Warning         *Warning        `json:"warning,omitempty"`
	Block           *Block          `json:"block,omitempty"`
	Alert           *Alert          `json:"alert,omitempty"`
	AlertSuppressed bool            `json:"alert_suppressed,omitempty"` // 重複抑止により未作成
	TrustScore      *TrustScore     `json:"trust_score,omitempty"`
}
