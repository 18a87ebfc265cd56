package model

// アクションカタログの固定アクション。これ以外は機能アクションテーブルで解決する。
const (
	ActionAuthenticate      = "authenticate"
	ActionConnect           = "connect"
	ActionTransmit          = "transmit"
	ActionAllocateResources = "allocate_resources"
)

// RateBucketUnknown はカタログに無いアクションの試行をデバイスごとにまとめて数えるレートカウンタ。
const RateBucketUnknown = "unknown"

// 判定理由コード
const (
	ReasonAllowed             = "allowed"
	ReasonMalformedRequest    = "malformed_request"
	ReasonUnknownAction       = "unknown_action"
	ReasonUnknownDevice       = "unknown_device"
	ReasonBlacklisted         = "blacklisted"
	ReasonBlocked             = "blocked"
	ReasonNoSession           = "no_session"
	ReasonFeatureNotSupported = "feature_not_supported"
	ReasonRateLimited         = "rate_limited"
	ReasonUnknownNetwork      = "unknown_network"
	ReasonNetworkFull         = "network_full"
	ReasonNotConnected        = "not_connected"
	ReasonQuotaExceeded       = "quota_exceeded"
	ReasonLowTrust            = "low_trust"
	ReasonNotAuthorized       = "not_authorized"
	ReasonStoreUnavailable    = "store_unavailable"
)

// 一致ルール名（拒否時）
const (
	RuleBlacklistVeto = "blacklist_veto"
	RuleBlockVeto     = "block_veto"
	RuleDefaultDeny   = "default_deny"
)

// DecisionRequest は認可判定リクエストを表す。
// Contextは呼び出し側が任意に付与する情報で、判定には使用しない。
type DecisionRequest struct {
	DeviceID  string            `json:"device_id"`
	Action    string            `json:"action"`
	NetworkID string            `json:"network_id,omitempty"`
	DataSize  *int64            `json:"data_size,omitempty"`
	Feature   string            `json:"feature,omitempty"`
	Resources *int64            `json:"resources,omitempty"`
	Context   map[string]string `json:"context,omitempty"`
}

// DecisionResult は認可判定結果を表す。
type DecisionResult struct {
	Allowed     bool   `json:"allowed"`
	MatchedRule string `json:"matched_rule"`
	Reason      string `json:"reason"`
}

// Exhausted はレート制限・クォータ・容量超過による拒否かどうかを返す。
// 呼び出し側はバックオフの判断に使う。
func (r *DecisionResult) Exhausted() bool {
	return r.Reason == ReasonRateLimited || r.Reason == ReasonQuotaExceeded || r.Reason == ReasonNetworkFull
}
