package model

// Severity は検知結果およびアラートの重大度を表す。
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank は重大度の順位を返す。未知の値は0とする。
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// AtLeast はsがother以上の重大度かどうかを返す。
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// SeverityFromScore は0〜100の重大度スコアをラベルに変換する。
func SeverityFromScore(score float64) Severity {
	switch {
	case score >= 90:
		return SeverityCritical
	case score >= 70:
		return SeverityHigh
	case score >= 40:
		return SeverityMedium
	case score >= 15:
		return SeverityLow
	default:
		return SeverityNone
	}
}

// Telemetry は監視ノードから送信されるテレメトリを表す。
// 署名対象は受信したJSONのバイト列そのもの。
type Telemetry struct {
	DeviceID    string             `json:"device_id"`          // 観測対象デバイス
	Protocol    string             `json:"protocol"`           // プロトコル種別
	AnomalyType string             `json:"anomaly_type"`       // 異常種別
	Metrics     map[string]float64 `json:"metrics"`            // 観測値
	ObservedAt  int64              `json:"observed_at"`        // 観測時刻（Unix秒）
	Evidence    string             `json:"evidence,omitempty"`
}

// AnomalyFinding は検証済みテレメトリから生成された検知結果を表す。
// 一度書き込んだ後は変更しない（訂正は新しい検知結果として追加する）。
// Valkeyキー: finding:{ID}、インデックス: findings:{DeviceID}
type AnomalyFinding struct {
	ID              string             `json:"id"`
	DeviceID        string             `json:"device_id"`
	Protocol        string             `json:"protocol"`
	AnomalyType     string             `json:"anomaly_type"`
	SeverityScore   float64            `json:"severity_score"`    // 0〜100
	Severity        Severity           `json:"severity"`
	Confidence      float64            `json:"confidence"`        // 0〜1
	Evidence        map[string]float64 `json:"evidence"`
	Note            string             `json:"note,omitempty"`
	ReportingNodeID string             `json:"reporting_node_id"`
	ObservedAt      int64              `json:"observed_at"`
	CreatedAt       int64              `json:"created_at"`
	Actionable      bool               `json:"actionable"`        // 信頼度閾値を満たしエスカレーション対象となったか
}
