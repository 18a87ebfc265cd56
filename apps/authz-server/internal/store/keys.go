package store

// Valkeyキープレフィックス
const (
	KeyPrefixDevice        = "dev:"               // デバイス
	KeyDeviceIndex         = "devices"            // デバイス一覧
	KeyBlacklist           = "blacklist"          // ブラックリスト
	KeyPrefixAuthFailure   = "authfail:"          // 認証失敗カウンタ
	KeyPrefixSession       = "sess:"              // 認証済みセッション
	KeyPrefixNetwork       = "net:"               // ネットワーク
	KeyPrefixConnection    = "conn:"              // ネットワークごとの接続
	KeyPrefixDeviceNetwork = "devnet:"            // デバイスの接続先ネットワーク（逆引き）
	KeyPrefixUsage         = "bw:"                // 帯域使用量
	KeyPrefixNode          = "node:"              // 監視ノード
	KeyNodeIndex           = "nodes"              // 監視ノード一覧
	KeyRevokedSerials      = "revoked_serials"    // 失効済み証明書シリアル
	KeyPrefixFinding       = "finding:"           // 検知結果
	KeyPrefixFindingIndex  = "findings:"          // デバイスごとの検知結果履歴
	KeyPrefixFalsePositive = "fp:"                // 誤検知フィンガープリント
	KeyEscalationPending   = "escalation:pending" // エスカレーション処理待ちの検知結果
	KeyPrefixAlert         = "alert:"             // アラート
	KeyAlertIndex          = "alerts"             // アラート履歴（全体）
	KeyPrefixAlertIndex    = "alerts:"            // デバイスごとのアラート履歴
	KeyPrefixAlertDedup    = "alertdedup:"        // アラート重複抑止
	KeyPrefixWarning       = "warn:"              // 警告
	KeyPrefixBlock         = "block:"             // ブロック
	KeyBlockIndex          = "blocks"             // ブロック一覧
	KeyPrefixBlockHistory  = "blockhist:"         // ブロック履歴
	KeyPrefixTrust         = "trust:"             // 信頼スコア
	KeyPrefixRateCounter   = "rl:"                // レート制限カウンタ
)

// RateCounterKey はレート制限カウンタのキーを返す。
func RateCounterKey(subject, action string) string {
	return KeyPrefixRateCounter + subject + ":" + action
}

// FalsePositiveKey は誤検知フィンガープリントのキーを返す。
func FalsePositiveKey(anomalyType, deviceID string) string {
	return KeyPrefixFalsePositive + anomalyType + ":" + deviceID
}

// AlertDedupKey はアラート重複抑止のキーを返す。
func AlertDedupKey(alertType, deviceID string) string {
	return KeyPrefixAlertDedup + alertType + ":" + deviceID
}
