package config

import "time"

// Valkey接続設定
const (
	ValkeyConnectTimeout = 3 * time.Second
	ValkeyCommandTimeout = 2 * time.Second
	ValkeyPoolSize       = 10
)

// 管理者通知（Webhook）接続設定
const (
	NotifyConnectTimeout = 2 * time.Second
	NotifyRequestTimeout = 5 * time.Second
)

// Circuit Breaker設定
const (
	CBName             = "admin-webhook"
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// エスカレーション上下限
const (
	MaxWarningTTL     = 7 * 24 * time.Hour
	TempBlockMin      = time.Hour
	TempBlockMax      = 24 * time.Hour
	AuthFailureTTL    = 24 * time.Hour
	FindingHistoryMax = 500
)

// エスカレーション再処理
const (
	EscalationRedriveInterval = 30 * time.Second
	EscalationRedriveDelay    = 30 * time.Second // 受付処理中の検知結果を拾わないための猶予
	EscalationRedriveBatch    = 100
)

// 信頼スコア
const (
	TrustScoreMin = 0.0
	TrustScoreMax = 100.0
	TrustMaxDelta = 20.0
)

// HTTP入力上限
const (
	MaxTelemetryBytes   = 64 * 1024
	MaxCertificateBytes = 64 * 1024
)

// サーバーシャットダウン設定
const (
	ShutdownTimeout = 5 * time.Second
)
