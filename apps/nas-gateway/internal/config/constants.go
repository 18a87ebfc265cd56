package config

import "time"

// Valkey接続設定
const (
	ValkeyConnectTimeout = 3 * time.Second
	ValkeyCommandTimeout = 2 * time.Second
	ValkeyPoolSize       = 10
)

// 認可エンジン接続設定
const (
	EngineConnectTimeout = 2 * time.Second
	EngineRequestTimeout = 5 * time.Second
)

// Circuit Breaker設定
const (
	CBName             = "authz-engine"
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// アカウンティングセッション管理
const (
	AcctSessionTTL = 24 * time.Hour
)

// サーバーシャットダウン設定
const (
	ShutdownTimeout = 5 * time.Second
)
