// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// 認可関連エラー
var (
	// ErrDeviceNotFound はデバイスが登録されていない場合のエラー
	ErrDeviceNotFound = errors.New("device not found")
	// ErrUnknownAction はアクションカタログに存在しないアクションのエラー
	ErrUnknownAction = errors.New("unknown action")
	// ErrDenied は認可判定による拒否エラー
	ErrDenied = errors.New("authorization denied")
	// ErrRateLimited はレート制限超過エラー
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrQuotaExceeded は帯域クォータ超過エラー
	ErrQuotaExceeded = errors.New("quota exceeded")
)

// セッション・接続関連エラー
var (
	// ErrSessionNotFound はセッションが見つからない場合のエラー
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired はセッション有効期限切れエラー
	ErrSessionExpired = errors.New("session expired")
	// ErrNetworkNotFound はネットワークが見つからない場合のエラー
	ErrNetworkNotFound = errors.New("network not found")
	// ErrNotConnected はデバイスが接続されていない場合のエラー
	ErrNotConnected = errors.New("device not connected")
)

// 監視ノード関連エラー
var (
	// ErrNodeNotFound は監視ノードが登録されていない場合のエラー
	ErrNodeNotFound = errors.New("monitoring node not found")
	// ErrNodeInactive は監視ノードが無効化されている場合のエラー
	ErrNodeInactive = errors.New("monitoring node inactive")
	// ErrCertificateInvalid は証明書検証失敗エラー
	ErrCertificateInvalid = errors.New("certificate invalid")
	// ErrCertificateExpired は証明書有効期限切れエラー
	ErrCertificateExpired = errors.New("certificate expired")
	// ErrCertificateRevoked は失効済み証明書エラー
	ErrCertificateRevoked = errors.New("certificate revoked")
	// ErrSignatureInvalid はテレメトリ署名不一致エラー
	ErrSignatureInvalid = errors.New("signature invalid")
)

// 異常検知・エスカレーション関連エラー
var (
	// ErrFindingNotFound は検知結果が見つからない場合のエラー
	ErrFindingNotFound = errors.New("finding not found")
	// ErrAlertNotFound はアラートが見つからない場合のエラー
	ErrAlertNotFound = errors.New("alert not found")
	// ErrBlockNotFound はブロックが見つからない場合のエラー
	ErrBlockNotFound = errors.New("block not found")
)

// インフラ関連エラー
var (
	// ErrStoreUnavailable はValkey接続不可エラー（呼び出し側で再試行可能）
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrValkeyCommand はValkeyコマンド実行エラー
	ErrValkeyCommand = errors.New("valkey command error")
	// ErrNotifierUnavailable は管理者通知先への送信不可エラー
	ErrNotifierUnavailable = errors.New("notifier unavailable")
	// ErrEngineUnavailable は認可エンジンAPIへの送信不可エラー
	ErrEngineUnavailable = errors.New("engine unavailable")
)

// RADIUS関連エラー
var (
	// ErrClientNotFound はRADIUSクライアントが見つからない場合のエラー
	ErrClientNotFound = errors.New("RADIUS client not found")
	// ErrInvalidAuthenticator は不正なAuthenticatorエラー
	ErrInvalidAuthenticator = errors.New("invalid authenticator")
)

// バリデーション関連エラー
var (
	// ErrInvalidRequest は不正なリクエストエラー
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidDeviceID は不正なデバイスID形式エラー
	ErrInvalidDeviceID = errors.New("invalid device ID format")
	// ErrInvalidTelemetry は不正なテレメトリエラー
	ErrInvalidTelemetry = errors.New("invalid telemetry")
)
