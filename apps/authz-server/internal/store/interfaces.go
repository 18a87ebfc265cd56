package store

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_store.go -package=mocks

import (
	"context"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/model"
)

// DeviceStore はデバイスおよびブラックリストの操作を定義する。
type DeviceStore interface {
	// GetDevice はデバイスを取得する。
	// 未登録の場合はapperr.ErrDeviceNotFoundを返す。
	GetDevice(ctx context.Context, deviceID string) (*model.Device, error)
	// PutDevice はデバイスを登録または更新する。
	PutDevice(ctx context.Context, d *model.Device) error
	// ListDevices は登録済みデバイスIDの一覧を返す。
	ListDevices(ctx context.Context) ([]string, error)
	// IsBlacklisted はデバイスがブラックリストに登録されているかを返す。
	IsBlacklisted(ctx context.Context, deviceID string) (bool, error)
	// SetBlacklisted はブラックリスト状態を設定する。
	SetBlacklisted(ctx context.Context, deviceID string, on bool) error
	// IncrAuthFailure は未登録デバイスの認証失敗回数を加算する。
	IncrAuthFailure(ctx context.Context, deviceID string, ttl time.Duration) (int64, error)
}

// SessionStore は認証済みセッションの操作を定義する。
type SessionStore interface {
	// GetSession は有効なセッションを取得する。
	// 存在しない、またはnow時点で失効している場合はnil, nilを返す。
	GetSession(ctx context.Context, deviceID string, now time.Time) (*model.Session, error)
	// CreateSession はセッションを作成する。既存セッションは置き換える。
	CreateSession(ctx context.Context, deviceID string, now time.Time, ttl time.Duration) (*model.Session, error)
	// RevokeSession はセッションを削除する。
	RevokeSession(ctx context.Context, deviceID string) error
}

// NetworkStore はネットワークと接続の操作を定義する。
type NetworkStore interface {
	// GetNetwork はネットワークを取得する。
	// 未登録の場合はapperr.ErrNetworkNotFoundを返す。
	GetNetwork(ctx context.Context, networkID string) (*model.Network, error)
	// PutNetwork はネットワークを登録または更新する。
	PutNetwork(ctx context.Context, n *model.Network) error
	// TryConnect は接続数がmaxDevices未満の場合に限り接続を追加する。
	// 既に接続済みの場合はtrueを返す。
	TryConnect(ctx context.Context, networkID, deviceID string, maxDevices int64, now time.Time) (bool, error)
	// Disconnect は接続を削除する。
	Disconnect(ctx context.Context, networkID, deviceID string) error
	// IsConnected はデバイスがネットワークに接続中かを返す。
	IsConnected(ctx context.Context, networkID, deviceID string) (bool, error)
	// DisconnectAll はデバイスのすべての接続を削除し、切断したネットワークIDを返す。
	DisconnectAll(ctx context.Context, deviceID string) ([]string, error)
	// ConnectionCount はネットワークの接続数を返す。
	ConnectionCount(ctx context.Context, networkID string) (int64, error)
}

// UsageStore は帯域使用量の操作を定義する。
type UsageStore interface {
	// TryConsume は使用量+sizeがquota以下の場合に限りsizeを加算する。
	// 加算後（拒否時は現在）の使用量を併せて返す。
	TryConsume(ctx context.Context, deviceID string, size, quota int64, window time.Duration) (bool, int64, error)
	// GetUsage は現在の使用量を返す。
	GetUsage(ctx context.Context, deviceID string) (int64, error)
}

// BlockStore はブロックおよび警告の操作を定義する。
type BlockStore interface {
	// GetBlock はnow時点で有効なブロックを取得する。無い場合はnil, nilを返す。
	GetBlock(ctx context.Context, deviceID string, now time.Time) (*model.Block, error)
	// PutBlock はブロックを設定し、履歴に追加する。
	PutBlock(ctx context.Context, b *model.Block) error
	// DeleteBlock はブロックを解除する。履歴は残す。
	DeleteBlock(ctx context.Context, deviceID string) error
	// ListBlocks は有効なブロックの一覧を返す。
	ListBlocks(ctx context.Context, now time.Time) ([]*model.Block, error)
	// BlockHistory はデバイスのブロック履歴を古い順に返す。
	BlockHistory(ctx context.Context, deviceID string) ([]*model.Block, error)
	// PutWarning は警告を設定する。
	PutWarning(ctx context.Context, w *model.Warning) error
	// GetWarning はnow時点で有効な警告を取得する。無い場合はnil, nilを返す。
	GetWarning(ctx context.Context, deviceID string, now time.Time) (*model.Warning, error)
	// ClearWarning は警告を削除する。
	ClearWarning(ctx context.Context, deviceID string) error
}

// NodeStore は監視ノードおよび証明書失効リストの操作を定義する。
type NodeStore interface {
	// GetNode は監視ノードを取得する。
	// 未登録の場合はapperr.ErrNodeNotFoundを返す。
	GetNode(ctx context.Context, nodeID string) (*model.MonitoringNode, error)
	// PutNode は監視ノードを登録または更新する。初回登録時刻は上書きしない。
	PutNode(ctx context.Context, n *model.MonitoringNode) error
	// SetNodeActive はノードの有効状態を設定する。
	SetNodeActive(ctx context.Context, nodeID string, active bool) error
	// ListNodes は登録済みノードの一覧を返す。
	ListNodes(ctx context.Context) ([]*model.MonitoringNode, error)
	// IsRevoked は証明書シリアルが失効済みかを返す。
	IsRevoked(ctx context.Context, serial string) (bool, error)
	// RevokeSerial は証明書シリアルを失効リストに追加する。
	RevokeSerial(ctx context.Context, serial string) error
}

// FindingStore は検知結果および誤検知フィンガープリントの操作を定義する。
type FindingStore interface {
	// AppendFinding は検知結果を追加する。既存の検知結果は変更しない。
	// Actionableな検知結果はエスカレーション処理待ちにも登録する。
	AppendFinding(ctx context.Context, f *model.AnomalyFinding) error
	// PendingEscalations はbefore（Unix秒）以前に登録された処理待ちの検知結果IDを最大limit件返す。
	PendingEscalations(ctx context.Context, before int64, limit int64) ([]string, error)
	// ClaimEscalation は検知結果を処理待ちから外す。外した場合はtrueを返す。
	ClaimEscalation(ctx context.Context, findingID string) (bool, error)
	// DeferEscalation は検知結果をat（Unix秒）時点の処理待ちとして登録し直す。
	DeferEscalation(ctx context.Context, findingID string, at int64) error
	// GetFinding は検知結果を取得する。
	// 存在しない場合はapperr.ErrFindingNotFoundを返す。
	GetFinding(ctx context.Context, findingID string) (*model.AnomalyFinding, error)
	// ListFindings はデバイスの直近limit件の検知結果を古い順に返す。
	ListFindings(ctx context.Context, deviceID string, limit int64) ([]*model.AnomalyFinding, error)
	// MarkFalsePositive は(anomalyType, deviceID)を誤検知としてttlの間記録する。
	MarkFalsePositive(ctx context.Context, anomalyType, deviceID string, ttl time.Duration) error
	// IsFalsePositive は誤検知として記録されているかを返す。
	IsFalsePositive(ctx context.Context, anomalyType, deviceID string) (bool, error)
}

// AlertStore はアラートの操作を定義する。
type AlertStore interface {
	// CreateAlertIfNotDuplicate は同一(Type, DeviceID)のアラートがcooldown内に無い場合に限りアラートを作成する。
	// 作成した場合はtrueを返す。
	CreateAlertIfNotDuplicate(ctx context.Context, a *model.Alert, cooldown time.Duration) (bool, error)
	// GetAlert はアラートを取得する。
	// 存在しない場合はapperr.ErrAlertNotFoundを返す。
	GetAlert(ctx context.Context, alertID string) (*model.Alert, error)
	// ListAlerts はデバイスのアラートを古い順に返す。
	ListAlerts(ctx context.Context, deviceID string) ([]*model.Alert, error)
	// ListRecentAlerts は直近n件のアラートを古い順に返す。
	ListRecentAlerts(ctx context.Context, n int64) ([]*model.Alert, error)
	// MarkNotified は通知の配送確認を記録する。
	MarkNotified(ctx context.Context, alertID string) error
	// Acknowledge は管理者の確認操作を記録する。
	Acknowledge(ctx context.Context, alertID, actor string) error
}

// TrustStore は信頼スコアの操作を定義する。
type TrustStore interface {
	// GetTrust は信頼スコアを取得する。未設定の場合はbaselineを返す。
	GetTrust(ctx context.Context, deviceID string, baseline float64) (*model.TrustScore, error)
	// AdjustTrust はスコアにdeltaを加算する。
	// deltaは±maxDeltaに、スコアは[min, max]に丸める。
	AdjustTrust(ctx context.Context, deviceID string, delta float64, bounds TrustBounds, now time.Time) (*model.TrustScore, error)
}

// TrustBounds は信頼スコア更新時の上下限を表す。
type TrustBounds struct {
	Baseline float64
	MaxDelta float64
	Min      float64
	Max      float64
}
