package store

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_store.go -package=mocks

import (
	"context"

	"github.com/oyaguma3/fleetguard/pkg/model"
)

// ClientStore はRADIUSクライアントデータへのアクセスを定義する
type ClientStore interface {
	// GetClient は指定されたIPのクライアント設定を取得する
	// 未登録の場合はnilとnilを返す
	GetClient(ctx context.Context, ip string) (*model.RadiusClient, error)
}

// AcctSessionStore はアカウンティングセッションへのアクセスを定義する
type AcctSessionStore interface {
	// Get はセッションを取得する（未存在時はnilとnilを返す）
	Get(ctx context.Context, acctSessionID string) (*AcctSession, error)
	// Put はセッションを保存しTTLを更新する
	Put(ctx context.Context, s *AcctSession) error
	// Delete はセッションを削除する
	Delete(ctx context.Context, acctSessionID string) error
}
