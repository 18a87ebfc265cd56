// Package escalation は検知結果を警告・アラート・ブロックへ段階的に変換する。
package escalation

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_escalation.go -package=mocks

import (
	"context"

	"github.com/oyaguma3/fleetguard/pkg/model"
)

// Notifier は管理者へのアラート通知を定義する。
type Notifier interface {
	// Notify はアラートを送信する。nilが返った場合は配送確認済みとみなす。
	Notify(ctx context.Context, a *model.Alert) error
}

// TrustAdjuster は信頼スコアの更新を定義する。
type TrustAdjuster interface {
	// Adjust はスコアにdeltaを加算する。
	Adjust(ctx context.Context, deviceID string, delta float64, reason string) (*model.TrustScore, error)
}
