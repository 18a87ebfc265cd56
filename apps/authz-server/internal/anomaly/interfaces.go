// Package anomaly は監視ノードからのテレメトリを検証・採点し、検知結果を記録する。
package anomaly

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_anomaly.go -package=mocks

import (
	"context"

	"github.com/oyaguma3/fleetguard/pkg/model"
)

// FindingLimiter はノード単位の検知結果レート制限を定義する。
type FindingLimiter interface {
	// CheckAndIncrement は試行を記録し、上限を超えた場合にtrueを返す。
	CheckAndIncrement(ctx context.Context, subject, action string) (bool, error)
}

// Escalator は対応が必要な検知結果を受け取るエスカレーション処理を定義する。
type Escalator interface {
	// Handle は検知結果に応じて警告・ブロック・アラートを行う。
	Handle(ctx context.Context, f *model.AnomalyFinding) (*model.EscalationOutcome, error)
}
