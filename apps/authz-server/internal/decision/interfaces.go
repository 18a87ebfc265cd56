// Package decision はデバイスのアクション要求に対する認可判定を提供する。
package decision

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_decision.go -package=mocks

import (
	"context"

	"github.com/oyaguma3/fleetguard/pkg/model"
)

// RateLimiter はアクション試行のレート制限のインターフェース。
type RateLimiter interface {
	CheckAndIncrement(ctx context.Context, subject, action string) (bool, error)
}

// TrustGate は信頼スコアによる判定のインターフェース。
type TrustGate interface {
	Allows(ctx context.Context, deviceID string) (bool, error)
}

// Decider は認可判定のインターフェース。
type Decider interface {
	Decide(ctx context.Context, req *model.DecisionRequest) (*model.DecisionResult, error)
}
