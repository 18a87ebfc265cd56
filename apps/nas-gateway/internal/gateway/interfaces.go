// Package gateway はNASからのRADIUS要求を認可エンジンの判定に変換する。
package gateway

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_gateway.go -package=mocks

import (
	"context"

	"github.com/oyaguma3/fleetguard/pkg/model"
)

// EngineClient は認可エンジンAPIへのアクセスを定義する
type EngineClient interface {
	// Decide は認可判定を要求する
	Decide(ctx context.Context, req *model.DecisionRequest) (*model.DecisionResult, error)
	// Disconnect は接続の解除を通知する
	Disconnect(ctx context.Context, deviceID, networkID string) error
}
