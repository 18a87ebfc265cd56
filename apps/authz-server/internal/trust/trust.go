// Package trust はデバイスの信頼スコアを管理する。
package trust

import (
	"context"
	"log/slog"
	"time"

	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// Service は信頼スコアの参照・更新を行う。
type Service struct {
	store    store.TrustStore
	bounds   store.TrustBounds
	minScore float64
	cfg      *config.Config
	now      func() time.Time
}

// NewService は新しいServiceを生成する。
func NewService(ts store.TrustStore, cfg *config.Config) *Service {
	return &Service{
		store: ts,
		bounds: store.TrustBounds{
			Baseline: cfg.TrustBaseline,
			MaxDelta: config.TrustMaxDelta,
			Min:      config.TrustScoreMin,
			Max:      config.TrustScoreMax,
		},
		minScore: cfg.TrustMinScore,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Get は現在の信頼スコアを返す。
func (s *Service) Get(ctx context.Context, deviceID string) (*model.TrustScore, error) {
	return s.store.GetTrust(ctx, deviceID, s.bounds.Baseline)
}

// Adjust はスコアにdeltaを加算する。1回の更新幅は±TrustMaxDeltaに制限する。
func (s *Service) Adjust(ctx context.Context, deviceID string, delta float64, reason string) (*model.TrustScore, error) {
	applied := Clamp(delta, -s.bounds.MaxDelta, s.bounds.MaxDelta)
	ts, err := s.store.AdjustTrust(ctx, deviceID, applied, s.bounds, s.now())
	if err != nil {
		return nil, err
	}
	slog.Info("信頼スコア更新",
		"event_id", "TRUST_ADJUST",
		logging.FieldDeviceID, logging.MaskDeviceID(deviceID, s.cfg.LogMaskDeviceID),
		"delta", applied,
		"score", ts.Score,
		logging.FieldReason, reason,
	)
	return ts, nil
}

// Allows はデバイスの信頼スコアが判定の下限以上かを返す。
// 下限が0以下の場合はスコアを参照せず許可する。
func (s *Service) Allows(ctx context.Context, deviceID string) (bool, error) {
	if s.minScore <= 0 {
		return true, nil
	}
	ts, err := s.Get(ctx, deviceID)
	if err != nil {
		return false, err
	}
	return ts.Score >= s.minScore, nil
}

// DeltaForFinding は検知結果に対応するスコア減算量を返す。
func DeltaForFinding(f *model.AnomalyFinding) float64 {
	return -f.SeverityScore / 5
}

// Clamp はvを[lo, hi]に丸める。
func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
