package store

import (
	"context"
	"strconv"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
)

// trustStore はTrustStoreインターフェースの実装。
type trustStore struct {
	vc *ValkeyClient
}

// NewTrustStore は新しいTrustStoreを生成する。
func NewTrustStore(vc *ValkeyClient) TrustStore {
	return &trustStore{vc: vc}
}

// GetTrust は信頼スコアを取得する。未設定の場合はbaselineを返す。
func (s *trustStore) GetTrust(ctx context.Context, deviceID string, baseline float64) (*model.TrustScore, error) {
	key := KeyPrefixTrust + deviceID
	m, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.Wrap("GetTrust", key, err)
	}
	ts := &model.TrustScore{DeviceID: deviceID, Score: baseline}
	if len(m) == 0 {
		return ts, nil
	}
	if ts.Score, err = strconv.ParseFloat(m["score"], 64); err != nil {
		return nil, apperr.NewStoreError("GetTrust", key, err)
	}
	if v := m["last_updated"]; v != "" {
		if ts.LastUpdated, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, apperr.NewStoreError("GetTrust", key, err)
		}
	}
	return ts, nil
}

// AdjustTrust はスコアにdeltaを加算する。
func (s *trustStore) AdjustTrust(ctx context.Context, deviceID string, delta float64, bounds TrustBounds, now time.Time) (*model.TrustScore, error) {
	key := KeyPrefixTrust + deviceID
	res, err := adjustTrustScript.Run(ctx, s.vc.Client(), []string{key},
		formatFloat(delta), formatFloat(bounds.Baseline), formatFloat(bounds.MaxDelta),
		formatFloat(bounds.Min), formatFloat(bounds.Max), now.Unix()).Text()
	if err != nil {
		return nil, valkey.Wrap("AdjustTrust", key, err)
	}
	score, err := strconv.ParseFloat(res, 64)
	if err != nil {
		return nil, apperr.NewStoreError("AdjustTrust", key, err)
	}
	return &model.TrustScore{DeviceID: deviceID, Score: score, LastUpdated: now.Unix()}, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
