package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// findingStore はFindingStoreインターフェースの実装。
type findingStore struct {
	vc *ValkeyClient
}

// NewFindingStore は新しいFindingStoreを生成する。
func NewFindingStore(vc *ValkeyClient) FindingStore {
	return &findingStore{vc: vc}
}

// AppendFinding は検知結果を保存し、デバイスの履歴に追加する。
// エスカレーション対象の検知結果は同じトランザクションで処理待ちに登録する。
func (s *findingStore) AppendFinding(ctx context.Context, f *model.AnomalyFinding) error {
	key := KeyPrefixFinding + f.ID
	data, err := json.Marshal(f)
	if err != nil {
		return apperr.NewStoreError("AppendFinding", key, err)
	}
	_, err = s.vc.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, 0)
		pipe.RPush(ctx, KeyPrefixFindingIndex+f.DeviceID, f.ID)
		if f.Actionable {
			pipe.ZAdd(ctx, KeyEscalationPending, redis.Z{Score: float64(f.CreatedAt), Member: f.ID})
		}
		return nil
	})
	return valkey.Wrap("AppendFinding", key, err)
}

// PendingEscalations はbefore以前に登録された処理待ちの検知結果IDを古い順に最大limit件返す。
func (s *findingStore) PendingEscalations(ctx context.Context, before int64, limit int64) ([]string, error) {
	ids, err := s.vc.Client().ZRangeByScore(ctx, KeyEscalationPending, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(before, 10),
		Count: limit,
	}).Result()
	if err != nil {
		return nil, valkey.Wrap("PendingEscalations", KeyEscalationPending, err)
	}
	return ids, nil
}

// ClaimEscalation は検知結果を処理待ちから外す。外した場合はtrueを返す。
func (s *findingStore) ClaimEscalation(ctx context.Context, findingID string) (bool, error) {
	n, err := s.vc.Client().ZRem(ctx, KeyEscalationPending, findingID).Result()
	if err != nil {
		return false, valkey.Wrap("ClaimEscalation", KeyEscalationPending, err)
	}
	return n > 0, nil
}

// DeferEscalation は検知結果をat時点の処理待ちとして登録し直す。
func (s *findingStore) DeferEscalation(ctx context.Context, findingID string, at int64) error {
	err := s.vc.Client().ZAdd(ctx, KeyEscalationPending, redis.Z{Score: float64(at), Member: findingID}).Err()
	return valkey.Wrap("DeferEscalation", KeyEscalationPending, err)
}

// GetFinding は検知結果を取得する。
func (s *findingStore) GetFinding(ctx context.Context, findingID string) (*model.AnomalyFinding, error) {
	key := KeyPrefixFinding + findingID
	data, err := s.vc.Client().Get(ctx, key).Result()
	if valkey.IsKeyNotFound(err) {
		return nil, apperr.ErrFindingNotFound
	}
	if err != nil {
		return nil, valkey.Wrap("GetFinding", key, err)
	}
	var f model.AnomalyFinding
	if err := json.Unmarshal([]byte(data), &f); err != nil {
		return nil, apperr.NewStoreError("GetFinding", key, err)
	}
	return &f, nil
}

// ListFindings はデバイスの直近limit件の検知結果を古い順に返す。
func (s *findingStore) ListFindings(ctx context.Context, deviceID string, limit int64) ([]*model.AnomalyFinding, error) {
	idx := KeyPrefixFindingIndex + deviceID
	ids, err := s.vc.Client().LRange(ctx, idx, -limit, -1).Result()
	if err != nil {
		return nil, valkey.Wrap("ListFindings", idx, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = KeyPrefixFinding + id
	}
	vals, err := s.vc.Client().MGet(ctx, keys...).Result()
	if err != nil {
		return nil, valkey.Wrap("ListFindings", idx, err)
	}

	findings := make([]*model.AnomalyFinding, 0, len(vals))
	for i, v := range vals {
		data, ok := v.(string)
		if !ok {
			continue
		}
		var f model.AnomalyFinding
		if err := json.Unmarshal([]byte(data), &f); err != nil {
			return nil, apperr.NewStoreError("ListFindings", keys[i], err)
		}
		findings = append(findings, &f)
	}
	return findings, nil
}

// MarkFalsePositive は(anomalyType, deviceID)を誤検知としてttlの間記録する。
func (s *findingStore) MarkFalsePositive(ctx context.Context, anomalyType, deviceID string, ttl time.Duration) error {
	key := FalsePositiveKey(anomalyType, deviceID)
	return valkey.Wrap("MarkFalsePositive", key, s.vc.Client().Set(ctx, key, "1", ttl).Err())
}

// IsFalsePositive は誤検知として記録されているかを返す。
func (s *findingStore) IsFalsePositive(ctx context.Context, anomalyType, deviceID string) (bool, error) {
	key := FalsePositiveKey(anomalyType, deviceID)
	n, err := s.vc.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, valkey.Wrap("IsFalsePositive", key, err)
	}
	return n > 0, nil
}
