package store

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// blockStore はBlockStoreインターフェースの実装。
type blockStore struct {
	vc *ValkeyClient
}

// NewBlockStore は新しいBlockStoreを生成する。
func NewBlockStore(vc *ValkeyClient) BlockStore {
	return &blockStore{vc: vc}
}

// GetBlock はnow時点で有効なブロックを取得する。
func (s *blockStore) GetBlock(ctx context.Context, deviceID string, now time.Time) (*model.Block, error) {
	key := KeyPrefixBlock + deviceID
	m, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.Wrap("GetBlock", key, err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	var b model.Block
	if err := valkey.DecodeHash(m, &b); err != nil {
		return nil, apperr.NewStoreError("GetBlock", key, err)
	}
	if !b.ActiveAt(now.Unix()) {
		return nil, nil
	}
	return &b, nil
}

// PutBlock はブロックを設定し、履歴に追加する。
// 一時ブロックはExpiresAtまでのTTLを設定し、永続ブロックはTTLを解除する。
func (s *blockStore) PutBlock(ctx context.Context, b *model.Block) error {
	key := KeyPrefixBlock + b.DeviceID
	fields, err := valkey.EncodeHash(b)
	if err != nil {
		return apperr.NewStoreError("PutBlock", key, err)
	}
	hist, err := json.Marshal(b)
	if err != nil {
		return apperr.NewStoreError("PutBlock", key, err)
	}
	_, err = s.vc.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		if b.Kind == model.BlockTemporary {
			pipe.Expire(ctx, key, time.Duration(b.ExpiresAt-b.CreatedAt)*time.Second)
		}
		pipe.SAdd(ctx, KeyBlockIndex, b.DeviceID)
		pipe.RPush(ctx, KeyPrefixBlockHistory+b.DeviceID, hist)
		return nil
	})
	return valkey.Wrap("PutBlock", key, err)
}

// DeleteBlock はブロックを解除する。履歴は残す。
func (s *blockStore) DeleteBlock(ctx context.Context, deviceID string) error {
	key := KeyPrefixBlock + deviceID
	_, err := s.vc.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, KeyBlockIndex, deviceID)
		return nil
	})
	return valkey.Wrap("DeleteBlock", key, err)
}

// ListBlocks は有効なブロックの一覧をデバイスID順に返す。
// 失効済みのエントリは一覧から取り除く。
func (s *blockStore) ListBlocks(ctx context.Context, now time.Time) ([]*model.Block, error) {
	ids, err := s.vc.Client().SMembers(ctx, KeyBlockIndex).Result()
	if err != nil {
		return nil, valkey.Wrap("ListBlocks", KeyBlockIndex, err)
	}
	slices.Sort(ids)

	var blocks []*model.Block
	var stale []any
	for _, id := range ids {
		b, err := s.GetBlock(ctx, id, now)
		if err != nil {
			return nil, err
		}
		if b == nil {
			stale = append(stale, id)
			continue
		}
		blocks = append(blocks, b)
	}
	if len(stale) > 0 {
		if err := s.vc.Client().SRem(ctx, KeyBlockIndex, stale...).Err(); err != nil {
			return nil, valkey.Wrap("ListBlocks", KeyBlockIndex, err)
		}
	}
	return blocks, nil
}

// BlockHistory はデバイスのブロック履歴を古い順に返す。
func (s *blockStore) BlockHistory(ctx context.Context, deviceID string) ([]*model.Block, error) {
	key := KeyPrefixBlockHistory + deviceID
	items, err := s.vc.Client().LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, valkey.Wrap("BlockHistory", key, err)
	}
	history := make([]*model.Block, 0, len(items))
	for _, item := range items {
		var b model.Block
		if err := json.Unmarshal([]byte(item), &b); err != nil {
			return nil, apperr.NewStoreError("BlockHistory", key, err)
		}
		history = append(history, &b)
	}
	return history, nil
}

// PutWarning は警告をExpiresAtまでのTTL付きで設定する。
func (s *blockStore) PutWarning(ctx context.Context, w *model.Warning) error {
	key := KeyPrefixWarning + w.DeviceID
	fields, err := valkey.EncodeHash(w)
	if err != nil {
		return apperr.NewStoreError("PutWarning", key, err)
	}
	_, err = s.vc.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, time.Duration(w.ExpiresAt-w.CreatedAt)*time.Second)
		return nil
	})
	return valkey.Wrap("PutWarning", key, err)
}

// GetWarning はnow時点で有効な警告を取得する。
func (s *blockStore) GetWarning(ctx context.Context, deviceID string, now time.Time) (*model.Warning, error) {
	key := KeyPrefixWarning + deviceID
	m, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.Wrap("GetWarning", key, err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	var w model.Warning
	if err := valkey.DecodeHash(m, &w); err != nil {
		return nil, apperr.NewStoreError("GetWarning", key, err)
	}
	if now.Unix() >= w.ExpiresAt {
		return nil, nil
	}
	return &w, nil
}

// ClearWarning は警告を削除する。
func (s *blockStore) ClearWarning(ctx context.Context, deviceID string) error {
	key := KeyPrefixWarning + deviceID
	return valkey.Wrap("ClearWarning", key, s.vc.Client().Del(ctx, key).Err())
}
