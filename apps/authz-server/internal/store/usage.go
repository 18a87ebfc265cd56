package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
)

// usageStore はUsageStoreインターフェースの実装。
type usageStore struct {
	vc *ValkeyClient
}

// NewUsageStore は新しいUsageStoreを生成する。
func NewUsageStore(vc *ValkeyClient) UsageStore {
	return &usageStore{vc: vc}
}

// TryConsume は使用量+sizeがquota以下の場合に限りsizeを加算する。
func (s *usageStore) TryConsume(ctx context.Context, deviceID string, size, quota int64, window time.Duration) (bool, int64, error) {
	key := KeyPrefixUsage + deviceID
	res, err := tryConsumeScript.Run(ctx, s.vc.Client(), []string{key},
		size, quota, window.Milliseconds()).Int64Slice()
	if err != nil {
		return false, 0, valkey.Wrap("TryConsume", key, err)
	}
	if len(res) != 2 {
		return false, 0, apperr.NewStoreError("TryConsume", key, errors.New("unexpected script result"))
	}
	return res[0] == 1, res[1], nil
}

// GetUsage は現在の使用量を返す。
func (s *usageStore) GetUsage(ctx context.Context, deviceID string) (int64, error) {
	key := KeyPrefixUsage + deviceID
	v, err := s.vc.Client().Get(ctx, key).Result()
	if valkey.IsKeyNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, valkey.Wrap("GetUsage", key, err)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, apperr.NewStoreError("GetUsage", key, err)
	}
	return n, nil
}
