package store

import (
	"context"
	"slices"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// deviceStore はDeviceStoreインターフェースの実装。
type deviceStore struct {
	vc *ValkeyClient
}

// NewDeviceStore は新しいDeviceStoreを生成する。
func NewDeviceStore(vc *ValkeyClient) DeviceStore {
	return &deviceStore{vc: vc}
}

// GetDevice はデバイスとブラックリスト状態を取得する。
func (s *deviceStore) GetDevice(ctx context.Context, deviceID string) (*model.Device, error) {
	key := KeyPrefixDevice + deviceID

	var hcmd *redis.MapStringStringCmd
	var bcmd *redis.BoolCmd
	_, err := s.vc.Client().Pipelined(ctx, func(pipe redis.Pipeliner) error {
		hcmd = pipe.HGetAll(ctx, key)
		bcmd = pipe.SIsMember(ctx, KeyBlacklist, deviceID)
		return nil
	})
	if err != nil {
		return nil, valkey.Wrap("GetDevice", key, err)
	}

	m := hcmd.Val()
	if len(m) == 0 {
		return nil, apperr.ErrDeviceNotFound
	}
	var d model.Device
	if err := valkey.DecodeHash(m, &d); err != nil {
		return nil, apperr.NewStoreError("GetDevice", key, err)
	}
	d.ID = deviceID
	d.Blacklisted = bcmd.Val()
	return &d, nil
}

// PutDevice はデバイスを登録または更新する。
func (s *deviceStore) PutDevice(ctx context.Context, d *model.Device) error {
	key := KeyPrefixDevice + d.ID
	fields, err := valkey.EncodeHash(d)
	if err != nil {
		return apperr.NewStoreError("PutDevice", key, err)
	}
	_, err = s.vc.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		pipe.SAdd(ctx, KeyDeviceIndex, d.ID)
		return nil
	})
	return valkey.Wrap("PutDevice", key, err)
}

// ListDevices は登録済みデバイスIDを昇順で返す。
func (s *deviceStore) ListDevices(ctx context.Context) ([]string, error) {
	ids, err := s.vc.Client().SMembers(ctx, KeyDeviceIndex).Result()
	if err != nil {
		return nil, valkey.Wrap("ListDevices", KeyDeviceIndex, err)
	}
	slices.Sort(ids)
	return ids, nil
}

// IsBlacklisted はデバイスがブラックリストに登録されているかを返す。
func (s *deviceStore) IsBlacklisted(ctx context.Context, deviceID string) (bool, error) {
	ok, err := s.vc.Client().SIsMember(ctx, KeyBlacklist, deviceID).Result()
	if err != nil {
		return false, valkey.Wrap("IsBlacklisted", KeyBlacklist, err)
	}
	return ok, nil
}

// SetBlacklisted はブラックリスト状態を設定する。デバイスレコードは削除しない。
func (s *deviceStore) SetBlacklisted(ctx context.Context, deviceID string, on bool) error {
	var err error
	if on {
		err = s.vc.Client().SAdd(ctx, KeyBlacklist, deviceID).Err()
	} else {
		err = s.vc.Client().SRem(ctx, KeyBlacklist, deviceID).Err()
	}
	return valkey.Wrap("SetBlacklisted", KeyBlacklist, err)
}

// IncrAuthFailure は認証失敗回数を加算する。初回加算時にTTLを設定する。
func (s *deviceStore) IncrAuthFailure(ctx context.Context, deviceID string, ttl time.Duration) (int64, error) {
	key := KeyPrefixAuthFailure + deviceID
	n, err := s.vc.Client().Incr(ctx, key).Result()
	if err != nil {
		return 0, valkey.Wrap("IncrAuthFailure", key, err)
	}
	if n == 1 {
		if err := s.vc.Client().Expire(ctx, key, ttl).Err(); err != nil {
			return n, valkey.Wrap("IncrAuthFailure", key, err)
		}
	}
	return n, nil
}
