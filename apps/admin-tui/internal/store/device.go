package store

import (
	"context"
	"errors"
	"sort"

	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// ErrDeviceNotFound はデバイスが見つからない場合のエラー
var ErrDeviceNotFound = errors.New("device not found")

// DeviceStore はデバイスデータの参照を提供する。
// 書き込みはauthz-serverの管理API経由で行う。
type DeviceStore struct {
	client *redis.Client
}

// NewDeviceStore は新しいDeviceStoreを生成する。
func NewDeviceStore(client *redis.Client) *DeviceStore {
	return &DeviceStore{client: client}
}

// Get は指定されたIDのデバイスをブラックリスト状態付きで取得する。
func (s *DeviceStore) Get(ctx context.Context, id string) (*model.Device, error) {
	key := DeviceKey(id)

	var hcmd *redis.MapStringStringCmd
	var bcmd *redis.BoolCmd
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		hcmd = pipe.HGetAll(ctx, key)
		bcmd = pipe.SIsMember(ctx, KeyBlacklist, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(hcmd.Val()) == 0 {
		return nil, ErrDeviceNotFound
	}

	var d model.Device
	if err := valkey.DecodeHash(hcmd.Val(), &d); err != nil {
		return nil, err
	}
	d.ID = id
	d.Blacklisted = bcmd.Val()
	return &d, nil
}

// List は登録済みデバイスをID順で返す。
func (s *DeviceStore) List(ctx context.Context) ([]*model.Device, error) {
	ids, err := s.client.SMembers(ctx, KeyDeviceIndex).Result()
	if err != nil {
		return nil, err
	}
	var devices []*model.Device
	if len(ids) == 0 {
		return devices, nil
	}
	sort.Strings(ids)

	blacklist, err := s.client.SMembers(ctx, KeyBlacklist).Result()
	if err != nil {
		return nil, err
	}
	blacklisted := make(map[string]bool, len(blacklist))
	for _, id := range blacklist {
		blacklisted[id] = true
	}

	// Pipelineで一括取得（HGETALL）
	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, DeviceKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		var d model.Device
		if err := valkey.DecodeHash(fields, &d); err != nil {
			continue
		}
		d.ID = ids[i]
		d.Blacklisted = blacklisted[ids[i]]
		devices = append(devices, &d)
	}
	return devices, nil
}

// Count は登録済みデバイス数を返す。
func (s *DeviceStore) Count(ctx context.Context) (int64, error) {
	return s.client.SCard(ctx, KeyDeviceIndex).Result()
}
