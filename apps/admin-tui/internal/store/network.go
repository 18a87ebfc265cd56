package store

import (
	"context"
	"errors"
	"sort"

	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// NetworkStore はネットワークデータの参照を提供する。
// 書き込みはauthz-serverの管理API経由で行う。
type NetworkStore struct {
	client *redis.Client
}

// NewNetworkStore は新しいNetworkStoreを生成する。
func NewNetworkStore(client *redis.Client) *NetworkStore {
	return &NetworkStore{client: client}
}

// NetworkInfo はネットワーク設定と現在の接続数を表す。
type NetworkInfo struct {
	*model.Network
	Connected int64
}

// List は全ネットワークをID順で返す（SCAN使用）。
func (s *NetworkStore) List(ctx context.Context) ([]*NetworkInfo, error) {
	keys, err := scanKeys(ctx, s.client, PrefixNetwork+"*")
	if err != nil {
		return nil, err
	}
	var networks []*NetworkInfo
	if len(keys) == 0 {
		return networks, nil
	}

	pipe := s.client.Pipeline()
	hcmds := make([]*redis.MapStringStringCmd, len(keys))
	ccmds := make([]*redis.IntCmd, len(keys))
	for i, key := range keys {
		id := key[len(PrefixNetwork):]
		hcmds[i] = pipe.HGetAll(ctx, key)
		ccmds[i] = pipe.HLen(ctx, PrefixConnection+id)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	for i, cmd := range hcmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		var n model.Network
		if err := valkey.DecodeHash(fields, &n); err != nil {
			continue
		}
		n.ID = keys[i][len(PrefixNetwork):]
		networks = append(networks, &NetworkInfo{Network: &n, Connected: ccmds[i].Val()})
	}

	sort.Slice(networks, func(i, j int) bool { return networks[i].ID < networks[j].ID })
	return networks, nil
}

// Count はネットワークの総数を返す。
func (s *NetworkStore) Count(ctx context.Context) (int64, error) {
	return countKeys(ctx, s.client, PrefixNetwork+"*")
}

