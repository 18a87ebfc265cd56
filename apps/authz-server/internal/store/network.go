package store

import (
	"context"
	"strconv"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// networkStore はNetworkStoreインターフェースの実装。
type networkStore struct {
	vc *ValkeyClient
}

// NewNetworkStore は新しいNetworkStoreを生成する。
func NewNetworkStore(vc *ValkeyClient) NetworkStore {
	return &networkStore{vc: vc}
}

// GetNetwork はネットワークを取得する。
func (s *networkStore) GetNetwork(ctx context.Context, networkID string) (*model.Network, error) {
	key := KeyPrefixNetwork + networkID
	m, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.Wrap("GetNetwork", key, err)
	}
	if len(m) == 0 {
		return nil, apperr.ErrNetworkNotFound
	}
	var n model.Network
	if err := valkey.DecodeHash(m, &n); err != nil {
		return nil, apperr.NewStoreError("GetNetwork", key, err)
	}
	n.ID = networkID
	return &n, nil
}

// PutNetwork はネットワークを登録または更新する。
func (s *networkStore) PutNetwork(ctx context.Context, n *model.Network) error {
	key := KeyPrefixNetwork + n.ID
	fields, err := valkey.EncodeHash(n)
	if err != nil {
		return apperr.NewStoreError("PutNetwork", key, err)
	}
	return valkey.Wrap("PutNetwork", key, s.vc.Client().HSet(ctx, key, fields).Err())
}

// TryConnect は接続数がmaxDevices未満の場合に限り接続を追加する。
func (s *networkStore) TryConnect(ctx context.Context, networkID, deviceID string, maxDevices int64, now time.Time) (bool, error) {
	key := KeyPrefixConnection + networkID
	keys := []string{key, KeyPrefixDeviceNetwork + deviceID}
	n, err := tryConnectScript.Run(ctx, s.vc.Client(), keys,
		deviceID, maxDevices, strconv.FormatInt(now.Unix(), 10), networkID).Int64()
	if err != nil {
		return false, valkey.Wrap("TryConnect", key, err)
	}
	return n == 1, nil
}

// Disconnect は接続を削除する。
func (s *networkStore) Disconnect(ctx context.Context, networkID, deviceID string) error {
	key := KeyPrefixConnection + networkID
	_, err := s.vc.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, key, deviceID)
		pipe.SRem(ctx, KeyPrefixDeviceNetwork+deviceID, networkID)
		return nil
	})
	return valkey.Wrap("Disconnect", key, err)
}

// IsConnected はデバイスがネットワークに接続中かを返す。
func (s *networkStore) IsConnected(ctx context.Context, networkID, deviceID string) (bool, error) {
	key := KeyPrefixConnection + networkID
	ok, err := s.vc.Client().HExists(ctx, key, deviceID).Result()
	if err != nil {
		return false, valkey.Wrap("IsConnected", key, err)
	}
	return ok, nil
}

// DisconnectAll はデバイスのすべての接続を削除する。
func (s *networkStore) DisconnectAll(ctx context.Context, deviceID string) ([]string, error) {
	idx := KeyPrefixDeviceNetwork + deviceID
	networks, err := s.vc.Client().SMembers(ctx, idx).Result()
	if err != nil {
		return nil, valkey.Wrap("DisconnectAll", idx, err)
	}
	_, err = s.vc.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, networkID := range networks {
			pipe.HDel(ctx, KeyPrefixConnection+networkID, deviceID)
		}
		pipe.Del(ctx, idx)
		return nil
	})
	if err != nil {
		return nil, valkey.Wrap("DisconnectAll", idx, err)
	}
	return networks, nil
}

// ConnectionCount はネットワークの接続数を返す。
func (s *networkStore) ConnectionCount(ctx context.Context, networkID string) (int64, error) {
	key := KeyPrefixConnection + networkID
	n, err := s.vc.Client().HLen(ctx, key).Result()
	if err != nil {
		return 0, valkey.Wrap("ConnectionCount", key, err)
	}
	return n, nil
}
