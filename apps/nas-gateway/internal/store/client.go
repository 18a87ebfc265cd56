package store

import (
	"context"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
)

// clientStore はClientStoreインターフェースの実装。
type clientStore struct {
	vc *ValkeyClient
}

// NewClientStore は新しいClientStoreを生成する。
func NewClientStore(vc *ValkeyClient) ClientStore {
	return &clientStore{vc: vc}
}

// GetClient は指定されたIPのクライアント設定を取得する。
func (s *clientStore) GetClient(ctx context.Context, ip string) (*model.RadiusClient, error) {
	key := KeyPrefixClient + ip
	m, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.Wrap("GetClient", key, err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	var c model.RadiusClient
	if err := valkey.DecodeHash(m, &c); err != nil {
		return nil, apperr.NewStoreError("GetClient", key, err)
	}
	c.IP = ip
	return &c, nil
}
