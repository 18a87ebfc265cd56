// Package store はnas-gatewayのValkeyアクセスを提供する。
package store

import (
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/config"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// ValkeyClient はValkeyクライアントをラップする。
type ValkeyClient struct {
	client *redis.Client
}

// NewValkeyClient は新しいValkeyClientを生成する。
func NewValkeyClient(cfg *config.Config) (*ValkeyClient, error) {
	opts := valkey.NewOptions(valkey.ProfileServer, cfg.ValkeyAddr(), cfg.RedisPass).
		WithTimeouts(config.ValkeyConnectTimeout, config.ValkeyCommandTimeout).
		WithPoolSize(config.ValkeyPoolSize)

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, err
	}
	return &ValkeyClient{client: client}, nil
}

// Close は接続を閉じる。
func (v *ValkeyClient) Close() error {
	return v.client.Close()
}

// Client は内部のredis.Clientを返す。
func (v *ValkeyClient) Client() *redis.Client {
	return v.client
}
