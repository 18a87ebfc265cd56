package store

import (
	"context"
	"errors"
	"sort"

	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// ErrClientNotFound はRADIUSクライアントが見つからない場合のエラー
var ErrClientNotFound = errors.New("client not found")

// ErrClientExists はRADIUSクライアントが既に存在する場合のエラー
var ErrClientExists = errors.New("client already exists")

// ClientStore はRADIUSクライアント（NAS）データへのアクセスを提供する。
// nas-gatewayと互換性のあるHash形式で読み書きする。
type ClientStore struct {
	client *redis.Client
}

// NewClientStore は新しいClientStoreを生成する。
func NewClientStore(client *redis.Client) *ClientStore {
	return &ClientStore{client: client}
}

// Get は指定されたIPのRADIUSクライアントを取得する。
func (s *ClientStore) Get(ctx context.Context, ip string) (*model.RadiusClient, error) {
	key := ClientKey(ip)
	result, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	// キーが存在しない場合、HGetAllは空mapを返す
	if len(result) == 0 {
		return nil, ErrClientNotFound
	}

	return clientFromHash(ip, result)
}

// Create は新しいRADIUSクライアントを作成する。同じIPが既にあればErrClientExistsを返す。
func (s *ClientStore) Create(ctx context.Context, c *model.RadiusClient) error {
	return s.putIf(ctx, c, false)
}

// Update は既存のRADIUSクライアントを置き換える。存在しなければErrClientNotFoundを返す。
func (s *ClientStore) Update(ctx context.Context, c *model.RadiusClient) error {
	return s.putIf(ctx, c, true)
}

// putIf はキーの存在がwantExistsと一致する場合に限りクライアントを書き込む。
// nas-gatewayやほかのコンソールとの競合はWATCHで検出する。
func (s *ClientStore) putIf(ctx context.Context, c *model.RadiusClient, wantExists bool) error {
	key := ClientKey(c.IP)
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		switch {
		case wantExists && n == 0:
			return ErrClientNotFound
		case !wantExists && n > 0:
			return ErrClientExists
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return s.put(ctx, pipe, c)
		})
		return err
	}, key)
}

// Delete はRADIUSクライアントを削除する。
func (s *ClientStore) Delete(ctx context.Context, ip string) error {
	result, err := s.client.Del(ctx, ClientKey(ip)).Result()
	if err != nil {
		return err
	}
	if result == 0 {
		return ErrClientNotFound
	}
	return nil
}

// List は全RADIUSクライアントをIP順で返す（SCAN使用）。
func (s *ClientStore) List(ctx context.Context) ([]*model.RadiusClient, error) {
	keys, err := scanKeys(ctx, s.client, PrefixClient+"*")
	if err != nil {
		return nil, err
	}

	var clients []*model.RadiusClient
	if len(keys) == 0 {
		return clients, nil
	}

	// Pipelineで一括取得（HGETALL）
	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HGetAll(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	for i, cmd := range cmds {
		result, err := cmd.Result()
		if err != nil || len(result) == 0 {
			continue
		}
		c, err := clientFromHash(keys[i][len(PrefixClient):], result)
		if err != nil {
			continue
		}
		clients = append(clients, c)
	}

	sort.Slice(clients, func(i, j int) bool { return clients[i].IP < clients[j].IP })
	return clients, nil
}

// Count はRADIUSクライアントの総数を返す。
func (s *ClientStore) Count(ctx context.Context) (int64, error) {
	return countKeys(ctx, s.client, PrefixClient+"*")
}

// BulkCreate は複数のRADIUSクライアントを一括で書き込む（TxPipeline使用）。
// 既存のクライアントは上書きする。
func (s *ClientStore) BulkCreate(ctx context.Context, clients []*model.RadiusClient) error {
	if len(clients) == 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	for _, c := range clients {
		if err := s.put(ctx, pipe, c); err != nil {
			return err
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}

// put はクライアントをHash形式で書き込む。
func (s *ClientStore) put(ctx context.Context, w redis.Cmdable, c *model.RadiusClient) error {
	fields, err := valkey.EncodeHash(c)
	if err != nil {
		return err
	}
	return w.HSet(ctx, ClientKey(c.IP), fields).Err()
}

// clientFromHash はHashマップからRadiusClientを構築する。
func clientFromHash(ip string, fields map[string]string) (*model.RadiusClient, error) {
	var c model.RadiusClient
	if err := valkey.DecodeHash(fields, &c); err != nil {
		return nil, err
	}
	c.IP = ip
	return &c, nil
}
