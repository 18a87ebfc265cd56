package store

import (
	"context"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// sessionStore はSessionStoreインターフェースの実装。
type sessionStore struct {
	vc *ValkeyClient
}

// NewSessionStore は新しいSessionStoreを生成する。
func NewSessionStore(vc *ValkeyClient) SessionStore {
	return &sessionStore{vc: vc}
}

// GetSession は有効なセッションを取得する。
// キーのTTLに加えてexpires_atも確認する。
func (s *sessionStore) GetSession(ctx context.Context, deviceID string, now time.Time) (*model.Session, error) {
	key := KeyPrefixSession + deviceID
	m, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.Wrap("GetSession", key, err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	var sess model.Session
	if err := valkey.DecodeHash(m, &sess); err != nil {
		return nil, apperr.NewStoreError("GetSession", key, err)
	}
	if !sess.ActiveAt(now.Unix()) {
		return nil, nil
	}
	return &sess, nil
}

// CreateSession はセッションを作成する。既存セッションは置き換える。
func (s *sessionStore) CreateSession(ctx context.Context, deviceID string, now time.Time, ttl time.Duration) (*model.Session, error) {
	key := KeyPrefixSession + deviceID
	sess := &model.Session{
		DeviceID:        deviceID,
		AuthenticatedAt: now.Unix(),
		ExpiresAt:       now.Add(ttl).Unix(),
	}
	fields, err := valkey.EncodeHash(sess)
	if err != nil {
		return nil, apperr.NewStoreError("CreateSession", key, err)
	}
	_, err = s.vc.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return nil, valkey.Wrap("CreateSession", key, err)
	}
	return sess, nil
}

// RevokeSession はセッションを削除する。
func (s *sessionStore) RevokeSession(ctx context.Context, deviceID string) error {
	key := KeyPrefixSession + deviceID
	return valkey.Wrap("RevokeSession", key, s.vc.Client().Del(ctx, key).Err())
}
