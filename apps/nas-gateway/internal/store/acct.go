package store

import (
	"context"

	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/config"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
)

// AcctSession はNASのアカウンティングセッションを表す。
// 前回までに計上済みのオクテット数を保持し、次回報告との差分を転送量とする。
// Valkeyキー: nas:acct:{AcctSessionID}
type AcctSession struct {
	AcctSessionID string `redis:"acct_session_id"`
	DeviceID      string `redis:"device_id"`
	NetworkID     string `redis:"network_id"`
	NASIP         string `redis:"nas_ip"`
	Octets        int64  `redis:"octets"`        // 計上済みオクテット数（入出力合計）
	DeniedOctets  int64  `redis:"denied_octets"` // transmit判定で拒否された差分の累計
	StartedAt     int64  `redis:"started_at"`
	UpdatedAt     int64  `redis:"updated_at"`
}

// acctSessionStore はAcctSessionStoreインターフェースの実装。
type acctSessionStore struct {
	vc *ValkeyClient
}

// NewAcctSessionStore は新しいAcctSessionStoreを生成する。
func NewAcctSessionStore(vc *ValkeyClient) AcctSessionStore {
	return &acctSessionStore{vc: vc}
}

// Get はセッションを取得する。
func (s *acctSessionStore) Get(ctx context.Context, acctSessionID string) (*AcctSession, error) {
	key := KeyPrefixAcctSession + acctSessionID
	m, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.Wrap("GetAcctSession", key, err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	var as AcctSession
	if err := valkey.DecodeHash(m, &as); err != nil {
		return nil, apperr.NewStoreError("GetAcctSession", key, err)
	}
	return &as, nil
}

// Put はセッションを保存しTTLを更新する。
func (s *acctSessionStore) Put(ctx context.Context, as *AcctSession) error {
	key := KeyPrefixAcctSession + as.AcctSessionID
	fields, err := valkey.EncodeHash(as)
	if err != nil {
		return apperr.NewStoreError("PutAcctSession", key, err)
	}
	pipe := s.vc.Client().TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, config.AcctSessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return valkey.Wrap("PutAcctSession", key, err)
	}
	return nil
}

// Delete はセッションを削除する。
func (s *acctSessionStore) Delete(ctx context.Context, acctSessionID string) error {
	key := KeyPrefixAcctSession + acctSessionID
	if err := s.vc.Client().Del(ctx, key).Err(); err != nil {
		return valkey.Wrap("DeleteAcctSession", key, err)
	}
	return nil
}
