package store

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// alertStore はAlertStoreインターフェースの実装。
type alertStore struct {
	vc *ValkeyClient
}

// NewAlertStore は新しいAlertStoreを生成する。
func NewAlertStore(vc *ValkeyClient) AlertStore {
	return &alertStore{vc: vc}
}

// CreateAlertIfNotDuplicate は重複抑止キーを取得できた場合に限りアラートを作成する。
func (s *alertStore) CreateAlertIfNotDuplicate(ctx context.Context, a *model.Alert, cooldown time.Duration) (bool, error) {
	dedup := AlertDedupKey(a.Type, a.DeviceID)
	fields, err := valkey.EncodeHash(a)
	if err != nil {
		return false, apperr.NewStoreError("CreateAlert", dedup, err)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	args := []any{cooldown.Milliseconds(), a.ID}
	for _, name := range names {
		args = append(args, name, fields[name])
	}

	keys := []string{dedup, KeyPrefixAlert + a.ID, KeyAlertIndex, KeyPrefixAlertIndex + a.DeviceID}
	n, err := createAlertScript.Run(ctx, s.vc.Client(), keys, args...).Int64()
	if err != nil {
		return false, valkey.Wrap("CreateAlert", dedup, err)
	}
	return n == 1, nil
}

// GetAlert はアラートを取得する。
func (s *alertStore) GetAlert(ctx context.Context, alertID string) (*model.Alert, error) {
	key := KeyPrefixAlert + alertID
	m, err := s.vc.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, valkey.Wrap("GetAlert", key, err)
	}
	return decodeAlert(key, alertID, m)
}

func decodeAlert(key, alertID string, m map[string]string) (*model.Alert, error) {
	if len(m) == 0 {
		return nil, apperr.ErrAlertNotFound
	}
	var a model.Alert
	if err := valkey.DecodeHash(m, &a); err != nil {
		return nil, apperr.NewStoreError("GetAlert", key, err)
	}
	a.ID = alertID
	return &a, nil
}

// ListAlerts はデバイスのアラートを古い順に返す。
func (s *alertStore) ListAlerts(ctx context.Context, deviceID string) ([]*model.Alert, error) {
	return s.listByIndex(ctx, KeyPrefixAlertIndex+deviceID, 0)
}

// ListRecentAlerts は直近n件のアラートを古い順に返す。
func (s *alertStore) ListRecentAlerts(ctx context.Context, n int64) ([]*model.Alert, error) {
	return s.listByIndex(ctx, KeyAlertIndex, -n)
}

func (s *alertStore) listByIndex(ctx context.Context, idx string, start int64) ([]*model.Alert, error) {
	ids, err := s.vc.Client().LRange(ctx, idx, start, -1).Result()
	if err != nil {
		return nil, valkey.Wrap("ListAlerts", idx, err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.vc.Client().Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, KeyPrefixAlert+id)
		}
		return nil
	})
	if err != nil {
		return nil, valkey.Wrap("ListAlerts", idx, err)
	}

	alerts := make([]*model.Alert, 0, len(ids))
	for i, id := range ids {
		m := cmds[i].Val()
		if len(m) == 0 {
			continue
		}
		a, err := decodeAlert(KeyPrefixAlert+id, id, m)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}

// MarkNotified は通知の配送確認を記録する。
func (s *alertStore) MarkNotified(ctx context.Context, alertID string) error {
	return s.update(ctx, "MarkNotified", alertID, "admin_notified", "true")
}

// Acknowledge は管理者の確認操作を記録する。
func (s *alertStore) Acknowledge(ctx context.Context, alertID, actor string) error {
	return s.update(ctx, "Acknowledge", alertID,
		"acknowledged", strconv.FormatBool(true), "acknowledged_by", actor)
}

func (s *alertStore) update(ctx context.Context, op, alertID string, values ...any) error {
	key := KeyPrefixAlert + alertID
	n, err := s.vc.Client().Exists(ctx, key).Result()
	if err != nil {
		return valkey.Wrap(op, key, err)
	}
	if n == 0 {
		return apperr.ErrAlertNotFound
	}
	return valkey.Wrap(op, key, s.vc.Client().HSet(ctx, key, values...).Err())
}
