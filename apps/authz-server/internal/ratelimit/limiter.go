// Package ratelimit は(subject, action)ごとの固定ウィンドウ型レート制限を提供する。
// カウンタはValkey上の1キーで、ウィンドウの切り替えはキーの失効で行う。
package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

var hitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// Policy はレート上限の設定を表す。
type Policy struct {
	Limits  map[string]int // アクションごとの上限
	Default int            // Limitsに無いアクションの上限
	Window  time.Duration
}

// Decision は1回の試行に対する判定結果を表す。
type Decision struct {
	Exceeded bool
	Count    int64
	Limit    int
	ResetAt  time.Time
}

// Limiter は固定ウィンドウ型のレート制限器。
type Limiter struct {
	vc     *store.ValkeyClient
	policy Policy
}

// New は新しいLimiterを生成する。
func New(vc *store.ValkeyClient, policy Policy) *Limiter {
	if policy.Window <= 0 {
		policy.Window = time.Minute
	}
	if policy.Default <= 0 {
		policy.Default = 1
	}
	return &Limiter{vc: vc, policy: policy}
}

// Limit はactionに適用される上限を返す。
func (l *Limiter) Limit(action string) int {
	if n, ok := l.policy.Limits[action]; ok && n > 0 {
		return n
	}
	return l.policy.Default
}

// Window はウィンドウ長を返す。
func (l *Limiter) Window() time.Duration {
	return l.policy.Window
}

// CheckAndIncrement はカウンタを加算し、上限を超えたかどうかを返す。
// 試行は許可・拒否にかかわらず加算する。ストア障害時はエラーを返す。
func (l *Limiter) CheckAndIncrement(ctx context.Context, subject, action string) (bool, error) {
	d, err := l.Hit(ctx, subject, action)
	if err != nil {
		return false, err
	}
	return d.Exceeded, nil
}

// Hit はカウンタを加算し、判定の詳細を返す。
func (l *Limiter) Hit(ctx context.Context, subject, action string) (*Decision, error) {
	key := store.RateCounterKey(subject, action)
	limit := l.Limit(action)

	vals, err := hitScript.Run(ctx, l.vc.Client(), []string{key}, l.policy.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return nil, valkey.Wrap("RateLimit", key, err)
	}
	if len(vals) != 2 {
		return nil, apperr.NewStoreError("RateLimit", key, errors.New("unexpected script result"))
	}
	count, ttlMs := vals[0], vals[1]
	if ttlMs < 0 {
		ttlMs = l.policy.Window.Milliseconds()
	}
	return &Decision{
		Exceeded: count > int64(limit),
		Count:    count,
		Limit:    limit,
		ResetAt:  time.Now().Add(time.Duration(ttlMs) * time.Millisecond),
	}, nil
}

// Peek は現在のウィンドウのカウントを加算せずに返す。
func (l *Limiter) Peek(ctx context.Context, subject, action string) (int64, error) {
	key := store.RateCounterKey(subject, action)
	v, err := l.vc.Client().Get(ctx, key).Result()
	if valkey.IsKeyNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, valkey.Wrap("RateLimitPeek", key, err)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, apperr.NewStoreError("RateLimitPeek", key, err)
	}
	return n, nil
}
