package ratelimit

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
)

func newTestLimiter(t *testing.T, policy Policy) (*miniredis.Miniredis, *Limiter) {
	t.Helper()
	mr := miniredis.RunT(t)
	host, port, _ := net.SplitHostPort(mr.Addr())
	vc, err := store.NewValkeyClient(&config.Config{RedisHost: host, RedisPort: port})
	if err != nil {
		t.Fatalf("NewValkeyClient failed: %v", err)
	}
	t.Cleanup(func() { _ = vc.Close() })
	return mr, New(vc, policy)
}

func TestNewDefaults(t *testing.T) {
	_, lim := newTestLimiter(t, Policy{})
	if lim.Window() != time.Minute {
		t.Errorf("Window = %v, want 1m", lim.Window())
	}
	if lim.Limit("anything") != 1 {
		t.Errorf("Limit = %d, want 1", lim.Limit("anything"))
	}
}

func TestLimit(t *testing.T) {
	_, lim := newTestLimiter(t, Policy{
		Limits:  map[string]int{"connect": 3, "broken": 0},
		Default: 5,
		Window:  time.Minute,
	})

	tests := []struct {
		action string
		want   int
	}{
		{"connect", 3},
		{"use_2m_phy", 5},
		{"broken", 5},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			if got := lim.Limit(tt.action); got != tt.want {
				t.Errorf("Limit(%q) = %d, want %d", tt.action, got, tt.want)
			}
		})
	}
}

func TestCheckAndIncrement(t *testing.T) {
	mr, lim := newTestLimiter(t, Policy{Limits: map[string]int{"use_2m_phy": 3}, Default: 5, Window: time.Minute})
	ctx := context.Background()

	// 上限3: 1〜3回目は許可、4回目以降は拒否
	want := []bool{false, false, false, true, true}
	for i, w := range want {
		exceeded, err := lim.CheckAndIncrement(ctx, "dev1", "use_2m_phy")
		if err != nil {
			t.Fatalf("CheckAndIncrement failed: %v", err)
		}
		if exceeded != w {
			t.Errorf("attempt %d: exceeded = %v, want %v", i+1, exceeded, w)
		}
	}

	// 拒否された試行もカウントする
	n, err := lim.Peek(ctx, "dev1", "use_2m_phy")
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Peek = %d, want 5", n)
	}

	// 別のactionおよびsubjectは独立
	if exceeded, _ := lim.CheckAndIncrement(ctx, "dev1", "other"); exceeded {
		t.Error("different action should have its own counter")
	}
	if exceeded, _ := lim.CheckAndIncrement(ctx, "dev2", "use_2m_phy"); exceeded {
		t.Error("different subject should have its own counter")
	}

	// ウィンドウ経過でリセット
	mr.FastForward(time.Minute + time.Millisecond)
	exceeded, err := lim.CheckAndIncrement(ctx, "dev1", "use_2m_phy")
	if err != nil {
		t.Fatalf("CheckAndIncrement failed: %v", err)
	}
	if exceeded {
		t.Error("counter should reset after window rollover")
	}
	if n, _ := lim.Peek(ctx, "dev1", "use_2m_phy"); n != 1 {
		t.Errorf("Peek after rollover = %d, want 1", n)
	}
}

func TestHitDecision(t *testing.T) {
	mr, lim := newTestLimiter(t, Policy{Default: 2, Window: 30 * time.Second})
	ctx := context.Background()

	d, err := lim.Hit(ctx, "dev1", "connect")
	if err != nil {
		t.Fatalf("Hit failed: %v", err)
	}
	if d.Exceeded || d.Count != 1 || d.Limit != 2 {
		t.Errorf("Hit = %+v", d)
	}
	if d.ResetAt.Before(time.Now()) {
		t.Errorf("ResetAt = %v, want future", d.ResetAt)
	}
	if ttl := mr.TTL("rl:dev1:connect"); ttl != 30*time.Second {
		t.Errorf("TTL = %v, want 30s", ttl)
	}
}

func TestCheckAndIncrementConcurrent(t *testing.T) {
	_, lim := newTestLimiter(t, Policy{Default: 10, Window: time.Minute})
	ctx := context.Background()

	var wg sync.WaitGroup
	var allowed atomic.Int64
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			exceeded, err := lim.CheckAndIncrement(ctx, "dev1", "connect")
			if err != nil {
				t.Errorf("CheckAndIncrement failed: %v", err)
				return
			}
			if !exceeded {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	if allowed.Load() != 10 {
		t.Errorf("allowed = %d, want 10", allowed.Load())
	}
}

func TestCheckAndIncrementValkeyError(t *testing.T) {
	mr, lim := newTestLimiter(t, Policy{Default: 1, Window: time.Minute})
	mr.Close()

	_, err := lim.CheckAndIncrement(context.Background(), "dev1", "connect")
	if !errors.Is(err, apperr.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got: %v", err)
	}
}
