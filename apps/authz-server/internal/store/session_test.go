package store

import (
	"context"
	"testing"
	"time"
)

func TestSessionStoreCreateGet(t *testing.T) {
	mr, vc := newTestClient(t)
	ss := NewSessionStore(vc)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	created, err := ss.CreateSession(ctx, "dev1", now, time.Hour)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if created.ExpiresAt != now.Add(time.Hour).Unix() {
		t.Errorf("ExpiresAt = %d", created.ExpiresAt)
	}
	if ttl := mr.TTL("sess:dev1"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	got, err := ss.GetSession(ctx, "dev1", now.Add(time.Minute))
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil || got.AuthenticatedAt != now.Unix() {
		t.Fatalf("GetSession = %+v", got)
	}

	// expires_atを過ぎたセッションは無効
	got, err = ss.GetSession(ctx, "dev1", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil session after expiry, got %+v", got)
	}
}

func TestSessionStoreReplace(t *testing.T) {
	_, vc := newTestClient(t)
	ss := NewSessionStore(vc)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	if _, err := ss.CreateSession(ctx, "dev1", now, time.Hour); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	later := now.Add(30 * time.Minute)
	if _, err := ss.CreateSession(ctx, "dev1", later, time.Hour); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	got, err := ss.GetSession(ctx, "dev1", later)
	if err != nil || got == nil {
		t.Fatalf("GetSession = %v, %v", got, err)
	}
	if got.AuthenticatedAt != later.Unix() {
		t.Errorf("AuthenticatedAt = %d, want %d", got.AuthenticatedAt, later.Unix())
	}
}

func TestSessionStoreRevoke(t *testing.T) {
	mr, vc := newTestClient(t)
	ss := NewSessionStore(vc)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	if _, err := ss.CreateSession(ctx, "dev1", now, time.Hour); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := ss.RevokeSession(ctx, "dev1"); err != nil {
		t.Fatalf("RevokeSession failed: %v", err)
	}
	if mr.Exists("sess:dev1") {
		t.Error("session key should be deleted")
	}
	got, err := ss.GetSession(ctx, "dev1", now)
	if err != nil || got != nil {
		t.Errorf("GetSession = %v, %v; want nil, nil", got, err)
	}
}

func TestSessionStoreValkeyError(t *testing.T) {
	mr, vc := newTestClient(t)
	ss := NewSessionStore(vc)
	mr.Close()

	_, err := ss.GetSession(context.Background(), "dev1", time.Now())
	assertUnavailable(t, err)
}
