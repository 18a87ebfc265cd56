package store

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

func TestDeviceStorePutGet(t *testing.T) {
	_, vc := newTestClient(t)
	ds := NewDeviceStore(vc)
	ctx := context.Background()

	d := &model.Device{
		ID:                "aa:bb:cc:dd:ee:01",
		SupportedFeatures: []string{"ble_pairing", "use_2m_phy"},
		Quota:             1000,
		Mode:              model.ModeBoth,
		Role:              model.RoleNetworkAdmin,
		CreatedAt:         1700000000,
		UpdatedAt:         1700000000,
	}
	if err := ds.PutDevice(ctx, d); err != nil {
		t.Fatalf("PutDevice failed: %v", err)
	}

	got, err := ds.GetDevice(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetDevice failed: %v", err)
	}
	if got.ID != d.ID || got.Quota != 1000 || got.Mode != model.ModeBoth || got.Role != model.RoleNetworkAdmin {
		t.Errorf("GetDevice = %+v", got)
	}
	if !slices.Equal(got.SupportedFeatures, d.SupportedFeatures) {
		t.Errorf("SupportedFeatures = %v, want %v", got.SupportedFeatures, d.SupportedFeatures)
	}
	if got.Blacklisted {
		t.Error("Blacklisted should be false")
	}

	ids, err := ds.ListDevices(ctx)
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}
	if !slices.Equal(ids, []string{d.ID}) {
		t.Errorf("ListDevices = %v", ids)
	}
}

func TestDeviceStoreGetNotFound(t *testing.T) {
	_, vc := newTestClient(t)
	ds := NewDeviceStore(vc)

	_, err := ds.GetDevice(context.Background(), "unknown")
	if !errors.Is(err, apperr.ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got: %v", err)
	}
}

func TestDeviceStoreBlacklist(t *testing.T) {
	_, vc := newTestClient(t)
	ds := NewDeviceStore(vc)
	ctx := context.Background()

	if err := ds.PutDevice(ctx, &model.Device{ID: "dev1", Mode: model.ModeRead}); err != nil {
		t.Fatalf("PutDevice failed: %v", err)
	}
	if err := ds.SetBlacklisted(ctx, "dev1", true); err != nil {
		t.Fatalf("SetBlacklisted failed: %v", err)
	}

	on, err := ds.IsBlacklisted(ctx, "dev1")
	if err != nil || !on {
		t.Fatalf("IsBlacklisted = %v, %v; want true", on, err)
	}
	// ブラックリスト登録してもデバイスは残る
	got, err := ds.GetDevice(ctx, "dev1")
	if err != nil {
		t.Fatalf("GetDevice failed: %v", err)
	}
	if !got.Blacklisted {
		t.Error("Blacklisted should be true")
	}

	if err := ds.SetBlacklisted(ctx, "dev1", false); err != nil {
		t.Fatalf("SetBlacklisted failed: %v", err)
	}
	if on, _ := ds.IsBlacklisted(ctx, "dev1"); on {
		t.Error("IsBlacklisted should be false after removal")
	}
}

func TestDeviceStoreIncrAuthFailure(t *testing.T) {
	mr, vc := newTestClient(t)
	ds := NewDeviceStore(vc)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := ds.IncrAuthFailure(ctx, "ghost", time.Hour)
		if err != nil {
			t.Fatalf("IncrAuthFailure failed: %v", err)
		}
		if n != want {
			t.Errorf("IncrAuthFailure = %d, want %d", n, want)
		}
	}
	if ttl := mr.TTL("authfail:ghost"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	mr.FastForward(time.Hour + time.Second)
	n, _ := ds.IncrAuthFailure(ctx, "ghost", time.Hour)
	if n != 1 {
		t.Errorf("IncrAuthFailure after expiry = %d, want 1", n)
	}
}

func TestDeviceStoreValkeyError(t *testing.T) {
	mr, vc := newTestClient(t)
	ds := NewDeviceStore(vc)
	mr.Close()

	ctx := context.Background()
	_, err := ds.GetDevice(ctx, "dev1")
	assertUnavailable(t, err)
	_, err = ds.IsBlacklisted(ctx, "dev1")
	assertUnavailable(t, err)
}
