package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

func TestNetworkStorePutGet(t *testing.T) {
	_, vc := newTestClient(t)
	ns := NewNetworkStore(vc)
	ctx := context.Background()

	if err := ns.PutNetwork(ctx, &model.Network{ID: "net1", Name: "lab", MaxDevices: 2}); err != nil {
		t.Fatalf("PutNetwork failed: %v", err)
	}
	got, err := ns.GetNetwork(ctx, "net1")
	if err != nil {
		t.Fatalf("GetNetwork failed: %v", err)
	}
	if got.ID != "net1" || got.Name != "lab" || got.MaxDevices != 2 {
		t.Errorf("GetNetwork = %+v", got)
	}

	_, err = ns.GetNetwork(ctx, "missing")
	if !errors.Is(err, apperr.ErrNetworkNotFound) {
		t.Errorf("expected ErrNetworkNotFound, got: %v", err)
	}
}

func TestNetworkStoreTryConnect(t *testing.T) {
	_, vc := newTestClient(t)
	ns := NewNetworkStore(vc)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name   string
		device string
		want   bool
	}{
		{"1台目", "dev1", true},
		{"2台目", "dev2", true},
		{"接続済みは冪等", "dev1", true},
		{"上限到達", "dev3", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := ns.TryConnect(ctx, "net1", tt.device, 2, now)
			if err != nil {
				t.Fatalf("TryConnect failed: %v", err)
			}
			if ok != tt.want {
				t.Errorf("TryConnect = %v, want %v", ok, tt.want)
			}
		})
	}

	n, err := ns.ConnectionCount(ctx, "net1")
	if err != nil {
		t.Fatalf("ConnectionCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ConnectionCount = %d, want 2", n)
	}
}

func TestNetworkStoreTryConnectConcurrent(t *testing.T) {
	_, vc := newTestClient(t)
	ns := NewNetworkStore(vc)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := ns.TryConnect(ctx, "net1", fmt.Sprintf("dev%d", i), 5, now)
			if err != nil {
				t.Errorf("TryConnect failed: %v", err)
				return
			}
			if ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if allowed != 5 {
		t.Errorf("allowed = %d, want 5", allowed)
	}
	if n, _ := ns.ConnectionCount(ctx, "net1"); n != 5 {
		t.Errorf("ConnectionCount = %d, want 5", n)
	}
}

func TestNetworkStoreDisconnect(t *testing.T) {
	mr, vc := newTestClient(t)
	ns := NewNetworkStore(vc)
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	for _, net := range []string{"net1", "net2"} {
		if _, err := ns.TryConnect(ctx, net, "dev1", 10, now); err != nil {
			t.Fatalf("TryConnect failed: %v", err)
		}
	}

	if err := ns.Disconnect(ctx, "net1", "dev1"); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
	if ok, _ := ns.IsConnected(ctx, "net1", "dev1"); ok {
		t.Error("dev1 should be disconnected from net1")
	}
	if ok, _ := ns.IsConnected(ctx, "net2", "dev1"); !ok {
		t.Error("dev1 should remain connected to net2")
	}

	dropped, err := ns.DisconnectAll(ctx, "dev1")
	if err != nil {
		t.Fatalf("DisconnectAll failed: %v", err)
	}
	if !slices.Equal(dropped, []string{"net2"}) {
		t.Errorf("DisconnectAll = %v, want [net2]", dropped)
	}
	if ok, _ := ns.IsConnected(ctx, "net2", "dev1"); ok {
		t.Error("dev1 should be disconnected from net2")
	}
	if mr.Exists("devnet:dev1") {
		t.Error("reverse index should be deleted")
	}
}

func TestNetworkStoreValkeyError(t *testing.T) {
	mr, vc := newTestClient(t)
	ns := NewNetworkStore(vc)
	mr.Close()

	_, err := ns.TryConnect(context.Background(), "net1", "dev1", 1, time.Now())
	assertUnavailable(t, err)
}
