package store

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

func testNode(id string) *model.MonitoringNode {
	return &model.MonitoringNode{
		ID:           id,
		Name:         "sensor-" + id,
		Location:     "floor-1",
		Capabilities: []string{model.ProtocolWiFi, model.ProtocolBLE},
		Issuer:       "CN=Fleet CA",
		Serial:       "0a1b",
		NotAfter:     1800000000,
		PublicKey:    "MCowBQYDK2VwAyEA",
		Active:       true,
		RegisteredAt: 1700000000,
	}
}

func TestNodeStorePutGet(t *testing.T) {
	_, vc := newTestClient(t)
	ns := NewNodeStore(vc)
	ctx := context.Background()

	if err := ns.PutNode(ctx, testNode("n1")); err != nil {
		t.Fatalf("PutNode failed: %v", err)
	}
	got, err := ns.GetNode(ctx, "n1")
	if err != nil {
		t.Fatalf("GetNode failed: %v", err)
	}
	if got.Name != "sensor-n1" || !got.Active || got.NotAfter != 1800000000 {
		t.Errorf("GetNode = %+v", got)
	}
	if !slices.Equal(got.Capabilities, []string{"wifi", "ble"}) {
		t.Errorf("Capabilities = %v", got.Capabilities)
	}

	_, err = ns.GetNode(ctx, "missing")
	if !errors.Is(err, apperr.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got: %v", err)
	}
}

func TestNodeStorePutPreservesRegisteredAt(t *testing.T) {
	_, vc := newTestClient(t)
	ns := NewNodeStore(vc)
	ctx := context.Background()

	if err := ns.PutNode(ctx, testNode("n1")); err != nil {
		t.Fatalf("PutNode failed: %v", err)
	}
	again := testNode("n1")
	again.RegisteredAt = 1750000000
	again.RenewedAt = 1750000000
	again.Location = "floor-2"
	if err := ns.PutNode(ctx, again); err != nil {
		t.Fatalf("PutNode failed: %v", err)
	}

	got, err := ns.GetNode(ctx, "n1")
	if err != nil {
		t.Fatalf("GetNode failed: %v", err)
	}
	if got.RegisteredAt != 1700000000 {
		t.Errorf("RegisteredAt = %d, want 1700000000", got.RegisteredAt)
	}
	if got.Location != "floor-2" || got.RenewedAt != 1750000000 {
		t.Errorf("GetNode = %+v", got)
	}
}

func TestNodeStoreSetActiveAndList(t *testing.T) {
	_, vc := newTestClient(t)
	ns := NewNodeStore(vc)
	ctx := context.Background()

	for _, id := range []string{"n2", "n1"} {
		if err := ns.PutNode(ctx, testNode(id)); err != nil {
			t.Fatalf("PutNode failed: %v", err)
		}
	}
	if err := ns.SetNodeActive(ctx, "n2", false); err != nil {
		t.Fatalf("SetNodeActive failed: %v", err)
	}
	if err := ns.SetNodeActive(ctx, "missing", false); !errors.Is(err, apperr.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got: %v", err)
	}

	nodes, err := ns.ListNodes(ctx)
	if err != nil {
		t.Fatalf("ListNodes failed: %v", err)
	}
	if len(nodes) != 2 || nodes[0].ID != "n1" || nodes[1].ID != "n2" {
		t.Fatalf("ListNodes = %+v", nodes)
	}
	if !nodes[0].Active || nodes[1].Active {
		t.Errorf("Active = %v, %v; want true, false", nodes[0].Active, nodes[1].Active)
	}
}

func TestNodeStoreRevocation(t *testing.T) {
	_, vc := newTestClient(t)
	ns := NewNodeStore(vc)
	ctx := context.Background()

	if ok, _ := ns.IsRevoked(ctx, "0a1b"); ok {
		t.Error("serial should not be revoked yet")
	}
	if err := ns.RevokeSerial(ctx, "0a1b"); err != nil {
		t.Fatalf("RevokeSerial failed: %v", err)
	}
	ok, err := ns.IsRevoked(ctx, "0a1b")
	if err != nil || !ok {
		t.Errorf("IsRevoked = %v, %v; want true", ok, err)
	}
}

func TestNodeStoreValkeyError(t *testing.T) {
	mr, vc := newTestClient(t)
	ns := NewNodeStore(vc)
	mr.Close()

	_, err := ns.GetNode(context.Background(), "n1")
	assertUnavailable(t, err)
}
