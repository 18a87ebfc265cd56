package store

import (
	"context"
	"errors"
	"testing"

	"github.com/oyaguma3/fleetguard/pkg/model"
)

func TestClientStore_CreateUpdateDelete(t *testing.T) {
	_, client := newTestRedis(t)
	cs := NewClientStore(client)
	ctx := context.Background()

	office := model.NewRadiusClient("192.168.10.1", "TESTSECRET123", "ap-floor1", "office")
	if err := cs.Create(ctx, office); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	tests := []struct {
		name    string
		op      func() error
		wantErr error
	}{
		{
			name:    "同じIPでの作成は拒否",
			op:      func() error { return cs.Create(ctx, office) },
			wantErr: ErrClientExists,
		},
		{
			name:    "未登録IPの更新は拒否",
			op:      func() error { return cs.Update(ctx, model.NewRadiusClient("10.10.10.10", "x", "", "")) },
			wantErr: ErrClientNotFound,
		},
		{
			name:    "未登録IPの削除は拒否",
			op:      func() error { return cs.Delete(ctx, "10.10.10.10") },
			wantErr: ErrClientNotFound,
		},
		{
			name: "登録済みIPの更新",
			op: func() error {
				return cs.Update(ctx, model.NewRadiusClient("192.168.10.1", "NEWSECRET", "ap-floor1", ""))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	got, err := cs.Get(ctx, "192.168.10.1")
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if got.Secret != "NEWSECRET" {
		t.Errorf("Secret = %q, want NEWSECRET", got.Secret)
	}
	// 更新でネットワークを外すと既定ネットワークに戻る
	if got.NetworkID != "" {
		t.Errorf("NetworkID = %q, want empty", got.NetworkID)
	}

	if err := cs.Delete(ctx, "192.168.10.1"); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if _, err := cs.Get(ctx, "192.168.10.1"); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("削除後のGet err = %v, want ErrClientNotFound", err)
	}
}

func TestClientStore_BulkCreateAndList(t *testing.T) {
	_, client := newTestRedis(t)
	cs := NewClientStore(client)
	ctx := context.Background()

	list, err := cs.List(ctx)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("空のストアでList() = %d件", len(list))
	}

	if err := cs.BulkCreate(ctx, nil); err != nil {
		t.Fatalf("空の一括登録でエラー: %v", err)
	}

	// 既存のクライアントは上書きされる
	if err := cs.Create(ctx, model.NewRadiusClient("192.168.1.1", "old", "AP1", "")); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	err = cs.BulkCreate(ctx, []*model.RadiusClient{
		model.NewRadiusClient("192.168.1.2", "s2", "AP2", "lab"),
		model.NewRadiusClient("192.168.1.1", "s1", "AP1", "office"),
	})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	count, err := cs.Count(ctx)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}

	list, err = cs.List(ctx)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	want := []struct{ ip, secret, network string }{
		{"192.168.1.1", "s1", "office"},
		{"192.168.1.2", "s2", "lab"},
	}
	if len(list) != len(want) {
		t.Fatalf("List() = %d件, want %d", len(list), len(want))
	}
	for i, w := range want {
		if list[i].IP != w.ip || list[i].Secret != w.secret || list[i].NetworkID != w.network {
			t.Errorf("list[%d] = %+v, want %+v", i, list[i], w)
		}
	}
}

func TestClientStore_HashLayout(t *testing.T) {
	mr, client := newTestRedis(t)
	cs := NewClientStore(client)

	if err := cs.Create(context.Background(), model.NewRadiusClient("10.0.0.1", "sec", "nas-1", "office")); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	// nas-gatewayが読み取るフィールド名で保存されていること
	for field, want := range map[string]string{
		"secret":     "sec",
		"name":       "nas-1",
		"network_id": "office",
	} {
		t.Run(field, func(t *testing.T) {
			if got := mr.HGet(ClientKey("10.0.0.1"), field); got != want {
				t.Errorf("HGet(%s) = %q, want %q", field, got, want)
			}
		})
	}
}
