package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

func testAlert(id, device, typ string) *model.Alert {
	return &model.Alert{
		ID:               id,
		Type:             typ,
		Severity:         model.SeverityHigh,
		DeviceID:         device,
		RelatedFindingID: "f-" + id,
		CreatedAt:        1700000000,
	}
}

func TestAlertStoreCreateDedup(t *testing.T) {
	mr, vc := newTestClient(t)
	as := NewAlertStore(vc)
	ctx := context.Background()

	created, err := as.CreateAlertIfNotDuplicate(ctx, testAlert("a1", "dev1", "deauth_flood"), 5*time.Minute)
	if err != nil || !created {
		t.Fatalf("CreateAlertIfNotDuplicate = %v, %v; want true", created, err)
	}

	// 同一(type, device)はクールダウン中は抑止
	created, err = as.CreateAlertIfNotDuplicate(ctx, testAlert("a2", "dev1", "deauth_flood"), 5*time.Minute)
	if err != nil || created {
		t.Fatalf("CreateAlertIfNotDuplicate = %v, %v; want false", created, err)
	}
	if mr.Exists("alert:a2") {
		t.Error("suppressed alert must not be stored")
	}

	// 種別が異なれば作成
	created, _ = as.CreateAlertIfNotDuplicate(ctx, testAlert("a3", "dev1", "probe_storm"), 5*time.Minute)
	if !created {
		t.Error("different type should create alert")
	}

	mr.FastForward(5*time.Minute + time.Second)
	created, _ = as.CreateAlertIfNotDuplicate(ctx, testAlert("a4", "dev1", "deauth_flood"), 5*time.Minute)
	if !created {
		t.Error("alert should be created after cooldown")
	}

	alerts, err := as.ListAlerts(ctx, "dev1")
	if err != nil {
		t.Fatalf("ListAlerts failed: %v", err)
	}
	if len(alerts) != 3 || alerts[0].ID != "a1" || alerts[2].ID != "a4" {
		t.Errorf("ListAlerts = %+v", alerts)
	}

	recent, err := as.ListRecentAlerts(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentAlerts failed: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "a3" || recent[1].ID != "a4" {
		t.Errorf("ListRecentAlerts = %+v", recent)
	}
}

func TestAlertStoreNotifyAndAcknowledge(t *testing.T) {
	_, vc := newTestClient(t)
	as := NewAlertStore(vc)
	ctx := context.Background()

	if _, err := as.CreateAlertIfNotDuplicate(ctx, testAlert("a1", "dev1", "t"), time.Minute); err != nil {
		t.Fatalf("CreateAlertIfNotDuplicate failed: %v", err)
	}
	got, err := as.GetAlert(ctx, "a1")
	if err != nil {
		t.Fatalf("GetAlert failed: %v", err)
	}
	if got.Confirmed() {
		t.Error("new alert should not be confirmed")
	}
	if got.Severity != model.SeverityHigh || got.RelatedFindingID != "f-a1" {
		t.Errorf("GetAlert = %+v", got)
	}

	if err := as.MarkNotified(ctx, "a1"); err != nil {
		t.Fatalf("MarkNotified failed: %v", err)
	}
	if err := as.Acknowledge(ctx, "a1", "ops-admin"); err != nil {
		t.Fatalf("Acknowledge failed: %v", err)
	}
	got, _ = as.GetAlert(ctx, "a1")
	if !got.AdminNotified || !got.Acknowledged || got.AcknowledgedBy != "ops-admin" {
		t.Errorf("GetAlert = %+v", got)
	}

	if err := as.Acknowledge(ctx, "missing", "x"); !errors.Is(err, apperr.ErrAlertNotFound) {
		t.Errorf("expected ErrAlertNotFound, got: %v", err)
	}
	if _, err := as.GetAlert(ctx, "missing"); !errors.Is(err, apperr.ErrAlertNotFound) {
		t.Errorf("expected ErrAlertNotFound, got: %v", err)
	}
}

func TestAlertStoreValkeyError(t *testing.T) {
	mr, vc := newTestClient(t)
	as := NewAlertStore(vc)
	mr.Close()

	_, err := as.CreateAlertIfNotDuplicate(context.Background(), testAlert("a1", "dev1", "t"), time.Minute)
	assertUnavailable(t, err)
}
