package monitoring

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

func TestAlertStatus(t *testing.T) {
	tests := []struct {
		name       string
		alert      *model.Alert
		wantStatus string
		wantColor  tcell.Color
	}{
		{
			name:       "未確認",
			alert:      &model.Alert{},
			wantStatus: "pending",
			wantColor:  tcell.ColorRed,
		},
		{
			name:       "通知配送済み",
			alert:      &model.Alert{AdminNotified: true},
			wantStatus: "notified",
			wantColor:  tcell.ColorGreen,
		},
		{
			name:       "管理者確認済みが優先",
			alert:      &model.Alert{AdminNotified: true, Acknowledged: true, AcknowledgedBy: "alice"},
			wantStatus: "ack by alice",
			wantColor:  tcell.ColorGray,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, color := alertStatus(tt.alert)
			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if color != tt.wantColor {
				t.Errorf("color = %v, want %v", color, tt.wantColor)
			}
		})
	}
}

func TestAlertListScreen_HideConfirmed(t *testing.T) {
	s := NewAlertListScreen(nil, nil, nil)
	s.alerts = []*model.Alert{
		{ID: "a1", DeviceID: "dev-1", Severity: model.SeverityHigh},
		{ID: "a2", DeviceID: "dev-2", Severity: model.SeverityCritical, AdminNotified: true},
		{ID: "a3", DeviceID: "dev-3", Severity: model.SeverityLow, Acknowledged: true},
	}

	if got := len(s.getFilteredAlerts()); got != 3 {
		t.Fatalf("全件表示で %d 件, want 3", got)
	}

	s.hideConfirmed = true
	got := s.getFilteredAlerts()
	if len(got) != 1 || got[0].ID != "a1" {
		t.Errorf("未確認のみ表示 = %+v, want [a1]", got)
	}

	s.hideConfirmed = false
	s.filter.SetQuery("critical")
	got = s.getFilteredAlerts()
	if len(got) != 1 || got[0].ID != "a2" {
		t.Errorf("フィルタ結果 = %+v, want [a2]", got)
	}
}

func TestCountStyle(t *testing.T) {
	if got := countStyle(0, "red"); got != "0" {
		t.Errorf("countStyle(0) = %q", got)
	}
	if got := countStyle(3, "red"); got != "[red]3[-]" {
		t.Errorf("countStyle(3) = %q", got)
	}
}

func TestRenderStatistics(t *testing.T) {
	text := renderStatistics(&store.Statistics{
		DeviceCount:    12,
		BlacklistCount: 2,
		BlockCount:     0,
		AlertCount:     5,
	})

	for _, want := range []string{
		"[white::b]Fleet[-::-]",
		"[cyan]Devices:          [-] 12",
		"[cyan]Blacklisted:      [-] [red]2[-]",
		"[cyan]Active Blocks:    [-] 0",
		"[cyan]Alerts:           [-] [yellow]5[-]",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("統計表示に %q が含まれていない:\n%s", want, text)
		}
	}
}
