package audit

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// entry は監査ログ1行のうちテストで確認する項目。
type entry struct {
	Level          string `json:"level"`
	App            string `json:"app"`
	EventID        string `json:"event_id"`
	Msg            string `json:"msg"`
	Operation      string `json:"operation"`
	TargetType     string `json:"target_type"`
	TargetKey      string `json:"target_key"`
	TargetDeviceID string `json:"target_device_id"`
	AdminUser      string `json:"admin_user"`
	Details        string `json:"details"`
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) entry {
	t.Helper()
	var e entry
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("監査ログがJSONとして読めない: %v (%s)", err, buf.String())
	}
	return e
}

func TestLogger_Write(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "ops-alice").Write(Record{
		Op:       OpUpdate,
		Target:   TargetDevice,
		Key:      "dev:3c:71:bf:12:34:56",
		DeviceID: "3c:71:bf:12:34:56",
		Msg:      "device updated",
	})

	got := decodeEntry(t, &buf)
	want := entry{
		Level:          "INFO",
		App:            "admin-tui",
		EventID:        "AUDIT_LOG",
		Msg:            "device updated",
		Operation:      "update",
		TargetType:     "device",
		TargetKey:      "dev:3c:71:bf:12:34:56",
		TargetDeviceID: "3c:71:bf:12:34:56",
		AdminUser:      "ops-alice",
	}
	if got != want {
		t.Errorf("entry = %+v, want %+v", got, want)
	}
}

func TestLogger_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "admin").LogCreate(TargetClient, "client:192.168.1.1", "")

	out := buf.String()
	for _, key := range []string{"target_device_id", "details"} {
		if strings.Contains(out, key) {
			t.Errorf("%s は出力しない: %s", key, out)
		}
	}
	if e := decodeEntry(t, &buf); e.Msg != "client created" {
		t.Errorf("msg = %q, want client created", e.Msg)
	}
}

func TestLogger_Operations(t *testing.T) {
	tests := []struct {
		name        string
		log         func(l *Logger)
		wantOp      Operation
		wantTarget  TargetType
		wantKey     string
		wantDetails string
	}{
		{
			name:       "update",
			log:        func(l *Logger) { l.LogUpdate(TargetNetwork, "net:office", "") },
			wantOp:     OpUpdate,
			wantTarget: TargetNetwork,
			wantKey:    "net:office",
		},
		{
			name:       "delete",
			log:        func(l *Logger) { l.LogDelete(TargetClient, "client:10.0.0.1", "") },
			wantOp:     OpDelete,
			wantTarget: TargetClient,
			wantKey:    "client:10.0.0.1",
		},
		{
			name:        "import",
			log:         func(l *Logger) { l.LogImport(TargetDevice, 100, "devices.csv") },
			wantOp:      OpImport,
			wantTarget:  TargetDevice,
			wantKey:     "devices.csv",
			wantDetails: "count=100",
		},
		{
			name:        "export",
			log:         func(l *Logger) { l.LogExport(TargetClient, 50, "clients.csv") },
			wantOp:      OpExport,
			wantTarget:  TargetClient,
			wantKey:     "clients.csv",
			wantDetails: "count=50",
		},
		{
			name:       "blacklist on",
			log:        func(l *Logger) { l.LogBlacklist("dev-1", true) },
			wantOp:     OpBlacklist,
			wantTarget: TargetDevice,
			wantKey:    "dev-1",
		},
		{
			name:       "blacklist off",
			log:        func(l *Logger) { l.LogBlacklist("dev-1", false) },
			wantOp:     OpUnblacklist,
			wantTarget: TargetDevice,
			wantKey:    "dev-1",
		},
		{
			name:       "unblock",
			log:        func(l *Logger) { l.LogUnblock("dev-2") },
			wantOp:     OpUnblock,
			wantTarget: TargetBlock,
			wantKey:    "dev-2",
		},
		{
			name:       "acknowledge",
			log:        func(l *Logger) { l.LogAcknowledge("alert-1", "dev-3") },
			wantOp:     OpAcknowledge,
			wantTarget: TargetAlert,
			wantKey:    "alert-1",
		},
		{
			name:        "false positive",
			log:         func(l *Logger) { l.LogFalsePositive("finding-1", "dev-4", "traffic_spike") },
			wantOp:      OpFalsePositive,
			wantTarget:  TargetFinding,
			wantKey:     "finding-1",
			wantDetails: "anomaly_type=traffic_spike",
		},
		{
			name:        "revoke",
			log:         func(l *Logger) { l.LogRevoke("0a1b", []string{"node-1", "node-2"}) },
			wantOp:      OpRevoke,
			wantTarget:  TargetNode,
			wantKey:     "0a1b",
			wantDetails: "deactivated=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLogger(&buf, "admin"))

			e := decodeEntry(t, &buf)
			if e.Operation != string(tt.wantOp) {
				t.Errorf("operation = %s, want %s", e.Operation, tt.wantOp)
			}
			if e.TargetType != string(tt.wantTarget) {
				t.Errorf("target_type = %s, want %s", e.TargetType, tt.wantTarget)
			}
			if e.TargetKey != tt.wantKey {
				t.Errorf("target_key = %s, want %s", e.TargetKey, tt.wantKey)
			}
			if e.Details != tt.wantDetails {
				t.Errorf("details = %q, want %q", e.Details, tt.wantDetails)
			}
		})
	}
}
