package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

var testAlert = &model.Alert{
	ID:       "al-1",
	Type:     "deauth_flood",
	Severity: model.SeverityHigh,
	DeviceID: "aa:bb:cc:dd:ee:01",
}

func TestNotifySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var p Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if p.Event != EventAlert || p.Alert == nil || p.Alert.ID != "al-1" {
			t.Errorf("予期しないペイロード: %+v", p)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := NewWebhookNotifier(&config.Config{AdminWebhookURL: server.URL})
	if err := n.Notify(context.Background(), testAlert); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
}

func TestNotifyRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	n := NewWebhookNotifier(&config.Config{AdminWebhookURL: server.URL})
	err := n.Notify(context.Background(), testAlert)

	var nerr *apperr.NotifyError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NotifyError, got %v", err)
	}
	if nerr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", nerr.StatusCode, http.StatusBadRequest)
	}
	if errors.Is(err, apperr.ErrNotifierUnavailable) {
		t.Error("4xx must not be reported as unavailable")
	}
}

func TestNotifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	n := NewWebhookNotifier(&config.Config{AdminWebhookURL: server.URL})
	err := n.Notify(context.Background(), testAlert)
	if !errors.Is(err, apperr.ErrNotifierUnavailable) {
		t.Errorf("expected ErrNotifierUnavailable, got %v", err)
	}
}

func TestNotifyConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	n := NewWebhookNotifier(&config.Config{AdminWebhookURL: url})
	err := n.Notify(context.Background(), testAlert)
	if !errors.Is(err, apperr.ErrNotifierUnavailable) {
		t.Errorf("expected ErrNotifierUnavailable, got %v", err)
	}
}

func TestNotifyCircuitOpen(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := NewWebhookNotifier(&config.Config{AdminWebhookURL: server.URL})
	for range config.CBFailureThreshold {
		_ = n.Notify(context.Background(), testAlert)
	}

	err := n.Notify(context.Background(), testAlert)
	if !errors.Is(err, apperr.ErrNotifierUnavailable) {
		t.Errorf("expected ErrNotifierUnavailable, got %v", err)
	}
	if got := calls.Load(); got != int32(config.CBFailureThreshold) {
		t.Errorf("webhook calls = %d, want %d", got, config.CBFailureThreshold)
	}
}
