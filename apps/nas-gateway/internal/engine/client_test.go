package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/config"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{EngineURL: url}
}

func ctxWithTrace() context.Context {
	return WithTraceID(context.Background(), "test-trace-id-001")
}

func TestDecideSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/decisions" {
			t.Errorf("expected /api/v1/decisions, got %s", r.URL.Path)
		}
		if r.Header.Get(HeaderTraceID) != "test-trace-id-001" {
			t.Errorf("X-Trace-ID = %q", r.Header.Get(HeaderTraceID))
		}

		var req model.DecisionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.DeviceID != "aa:bb:cc:dd:ee:01" || req.Action != model.ActionConnect || req.NetworkID != "net-1" {
			t.Errorf("予期しないリクエスト: %+v", req)
		}

		w.Header().Set(HeaderContentType, ContentTypeJSON)
		json.NewEncoder(w).Encode(model.DecisionResult{Allowed: false, MatchedRule: model.RuleDefaultDeny, Reason: model.ReasonNetworkFull})
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL + "/"))
	res, err := client.Decide(ctxWithTrace(), &model.DecisionRequest{
		DeviceID: "aa:bb:cc:dd:ee:01", Action: model.ActionConnect, NetworkID: "net-1",
	})
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if res.Allowed || res.Reason != model.ReasonNetworkFull {
		t.Errorf("result = %+v", res)
	}
}

func TestDecideTraceIDMissing(t *testing.T) {
	client := NewClient(newTestConfig("http://127.0.0.1:1"))
	_, err := client.Decide(context.Background(), &model.DecisionRequest{})
	if !errors.Is(err, ErrTraceIDMissing) {
		t.Errorf("expected ErrTraceIDMissing, got %v", err)
	}
}

func TestDecideErrors(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		wantUnavailable bool
	}{
		{"bad request", http.StatusBadRequest, `{"type":"about:blank","title":"Bad Request","detail":"invalid request body","status":400}`, false},
		{"store unavailable", http.StatusServiceUnavailable, `{"type":"about:blank","title":"Service Unavailable","status":503}`, true},
		{"empty result", http.StatusOK, `{}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(newTestConfig(server.URL))
			_, err := client.Decide(ctxWithTrace(), &model.DecisionRequest{DeviceID: "x", Action: "authenticate"})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, apperr.ErrEngineUnavailable); got != tt.wantUnavailable {
				t.Errorf("ErrEngineUnavailable = %v, want %v (err=%v)", got, tt.wantUnavailable, err)
			}
		})
	}
}

func TestDisconnect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/disconnect" {
			t.Errorf("expected /api/v1/disconnect, got %s", r.URL.Path)
		}
		var req disconnectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.DeviceID != "aa:bb:cc:dd:ee:01" || req.NetworkID != "net-1" {
			t.Errorf("予期しないリクエスト: %+v", req)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL))
	if err := client.Disconnect(ctxWithTrace(), "aa:bb:cc:dd:ee:01", "net-1"); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
}

func TestConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(newTestConfig(url))
	_, err := client.Decide(ctxWithTrace(), &model.DecisionRequest{})

	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Errorf("expected ConnectionError, got %T: %v", err, err)
	}
	if !errors.Is(err, apperr.ErrEngineUnavailable) {
		t.Errorf("expected ErrEngineUnavailable, got %v", err)
	}
}

func TestCircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL))
	for range config.CBFailureThreshold {
		_, _ = client.Decide(ctxWithTrace(), &model.DecisionRequest{})
	}

	_, err := client.Decide(ctxWithTrace(), &model.DecisionRequest{})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
	if got := calls.Load(); got != int32(config.CBFailureThreshold) {
		t.Errorf("engine calls = %d, want %d", got, config.CBFailureThreshold)
	}
}
