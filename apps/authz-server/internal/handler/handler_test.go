package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/anomaly"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/registrar"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockDecider はテスト用のモック
type mockDecider struct {
	result *model.DecisionResult
	err    error
	got    *model.DecisionRequest
}

func (m *mockDecider) Decide(ctx context.Context, req *model.DecisionRequest) (*model.DecisionResult, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockIngestor はテスト用のモック
type mockIngestor struct {
	result  *anomaly.IngestResult
	err     error
	nodeID  string
	payload []byte
	sig     []byte
}

func (m *mockIngestor) Ingest(ctx context.Context, nodeID string, payload, signature []byte) (*anomaly.IngestResult, error) {
	m.nodeID, m.payload, m.sig = nodeID, payload, signature
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockRegistrar はテスト用のモック
type mockRegistrar struct {
	result      *registrar.RegisterResult
	deactivated []string
	err         error
}

func (m *mockRegistrar) Register(ctx context.Context, req *registrar.RegisterRequest) (*registrar.RegisterResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockRegistrar) Renew(ctx context.Context, nodeID string, req *registrar.RenewRequest) (*registrar.RegisterResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockRegistrar) Revoke(ctx context.Context, serial string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.deactivated, nil
}

// mockEscalations はテスト用のモック
type mockEscalations struct {
	state   model.EscalationState
	finding *model.AnomalyFinding
	err     error
	actor   string
}

func (m *mockEscalations) State(ctx context.Context, deviceID string) (model.EscalationState, error) {
	return m.state, m.err
}

func (m *mockEscalations) Unblock(ctx context.Context, deviceID, actor string) error {
	m.actor = actor
	return m.err
}

func (m *mockEscalations) Acknowledge(ctx context.Context, alertID, actor string) error {
	m.actor = actor
	return m.err
}

func (m *mockEscalations) MarkFalsePositive(ctx context.Context, findingID, actor string) (*model.AnomalyFinding, error) {
	m.actor = actor
	if m.err != nil {
		return nil, m.err
	}
	return m.finding, nil
}

// mockTrust はテスト用のモック
type mockTrust struct {
	score *model.TrustScore
	err   error
}

func (m *mockTrust) Get(ctx context.Context, deviceID string) (*model.TrustScore, error) {
	return m.score, m.err
}

// mockRates はテスト用のモック
type mockRates struct {
	counts map[string]int64
	err    error
	peeked []string
}

func (m *mockRates) Peek(ctx context.Context, subject, action string) (int64, error) {
	m.peeked = append(m.peeked, subject+"/"+action)
	return m.counts[action], m.err
}

func (m *mockRates) Limit(action string) int {
	if action == model.ActionConnect {
		return 30
	}
	return 5
}

func (m *mockRates) Window() time.Duration {
	return time.Minute
}

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestHandler(deps Deps) *Handler {
	h := NewHandler(deps, &config.Config{LogMaskDeviceID: true})
	h.now = func() time.Time { return fixedNow }
	return h
}

// serve はハンドラーを単一ルートに登録してリクエストを処理する。
func serve(method, route, target string, body []byte, header map[string]string, fn gin.HandlerFunc) *httptest.ResponseRecorder {
	engine := gin.New()
	engine.Handle(method, route, fn)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return b
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(Deps{})
	w := serve(http.MethodGet, "/health", "/health", nil, nil, h.HandleHealth)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %q, want %q", resp["status"], "ok")
	}
}

func TestActor(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if got := actor(c); got != "admin" {
		t.Errorf("actor() = %q, want %q", got, "admin")
	}
	c.Set(ActorKey, "ops-1")
	if got := actor(c); got != "ops-1" {
		t.Errorf("actor() = %q, want %q", got, "ops-1")
	}
}
