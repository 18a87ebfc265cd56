// Package handler はHTTPリクエストハンドラーを提供する。
package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/anomaly"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/registrar"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// TraceIDKey はコンテキストにTraceIDを格納するキー。
const TraceIDKey = "trace_id"

// ActorKey はコンテキストに管理操作の実行者を格納するキー。
const ActorKey = "actor"

// Decider は認可判定を定義する。
type Decider interface {
	Decide(ctx context.Context, req *model.DecisionRequest) (*model.DecisionResult, error)
}

// Ingestor はテレメトリ受付を定義する。
type Ingestor interface {
	Ingest(ctx context.Context, nodeID string, payload, signature []byte) (*anomaly.IngestResult, error)
}

// NodeRegistrar は監視ノードの登録管理を定義する。
type NodeRegistrar interface {
	Register(ctx context.Context, req *registrar.RegisterRequest) (*registrar.RegisterResult, error)
	Renew(ctx context.Context, nodeID string, req *registrar.RenewRequest) (*registrar.RegisterResult, error)
	Revoke(ctx context.Context, serial string) ([]string, error)
}

// Escalations はエスカレーション状態の参照と管理操作を定義する。
type Escalations interface {
	State(ctx context.Context, deviceID string) (model.EscalationState, error)
	Unblock(ctx context.Context, deviceID, actor string) error
	Acknowledge(ctx context.Context, alertID, actor string) error
	MarkFalsePositive(ctx context.Context, findingID, actor string) (*model.AnomalyFinding, error)
}

// TrustReader は信頼スコアの参照を定義する。
type TrustReader interface {
	Get(ctx context.Context, deviceID string) (*model.TrustScore, error)
}

// RateReader はデバイスの試行カウンタの参照を定義する。
type RateReader interface {
	Peek(ctx context.Context, subject, action string) (int64, error)
	Limit(action string) int
	Window() time.Duration
}

// Deps はハンドラーの依存オブジェクトをまとめたもの。
type Deps struct {
	Decider    Decider
	Ingestor   Ingestor
	Registrar  NodeRegistrar
	Escalation Escalations
	Trust      TrustReader
	Rates      RateReader

	Devices  store.DeviceStore
	Networks store.NetworkStore
	Usage    store.UsageStore
	Blocks   store.BlockStore
	Alerts   store.AlertStore
	Findings store.FindingStore
	Nodes    store.NodeStore
}

// Handler はauthz-serverのAPIハンドラー。
type Handler struct {
	deps Deps
	cfg  *config.Config
	now  func() time.Time
}

// NewHandler は新しいHandlerを生成する。
func NewHandler(deps Deps, cfg *config.Config) *Handler {
	return &Handler{
		deps: deps,
		cfg:  cfg,
		now:  time.Now,
	}
}

func traceID(c *gin.Context) string {
	return c.GetString(TraceIDKey)
}

func actor(c *gin.Context) string {
	if a := c.GetString(ActorKey); a != "" {
		return a
	}
	return "admin"
}

func (h *Handler) mask(deviceID string) string {
	return logging.MaskDeviceID(deviceID, h.cfg.LogMaskDeviceID)
}
