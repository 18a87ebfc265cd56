package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/config"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/engine"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/radius"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// AccessProcessor はAccess-Request処理のインターフェース
type AccessProcessor interface {
	ProcessAccess(ctx context.Context, attrs *radius.AccessAttributes, srcIP, traceID string) (*AccessResult, error)
}

// AccountingProcessor はAccounting処理のインターフェース
type AccountingProcessor interface {
	// ProcessStart はAcct-Start処理を行う
	ProcessStart(ctx context.Context, attrs *radius.AccountingAttributes, srcIP, traceID string) error
	// ProcessInterim はAcct-Interim処理を行う
	ProcessInterim(ctx context.Context, attrs *radius.AccountingAttributes, srcIP, traceID string) error
	// ProcessStop はAcct-Stop処理を行う
	ProcessStop(ctx context.Context, attrs *radius.AccountingAttributes, srcIP, traceID string) error
}

// Processor はNAS要求をエンジン判定に変換するメインロジック。
type Processor struct {
	engine           EngineClient
	clients          store.ClientStore
	sessions         store.AcctSessionStore
	defaultNetworkID string
	sessionTimeout   time.Duration
	maskDeviceID     bool
	newClass         func() string
	now              func() time.Time
}

// NewProcessor は新しいProcessorを生成する。
func NewProcessor(ec EngineClient, cs store.ClientStore, ss store.AcctSessionStore, cfg *config.Config, newClass func() string) *Processor {
	return &Processor{
		engine:           ec,
		clients:          cs,
		sessions:         ss,
		defaultNetworkID: cfg.DefaultNetworkID,
		sessionTimeout:   cfg.SessionTimeout,
		maskDeviceID:     cfg.LogMaskDeviceID,
		newClass:         newClass,
		now:              time.Now,
	}
}

// resolveNetwork は送信元NASの所属ネットワークを返す。
// NAS未登録またはネットワーク未設定の場合はDEFAULT_NETWORK_IDを使う。
func (p *Processor) resolveNetwork(ctx context.Context, srcIP, traceID string) string {
	c, err := p.clients.GetClient(ctx, srcIP)
	if err != nil {
		slog.Warn("NASクライアント検索エラー",
			logging.FieldEventID, "VALKEY_CONN_ERR",
			logging.FieldTraceID, traceID,
			logging.FieldSrcIP, srcIP,
			logging.FieldError, err,
		)
		return p.defaultNetworkID
	}
	return c.NetworkOr(p.defaultNetworkID)
}

// decide はトレースIDを付与してエンジンに判定を要求する。
func (p *Processor) decide(ctx context.Context, traceID string, req *model.DecisionRequest) (*model.DecisionResult, error) {
	result, err := p.engine.Decide(engine.WithTraceID(ctx, traceID), req)
	if err != nil {
		return nil, err
	}
	if !result.Allowed {
		slog.Info("エンジン判定拒否",
			logging.FieldEventID, "GW_DENY",
			logging.FieldTraceID, traceID,
			logging.FieldDeviceID, logging.MaskDeviceID(req.DeviceID, p.maskDeviceID),
			logging.FieldAction, req.Action,
			logging.FieldRule, result.MatchedRule,
			logging.FieldReason, result.Reason,
		)
	}
	return result, nil
}
