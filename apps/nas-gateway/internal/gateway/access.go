package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/radius"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// AccessResult はAccess-Request処理結果
type AccessResult struct {
	Allowed        bool
	Reason         string        // 拒否理由（Reply-Messageに使用）
	Class          string        // Accept時のセッショントークン
	SessionTimeout time.Duration // Accept時のSession-Timeout
}

// ProcessAccess はAccess-Requestをauthenticateとconnectの2段階で判定する。
// エンジン到達不能時はエラーを返し、呼び出し側は応答しない。
func (p *Processor) ProcessAccess(ctx context.Context, attrs *radius.AccessAttributes, srcIP, traceID string) (*AccessResult, error) {
	networkID := p.resolveNetwork(ctx, srcIP, traceID)
	reqCtx := map[string]string{"nas_ip": srcIP}
	if attrs.NASIdentifier != "" {
		reqCtx["nas_identifier"] = attrs.NASIdentifier
	}

	auth, err := p.decide(ctx, traceID, &model.DecisionRequest{
		DeviceID: attrs.DeviceID,
		Action:   model.ActionAuthenticate,
		Context:  reqCtx,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !auth.Allowed {
		return &AccessResult{Reason: auth.Reason}, nil
	}

	conn, err := p.decide(ctx, traceID, &model.DecisionRequest{
		DeviceID:  attrs.DeviceID,
		Action:    model.ActionConnect,
		NetworkID: networkID,
		Context:   reqCtx,
	})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if !conn.Allowed {
		return &AccessResult{Reason: conn.Reason}, nil
	}

	result := &AccessResult{
		Allowed:        true,
		Reason:         conn.Reason,
		Class:          p.newClass(),
		SessionTimeout: p.sessionTimeout,
	}
	slog.Info("アクセス許可",
		logging.FieldEventID, "GW_ACCEPT",
		logging.FieldTraceID, traceID,
		logging.FieldSrcIP, srcIP,
		logging.FieldDeviceID, logging.MaskDeviceID(attrs.DeviceID, p.maskDeviceID),
		"network_id", networkID,
		"class", result.Class,
	)
	return result, nil
}
