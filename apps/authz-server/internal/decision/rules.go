package decision

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// ルールグループ名（許可時のmatched_rule）
const (
	RuleAuthenticate      = "authenticate"
	RuleConnect           = "connect"
	RuleTransmit          = "transmit"
	RuleAllocateResources = "allocate_resources"
	RuleFeaturePrefix     = "feature:"
)

// authenticate: 登録済みデバイス ∧ レート上限内 ∧ 信頼スコア → セッション作成
func (e *Evaluator) authenticate(ctx context.Context, a *attempt) (verdict, error) {
	d, err := e.lookupDevice(ctx, a.req.DeviceID)
	if err != nil {
		return verdict{}, err
	}
	if d == nil {
		n, err := e.devices.IncrAuthFailure(ctx, a.req.DeviceID, config.AuthFailureTTL)
		if err != nil {
			return verdict{}, err
		}
		slog.Warn("未登録デバイスの認証要求",
			"event_id", "DECIDE_UNKNOWN_DEVICE",
			logging.FieldDeviceID, logging.MaskDeviceID(a.req.DeviceID, e.cfg.LogMaskDeviceID),
			"failures", n,
		)
		return refuse(model.ReasonUnknownDevice), nil
	}
	if v, ok, err := e.gate(ctx, a); !ok {
		return v, err
	}
	if _, err := e.sessions.CreateSession(ctx, a.req.DeviceID, a.now, e.cfg.SessionTTL); err != nil {
		return verdict{}, err
	}
	return allow(RuleAuthenticate), nil
}

// connect: 有効なセッション ∧ レート上限内 ∧ 信頼スコア ∧ ネットワーク存在 ∧ 空き容量 → 接続作成
func (e *Evaluator) connect(ctx context.Context, a *attempt) (verdict, error) {
	if ok, err := e.activeSession(ctx, a); !ok {
		return refuse(model.ReasonNoSession), err
	}
	if v, ok, err := e.gate(ctx, a); !ok {
		return v, err
	}
	nw, err := e.networks.GetNetwork(ctx, a.req.NetworkID)
	if err != nil {
		if errors.Is(err, apperr.ErrNetworkNotFound) {
			return refuse(model.ReasonUnknownNetwork), nil
		}
		return verdict{}, err
	}
	ok, err := e.networks.TryConnect(ctx, nw.ID, a.req.DeviceID, nw.MaxDevices, a.now)
	if err != nil {
		return verdict{}, err
	}
	if !ok {
		return refuse(model.ReasonNetworkFull), nil
	}
	return allow(RuleConnect), nil
}

// transmit: 有効なセッション ∧ レート上限内 ∧ 信頼スコア ∧ 接続中 ∧ 使用量+サイズ ≦ クォータ → 使用量加算
func (e *Evaluator) transmit(ctx context.Context, a *attempt) (verdict, error) {
	if ok, err := e.activeSession(ctx, a); !ok {
		return refuse(model.ReasonNoSession), err
	}
	if v, ok, err := e.gate(ctx, a); !ok {
		return v, err
	}
	connected, err := e.networks.IsConnected(ctx, a.req.NetworkID, a.req.DeviceID)
	if err != nil {
		return verdict{}, err
	}
	if !connected {
		return refuse(model.ReasonNotConnected), nil
	}
	d, err := e.lookupDevice(ctx, a.req.DeviceID)
	if err != nil {
		return verdict{}, err
	}
	if d == nil {
		return refuse(model.ReasonUnknownDevice), nil
	}
	ok, _, err := e.usage.TryConsume(ctx, a.req.DeviceID, *a.req.DataSize, d.Quota, e.cfg.UsageWindow)
	if err != nil {
		return verdict{}, err
	}
	if !ok {
		return refuse(model.ReasonQuotaExceeded), nil
	}
	return allow(RuleTransmit), nil
}

// featureAction: 有効なセッション ∧ 宣言済み機能 ∧ レート上限内 ∧ 信頼スコア
func (e *Evaluator) featureAction(ctx context.Context, a *attempt) (verdict, error) {
	if ok, err := e.activeSession(ctx, a); !ok {
		return refuse(model.ReasonNoSession), err
	}
	d, err := e.lookupDevice(ctx, a.req.DeviceID)
	if err != nil {
		return verdict{}, err
	}
	if d == nil {
		return refuse(model.ReasonUnknownDevice), nil
	}
	if !d.Supports(a.feature) {
		return refuse(model.ReasonFeatureNotSupported), nil
	}
	if v, ok, err := e.gate(ctx, a); !ok {
		return v, err
	}
	return allow(RuleFeaturePrefix + a.req.Action), nil
}

// allocateResources: 有効なセッション ∧ レート上限内 ∧ 信頼スコア ∧ network_adminロール ∧ 要求量 > 0
func (e *Evaluator) allocateResources(ctx context.Context, a *attempt) (verdict, error) {
	if ok, err := e.activeSession(ctx, a); !ok {
		return refuse(model.ReasonNoSession), err
	}
	if v, ok, err := e.gate(ctx, a); !ok {
		return v, err
	}
	d, err := e.lookupDevice(ctx, a.req.DeviceID)
	if err != nil {
		return verdict{}, err
	}
	if d == nil || d.Role != model.RoleNetworkAdmin || *a.req.Resources <= 0 {
		return refuse(model.ReasonNotAuthorized), nil
	}
	return allow(RuleAllocateResources), nil
}
