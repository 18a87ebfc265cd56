package decision

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// Evaluator はデフォルト拒否の認可判定を行う。
// ブラックリストとブロックを先に拒否判定し、その後アクションごとのルールグループを評価する。
type Evaluator struct {
	devices  store.DeviceStore
	sessions store.SessionStore
	networks store.NetworkStore
	usage    store.UsageStore
	blocks   store.BlockStore
	limiter  RateLimiter
	trust    TrustGate
	features map[string]string
	cfg      *config.Config
	now      func() time.Time
}

// NewEvaluator は新しいEvaluatorを生成する。
func NewEvaluator(
	ds store.DeviceStore,
	ss store.SessionStore,
	ns store.NetworkStore,
	us store.UsageStore,
	bs store.BlockStore,
	rl RateLimiter,
	tg TrustGate,
	cfg *config.Config,
) *Evaluator {
	return &Evaluator{
		devices:  ds,
		sessions: ss,
		networks: ns,
		usage:    us,
		blocks:   bs,
		limiter:  rl,
		trust:    tg,
		features: cfg.FeatureTable(),
		cfg:      cfg,
		now:      time.Now,
	}
}

// attempt は1回の判定要求の評価状態を表す。
type attempt struct {
	req      *model.DecisionRequest
	now      time.Time
	exceeded bool   // レート上限超過
	feature  string // 機能アクションが要求する機能
}

// verdict はルールグループの評価結果を表す。
// 許可の場合ruleは一致したルールグループ名、拒否の場合reasonは理由コード。
type verdict struct {
	allowed bool
	rule    string
	reason  string
}

func allow(rule string) verdict    { return verdict{allowed: true, rule: rule, reason: model.ReasonAllowed} }
func refuse(reason string) verdict { return verdict{reason: reason} }

type ruleGroup func(ctx context.Context, a *attempt) (verdict, error)

// Decide は要求されたアクションの可否を判定する。
// 入力不備・未知のアクション・述語不成立はいずれも拒否結果として返し、エラーにはしない。
// ストア障害時は拒否結果とErrStoreUnavailableをラップしたエラーを返す。
func (e *Evaluator) Decide(ctx context.Context, req *model.DecisionRequest) (*model.DecisionResult, error) {
	var feature string
	if req != nil {
		feature = e.features[req.Action]
	}

	// 1. 入力検証（状態は変更しない）
	if err := validateRequest(req, feature); err != nil {
		slog.Debug("判定要求の入力不備",
			"event_id", "DECIDE_MALFORMED",
			"error", err,
		)
		return deny(model.RuleDefaultDeny, model.ReasonMalformedRequest), nil
	}

	// 2. アクション分類
	group := e.groupFor(req.Action, feature)
	if group == nil {
		return e.unknownAction(ctx, req)
	}

	// 3. レートカウンタ加算（許可・拒否にかかわらず）
	exceeded, err := e.limiter.CheckAndIncrement(ctx, req.DeviceID, req.Action)
	if err != nil {
		return e.storeFailure(req, err)
	}

	a := &attempt{req: req, now: e.now(), exceeded: exceeded, feature: feature}

	// 4. 拒否判定（ブラックリスト → ブロック）
	vetoRule, err := e.veto(ctx, a)
	if err != nil {
		return e.storeFailure(req, err)
	}
	if vetoRule != "" {
		reason := model.ReasonBlacklisted
		if vetoRule == model.RuleBlockVeto {
			reason = model.ReasonBlocked
		}
		return deny(vetoRule, reason), nil
	}

	// 5. ルールグループ評価
	v, err := group(ctx, a)
	if err != nil {
		return e.storeFailure(req, err)
	}

	// 6. 一致するルールグループが無ければ拒否
	if !v.allowed {
		return deny(model.RuleDefaultDeny, v.reason), nil
	}
	return &model.DecisionResult{Allowed: true, MatchedRule: v.rule, Reason: v.reason}, nil
}

// groupFor はアクションに対応するルールグループを返す。未知のアクションはnil。
func (e *Evaluator) groupFor(action, feature string) ruleGroup {
	switch action {
	case model.ActionAuthenticate:
		return e.authenticate
	case model.ActionConnect:
		return e.connect
	case model.ActionTransmit:
		return e.transmit
	case model.ActionAllocateResources:
		return e.allocateResources
	}
	if feature != "" {
		return e.featureAction
	}
	return nil
}

// veto はブラックリストおよび有効なブロックを確認し、該当するルール名を返す。
func (e *Evaluator) veto(ctx context.Context, a *attempt) (string, error) {
	listed, err := e.devices.IsBlacklisted(ctx, a.req.DeviceID)
	if err != nil {
		return "", err
	}
	if listed {
		return model.RuleBlacklistVeto, nil
	}
	block, err := e.blocks.GetBlock(ctx, a.req.DeviceID, a.now)
	if err != nil {
		return "", err
	}
	if block.ActiveAt(a.now.Unix()) {
		return model.RuleBlockVeto, nil
	}
	return "", nil
}

// gate はレート上限と信頼スコアの共通述語を評価する。
func (e *Evaluator) gate(ctx context.Context, a *attempt) (verdict, bool, error) {
	if a.exceeded {
		return refuse(model.ReasonRateLimited), false, nil
	}
	ok, err := e.trust.Allows(ctx, a.req.DeviceID)
	if err != nil {
		return verdict{}, false, err
	}
	if !ok {
		return refuse(model.ReasonLowTrust), false, nil
	}
	return verdict{}, true, nil
}

// activeSession は有効なセッションの有無を返す。
func (e *Evaluator) activeSession(ctx context.Context, a *attempt) (bool, error) {
	sess, err := e.sessions.GetSession(ctx, a.req.DeviceID, a.now)
	if err != nil {
		return false, err
	}
	return sess.ActiveAt(a.now.Unix()), nil
}

// lookupDevice は登録済みデバイスを取得する。未登録の場合はnil, nilを返す。
func (e *Evaluator) lookupDevice(ctx context.Context, deviceID string) (*model.Device, error) {
	d, err := e.devices.GetDevice(ctx, deviceID)
	if errors.Is(err, apperr.ErrDeviceNotFound) {
		return nil, nil
	}
	return d, err
}

// unknownAction は未知のアクションを拒否する。
// 試行はデバイスごとのunknownカウンタに加算し、上限超過後はレート制限として拒否する。
func (e *Evaluator) unknownAction(ctx context.Context, req *model.DecisionRequest) (*model.DecisionResult, error) {
	exceeded, err := e.limiter.CheckAndIncrement(ctx, req.DeviceID, model.RateBucketUnknown)
	if err != nil {
		return e.storeFailure(req, err)
	}
	if exceeded {
		slog.Warn("未知のアクションの試行が上限を超過",
			"event_id", "DECIDE_UNKNOWN_RATE_LIMITED",
			logging.FieldDeviceID, logging.MaskDeviceID(req.DeviceID, e.cfg.LogMaskDeviceID),
			logging.FieldAction, req.Action,
		)
		return deny(model.RuleDefaultDeny, model.ReasonRateLimited), nil
	}
	return deny(model.RuleDefaultDeny, model.ReasonUnknownAction), nil
}

func (e *Evaluator) storeFailure(req *model.DecisionRequest, err error) (*model.DecisionResult, error) {
	slog.Error("判定中のストア障害",
		"event_id", "DECIDE_STORE_ERR",
		logging.FieldDeviceID, logging.MaskDeviceID(req.DeviceID, e.cfg.LogMaskDeviceID),
		logging.FieldAction, req.Action,
		"error", err,
	)
	if !errors.Is(err, apperr.ErrStoreUnavailable) {
		err = errors.Join(apperr.ErrStoreUnavailable, err)
	}
	return deny(model.RuleDefaultDeny, model.ReasonStoreUnavailable), err
}

func deny(rule, reason string) *model.DecisionResult {
	return &model.DecisionResult{Allowed: false, MatchedRule: rule, Reason: reason}
}
