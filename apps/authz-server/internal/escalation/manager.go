package escalation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/store"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/trust"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// AlertTypePermanentBlock は永続ブロック時のアラート種別。
const AlertTypePermanentBlock = "permanent_block"

// Stores はManagerが使用するストアをまとめたもの。
type Stores struct {
	Blocks   store.BlockStore
	Findings store.FindingStore
	Alerts   store.AlertStore
	Sessions store.SessionStore
	Networks store.NetworkStore
}

// Manager はデバイスごとのエスカレーション状態を管理する。
// 状態はストアのブロック・警告から都度導出し、個別には保持しない。
type Manager struct {
	blocks   store.BlockStore
	findings store.FindingStore
	alerts   store.AlertStore
	sessions store.SessionStore
	networks store.NetworkStore
	trust    TrustAdjuster
	notifier Notifier
	cfg      *config.Config
	now      func() time.Time
	newID    func() string
}

// NewManager は新しいManagerを生成する。notifierがnilの場合は通知せず、管理者の確認操作を待つ。
func NewManager(st Stores, ta TrustAdjuster, n Notifier, cfg *config.Config) *Manager {
	return &Manager{
		blocks:   st.Blocks,
		findings: st.Findings,
		alerts:   st.Alerts,
		sessions: st.Sessions,
		networks: st.Networks,
		trust:    ta,
		notifier: n,
		cfg:      cfg,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// State はデバイスの現在の状態を返す。
// 永続ブロック > 一時ブロック > 警告 > 平常 の順に判定する。
func (m *Manager) State(ctx context.Context, deviceID string) (model.EscalationState, error) {
	st, _, err := m.stateAt(ctx, deviceID, m.now())
	return st, err
}

// stateAt は状態と、ブロック中であれば有効なブロックを返す。
func (m *Manager) stateAt(ctx context.Context, deviceID string, now time.Time) (model.EscalationState, *model.Block, error) {
	block, err := m.blocks.GetBlock(ctx, deviceID, now)
	if err != nil {
		return "", nil, err
	}
	if block.ActiveAt(now.Unix()) {
		if block.Kind == model.BlockPermanent {
			return model.StatePermanentlyBlocked, block, nil
		}
		return model.StateTemporarilyBlocked, block, nil
	}
	w, err := m.blocks.GetWarning(ctx, deviceID, now)
	if err != nil {
		return "", nil, err
	}
	if w != nil {
		return model.StateWarned, nil, nil
	}
	return model.StateNormal, nil, nil
}

// Handle は対応が必要な検知結果を処理する。
// 状態遷移を記録してから信頼スコアを下げる。途中で失敗した場合も、同じ検知結果で再実行できる。
func (m *Manager) Handle(ctx context.Context, f *model.AnomalyFinding) (*model.EscalationOutcome, error) {
	now := m.now()
	prev, active, err := m.stateAt(ctx, f.DeviceID, now)
	if err != nil {
		return nil, err
	}
	out := &model.EscalationOutcome{
		DeviceID:      f.DeviceID,
		FindingID:     f.ID,
		PreviousState: prev,
		State:         prev,
		Action:        model.EscalationNone,
	}
	if !f.Severity.AtLeast(model.SeverityLow) {
		return out, nil
	}

	severe := f.Severity.AtLeast(model.SeverityHigh)
	switch {
	case prev == model.StatePermanentlyBlocked:
		// 解除は管理操作のみ
	case prev == model.StateTemporarilyBlocked:
		if severe {
			err = m.considerPermanent(ctx, f, active, now, out)
		}
	case severe:
		err = m.temporaryBlock(ctx, f, now, out)
	default:
		err = m.warn(ctx, f, now, out)
	}
	if err != nil {
		return nil, err
	}

	ts, err := m.trust.Adjust(ctx, f.DeviceID, trust.DeltaForFinding(f), f.AnomalyType)
	if err != nil {
		return nil, err
	}
	out.TrustScore = ts
	return out, nil
}

// warn は期限付きの警告を記録する。接続には影響しない。
func (m *Manager) warn(ctx context.Context, f *model.AnomalyFinding, now time.Time, out *model.EscalationOutcome) error {
	ttl := min(m.cfg.WarningTTL, config.MaxWarningTTL)
	w := &model.Warning{
		DeviceID:  f.DeviceID,
		FindingID: f.ID,
		Reason:    f.AnomalyType,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	if err := m.blocks.PutWarning(ctx, w); err != nil {
		return err
	}
	slog.Info("デバイスに警告を記録",
		"event_id", "ESC_WARN",
		logging.FieldDeviceID, logging.MaskDeviceID(f.DeviceID, m.cfg.LogMaskDeviceID),
		"finding_id", f.ID,
		"severity", f.Severity,
		"expires_at", w.ExpiresAt,
	)
	out.Warning = w
	out.State = model.StateWarned
	out.Action = model.EscalationWarn
	return nil
}

// temporaryBlock は一時ブロックを設定し、アラートを発行する。
// ブロック期間は過去の一時ブロック回数に応じて延長する。
func (m *Manager) temporaryBlock(ctx context.Context, f *model.AnomalyFinding, now time.Time, out *model.EscalationOutcome) error {
	history, err := m.blocks.BlockHistory(ctx, f.DeviceID)
	if err != nil {
		return err
	}
	prior := 0
	for _, b := range history {
		if b.Kind == model.BlockTemporary {
			prior++
		}
	}
	duration := TempBlockDuration(m.cfg.TempBlockBase, prior)

	b := &model.Block{
		DeviceID:  f.DeviceID,
		Kind:      model.BlockTemporary,
		Reason:    f.AnomalyType,
		FindingID: f.ID,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(duration).Unix(),
	}
	if err := m.applyBlock(ctx, b); err != nil {
		return err
	}
	slog.Warn("デバイスを一時ブロック",
		"event_id", "ESC_TEMP_BLOCK",
		logging.FieldDeviceID, logging.MaskDeviceID(f.DeviceID, m.cfg.LogMaskDeviceID),
		"finding_id", f.ID,
		"duration", duration.String(),
		"prior_blocks", prior,
	)
	out.Block = b
	out.State = model.StateTemporarilyBlocked
	out.Action = model.EscalationTempBlock

	return m.raise(ctx, &model.Alert{
		Type:             f.AnomalyType,
		Severity:         model.SeverityHigh,
		DeviceID:         f.DeviceID,
		RelatedFindingID: f.ID,
		CreatedAt:        now.Unix(),
	}, out)
}

// considerPermanent は永続ブロックの全条件を満たす場合に限り永続ブロックへ移行する。
// 条件を満たさない場合は既存の一時ブロックを維持し、アラートのみ発行する。
func (m *Manager) considerPermanent(ctx context.Context, f *model.AnomalyFinding, active *model.Block, now time.Time, out *model.EscalationOutcome) error {
	ok, err := m.permanentEligible(ctx, f, active, now)
	if err != nil {
		return err
	}
	if !ok {
		return m.raise(ctx, &model.Alert{
			Type:             f.AnomalyType,
			Severity:         model.SeverityHigh,
			DeviceID:         f.DeviceID,
			RelatedFindingID: f.ID,
			CreatedAt:        now.Unix(),
		}, out)
	}

	b := &model.Block{
		DeviceID:  f.DeviceID,
		Kind:      model.BlockPermanent,
		Reason:    f.AnomalyType,
		FindingID: f.ID,
		CreatedAt: now.Unix(),
	}
	if err := m.applyBlock(ctx, b); err != nil {
		return err
	}
	slog.Warn("デバイスを永続ブロック",
		"event_id", "ESC_PERM_BLOCK",
		logging.FieldDeviceID, logging.MaskDeviceID(f.DeviceID, m.cfg.LogMaskDeviceID),
		"finding_id", f.ID,
	)
	out.Block = b
	out.State = model.StatePermanentlyBlocked
	out.Action = model.EscalationPermanentBlock

	return m.raise(ctx, &model.Alert{
		Type:             AlertTypePermanentBlock,
		Severity:         model.SeverityCritical,
		DeviceID:         f.DeviceID,
		RelatedFindingID: f.ID,
		CreatedAt:        now.Unix(),
	}, out)
}

// permanentEligible は永続ブロックの条件を評価する。
// 重大度critical、信頼度、別ノードからの裏付け件数、管理者確認済みアラートの全てを要求する。
// 裏付けと確認済みアラートは現在の一時ブロック以降のものに限る。解除済みの過去の事案は数えない。
func (m *Manager) permanentEligible(ctx context.Context, f *model.AnomalyFinding, active *model.Block, now time.Time) (bool, error) {
	if f.Severity != model.SeverityCritical || f.Confidence < m.cfg.PermanentMinConfidence {
		return false, nil
	}

	history, err := m.findings.ListFindings(ctx, f.DeviceID, config.FindingHistoryMax)
	if err != nil {
		return false, err
	}
	since := max(now.Add(-m.cfg.CorroborationWindow).Unix(), active.CreatedAt)
	corroborating := CountCorroborating(history, f, active.FindingID, since)
	if corroborating < m.cfg.CorroborationMin {
		slog.Info("永続ブロック条件未達（裏付け不足）",
			"event_id", "ESC_PERM_PENDING",
			logging.FieldDeviceID, logging.MaskDeviceID(f.DeviceID, m.cfg.LogMaskDeviceID),
			"corroborating", corroborating,
			"block_created_at", active.CreatedAt,
		)
		return false, nil
	}

	alerts, err := m.alerts.ListAlerts(ctx, f.DeviceID)
	if err != nil {
		return false, err
	}
	if ConfirmedForBlock(alerts, active) {
		return true, nil
	}
	slog.Info("永続ブロック条件未達（管理者未確認）",
		"event_id", "ESC_PERM_PENDING",
		logging.FieldDeviceID, logging.MaskDeviceID(f.DeviceID, m.cfg.LogMaskDeviceID),
		"corroborating", corroborating,
		"block_created_at", active.CreatedAt,
	)
	return false, nil
}

// ConfirmedForBlock はブロック中の事案に対する確認済みアラートがあるかを返す。
// ブロックの原因となった検知結果のアラート、またはブロック以降に発行されたアラートが対象。
func ConfirmedForBlock(alerts []*model.Alert, block *model.Block) bool {
	for _, a := range alerts {
		if !a.Confirmed() {
			continue
		}
		if (block.FindingID != "" && a.RelatedFindingID == block.FindingID) || a.CreatedAt >= block.CreatedAt {
			return true
		}
	}
	return false
}

// applyBlock はブロックを記録し、セッションと接続を破棄する。
func (m *Manager) applyBlock(ctx context.Context, b *model.Block) error {
	if err := m.blocks.PutBlock(ctx, b); err != nil {
		return err
	}
	if err := m.sessions.RevokeSession(ctx, b.DeviceID); err != nil {
		return err
	}
	_, err := m.networks.DisconnectAll(ctx, b.DeviceID)
	return err
}

// raise はアラートを作成し、通知する。同一(種別, デバイス)のアラートはクールダウン中は作成しない。
// 通知失敗はエスカレーションを失敗させない。
func (m *Manager) raise(ctx context.Context, a *model.Alert, out *model.EscalationOutcome) error {
	a.ID = m.newID()
	created, err := m.alerts.CreateAlertIfNotDuplicate(ctx, a, m.cfg.AlertCooldown)
	if err != nil {
		return err
	}
	if !created {
		out.AlertSuppressed = true
		slog.Debug("重複アラートを抑止",
			"event_id", "ESC_ALERT_DEDUP",
			logging.FieldDeviceID, logging.MaskDeviceID(a.DeviceID, m.cfg.LogMaskDeviceID),
			"alert_type", a.Type,
		)
		return nil
	}
	out.Alert = a

	if m.notifier == nil {
		return nil
	}
	if err := m.notifier.Notify(ctx, a); err != nil {
		slog.Error("アラート通知失敗",
			"event_id", "ESC_NOTIFY_ERR",
			"alert_id", a.ID,
			"error", err,
		)
		return nil
	}
	if err := m.alerts.MarkNotified(ctx, a.ID); err != nil {
		return err
	}
	a.AdminNotified = true
	return nil
}

// Unblock は管理者操作によりブロックと警告を解除する。
func (m *Manager) Unblock(ctx context.Context, deviceID, actor string) error {
	block, err := m.blocks.GetBlock(ctx, deviceID, m.now())
	if err != nil {
		return err
	}
	if block == nil {
		return apperr.ErrBlockNotFound
	}
	if err := m.blocks.DeleteBlock(ctx, deviceID); err != nil {
		return err
	}
	if err := m.blocks.ClearWarning(ctx, deviceID); err != nil {
		return err
	}
	slog.Info("ブロック解除",
		"event_id", "ESC_UNBLOCK",
		logging.FieldDeviceID, logging.MaskDeviceID(deviceID, m.cfg.LogMaskDeviceID),
		"kind", block.Kind,
		"actor", actor,
	)
	return nil
}

// Acknowledge は管理者によるアラート確認を記録する。
func (m *Manager) Acknowledge(ctx context.Context, alertID, actor string) error {
	if err := m.alerts.Acknowledge(ctx, alertID, actor); err != nil {
		return err
	}
	slog.Info("アラート確認",
		"event_id", "ESC_ALERT_ACK",
		"alert_id", alertID,
		"actor", actor,
	)
	return nil
}

// MarkFalsePositive は検知結果を誤検知として確認し、同一(種別, デバイス)の以降の報告を抑止する。
func (m *Manager) MarkFalsePositive(ctx context.Context, findingID, actor string) (*model.AnomalyFinding, error) {
	f, err := m.findings.GetFinding(ctx, findingID)
	if err != nil {
		return nil, err
	}
	if err := m.findings.MarkFalsePositive(ctx, f.AnomalyType, f.DeviceID, m.cfg.FalsePositiveCooldown); err != nil {
		return nil, err
	}
	slog.Info("誤検知として確認",
		"event_id", "ESC_FALSE_POSITIVE",
		logging.FieldDeviceID, logging.MaskDeviceID(f.DeviceID, m.cfg.LogMaskDeviceID),
		"finding_id", f.ID,
		"anomaly_type", f.AnomalyType,
		"actor", actor,
	)
	return f, nil
}

// TempBlockDuration は一時ブロック期間を返す。
// base × (1 + 過去の一時ブロック回数) を[TempBlockMin, TempBlockMax]に丸める。
func TempBlockDuration(base time.Duration, prior int) time.Duration {
	d := base * time.Duration(1+prior)
	if d < config.TempBlockMin || base <= 0 {
		return config.TempBlockMin
	}
	return min(d, config.TempBlockMax)
}

// CountCorroborating は現在の検知結果を裏付ける過去の検知結果の報告ノード数を返す。
// since以降に記録された重大度high以上の検知結果を、報告ノード単位で数える。
// blockFindingIDの検知結果はsinceより前でも数える。
func CountCorroborating(history []*model.AnomalyFinding, current *model.AnomalyFinding, blockFindingID string, since int64) int {
	nodes := make(map[string]struct{})
	for _, h := range history {
		if h.ID == current.ID || h.DeviceID != current.DeviceID {
			continue
		}
		if !h.Severity.AtLeast(model.SeverityHigh) {
			continue
		}
		if h.CreatedAt < since && (blockFindingID == "" || h.ID != blockFindingID) {
			continue
		}
		nodes[h.ReportingNodeID] = struct{}{}
	}
	return len(nodes)
}
