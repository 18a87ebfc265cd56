package anomaly

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// ノード単位レート制限のアクション名
const findingAction = "finding"

// IngestResult はテレメトリ受付結果を表す。
type IngestResult struct {
	Accepted          bool                     `json:"accepted"`
	Discarded         bool                     `json:"discarded,omitempty"` // 誤検知フィンガープリントに一致し記録しなかった
	Finding           *model.AnomalyFinding    `json:"finding,omitempty"`
	Escalation        *model.EscalationOutcome `json:"escalation,omitempty"`
	EscalationPending bool                     `json:"escalation_pending,omitempty"` // 記録済み、エスカレーションは再処理待ち
}

// Scorer はテレメトリを検証・採点する。
type Scorer struct {
	nodes     store.NodeStore
	findings  store.FindingStore
	limiter   FindingLimiter
	escalator Escalator
	profiles  map[string]ProtocolProfile
	cfg       *config.Config
	now       func() time.Time
	newID     func() string
}

// NewScorer は新しいScorerを生成する。
func NewScorer(ns store.NodeStore, fs store.FindingStore, fl FindingLimiter, esc Escalator, cfg *config.Config) *Scorer {
	return &Scorer{
		nodes:     ns,
		findings:  fs,
		limiter:   fl,
		escalator: esc,
		profiles:  DefaultProfiles,
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Ingest はノードから受信したテレメトリを処理する。
// 拒否時は*RejectErrorを返し、検知結果は記録しない。
// 検知結果の記録前のストア障害はErrStoreUnavailableをラップしたエラーを返す。
// 記録後のエスカレーション失敗は受付済みとして返し、Redriveで再処理する。
func (s *Scorer) Ingest(ctx context.Context, nodeID string, payload, signature []byte) (*IngestResult, error) {
	now := s.now()

	// 1. 登録済みかつ有効なノードか
	node, err := s.authenticateNode(ctx, nodeID, now)
	if err != nil {
		return nil, s.rejected(nodeID, "", err)
	}

	// 2. 署名検証（ペイロード解析前）
	if err := VerifySignature(node.PublicKey, payload, signature); err != nil {
		return nil, s.rejected(nodeID, "", reject(RejectIdentity, ReasonSignatureInvalid, err))
	}

	// 3. ペイロード解析と報告対象プロトコルの確認
	t, err := decodeTelemetry(payload)
	if err != nil {
		return nil, s.rejected(nodeID, "", reject(RejectMalformed, ReasonInvalidPayload, err))
	}
	if !node.CanReport(t.Protocol) {
		return nil, s.rejected(nodeID, t.DeviceID, reject(RejectCapability, ReasonProtocolNotAllowed, nil))
	}

	// 4. プロファイルに対する範囲検証
	profile, ok := s.profiles[t.Protocol]
	if !ok {
		return nil, s.rejected(nodeID, t.DeviceID, reject(RejectMalformed, ReasonInvalidPayload, apperr.ErrInvalidTelemetry))
	}
	if err := profile.Validate(t); err != nil {
		return nil, s.rejected(nodeID, t.DeviceID, reject(RejectMalformed, ReasonOutOfRange, err))
	}

	// 5. 採点
	score, confidence := profile.Assess(t)

	// 6. 誤検知フィンガープリント
	fp, err := s.findings.IsFalsePositive(ctx, t.AnomalyType, t.DeviceID)
	if err != nil {
		return nil, err
	}
	if fp {
		slog.Info("誤検知として確認済みのため破棄",
			"event_id", "INGEST_FP_DISCARD",
			logging.FieldNodeID, nodeID,
			logging.FieldDeviceID, logging.MaskDeviceID(t.DeviceID, s.cfg.LogMaskDeviceID),
			"anomaly_type", t.AnomalyType,
		)
		return &IngestResult{Accepted: true, Discarded: true}, nil
	}

	// 7. ノード単位のレート制限
	exceeded, err := s.limiter.CheckAndIncrement(ctx, "node:"+nodeID, findingAction)
	if err != nil {
		return nil, err
	}
	if exceeded {
		return nil, s.rejected(nodeID, t.DeviceID, reject(RejectRateLimited, ReasonNodeRateLimited, nil))
	}

	severity := model.SeverityFromScore(score)
	f := &model.AnomalyFinding{
		ID:              s.newID(),
		DeviceID:        t.DeviceID,
		Protocol:        t.Protocol,
		AnomalyType:     t.AnomalyType,
		SeverityScore:   score,
		Severity:        severity,
		Confidence:      confidence,
		Evidence:        t.Metrics,
		Note:            t.Evidence,
		ReportingNodeID: nodeID,
		ObservedAt:      t.ObservedAt,
		CreatedAt:       now.Unix(),
		Actionable:      confidence >= s.cfg.MinConfidence && severity.AtLeast(model.SeverityLow),
	}
	if f.ObservedAt == 0 {
		f.ObservedAt = f.CreatedAt
	}
	if err := s.findings.AppendFinding(ctx, f); err != nil {
		return nil, err
	}

	result := &IngestResult{Accepted: true, Finding: f}
	if !f.Actionable {
		slog.Info("検知結果を記録（エスカレーション対象外）",
			"event_id", "INGEST_LOW_CONFIDENCE",
			logging.FieldNodeID, nodeID,
			logging.FieldDeviceID, logging.MaskDeviceID(f.DeviceID, s.cfg.LogMaskDeviceID),
			"finding_id", f.ID,
			"severity", f.Severity,
			"confidence", f.Confidence,
		)
		return result, nil
	}

	slog.Info("検知結果を記録",
		"event_id", "INGEST_FINDING",
		logging.FieldNodeID, nodeID,
		logging.FieldDeviceID, logging.MaskDeviceID(f.DeviceID, s.cfg.LogMaskDeviceID),
		"finding_id", f.ID,
		"severity", f.Severity,
		"confidence", f.Confidence,
	)
	outcome, err := s.escalator.Handle(ctx, f)
	if err != nil {
		slog.Error("エスカレーション失敗（再処理待ち）",
			"event_id", "INGEST_ESCALATION_DEFERRED",
			logging.FieldNodeID, nodeID,
			logging.FieldDeviceID, logging.MaskDeviceID(f.DeviceID, s.cfg.LogMaskDeviceID),
			"finding_id", f.ID,
			logging.FieldError, err,
		)
		result.EscalationPending = true
		return result, nil
	}
	result.Escalation = outcome
	s.resolve(ctx, f.ID)
	return result, nil
}

// resolve は処理済みの検知結果を処理待ちから外す。
// 失敗した場合は再処理で同じ検知結果をもう一度扱う。
func (s *Scorer) resolve(ctx context.Context, findingID string) {
	if _, err := s.findings.ClaimEscalation(ctx, findingID); err != nil {
		slog.Warn("処理待ちの解除に失敗",
			"event_id", "INGEST_PENDING_CLEAR_ERR",
			"finding_id", findingID,
			logging.FieldError, err,
		)
	}
}

// Redrive は処理待ちのまま残った検知結果のエスカレーションを再実行し、処理件数を返す。
// 失敗した検知結果は処理待ちに戻し、次回に回す。
func (s *Scorer) Redrive(ctx context.Context) (int, error) {
	now := s.now()
	ids, err := s.findings.PendingEscalations(ctx, now.Add(-config.EscalationRedriveDelay).Unix(), config.EscalationRedriveBatch)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, id := range ids {
		claimed, err := s.findings.ClaimEscalation(ctx, id)
		if err != nil {
			return done, err
		}
		if !claimed {
			continue // 他の処理が取得済み
		}
		f, err := s.findings.GetFinding(ctx, id)
		if errors.Is(err, apperr.ErrFindingNotFound) {
			continue
		}
		if err == nil {
			_, err = s.escalator.Handle(ctx, f)
		}
		if err != nil {
			if derr := s.findings.DeferEscalation(ctx, id, now.Unix()); derr != nil {
				return done, errors.Join(err, derr)
			}
			return done, err
		}
		done++
		slog.Info("エスカレーションを再処理",
			"event_id", "INGEST_ESCALATION_REDRIVE",
			logging.FieldDeviceID, logging.MaskDeviceID(f.DeviceID, s.cfg.LogMaskDeviceID),
			"finding_id", id,
		)
	}
	return done, nil
}

// RunRedrive はctxが終了するまで一定間隔でRedriveを実行する。
func (s *Scorer) RunRedrive(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Redrive(ctx); err != nil && ctx.Err() == nil {
				slog.Error("エスカレーション再処理失敗",
					"event_id", "INGEST_REDRIVE_ERR",
					logging.FieldError, err,
				)
			}
		}
	}
}

// authenticateNode はノードの登録状態と証明書の有効性を確認する。
func (s *Scorer) authenticateNode(ctx context.Context, nodeID string, now time.Time) (*model.MonitoringNode, error) {
	node, err := s.nodes.GetNode(ctx, nodeID)
	if err != nil {
		if errors.Is(err, apperr.ErrNodeNotFound) {
			return nil, reject(RejectIdentity, ReasonUnknownNode, err)
		}
		return nil, err
	}
	if !node.Active {
		return nil, reject(RejectIdentity, ReasonInactiveNode, apperr.ErrNodeInactive)
	}
	if now.Unix() >= node.NotAfter {
		return nil, reject(RejectIdentity, ReasonCertificateExpired, apperr.ErrCertificateExpired)
	}
	revoked, err := s.nodes.IsRevoked(ctx, node.Serial)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, reject(RejectIdentity, ReasonCertificateRevoked, apperr.ErrCertificateRevoked)
	}
	return node, nil
}

// rejected は拒否をログに記録する。ストア障害はそのまま返す。
func (s *Scorer) rejected(nodeID, deviceID string, err error) error {
	rerr, ok := AsReject(err)
	if !ok {
		return err
	}
	slog.Warn("テレメトリ受付拒否",
		"event_id", "INGEST_REJECT",
		logging.FieldNodeID, nodeID,
		logging.FieldDeviceID, logging.MaskDeviceID(deviceID, s.cfg.LogMaskDeviceID),
		"class", rerr.Class,
		logging.FieldReason, rerr.Reason,
	)
	return rerr
}

// decodeTelemetry はペイロードを解析し、必須項目を検証する。
func decodeTelemetry(payload []byte) (*model.Telemetry, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	var t model.Telemetry
	if err := dec.Decode(&t); err != nil {
		return nil, errors.Join(apperr.ErrInvalidTelemetry, err)
	}
	switch {
	case t.DeviceID == "" || len(t.DeviceID) > 128:
		return nil, apperr.NewValidationError("device_id", "must be 1-128 characters")
	case !model.IsKnownProtocol(t.Protocol):
		return nil, apperr.NewValidationError("protocol", "unknown protocol")
	case t.AnomalyType == "":
		return nil, apperr.NewValidationError("anomaly_type", "required")
	case len(t.Metrics) == 0:
		return nil, apperr.NewValidationError("metrics", "required")
	case t.ObservedAt < 0:
		return nil, apperr.NewValidationError("observed_at", "must not be negative")
	}
	return &t, nil
}
