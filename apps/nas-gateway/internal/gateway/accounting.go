package gateway

import (
	"context"
	"log/slog"

	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/engine"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/radius"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/store"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// ProcessStart はAcct-Start処理を行う。計上済みオクテット数を起点として記録する。
func (p *Processor) ProcessStart(ctx context.Context, attrs *radius.AccountingAttributes, srcIP, traceID string) error {
	now := p.now().Unix()
	s := &store.AcctSession{
		AcctSessionID: attrs.AcctSessionID,
		DeviceID:      attrs.DeviceID,
		NetworkID:     p.resolveNetwork(ctx, srcIP, traceID),
		NASIP:         srcIP,
		Octets:        int64(attrs.TotalOctets()),
		StartedAt:     now,
		UpdatedAt:     now,
	}
	if err := p.sessions.Put(ctx, s); err != nil {
		return err
	}

	slog.Info("accounting start",
		logging.FieldEventID, "ACCT_START",
		logging.FieldTraceID, traceID,
		logging.FieldSrcIP, srcIP,
		logging.FieldDeviceID, logging.MaskDeviceID(attrs.DeviceID, p.maskDeviceID),
		"acct_session_id", attrs.AcctSessionID,
		"network_id", s.NetworkID,
	)
	return nil
}

// ProcessInterim はAcct-Interim処理を行う。前回計上分との差分をtransmitとして判定する。
func (p *Processor) ProcessInterim(ctx context.Context, attrs *radius.AccountingAttributes, srcIP, traceID string) error {
	s, err := p.account(ctx, attrs, srcIP, traceID)
	if err != nil {
		return err
	}
	return p.sessions.Put(ctx, s)
}

// ProcessStop はAcct-Stop処理を行う。最終差分を計上した後に接続解除を通知する。
func (p *Processor) ProcessStop(ctx context.Context, attrs *radius.AccountingAttributes, srcIP, traceID string) error {
	s, err := p.account(ctx, attrs, srcIP, traceID)
	if err != nil {
		return err
	}

	if s.NetworkID != "" {
		if err := p.engine.Disconnect(engine.WithTraceID(ctx, traceID), s.DeviceID, s.NetworkID); err != nil {
			slog.Error("接続解除通知失敗",
				logging.FieldEventID, "ENGINE_API_ERR",
				logging.FieldTraceID, traceID,
				logging.FieldDeviceID, logging.MaskDeviceID(s.DeviceID, p.maskDeviceID),
				logging.FieldError, err,
			)
		}
	}

	slog.Info("accounting stop",
		logging.FieldEventID, "ACCT_STOP",
		logging.FieldTraceID, traceID,
		logging.FieldSrcIP, srcIP,
		logging.FieldDeviceID, logging.MaskDeviceID(s.DeviceID, p.maskDeviceID),
		"acct_session_id", attrs.AcctSessionID,
		"session_time", attrs.SessionTime,
	)
	return p.sessions.Delete(ctx, attrs.AcctSessionID)
}

// account は報告されたオクテット数と計上済み値の差分をtransmit判定にかけ、
// 更新後のセッションを返す。判定結果に関わらず計上済み値は更新する。
// アカウンティングは拒否できないため、拒否された差分はDeniedOctetsに積算する。
func (p *Processor) account(ctx context.Context, attrs *radius.AccountingAttributes, srcIP, traceID string) (*store.AcctSession, error) {
	s, err := p.sessions.Get(ctx, attrs.AcctSessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		slog.Warn("Startなしのアカウンティング",
			logging.FieldEventID, "ACCT_SEQUENCE_ERR",
			logging.FieldTraceID, traceID,
			logging.FieldSrcIP, srcIP,
			"acct_session_id", attrs.AcctSessionID,
		)
		s = &store.AcctSession{
			AcctSessionID: attrs.AcctSessionID,
			DeviceID:      attrs.DeviceID,
			NetworkID:     p.resolveNetwork(ctx, srcIP, traceID),
			NASIP:         srcIP,
			StartedAt:     p.now().Unix(),
		}
	}

	total := int64(attrs.TotalOctets())
	delta := total - s.Octets
	if delta < 0 {
		// NAS側カウンタのリセット
		delta = total
	}

	if delta > 0 {
		size := delta
		result, err := p.decide(ctx, traceID, &model.DecisionRequest{
			DeviceID:  s.DeviceID,
			Action:    model.ActionTransmit,
			NetworkID: s.NetworkID,
			DataSize:  &size,
			Context:   map[string]string{"acct_session_id": attrs.AcctSessionID},
		})
		if err != nil {
			slog.Error("transmit判定失敗",
				logging.FieldEventID, "ENGINE_API_ERR",
				logging.FieldTraceID, traceID,
				logging.FieldDeviceID, logging.MaskDeviceID(s.DeviceID, p.maskDeviceID),
				logging.FieldError, err,
			)
		} else if !result.Allowed {
			s.DeniedOctets += delta
			eventID := "GW_TRANSMIT_DENIED"
			if result.Reason == model.ReasonQuotaExceeded {
				eventID = "GW_QUOTA_EXCEEDED"
			}
			slog.Warn("transmit拒否後の通信を計上",
				logging.FieldEventID, eventID,
				logging.FieldTraceID, traceID,
				logging.FieldDeviceID, logging.MaskDeviceID(s.DeviceID, p.maskDeviceID),
				logging.FieldReason, result.Reason,
				"acct_session_id", attrs.AcctSessionID,
				"octets", delta,
				"denied_octets", s.DeniedOctets,
			)
		}
	}

	s.Octets = total
	s.UpdatedAt = p.now().Unix()
	return s, nil
}
