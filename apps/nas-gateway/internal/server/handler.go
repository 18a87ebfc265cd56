// Package server はnas-gatewayのRADIUS UDPサーバーを提供する。
package server

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/gateway"
	radiuspkg "github.com/oyaguma3/fleetguard/apps/nas-gateway/internal/radius"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"layeh.com/radius"
)

// Handler はRADIUSリクエストを処理するハンドラ。
// 認証ポート用とアカウンティングポート用で受け付けるCodeが異なる。
type Handler struct {
	access     gateway.AccessProcessor
	acct       gateway.AccountingProcessor
	statusCode radius.Code
}

// NewAuthHandler は認証ポート用のHandlerを生成する
func NewAuthHandler(ap gateway.AccessProcessor) *Handler {
	return &Handler{access: ap, statusCode: radius.CodeAccessAccept}
}

// NewAcctHandler はアカウンティングポート用のHandlerを生成する
func NewAcctHandler(acp gateway.AccountingProcessor) *Handler {
	return &Handler{acct: acp, statusCode: radius.CodeAccountingResponse}
}

// ServeRADIUS はRADIUSリクエストを処理する
func (h *Handler) ServeRADIUS(w radius.ResponseWriter, r *radius.Request) {
	traceID := uuid.New().String()
	srcIP := extractIP(r.RemoteAddr)

	slog.Debug("RADIUSパケット受信",
		logging.FieldEventID, "PKT_RECV",
		logging.FieldTraceID, traceID,
		logging.FieldSrcIP, srcIP,
		"code", r.Code,
	)

	switch {
	case r.Code == radius.CodeAccessRequest && h.access != nil:
		h.handleAccessRequest(w, r, traceID, srcIP)

	case r.Code == radius.CodeAccountingRequest && h.acct != nil:
		h.handleAccountingRequest(w, r, traceID, srcIP)

	case r.Code == radius.CodeStatusServer:
		h.handleStatusServer(w, r, traceID, srcIP)

	default:
		slog.Warn("未対応のRADIUS Code",
			logging.FieldEventID, "PKT_UNKNOWN_CODE",
			logging.FieldTraceID, traceID,
			logging.FieldSrcIP, srcIP,
			"code", r.Code,
		)
		// 応答なし
	}
}

// handleAccessRequest はAccess-Requestを処理する
func (h *Handler) handleAccessRequest(w radius.ResponseWriter, r *radius.Request, traceID, srcIP string) {
	secret := r.Packet.Secret

	if !radiuspkg.VerifyMessageAuthenticator(r.Packet, secret) {
		slog.Warn("Message-Authenticator検証失敗",
			logging.FieldEventID, "PKT_MA_INVALID",
			logging.FieldTraceID, traceID,
			logging.FieldSrcIP, srcIP,
		)
		return // 応答なし
	}

	attrs, err := radiuspkg.ExtractAccessAttributes(r.Packet)
	if err != nil {
		slog.Warn("属性抽出失敗",
			logging.FieldEventID, "RADIUS_PARSE_ERR",
			logging.FieldTraceID, traceID,
			logging.FieldSrcIP, srcIP,
			logging.FieldReason, err.Error(),
		)
		return // 応答なし
	}

	result, err := h.access.ProcessAccess(context.Background(), attrs, srcIP, traceID)
	if err != nil {
		// エンジン不達時は応答せずNASの再送に委ねる
		slog.Error("アクセス判定エラー",
			logging.FieldEventID, "ENGINE_API_ERR",
			logging.FieldTraceID, traceID,
			logging.FieldError, err,
		)
		return
	}

	var resp *radius.Packet
	if result.Allowed {
		resp = radiuspkg.BuildAccessAccept(r.Packet, secret, &radiuspkg.AcceptParams{
			Class:          result.Class,
			SessionTimeout: result.SessionTimeout,
			ProxyStates:    attrs.ProxyStates,
		})
	} else {
		resp = radiuspkg.BuildAccessReject(r.Packet, secret, result.Reason, attrs.ProxyStates)
	}
	h.write(w, resp, traceID)
}

// handleAccountingRequest はAccounting-Requestを処理する
func (h *Handler) handleAccountingRequest(w radius.ResponseWriter, r *radius.Request, traceID, srcIP string) {
	if !radiuspkg.VerifyAccountingAuthenticator(r.Packet, r.Secret) {
		slog.Warn("Authenticator検証失敗",
			logging.FieldEventID, "RADIUS_AUTH_ERR",
			logging.FieldTraceID, traceID,
			logging.FieldSrcIP, srcIP,
		)
		return // パケット破棄
	}

	attrs, err := radiuspkg.ExtractAccountingAttributes(r.Packet)
	if err != nil {
		slog.Warn("属性抽出失敗",
			logging.FieldEventID, "RADIUS_PARSE_ERR",
			logging.FieldTraceID, traceID,
			logging.FieldSrcIP, srcIP,
			logging.FieldReason, err.Error(),
		)
		return // パケット破棄
	}

	ctx := context.Background()
	var procErr error
	switch attrs.AcctStatusType {
	case radiuspkg.AcctStatusTypeStart:
		procErr = h.acct.ProcessStart(ctx, attrs, srcIP, traceID)
	case radiuspkg.AcctStatusTypeStop:
		procErr = h.acct.ProcessStop(ctx, attrs, srcIP, traceID)
	case radiuspkg.AcctStatusTypeInterim:
		procErr = h.acct.ProcessInterim(ctx, attrs, srcIP, traceID)
	default:
		slog.Warn("未対応のAcct-Status-Type",
			logging.FieldEventID, "RADIUS_UNKNOWN_CODE",
			logging.FieldTraceID, traceID,
			logging.FieldSrcIP, srcIP,
			"acct_status_type", attrs.AcctStatusType,
		)
		return // パケット破棄
	}

	// 処理エラーがあってもAccounting-Responseは返す
	if procErr != nil {
		slog.Error("アカウンティング処理エラー",
			logging.FieldEventID, "SYS_ERR",
			logging.FieldTraceID, traceID,
			logging.FieldError, procErr,
		)
	}

	h.write(w, radiuspkg.BuildAccountingResponse(r.Packet, attrs.ProxyStates), traceID)
}

// handleStatusServer はStatus-Serverリクエストに応答する
func (h *Handler) handleStatusServer(w radius.ResponseWriter, r *radius.Request, traceID, srcIP string) {
	resp := radiuspkg.HandleStatusServer(r.Packet, r.Packet.Secret, h.statusCode, srcIP, traceID)
	if resp == nil {
		return // Message-Authenticator検証失敗 → 無応答
	}
	h.write(w, resp, traceID)
}

func (h *Handler) write(w radius.ResponseWriter, resp *radius.Packet, traceID string) {
	if err := w.Write(resp); err != nil {
		slog.Error("RADIUS応答送信失敗",
			logging.FieldEventID, "PKT_SEND_ERR",
			logging.FieldTraceID, traceID,
			logging.FieldError, err,
		)
	}
}
