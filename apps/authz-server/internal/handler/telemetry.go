package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/anomaly"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/dto"
	"github.com/oyaguma3/fleetguard/pkg/httputil"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// テレメトリ送信元の識別ヘッダー
const (
	HeaderNodeID    = "X-Node-ID"
	HeaderSignature = "X-Signature" // ペイロード署名（Base64）
)

// HandleTelemetry はPOST /api/v1/telemetry のハンドラー。
func (h *Handler) HandleTelemetry(c *gin.Context) {
	ctx := c.Request.Context()

	nodeID := c.GetHeader(HeaderNodeID)
	sig, err := base64.StdEncoding.DecodeString(c.GetHeader(HeaderSignature))
	if nodeID == "" || err != nil || len(sig) == 0 {
		httputil.WriteError(c, httputil.Unauthorized("X-Node-ID and X-Signature are required"))
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxTelemetryBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(c, httputil.Problem(http.StatusRequestEntityTooLarge,
				"telemetry payload too large"))
			return
		}
		httputil.WriteError(c, httputil.BadRequest("failed to read body"))
		return
	}

	res, err := h.deps.Ingestor.Ingest(ctx, nodeID, payload, sig)
	if err != nil {
		if rerr, ok := anomaly.AsReject(err); ok {
			httputil.WriteError(c, rejectProblem(rerr))
			return
		}
		slog.Error("telemetry ingest failed",
			logging.FieldTraceID, traceID(c),
			"event_id", "INGEST_ERR",
			logging.FieldNodeID, nodeID,
			"error", err.Error(),
		)
		httputil.WriteError(c, httputil.FromError(err))
		return
	}

	resp := dto.TelemetryResponse{
		Accepted:          res.Accepted,
		Discarded:         res.Discarded,
		Findings:          []*model.AnomalyFinding{},
		Escalation:        res.Escalation,
		EscalationPending: res.EscalationPending,
	}
	if res.Finding != nil {
		resp.Findings = append(resp.Findings, res.Finding)
	}
	c.JSON(http.StatusAccepted, resp)
}

// rejectProblem は拒否分類をHTTPステータスに対応付ける。
func rejectProblem(rerr *anomaly.RejectError) *httputil.ProblemDetail {
	switch rerr.Class {
	case anomaly.RejectIdentity:
		return httputil.Unauthorized(rerr.Reason)
	case anomaly.RejectCapability:
		return httputil.Forbidden(rerr.Reason)
	case anomaly.RejectRateLimited:
		return httputil.TooManyRequests(rerr.Reason)
	default:
		return httputil.BadRequest(rerr.Reason)
	}
}
