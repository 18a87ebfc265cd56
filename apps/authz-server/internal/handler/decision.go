package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/dto"
	"github.com/oyaguma3/fleetguard/pkg/httputil"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// HandleDecide はPOST /api/v1/decisions のハンドラー。
// 拒否は200で返し、ストア障害のみ503とする。
func (h *Handler) HandleDecide(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid request body",
			logging.FieldTraceID, traceID(c),
			"event_id", "DECIDE_BAD_BODY",
			"error", err.Error(),
		)
		httputil.WriteError(c, httputil.BadRequest("invalid request body"))
		return
	}

	res, err := h.deps.Decider.Decide(ctx, &req)
	if err != nil {
		slog.Error("decision failed",
			logging.FieldTraceID, traceID(c),
			"event_id", "DECIDE_ERR",
			logging.FieldDeviceID, h.mask(req.DeviceID),
			logging.FieldAction, req.Action,
			"error", err.Error(),
		)
		httputil.WriteError(c, httputil.FromError(err))
		return
	}

	eventID := "DECIDE_ALLOW"
	if !res.Allowed {
		eventID = "DECIDE_DENY"
	}
	slog.Info("decision",
		logging.FieldTraceID, traceID(c),
		"event_id", eventID,
		logging.FieldDeviceID, h.mask(req.DeviceID),
		logging.FieldAction, req.Action,
		logging.FieldRule, res.MatchedRule,
		logging.FieldReason, res.Reason,
	)
	c.JSON(http.StatusOK, res)
}

// HandleDisconnect はPOST /api/v1/disconnect のハンドラー。
func (h *Handler) HandleDisconnect(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.DisconnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteError(c, httputil.BadRequest("device_id and network_id are required"))
		return
	}
	if err := h.deps.Networks.Disconnect(ctx, req.NetworkID, req.DeviceID); err != nil {
		slog.Error("disconnect failed",
			logging.FieldTraceID, traceID(c),
			"event_id", "DISCONNECT_ERR",
			logging.FieldDeviceID, h.mask(req.DeviceID),
			"error", err.Error(),
		)
		httputil.WriteError(c, httputil.FromError(err))
		return
	}
	slog.Info("device disconnected",
		logging.FieldTraceID, traceID(c),
		"event_id", "DISCONNECT_OK",
		logging.FieldDeviceID, h.mask(req.DeviceID),
		"network_id", req.NetworkID,
	)
	c.Status(http.StatusNoContent)
}
