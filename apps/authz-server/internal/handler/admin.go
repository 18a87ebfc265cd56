package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/dto"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/httputil"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

const defaultAlertLimit = 50

// HandlePutDevice はPUT /api/v1/admin/devices/:id のハンドラー。
func (h *Handler) HandlePutDevice(c *gin.Context) {
	deviceID := c.Param("id")
	var req dto.DeviceRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	if !req.Mode.Valid() {
		httputil.WriteError(c, httputil.BadRequest("mode must be read, write or both"))
		return
	}

	now := h.now().Unix()
	d := &model.Device{
		ID:                deviceID,
		SupportedFeatures: req.SupportedFeatures,
		Quota:             req.Quota,
		Mode:              req.Mode,
		Role:              req.Role,
		Protocol:          req.Protocol,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if d.SupportedFeatures == nil {
		d.SupportedFeatures = []string{}
	}
	existing, err := h.deps.Devices.GetDevice(c.Request.Context(), deviceID)
	switch {
	case err == nil:
		d.CreatedAt = existing.CreatedAt
	case !errors.Is(err, apperr.ErrDeviceNotFound):
		h.adminError(c, "DEVICE_PUT_ERR", err)
		return
	}
	if err := h.deps.Devices.PutDevice(c.Request.Context(), d); err != nil {
		h.adminError(c, "DEVICE_PUT_ERR", err)
		return
	}
	slog.Info("device registered",
		logging.FieldTraceID, traceID(c),
		"event_id", "DEVICE_PUT",
		logging.FieldDeviceID, h.mask(deviceID),
		"actor", actor(c),
	)
	c.JSON(http.StatusOK, d)
}

// HandleListDevices はGET /api/v1/admin/devices のハンドラー。
func (h *Handler) HandleListDevices(c *gin.Context) {
	ids, err := h.deps.Devices.ListDevices(c.Request.Context())
	if err != nil {
		h.adminError(c, "DEVICE_LIST_ERR", err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

// HandleGetDevice はGET /api/v1/admin/devices/:id のハンドラー。
// デバイス情報にエスカレーション状態・信頼スコア・使用量を付与して返す。
func (h *Handler) HandleGetDevice(c *gin.Context) {
	ctx := c.Request.Context()
	deviceID := c.Param("id")
	now := h.now()

	d, err := h.deps.Devices.GetDevice(ctx, deviceID)
	if err != nil {
		h.adminError(c, "DEVICE_GET_ERR", err)
		return
	}
	resp := dto.DeviceStatusResponse{Device: d}
	if resp.State, err = h.deps.Escalation.State(ctx, deviceID); err != nil {
		h.adminError(c, "DEVICE_GET_ERR", err)
		return
	}
	if resp.Block, err = h.deps.Blocks.GetBlock(ctx, deviceID, now); err != nil {
		h.adminError(c, "DEVICE_GET_ERR", err)
		return
	}
	if resp.Warning, err = h.deps.Blocks.GetWarning(ctx, deviceID, now); err != nil {
		h.adminError(c, "DEVICE_GET_ERR", err)
		return
	}
	if resp.Trust, err = h.deps.Trust.Get(ctx, deviceID); err != nil {
		h.adminError(c, "DEVICE_GET_ERR", err)
		return
	}
	if resp.Usage, err = h.deps.Usage.GetUsage(ctx, deviceID); err != nil {
		h.adminError(c, "DEVICE_GET_ERR", err)
		return
	}
	if resp.RateCounters, err = h.rateCounters(ctx, d); err != nil {
		h.adminError(c, "DEVICE_GET_ERR", err)
		return
	}
	resp.RateWindow = h.deps.Rates.Window().String()
	c.JSON(http.StatusOK, resp)
}

// rateCounters は固定アクション、デバイスが宣言した機能のアクション、
// unknownカウンタの順に現在の試行回数を返す。
func (h *Handler) rateCounters(ctx context.Context, d *model.Device) ([]dto.RateCounter, error) {
	actions := []string{
		model.ActionAuthenticate, model.ActionConnect, model.ActionTransmit, model.ActionAllocateResources,
	}
	var features []string
	for action, feature := range h.cfg.FeatureTable() {
		if d.Supports(feature) {
			features = append(features, action)
		}
	}
	slices.Sort(features)
	actions = append(actions, features...)
	actions = append(actions, model.RateBucketUnknown)

	counters := make([]dto.RateCounter, 0, len(actions))
	for _, action := range actions {
		n, err := h.deps.Rates.Peek(ctx, d.ID, action)
		if err != nil {
			return nil, err
		}
		counters = append(counters, dto.RateCounter{Action: action, Count: n, Limit: h.deps.Rates.Limit(action)})
	}
	return counters, nil
}

// HandlePutNetwork はPUT /api/v1/admin/networks/:id のハンドラー。
func (h *Handler) HandlePutNetwork(c *gin.Context) {
	var req dto.NetworkRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	n := &model.Network{ID: c.Param("id"), Name: req.Name, MaxDevices: req.MaxDevices}
	if err := h.deps.Networks.PutNetwork(c.Request.Context(), n); err != nil {
		h.adminError(c, "NETWORK_PUT_ERR", err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// HandleSetBlacklist はPUT/DELETE /api/v1/admin/blacklist/:id のハンドラー。
func (h *Handler) HandleSetBlacklist(c *gin.Context) {
	deviceID := c.Param("id")
	on := c.Request.Method == http.MethodPut
	if err := h.deps.Devices.SetBlacklisted(c.Request.Context(), deviceID, on); err != nil {
		h.adminError(c, "BLACKLIST_ERR", err)
		return
	}
	slog.Info("blacklist updated",
		logging.FieldTraceID, traceID(c),
		"event_id", "BLACKLIST_SET",
		logging.FieldDeviceID, h.mask(deviceID),
		"blacklisted", on,
		"actor", actor(c),
	)
	c.Status(http.StatusNoContent)
}

// HandleListBlocks はGET /api/v1/admin/blocks のハンドラー。
func (h *Handler) HandleListBlocks(c *gin.Context) {
	blocks, err := h.deps.Blocks.ListBlocks(c.Request.Context(), h.now())
	if err != nil {
		h.adminError(c, "BLOCK_LIST_ERR", err)
		return
	}
	if blocks == nil {
		blocks = []*model.Block{}
	}
	c.JSON(http.StatusOK, blocks)
}

// HandleUnblock はDELETE /api/v1/admin/blocks/:id のハンドラー。
func (h *Handler) HandleUnblock(c *gin.Context) {
	if err := h.deps.Escalation.Unblock(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		h.adminError(c, "UNBLOCK_ERR", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleListAlerts はGET /api/v1/admin/alerts のハンドラー。
func (h *Handler) HandleListAlerts(c *gin.Context) {
	limit := int64(defaultAlertLimit)
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 || n > config.FindingHistoryMax {
			httputil.WriteError(c, httputil.BadRequest("limit must be between 1 and 500"))
			return
		}
		limit = n
	}
	alerts, err := h.deps.Alerts.ListRecentAlerts(c.Request.Context(), limit)
	if err != nil {
		h.adminError(c, "ALERT_LIST_ERR", err)
		return
	}
	if alerts == nil {
		alerts = []*model.Alert{}
	}
	c.JSON(http.StatusOK, alerts)
}

// HandleAcknowledgeAlert はPOST /api/v1/admin/alerts/:id/ack のハンドラー。
func (h *Handler) HandleAcknowledgeAlert(c *gin.Context) {
	if err := h.deps.Escalation.Acknowledge(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		h.adminError(c, "ALERT_ACK_ERR", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleListFindings はGET /api/v1/admin/devices/:id/findings のハンドラー。
func (h *Handler) HandleListFindings(c *gin.Context) {
	findings, err := h.deps.Findings.ListFindings(c.Request.Context(), c.Param("id"), config.FindingHistoryMax)
	if err != nil {
		h.adminError(c, "FINDING_LIST_ERR", err)
		return
	}
	if findings == nil {
		findings = []*model.AnomalyFinding{}
	}
	c.JSON(http.StatusOK, findings)
}

// HandleFalsePositive はPOST /api/v1/admin/findings/:id/false-positive のハンドラー。
func (h *Handler) HandleFalsePositive(c *gin.Context) {
	f, err := h.deps.Escalation.MarkFalsePositive(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		h.adminError(c, "FALSE_POSITIVE_ERR", err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// adminError は管理操作のエラーをログに記録し、ProblemDetailを返す。
func (h *Handler) adminError(c *gin.Context, eventID string, err error) {
	problem := httputil.FromError(err)
	level := slog.LevelError
	if problem.Status < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	slog.Log(c.Request.Context(), level, "admin operation failed",
		logging.FieldTraceID, traceID(c),
		"event_id", eventID,
		"error", err.Error(),
	)
	httputil.WriteError(c, problem)
}
