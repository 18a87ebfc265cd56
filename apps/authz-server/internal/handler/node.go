package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/dto"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/registrar"
	"github.com/oyaguma3/fleetguard/pkg/httputil"
	"github.com/oyaguma3/fleetguard/pkg/logging"
)

// HandleRegisterNode はPOST /api/v1/nodes のハンドラー。
// 新規登録は201、同一公開鍵での再登録は200を返す。
func (h *Handler) HandleRegisterNode(c *gin.Context) {
	var req registrar.RegisterRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	res, err := h.deps.Registrar.Register(c.Request.Context(), &req)
	if err != nil {
		h.nodeError(c, "", err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

// HandleRenewNode はPUT /api/v1/nodes/:id/certificate のハンドラー。
func (h *Handler) HandleRenewNode(c *gin.Context) {
	nodeID := c.Param("id")
	var req registrar.RenewRequest
	if !httputil.BindJSON(c, &req) {
		return
	}
	res, err := h.deps.Registrar.Renew(c.Request.Context(), nodeID, &req)
	if err != nil {
		h.nodeError(c, nodeID, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleListNodes はGET /api/v1/admin/nodes のハンドラー。
func (h *Handler) HandleListNodes(c *gin.Context) {
	nodes, err := h.deps.Nodes.ListNodes(c.Request.Context())
	if err != nil {
		h.adminError(c, "NODE_LIST_ERR", err)
		return
	}
	c.JSON(http.StatusOK, nodes)
}

// HandleRevokeSerial はPOST /api/v1/admin/revocations のハンドラー。
func (h *Handler) HandleRevokeSerial(c *gin.Context) {
	var req dto.RevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteError(c, httputil.BadRequest("serial is required"))
		return
	}
	deactivated, err := h.deps.Registrar.Revoke(c.Request.Context(), req.Serial)
	if err != nil {
		h.adminError(c, "NODE_REVOKE_ERR", err)
		return
	}
	if deactivated == nil {
		deactivated = []string{}
	}
	c.JSON(http.StatusOK, dto.RevokeResponse{Serial: req.Serial, DeactivatedNodes: deactivated})
}

func (h *Handler) nodeError(c *gin.Context, nodeID string, err error) {
	slog.Warn("node registration failed",
		logging.FieldTraceID, traceID(c),
		"event_id", "NODE_ERR",
		logging.FieldNodeID, nodeID,
		"error", err.Error(),
	)
	httputil.WriteError(c, httputil.FromError(err))
}
