package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/dto"
)

// HandleHealth はGET /health のハンドラー。
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
