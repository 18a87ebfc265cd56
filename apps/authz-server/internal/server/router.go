package server

import (
	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/handler"
)

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h *handler.Handler, adminToken string) {
	// ヘルスチェック
	engine.GET("/health", h.HandleHealth)

	// API v1
	v1 := engine.Group("/api/v1")
	{
		v1.POST("/decisions", h.HandleDecide)
		v1.POST("/disconnect", h.HandleDisconnect)
		v1.POST("/telemetry", h.HandleTelemetry)

		// 監視ノード（証明書で認証）
		nodes := v1.Group("/nodes", bodyLimitMiddleware(config.MaxCertificateBytes))
		nodes.POST("", h.HandleRegisterNode)
		nodes.PUT("/:id/certificate", h.HandleRenewNode)
	}

	// 管理API
	admin := v1.Group("/admin", AdminAuthMiddleware(adminToken), bodyLimitMiddleware(config.MaxCertificateBytes))
	{
		admin.GET("/devices", h.HandleListDevices)
		admin.PUT("/devices/:id", h.HandlePutDevice)
		admin.GET("/devices/:id", h.HandleGetDevice)
		admin.GET("/devices/:id/findings", h.HandleListFindings)

		admin.PUT("/networks/:id", h.HandlePutNetwork)

		admin.PUT("/blacklist/:id", h.HandleSetBlacklist)
		admin.DELETE("/blacklist/:id", h.HandleSetBlacklist)

		admin.GET("/blocks", h.HandleListBlocks)
		admin.DELETE("/blocks/:id", h.HandleUnblock)

		admin.GET("/alerts", h.HandleListAlerts)
		admin.POST("/alerts/:id/ack", h.HandleAcknowledgeAlert)

		admin.POST("/findings/:id/false-positive", h.HandleFalsePositive)

		admin.GET("/nodes", h.HandleListNodes)
		admin.POST("/revocations", h.HandleRevokeSerial)
	}
}
