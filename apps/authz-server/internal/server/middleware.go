package server

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/handler"
	"github.com/oyaguma3/fleetguard/pkg/httputil"
	"github.com/oyaguma3/fleetguard/pkg/logging"
)

const (
	traceIDHeader    = "X-Trace-ID"
	adminTokenHeader = "X-Admin-Token"
	adminActorHeader = "X-Admin-Actor"
)

// TraceIDMiddleware はX-Trace-IDヘッダからトレースIDを取得する。
// ヘッダがない場合は新規に採番し、レスポンスヘッダにも設定する。
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set(handler.TraceIDKey, traceID)
		c.Header(traceIDHeader, traceID)
		c.Next()
	}
}

// LoggingMiddleware はリクエストログを出力する。
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		traceID, _ := c.Get(handler.TraceIDKey)

		slog.Info("request completed",
			logging.FieldTraceID, traceID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			logging.FieldHTTPStatus, c.Writer.Status(),
			logging.FieldLatencyMs, latency.Milliseconds(),
		)
	}
}

// RecoveryMiddleware はパニックからの復旧を行う。
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				traceID, _ := c.Get(handler.TraceIDKey)
				slog.Error("panic recovered",
					logging.FieldTraceID, traceID,
					"error", err,
				)
				httputil.AbortWithError(c, httputil.InternalServerError("An unexpected error occurred"))
			}
		}()
		c.Next()
	}
}

// AdminAuthMiddleware は管理APIの共有トークンを検証する。
// X-Admin-Actorヘッダがあれば操作者として記録する。
func AdminAuthMiddleware(token string) gin.HandlerFunc {
	expected := []byte(token)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(adminTokenHeader))
		if len(got) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
			slog.Warn("admin authentication failed",
				logging.FieldTraceID, c.GetString(handler.TraceIDKey),
				"event_id", "ADMIN_AUTH_ERR",
				"path", c.Request.URL.Path,
				"remote_addr", c.ClientIP(),
			)
			httputil.AbortWithError(c, httputil.Unauthorized("invalid admin token"))
			return
		}
		if a := c.GetHeader(adminActorHeader); a != "" {
			c.Set(handler.ActorKey, a)
		}
		c.Next()
	}
}

// bodyLimitMiddleware は管理APIのリクエストボディ上限を設定する。
func bodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
