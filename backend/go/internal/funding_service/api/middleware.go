package api

import (
	"net/http"
	"time"

	"FundingIntel/backend/go/internal/models"
	"FundingIntel/backend/go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader 是请求 ID 的请求/响应头。
	RequestIDHeader = "X-Request-ID"
	loggerKey       = "request_logger"
)

// RequestContext 创建一个 Gin 中间件，为每个请求分配 ID 并绑定带追踪字段的日志记录器。
// 请求结束后记录方法、路径、状态码与耗时。
func RequestContext(base *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		log := base.WithTrace(requestID)
		c.Set(loggerKey, log)

		start := time.Now()
		c.Next()

		info := models.RequestInfo{
			Method:     c.Request.Method,
			Path:       c.FullPath(),
			RemoteAddr: c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Status:     c.Writer.Status(),
			LatencyMs:  time.Since(start).Milliseconds(),
		}
		if info.Path == "" {
			info.Path = c.Request.URL.Path
		}
		entry := log.WithRequest(info)
		if info.Status >= http.StatusInternalServerError {
			entry.Warn("请求完成")
			return
		}
		entry.Info("请求完成")
	}
}

// Recovery 捕获处理函数中的 panic，并返回统一的错误结构。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestLogger(c).WithField("panic", recovered).Error("请求处理发生 panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{
			Error: ErrorDetail{Message: "Internal server error.", Code: "INTERNAL"},
		})
	})
}

// requestLogger 取出当前请求的日志记录器。
func requestLogger(c *gin.Context) *logger.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*logger.Logger); ok {
			return log
		}
	}
	return logger.Discard()
}
