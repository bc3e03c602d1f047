package models

import "time"

// LogEntry 定义了投递到 Kafka 的结构化日志格式。
type LogEntry struct {
	// ServiceName 是产生这条日志的服务名称，例如 "funding_service"。
	ServiceName string `json:"service_name"`

	// Level 是 logrus 的日志级别。
	Level string `json:"level"`

	// Message 是日志正文。
	Message string `json:"message"`

	// Time 是日志产生的时间。
	Time time.Time `json:"time"`

	// TraceID 用于串联同一个 HTTP 请求产生的日志。
	TraceID string `json:"trace_id,omitempty"`

	// SessionID 标识与此日志相关的对话会话（如果适用）。
	SessionID string `json:"session_id,omitempty"`

	// RequestInfo 包含了触发此日志的 HTTP 请求的详细信息。
	RequestInfo *RequestInfo `json:"request_info,omitempty"`

	// Error 包含了详细的错误信息。
	Error *ErrorInfo `json:"error,omitempty"`

	// Payload 存放其余结构化字段。
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// RequestInfo 存储了关于 HTTP 请求的上下文信息。
type RequestInfo struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	RemoteAddr string `json:"remote_addr"`
	UserAgent  string `json:"user_agent"`
	Status     int    `json:"status,omitempty"`
	LatencyMs  int64  `json:"latency_ms,omitempty"`
}

// ErrorInfo 存储了关于错误的结构化信息。
type ErrorInfo struct {
	Message    string `json:"message"`
	Type       string `json:"type,omitempty"`        // 错误的类型，例如 "storage_error", "validation_error"
	StatusCode int    `json:"status_code,omitempty"` // 相关的HTTP状态码
}
