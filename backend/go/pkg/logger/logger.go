package logger

import (
	"io"
	"os"

	"FundingIntel/backend/go/internal/models"

	"github.com/sirupsen/logrus"
)

// Logger 是对 logrus 的封装，以提供更方便的结构化日志记录功能。
// 每个 With* 方法都返回新的 Logger，原实例不受影响，可在多个 goroutine 间共享。
type Logger struct {
	entry *logrus.Entry
}

// Init 初始化全局的 logrus 配置。
// format 为 "text" 时使用文本格式，其余情况使用 JSON。
func Init(level logrus.Level, format string) {
	InitWithOutput(level, format, os.Stdout)
}

// InitWithOutput 与 Init 相同，但允许指定输出目标，便于测试。
func InitWithOutput(level logrus.Level, format string, out io.Writer) {
	if format == "text" {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}
	logrus.SetOutput(out)
	logrus.SetLevel(level)
}

// ParseLevel 解析日志级别，无法识别时回退到 Info。
func ParseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// AddHook 为全局 logrus 注册一个 hook，例如 Kafka 日志投递。
func AddHook(hook logrus.Hook) {
	logrus.AddHook(hook)
}

// New 创建一个新的 Logger 实例，并预设服务名称字段。
func New(serviceName string) *Logger {
	return &Logger{
		entry: logrus.WithField("service_name", serviceName),
	}
}

// Discard 返回一个丢弃所有输出的 Logger，供测试使用。
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{entry: logrus.NewEntry(l)}
}

// WithTrace 添加请求追踪 ID。
func (l *Logger) WithTrace(traceID string) *Logger {
	return &Logger{entry: l.entry.WithField("trace_id", traceID)}
}

// WithSession 添加会话 ID。
func (l *Logger) WithSession(sessionID string) *Logger {
	return &Logger{entry: l.entry.WithField("session_id", sessionID)}
}

// WithRequest 将请求信息添加到日志条目中。
func (l *Logger) WithRequest(req models.RequestInfo) *Logger {
	return &Logger{entry: l.entry.WithField("request_info", req)}
}

// WithError 将错误信息添加到日志条目中。
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{entry: l.entry.WithField("error", models.ErrorInfo{Message: err.Error()})}
}

// WithField 添加单个自定义字段。
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithPayload 将自定义的业务数据添加到日志条目中。
func (l *Logger) WithPayload(payload map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithField("payload", payload)}
}

// Info 记录一条信息级别的日志。
func (l *Logger) Info(message string) { l.entry.Info(message) }

// Infof 记录一条格式化的信息级别日志。
func (l *Logger) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }

// Warn 记录一条警告级别的日志。
func (l *Logger) Warn(message string) { l.entry.Warn(message) }

// Warnf 记录一条格式化的警告级别日志。
func (l *Logger) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

// Error 记录一条错误级别的日志。
func (l *Logger) Error(message string) { l.entry.Error(message) }

// Errorf 记录一条格式化的错误级别日志。
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// Debug 记录一条调试级别的日志。
func (l *Logger) Debug(message string) { l.entry.Debug(message) }

// Fatal 记录一条致命错误级别的日志，并终止程序。
func (l *Logger) Fatal(message string) { l.entry.Fatal(message) }
