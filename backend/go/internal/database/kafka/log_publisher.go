package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"FundingIntel/backend/go/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// messageWriter 是 kafka.Writer 中被使用的部分。
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// LogPublisher 是一个 logrus hook，把每条日志序列化为 models.LogEntry 投递到 Kafka。
type LogPublisher struct {
	writer  messageWriter
	levels  []logrus.Level
	timeout time.Duration
}

// NewLogPublisher 为指定 brokers 与主题创建日志投递器。
// 只投递不低于 minLevel 的日志；writer 以异步模式发送，不阻塞业务日志。
func NewLogPublisher(brokers []string, topic string, minLevel logrus.Level) *LogPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
		Async:        true,
	}
	return newLogPublisher(writer, minLevel)
}

func newLogPublisher(w messageWriter, minLevel logrus.Level) *LogPublisher {
	var levels []logrus.Level
	for _, l := range logrus.AllLevels {
		if l <= minLevel {
			levels = append(levels, l)
		}
	}
	return &LogPublisher{writer: w, levels: levels, timeout: 2 * time.Second}
}

// Levels 实现 logrus.Hook。
func (p *LogPublisher) Levels() []logrus.Level {
	return p.levels
}

// Fire 实现 logrus.Hook。
func (p *LogPublisher) Fire(entry *logrus.Entry) error {
	logEntry := ToLogEntry(entry)
	jsonData, err := json.Marshal(logEntry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	key := logEntry.SessionID
	if key == "" {
		key = logEntry.TraceID
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: jsonData}); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

// Close 关闭底层的 writer 连接。
func (p *LogPublisher) Close() error {
	return p.writer.Close()
}

// ToLogEntry 将 logrus 条目中的已知字段提取为 models.LogEntry，其余字段放入 Payload。
func ToLogEntry(entry *logrus.Entry) models.LogEntry {
	out := models.LogEntry{
		Level:   entry.Level.String(),
		Message: entry.Message,
		Time:    entry.Time,
	}
	for k, v := range entry.Data {
		switch k {
		case "service_name":
			out.ServiceName, _ = v.(string)
		case "trace_id":
			out.TraceID, _ = v.(string)
		case "session_id":
			out.SessionID, _ = v.(string)
		case "request_info":
			switch r := v.(type) {
			case models.RequestInfo:
				out.RequestInfo = &r
			case *models.RequestInfo:
				out.RequestInfo = r
			}
		case "error":
			switch e := v.(type) {
			case models.ErrorInfo:
				out.Error = &e
			case *models.ErrorInfo:
				out.Error = e
			case error:
				out.Error = &models.ErrorInfo{Message: e.Error()}
			}
		case "payload":
			if m, ok := v.(map[string]interface{}); ok {
				if out.Payload == nil {
					out.Payload = make(map[string]interface{}, len(m))
				}
				for pk, pv := range m {
					out.Payload[pk] = pv
				}
			}
		default:
			if out.Payload == nil {
				out.Payload = make(map[string]interface{})
			}
			out.Payload[k] = v
		}
	}
	return out
}
