package kafka

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"FundingIntel/backend/go/internal/config"

	"github.com/segmentio/kafka-go"
)

// Admin 持有一个管理连接，用于确认主题存在与健康检查。
type Admin struct {
	conn   *kafka.Conn
	config *config.KafkaConfig
}

// NewAdmin 连接第一个 broker，并在日志主题不存在时创建它。
func NewAdmin(ctx context.Context, cfg *config.KafkaConfig) (*Admin, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("未配置 Kafka brokers")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("未配置 Kafka 日志主题")
	}

	var dialer kafka.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		return nil, fmt.Errorf("kafka 初始化连接失败: %w", err)
	}
	a := &Admin{conn: conn, config: cfg}
	if err := a.ensureTopic(cfg.Topic); err != nil {
		conn.Close()
		return nil, err
	}
	return a, nil
}

func (a *Admin) ensureTopic(topic string) error {
	partitions, err := a.conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("无法读取 Kafka 分区信息: %w", err)
	}
	for _, p := range partitions {
		if p.Topic == topic {
			return nil
		}
	}
	err = a.conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		return fmt.Errorf("自动创建 Kafka 主题 '%s' 失败: %w", topic, err)
	}
	return nil
}

// HealthCheck 通过查询控制器检查连接。
func (a *Admin) HealthCheck(ctx context.Context) error {
	if a == nil || a.conn == nil {
		return fmt.Errorf("kafka 客户端未初始化，无法进行健康检查")
	}
	_, err := a.conn.Controller()
	return err
}

// ControllerAddress 返回 Kafka 控制器的地址。
func (a *Admin) ControllerAddress() (string, error) {
	controller, err := a.conn.Controller()
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)), nil
}

// Close 关闭管理连接。
func (a *Admin) Close() error {
	if a == nil || a.conn == nil {
		return nil
	}
	return a.conn.Close()
}
