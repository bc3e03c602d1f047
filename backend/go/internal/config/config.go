package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RedisConfig 定义了 Redis 数据库的连接配置。
type RedisConfig struct {
	Address  string `yaml:"address"`  // Redis 服务器地址 (例如: "localhost:6379")
	Password string `yaml:"password"` // Redis 密码
	DB       int    `yaml:"db"`       // Redis 数据库编号
}

// MySQLConfig 定义了 MySQL 数据库的连接配置。
type MySQLConfig struct {
	Address         string `yaml:"address"`         // MySQL 服务器地址
	Username        string `yaml:"username"`        // 用户名
	Password        string `yaml:"password"`        // 密码
	Database        string `yaml:"database"`        // 数据库名称
	MaxOpenConns    int    `yaml:"maxOpenConns"`    // 最大打开连接数
	MaxIdleConns    int    `yaml:"maxIdleConns"`    // 最大空闲连接数
	ConnMaxLifetime int    `yaml:"connMaxLifetime"` // 连接最大生命周期 (秒)
}

// MinIOConfig 定义了 MinIO 对象存储的连接配置，用于归档用户上传的文档。
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`  // MinIO 服务端点，为空时不归档
	AccessKey string `yaml:"accessKey"` // 访问密钥
	SecretKey string `yaml:"secretKey"` // Secret 密钥
	Bucket    string `yaml:"bucket"`    // 文档存储桶名称
	Secure    bool   `yaml:"secure"`    // 是否使用HTTPS
}

// KafkaConfig 定义了 Kafka 日志投递的连接配置。
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"` // Kafka Broker 地址列表，为空时不投递日志
	Topic   string   `yaml:"topic"`   // 日志主题
}

// DatabaseConfigs 包含所有外部存储的配置。
type DatabaseConfigs struct {
	Redis RedisConfig `yaml:"redis"` // Redis 配置
	MySQL MySQLConfig `yaml:"mysql"` // MySQL 配置
	MinIO MinIOConfig `yaml:"minio"` // MinIO 对象存储配置
	Kafka KafkaConfig `yaml:"kafka"` // Kafka 配置
}

// AppInfo 对应 'app' 部分，包含应用程序的基本信息。
type AppInfo struct {
	Name        string `yaml:"name"`        // 应用程序名称
	Version     string `yaml:"version"`     // 应用程序版本
	Environment string `yaml:"environment"` // 运行环境 (例如: "development", "production")
}

// ServerConfig 定义了 HTTP 服务的监听配置。
type ServerConfig struct {
	Address         string `yaml:"address"`         // 监听地址，例如 ":8080"
	ShutdownTimeout string `yaml:"shutdownTimeout"` // 优雅关闭的等待时间，例如 "10s"
}

// LoggerConfig 定义了日志记录器的配置。
type LoggerConfig struct {
	Level  string `yaml:"level"`  // 日志级别 (例如: "info", "debug", "warn", "error")
	Format string `yaml:"format"` // 日志格式: "json" 或 "text"
}

// GeminiConfig 包含了 Gemini 模型的配置。
type GeminiConfig struct {
	APIKey      string `yaml:"apiKey"`      // Gemini API 密钥
	ChatModel   string `yaml:"chatModel"`   // 对话模型
	VisionModel string `yaml:"visionModel"` // 文档/图像理解模型
	SpeechModel string `yaml:"speechModel"` // 语音合成模型
}

// OllamaConfig 配置本地 Ollama 模型，用于判断搜索结果是否为资金信息。
type OllamaConfig struct {
	Enabled bool   `yaml:"enabled"` // 是否启用资金意图分类
	BaseURL string `yaml:"baseURL"` // Ollama 服务地址
	Model   string `yaml:"model"`   // 分类模型
}

// LLMConfig 选择助手与文档分析所使用的后端。
type LLMConfig struct {
	Provider string       `yaml:"provider"` // "mock" 或 "gemini"
	Gemini   GeminiConfig `yaml:"gemini"`   // Gemini 配置
	Ollama   OllamaConfig `yaml:"ollama"`   // Ollama 配置
}

// LatencyConfig 定义模拟延迟的区间，单位毫秒。
type LatencyConfig struct {
	MinMillis int `yaml:"minMillis"`
	MaxMillis int `yaml:"maxMillis"`
}

// Min 返回区间下限。
func (l LatencyConfig) Min() time.Duration { return time.Duration(l.MinMillis) * time.Millisecond }

// Max 返回区间上限。
func (l LatencyConfig) Max() time.Duration { return time.Duration(l.MaxMillis) * time.Millisecond }

// MockConfig 控制本地模拟 AI 的行为。
type MockConfig struct {
	Seed      int64         `yaml:"seed"`      // 随机源种子，0 表示使用当前时间
	Instant   bool          `yaml:"instant"`   // 为 true 时跳过所有模拟延迟
	Responder LatencyConfig `yaml:"responder"` // 对话助手延迟
	Document  LatencyConfig `yaml:"document"`  // 文档分析延迟
	URL       LatencyConfig `yaml:"url"`       // 网页分析延迟
	Investor  LatencyConfig `yaml:"investor"`  // 投资人分析延迟
}

// ChatConfig 定义会话管理器的配置。
type ChatConfig struct {
	SeedDemoSessions bool `yaml:"seedDemoSessions"` // 启动时是否加载示例会话
}

// StorageConfig 定义了收藏夹与引导标记的持久化方式。
type StorageConfig struct {
	Driver    string `yaml:"driver"`    // "memory", "file", "redis" 或 "mysql"
	Path      string `yaml:"path"`      // file 驱动使用的文件路径
	KeyPrefix string `yaml:"keyPrefix"` // redis 驱动使用的键前缀
}

// RateLimiterConfig 定义了限流器的配置。
type RateLimiterConfig struct {
	Enabled bool    `yaml:"enabled"`
	Rate    float64 `yaml:"rate"` // 每秒请求数
	Burst   int     `yaml:"burst"`
}

// CircuitBreakerConfig 定义了熔断器的配置。
type CircuitBreakerConfig struct {
	Enabled          bool   `yaml:"enabled"`
	FailureThreshold uint32 `yaml:"failureThreshold"`
	SuccessThreshold uint32 `yaml:"successThreshold"`
	Timeout          string `yaml:"timeout"` // 例如: "30s"
}

// MiddlewareConfig 包含所有中间件的配置。
type MiddlewareConfig struct {
	RateLimiter    RateLimiterConfig    `yaml:"rateLimiter"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuitBreaker"`
}

// AppConfig 是整个 YAML 文件的根结构，包含了应用程序的所有配置。
type AppConfig struct {
	App        AppInfo          `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Logger     LoggerConfig     `yaml:"logger"`
	LLM        LLMConfig        `yaml:"llm"`
	Mock       MockConfig       `yaml:"mock"`
	Chat       ChatConfig       `yaml:"chat"`
	Storage    StorageConfig    `yaml:"storage"`
	Databases  DatabaseConfigs  `yaml:"databases"`
	Middleware MiddlewareConfig `yaml:"middleware"`
}

// LoadConfig 函数从指定路径加载并解析 YAML 配置文件，随后填充默认值并应用环境变量覆盖。
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取 YAML 文件 '%s': %w", path, err)
	}
	return Parse(yamlFile)
}

// Parse 解析 YAML 内容。
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析 YAML 文件失败: %w", err)
	}
	cfg.ApplyDefaults()
	cfg.ApplyEnv(os.Getenv)
	return &cfg, nil
}

// Default 返回一份全部使用默认值的配置，配置文件缺失时使用。
func Default() *AppConfig {
	var cfg AppConfig
	cfg.ApplyDefaults()
	cfg.ApplyEnv(os.Getenv)
	return &cfg
}

// ApplyDefaults 为所有未设置的字段填充默认值。
func (c *AppConfig) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "funding_service"
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "json"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "mock"
	}
	if c.LLM.Gemini.ChatModel == "" {
		c.LLM.Gemini.ChatModel = "gemini-3-flash-preview"
	}
	if c.LLM.Gemini.VisionModel == "" {
		c.LLM.Gemini.VisionModel = "gemini-2.5-flash-image"
	}
	if c.LLM.Gemini.SpeechModel == "" {
		c.LLM.Gemini.SpeechModel = "gemini-2.5-flash-preview-tts"
	}
	if c.LLM.Ollama.BaseURL == "" {
		c.LLM.Ollama.BaseURL = "http://localhost:11434"
	}
	if c.LLM.Ollama.Model == "" {
		c.LLM.Ollama.Model = "llama3.1"
	}
	defaultLatency(&c.Mock.Responder, 1000, 2000)
	defaultLatency(&c.Mock.Document, 2000, 2000)
	defaultLatency(&c.Mock.URL, 2500, 2500)
	defaultLatency(&c.Mock.Investor, 1200, 1200)
	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/local_storage.json"
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "funding:"
	}
	if c.Databases.MinIO.Bucket == "" {
		c.Databases.MinIO.Bucket = "funding-documents"
	}
	if c.Databases.Kafka.Topic == "" {
		c.Databases.Kafka.Topic = "funding_logs"
	}
	if c.Middleware.RateLimiter.Rate <= 0 {
		c.Middleware.RateLimiter.Rate = 20
	}
	if c.Middleware.RateLimiter.Burst <= 0 {
		c.Middleware.RateLimiter.Burst = 40
	}
	if c.Middleware.CircuitBreaker.FailureThreshold == 0 {
		c.Middleware.CircuitBreaker.FailureThreshold = 5
	}
	if c.Middleware.CircuitBreaker.SuccessThreshold == 0 {
		c.Middleware.CircuitBreaker.SuccessThreshold = 2
	}
	if c.Middleware.CircuitBreaker.Timeout == "" {
		c.Middleware.CircuitBreaker.Timeout = "30s"
	}
}

// ApplyEnv 使用环境变量覆盖敏感或与部署相关的配置项。
func (c *AppConfig) ApplyEnv(getenv func(string) string) {
	if key := getenv("API_KEY"); key != "" {
		c.LLM.Gemini.APIKey = key
	}
	if key := getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.Gemini.APIKey = key
	}
	if driver := getenv("FUNDING_STORAGE_DRIVER"); driver != "" {
		c.Storage.Driver = driver
	}
}

// ShutdownTimeout 解析优雅关闭时间，无法解析时回退到 10 秒。
func (c *AppConfig) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

func defaultLatency(l *LatencyConfig, minMs, maxMs int) {
	if l.MinMillis == 0 && l.MaxMillis == 0 {
		l.MinMillis, l.MaxMillis = minMs, maxMs
	}
	if l.MaxMillis < l.MinMillis {
		l.MaxMillis = l.MinMillis
	}
}
