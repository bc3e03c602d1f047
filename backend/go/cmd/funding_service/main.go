package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"FundingIntel/backend/go/internal/analyzer"
	"FundingIntel/backend/go/internal/appstate"
	"FundingIntel/backend/go/internal/assistant"
	"FundingIntel/backend/go/internal/catalog"
	"FundingIntel/backend/go/internal/chat"
	"FundingIntel/backend/go/internal/config"
	"FundingIntel/backend/go/internal/database/kafka"
	"FundingIntel/backend/go/internal/database/minio"
	"FundingIntel/backend/go/internal/favorites"
	"FundingIntel/backend/go/internal/funding_service/api"
	"FundingIntel/backend/go/internal/funding_service/service"
	"FundingIntel/backend/go/internal/llm"
	"FundingIntel/backend/go/internal/notifications"
	"FundingIntel/backend/go/internal/ranking"
	"FundingIntel/backend/go/internal/storage"
	"FundingIntel/backend/go/pkg/circuitbreaker"
	pkghttp "FundingIntel/backend/go/pkg/http"
	"FundingIntel/backend/go/pkg/latency"
	"FundingIntel/backend/go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const serviceName = "funding_service"

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("failed to load configuration: %v", err)
		}
		cfg = config.Default()
	}

	// 2. Initialize logger
	logger.Init(logger.ParseLevel(cfg.Logger.Level), cfg.Logger.Format)
	appLogger := logger.New(serviceName)
	if err != nil {
		appLogger.WithError(err).Warn("配置文件不存在，使用默认配置")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var readiness []service.Option
	if len(cfg.Databases.Kafka.Brokers) > 0 {
		admin, closeKafka := setupLogShipping(ctx, cfg, appLogger)
		defer closeKafka()
		if admin != nil {
			readiness = append(readiness, service.WithReadinessCheck("kafka", admin.HealthCheck))
		}
	}

	// 3. Initialize storage
	kv, closeKV, err := storage.Open(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	defer closeKV()
	appLogger.WithField("driver", cfg.Storage.Driver).Info("存储已就绪")
	if p, ok := kv.(storage.Pinger); ok {
		readiness = append(readiness, service.WithReadinessCheck("storage", p.Ping))
	}

	// 4. Initialize dependencies
	rng := newRand(cfg.Mock.Seed)
	cat := catalog.Default()

	var breaker *circuitbreaker.Breaker
	if cfg.Middleware.CircuitBreaker.Enabled {
		breaker, err = pkghttp.NewBreaker("gemini", cfg.Middleware.CircuitBreaker, appLogger)
		if err != nil {
			appLogger.Fatal(err.Error())
		}
	}
	gemini, err := llm.NewGemini(ctx, cfg.LLM.Gemini, breaker, appLogger)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	defer gemini.Close()

	mock := analyzer.NewMock(mockLatency(cfg.Mock, rng), fork(rng))
	var responder chat.Responder = assistant.NewResponder(cat, simulator(cfg.Mock, cfg.Mock.Responder, fork(rng)), appLogger)
	var documents analyzer.DocumentReader = mock
	if cfg.LLM.Provider == "gemini" {
		responder = llm.NewChatResponder(gemini)
		documents = gemini
		appLogger.Info("使用 Gemini 作为对话与文档分析后端")
	}

	var analyzerOpts []analyzer.Option
	if cfg.Databases.MinIO.Endpoint != "" {
		archive, err := newArchive(ctx, cfg)
		if err != nil {
			appLogger.WithError(err).Warn("MinIO 不可用，上传的文档将不会归档")
		} else {
			analyzerOpts = append(analyzerOpts, analyzer.WithArchive(archive))
		}
	}

	manager := chat.NewManager(responder, appLogger)
	if cfg.Chat.SeedDemoSessions {
		manager.SeedDemoSessions(cat, time.Now())
	}
	state := appstate.New(kv, favorites.NewStore(kv, appLogger), manager, appLogger)
	state.Init(ctx)

	workspace := analyzer.NewWorkspace(analyzer.NewService(documents, mock, mock, appLogger, analyzerOpts...))
	var rankOpts []ranking.Option
	if cfg.LLM.Ollama.Enabled {
		var ollamaBreaker *circuitbreaker.Breaker
		if cfg.Middleware.CircuitBreaker.Enabled {
			ollamaBreaker, err = pkghttp.NewBreaker("ollama", cfg.Middleware.CircuitBreaker, appLogger)
			if err != nil {
				appLogger.Fatal(err.Error())
			}
		}
		classifier, err := llm.NewOllama(cfg.LLM.Ollama, ollamaBreaker)
		if err != nil {
			appLogger.Fatal(err.Error())
		}
		rankOpts = append(rankOpts, ranking.WithClassifier(classifier))
		appLogger.WithField("model", cfg.LLM.Ollama.Model).Info("排序搜索启用 Ollama 资金意图分类")
	}

	fundingService := service.NewService(cat, state, workspace, notifications.NewFeed(), appLogger,
		append(readiness,
			service.WithSpeaker(gemini),
			service.WithRanker(ranking.NewRanker(appLogger, rankOpts...)))...)
	appLogger.Info("Dependencies injected")

	// 5. Setup router and server
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.SetupRouter(api.NewHandler(fundingService), appLogger)
	server, err := pkghttp.NewServer(cfg, router, pkghttp.WithLogger(appLogger), pkghttp.WithHealthPaths("/healthz", "/readyz"))
	if err != nil {
		appLogger.Fatal(err.Error())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	// 6. Graceful shutdown
	select {
	case err := <-errCh:
		if err != nil {
			appLogger.WithError(err).Error("HTTP 服务异常退出")
		}
		return
	case <-ctx.Done():
	}
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("优雅关闭失败")
		return
	}
	appLogger.Info("Server gracefully stopped")
}

// setupLogShipping 确保日志主题存在并注册 Kafka 日志 hook。返回的 Admin 用于就绪检查，Kafka 不可用时为 nil。
func setupLogShipping(ctx context.Context, cfg *config.AppConfig, appLogger *logger.Logger) (*kafka.Admin, func()) {
	kcfg := cfg.Databases.Kafka
	admin, err := kafka.NewAdmin(ctx, &kcfg)
	if err != nil {
		appLogger.WithError(err).Warn("Kafka 不可用，日志不会投递")
		return nil, func() {}
	}
	if addr, err := admin.ControllerAddress(); err == nil {
		appLogger.WithField("controller", addr).Info("已连接 Kafka")
	}

	publisher := kafka.NewLogPublisher(kcfg.Brokers, kcfg.Topic, logrus.InfoLevel)
	logger.AddHook(publisher)
	appLogger.WithField("topic", kcfg.Topic).Info("日志将投递到 Kafka")
	return admin, func() {
		if err := publisher.Close(); err != nil {
			log.Printf("failed to close kafka log publisher: %v", err)
		}
		if err := admin.Close(); err != nil {
			log.Printf("failed to close kafka admin: %v", err)
		}
	}
}

func newArchive(ctx context.Context, cfg *config.AppConfig) (*minio.DocumentBucket, error) {
	client, err := minio.NewClient(ctx, &cfg.Databases.MinIO)
	if err != nil {
		return nil, err
	}
	return minio.NewDocumentBucket(ctx, client, cfg.Databases.MinIO.Bucket)
}

// newRand 创建根随机源，seed 为 0 时使用当前时间。
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// fork 从根随机源派生一个独立的随机源。*rand.Rand 不是并发安全的，每个使用者各持一个。
func fork(root *rand.Rand) *rand.Rand {
	return rand.New(rand.NewSource(root.Int63()))
}

func simulator(m config.MockConfig, l config.LatencyConfig, rng *rand.Rand) *latency.Simulator {
	if m.Instant {
		return latency.Instant()
	}
	return latency.New(l.Min(), l.Max(), rng)
}

func mockLatency(m config.MockConfig, rng *rand.Rand) analyzer.MockLatency {
	return analyzer.MockLatency{
		Document: simulator(m, m.Document, fork(rng)),
		URL:      simulator(m, m.URL, fork(rng)),
		Investor: simulator(m, m.Investor, fork(rng)),
	}
}
