package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/freshmall/internal/order/application"
	"github.com/wyfcoding/freshmall/internal/order/domain"
	"github.com/wyfcoding/freshmall/internal/order/infrastructure/messaging"
	"github.com/wyfcoding/freshmall/internal/order/infrastructure/persistence/mysql"
	orderredis "github.com/wyfcoding/freshmall/internal/order/infrastructure/persistence/redis"
	httpserver "github.com/wyfcoding/freshmall/internal/order/interfaces/http"
	"github.com/wyfcoding/pkg/cache"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"github.com/wyfcoding/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

var (
	configPath   = flag.String("config", "configs/order/config.toml", "config file path")
	strategy     = flag.String("strategy", application.StrategyOptimisticRetry, "stock decrement strategy: exclusive_lock or optimistic_retry")
	transitPrice = flag.String("transit-price", "10", "flat shipping fee in yuan")
)

func main() {
	flag.Parse()

	// 1. 初始化配置
	var cfg config.Config
	if err := config.Load(*configPath, &cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 初始化日志
	logCfg := &logging.Config{
		Service:    cfg.Server.Name,
		Module:     "order",
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}
	logger := logging.NewFromConfig(logCfg)
	slog.SetDefault(logger.Logger)

	// 3. 初始化指标
	metricsImpl := metrics.NewMetrics(cfg.Server.Name)
	if cfg.Metrics.Enabled {
		go metricsImpl.ExposeHTTP(cfg.Metrics.Port)
	}

	// 4. 初始化基础设施
	db, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	// Auto Migrate (仅用于开发方便)
	if cfg.Server.Environment == "dev" {
		if err := db.RawDB().AutoMigrate(&domain.OrderInfo{}, &domain.OrderGoods{}, &outbox.Message{}); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
	}

	// Kafka & Outbox
	kafkaProducer := kafka.NewProducer(&cfg.MessageQueue.Kafka, logger, metricsImpl)
	outboxMgr := outbox.NewManager(db.RawDB(), logger.Logger)
	pusher := func(ctx context.Context, topic, key string, payload []byte) error {
		return kafkaProducer.PublishToTopic(ctx, topic, []byte(key), payload)
	}
	outboxProcessor := outbox.NewProcessor(outboxMgr, pusher, 100, 2*time.Second)

	redisCache, err := cache.NewRedisCache(&cfg.Data.Redis, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	// 5. 初始化仓储
	orderRepo := mysql.NewOrderRepository(db.RawDB())
	inventoryStore := mysql.NewInventoryStore(db.RawDB())
	addressResolver := mysql.NewAddressResolver(db.RawDB())
	uow := mysql.NewUnitOfWork(db.RawDB())
	cartReader := orderredis.NewCartReader(redisCache.GetClient())
	publisher := messaging.NewOutboxPublisher(outboxMgr)

	// 6. 初始化应用服务
	transit, err := decimal.NewFromString(*transitPrice)
	if err != nil {
		slog.Error("invalid transit price", "value", *transitPrice, "error", err)
		os.Exit(1)
	}
	checkoutCfg := application.CheckoutConfig{
		Strategy:     *strategy,
		MaxAttempts:  domain.DefaultMaxAttempts,
		TransitPrice: transit,
	}
	commandSvc := application.NewCheckoutCommandService(
		checkoutCfg, orderRepo, inventoryStore, cartReader, addressResolver, uow, publisher)
	querySvc := application.NewOrderQueryService(orderRepo)
	appService := application.NewOrderService(commandSvc, querySvc)

	// 7. 初始化接口层
	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Environment == "dev" {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	httpHandler := httpserver.NewOrderHandler(appService)
	httpHandler.RegisterRoutes(r.Group("/api"))

	// 8. 启动服务
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		outboxProcessor.Start()
		<-ctx.Done()
		outboxProcessor.Stop()
		return nil
	})

	addr := fmt.Sprintf(":%d", cfg.Server.HTTP.Port)
	server := &http.Server{Addr: addr, Handler: r}
	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// 9. 优雅关闭
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down servers...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
