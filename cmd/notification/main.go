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
	"github.com/wyfcoding/freshmall/internal/notification/application"
	"github.com/wyfcoding/freshmall/internal/notification/domain"
	"github.com/wyfcoding/freshmall/internal/notification/infrastructure/directory"
	"github.com/wyfcoding/freshmall/internal/notification/infrastructure/persistence/mysql"
	"github.com/wyfcoding/freshmall/internal/notification/infrastructure/sender"
	"github.com/wyfcoding/freshmall/internal/notification/interfaces/consumer"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

var (
	configPath = flag.String("config", "configs/notification/config.toml", "config file path")
	mailDomain = flag.String("mail-domain", "freshmall.local", "fallback recipient mail domain")
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
		Module:     "notification",
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
		if err := db.RawDB().AutoMigrate(&domain.Notification{}); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
	}

	// 5. 初始化应用服务
	notificationRepo := mysql.NewNotificationRepository(db.RawDB())
	mailSender := sender.NewSMTPSender("", "", "", "", "noreply@"+*mailDomain)
	recipientDir := directory.NewStaticDirectory(*mailDomain)
	appService := application.NewNotificationService(notificationRepo, mailSender, recipientDir)

	// 6. 启动消费者，每个订阅主题一个
	handler := consumer.NewEventHandler(appService, logger.Logger)
	topics := []string{domain.OrderCreatedTopic, domain.UserRegisteredTopic}
	consumers := make([]*kafka.Consumer, 0, len(topics))
	for _, topic := range topics {
		consumerCfg := cfg.MessageQueue.Kafka
		consumerCfg.Topic = topic
		if consumerCfg.GroupID == "" {
			consumerCfg.GroupID = "notification-group"
		}
		c := kafka.NewConsumer(&consumerCfg, logger, metricsImpl)
		c.Start(context.Background(), 1, handler.Handle)
		consumers = append(consumers, c)
	}

	// 7. 健康检查
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/sys/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": cfg.Server.Name})
	})

	// 8. 启动服务
	g, ctx := errgroup.WithContext(context.Background())

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

		for _, c := range consumers {
			if c != nil {
				_ = c.Close()
			}
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
