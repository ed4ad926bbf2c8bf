package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	instrumentdomain "github.com/wyfcoding/optionsdesk/internal/instrument/domain"
	instrumentmysql "github.com/wyfcoding/optionsdesk/internal/instrument/infrastructure/persistence/mysql"
	"github.com/wyfcoding/optionsdesk/internal/option/application"
	"github.com/wyfcoding/optionsdesk/internal/option/domain"
	"github.com/wyfcoding/optionsdesk/internal/option/infrastructure/client"
	"github.com/wyfcoding/optionsdesk/internal/option/infrastructure/messaging"
	persistencemysql "github.com/wyfcoding/optionsdesk/internal/option/infrastructure/persistence/mysql"
	"github.com/wyfcoding/optionsdesk/internal/option/interfaces/consumer"
	httpiface "github.com/wyfcoding/optionsdesk/internal/option/interfaces/http"
	"github.com/wyfcoding/optionsdesk/pkg/config"
	"github.com/wyfcoding/optionsdesk/pkg/db"
	"github.com/wyfcoding/optionsdesk/pkg/logger"
	"github.com/wyfcoding/optionsdesk/pkg/metrics"
	"github.com/wyfcoding/optionsdesk/pkg/mq"
)

func main() {
	configPath := flag.String("config", "configs/option.toml", "config file path")
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "option"
	}

	// 2. Logger
	if err := logger.Init(cfg.Logger); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	slogger := logger.Get()

	// 3. Database
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(&domain.OptionContract{}, &domain.ExerciseRecord{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// 4. Kafka
	kafkaCfg := mq.Config{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		MaxRetries:     cfg.Kafka.MaxRetries,
		RetryBackoff:   cfg.Kafka.RetryBackoff,
		SessionTimeout: cfg.Kafka.SessionTimeout,
	}
	producer := mq.NewProducer(kafkaCfg)
	defer producer.Close()

	// 5. Layers
	m := metrics.New(cfg.ServiceName)
	contractRepo := persistencemysql.NewContractRepo(database.DB)
	recordRepo := persistencemysql.NewExerciseRecordRepo(database.DB)
	underlying := client.NewUnderlyingClient(instrumentmysql.NewInstrumentRepo(database.DB))
	publisher := messaging.NewKafkaEventPublisher(producer)
	app := application.NewOptionAppService(contractRepo, recordRepo, underlying, publisher, m, slogger)
	handler := httpiface.NewOptionHandler(app)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 6. Quote event consumer
	quoteConsumer := mq.NewConsumer(kafkaCfg, instrumentdomain.QuoteUpdatedEventType)
	defer quoteConsumer.Close()
	quoteHandler := consumer.NewQuoteHandler(app, slogger)
	go func() {
		if err := quoteConsumer.Run(rootCtx, quoteHandler.Handle); err != nil && err != context.Canceled {
			slogger.Error("quote consumer stopped", "error", err)
		}
	}()

	// 7. Expiry sweep
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-rootCtx.Done():
				return
			case now := <-ticker.C:
				if _, err := app.ExpireDueContracts(rootCtx, now); err != nil {
					slogger.Error("expiry sweep failed", "error", err)
				}
			}
		}
	}()

	// 8. HTTP server
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), m.GinMiddleware())
	handler.RegisterRoutes(engine.Group(""))
	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		slogger.Info("server started", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	// 9. Graceful shutdown
	<-rootCtx.Done()
	slogger.Info("shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slogger.Error("server shutdown failed", "error", err)
	}
}
