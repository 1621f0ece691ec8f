package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsqio/go-nsq"

	"inkwell/internal/adapter/gemini"
	"inkwell/internal/app"
	"inkwell/internal/config"
	"inkwell/internal/logger"
	"inkwell/internal/provider"
)

func main() {
	// Initialize structured logger
	base := slog.NewJSONHandler(os.Stdout, nil)
	slog.SetDefault(slog.New(logger.NewContextHandler(base)))

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Embedder
	embedder, err := gemini.NewEmbedder(ctx, cfg.GeminiAPIKey)
	if err != nil {
		slog.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}
	defer embedder.Close()

	// 3. Language model provider
	models, err := provider.NewSelector(ctx, cfg)
	if err != nil {
		slog.Error("failed to create model provider", "error", err, "provider", cfg.LLMProvider)
		os.Exit(1)
	}

	// 4. Infrastructure (NSQ producer, topic pre-creation)
	deps, err := app.Bootstrap(cfg)
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer deps.NSQProducer.Stop()

	// 5. Application wiring
	application, err := app.New(cfg, embedder, models, deps.NSQProducer)
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	// 6. Refresh worker
	if cfg.EnableRefreshWorker {
		nsqCfg := nsq.NewConfig()
		consumer, err := nsq.NewConsumer(config.TopicKnowledgeRefresh, "orchestrator", nsqCfg)
		if err != nil {
			slog.Error("failed to create refresh consumer", "error", err)
			os.Exit(1)
		}
		consumer.AddHandler(nsq.HandlerFunc(func(m *nsq.Message) error {
			return application.RefreshConsumer.HandleMessage(m)
		}))
		if err := consumer.ConnectToNSQLookupd(cfg.NSQLookupd); err != nil {
			slog.Error("failed to connect to NSQLookupd", "error", err)
			os.Exit(1)
		}
		defer consumer.Stop()
		slog.Info("refresh consumer connected", "topic", config.TopicKnowledgeRefresh)
	}

	// 7. HTTP API
	if !cfg.EnableAPI {
		slog.Info("api disabled, running worker only")
		<-ctx.Done()
		return
	}

	if err := application.Run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
