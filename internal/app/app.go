package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"inkwell/features/agent"
	"inkwell/features/content"
	"inkwell/internal/adapter/arxiv"
	"inkwell/internal/adapter/image"
	"inkwell/internal/adapter/market"
	"inkwell/internal/adapter/newsapi"
	"inkwell/internal/adapter/translate"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/knowledge"
	"inkwell/internal/middleware"
	"inkwell/internal/worker"
)

type App struct {
	Handler         http.Handler
	RefreshConsumer *worker.RefreshConsumer
	Engines         map[string]worker.Refresher

	port int
}

// New wires the knowledge engines, agent fleet and content pipeline into
// a ready-to-serve App. The embedder and model selector are passed in so
// tests can substitute stubs without touching provider credentials.
func New(
	cfg *config.Config,
	embedder knowledge.Embedder,
	models agent.ModelSelector,
	taskPub worker.TaskPublisher,
) (*App, error) {

	store, err := cache.Open(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	queryLogger, err := knowledge.NewFileQueryLogger(cfg.QueryLogPath)
	if err != nil {
		slog.Warn("failed to create query logger, falling back to stdout", "error", err)
		queryLogger = knowledge.NewQueryLogger(os.Stdout)
	}

	freshness := time.Duration(cfg.FreshnessHours) * time.Hour

	// Knowledge engines
	scienceEngine := knowledge.NewEngine(
		knowledge.ScientificDomain(cfg.MaxPapers),
		arxiv.NewClient(cfg.ArxivBaseURL),
		embedder,
		store,
		knowledge.WithFreshness(freshness),
		knowledge.WithTopK(cfg.RetrievalTopK),
		knowledge.WithQueryLogger(queryLogger),
	)
	financeEngine := knowledge.NewEngine(
		knowledge.FinancialDomain(cfg.MaxArticles),
		newsapi.NewClient(cfg.NewsBaseURL, cfg.NewsAPIKey),
		embedder,
		store,
		knowledge.WithFreshness(freshness),
		knowledge.WithTopK(cfg.RetrievalTopK),
		knowledge.WithQueryLogger(queryLogger),
	)

	engines := map[string]worker.Refresher{
		scienceEngine.Domain(): scienceEngine,
		financeEngine.Domain(): financeEngine,
	}

	// Feature: Agent
	scientific := agent.NewScientificAgent(scienceEngine, models)
	financial := agent.NewFinancialAgent(financeEngine, market.NewClient(cfg.MarketURL), models)
	general := agent.NewGeneralAgent(scienceEngine, financeEngine, models)
	coordinator := agent.NewCoordinator(scientific, financial, general)

	// Feature: Content
	translator := translate.NewClient(cfg.TranslateURL, cfg.SourceLanguage)
	images := image.NewClient(cfg.ImageHost)
	pipeline := content.NewPipeline(coordinator, translator, images)
	contentHandler := content.NewHandler(pipeline)

	// Knowledge refresh over the queue
	refreshHandler := worker.NewRefreshHandler(taskPub, engines)

	// Middleware: CORS
	enableCORS := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	// Routes
	mux := http.NewServeMux()

	mux.Handle("POST /generate", middleware.CorrelationID(enableCORS(contentHandler.Generate)))
	mux.Handle("GET /templates", middleware.CorrelationID(enableCORS(contentHandler.ListTemplates)))
	mux.Handle("POST /knowledge/refresh", middleware.CorrelationID(enableCORS(refreshHandler.Refresh)))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return &App{
		Handler:         mux,
		RefreshConsumer: worker.NewRefreshConsumer(engines),
		Engines:         engines,
		port:            cfg.ServerPort,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(a.port),
		Handler: a.Handler,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", a.port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
