package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"watchlist/internal/audit"
	auditmem "watchlist/internal/audit/store/memory"
	auditpg "watchlist/internal/audit/store/postgres"
	"watchlist/internal/audit/publisher"
	"watchlist/internal/ingest"
	ingesthandler "watchlist/internal/ingest/handler"
	"watchlist/internal/platform/config"
	"watchlist/internal/platform/httpserver"
	"watchlist/internal/platform/logger"
	platformmetrics "watchlist/internal/platform/metrics"
	platformredis "watchlist/internal/platform/redis"
	"watchlist/internal/screening"
	screeninghandler "watchlist/internal/screening/handler"
	"watchlist/internal/screening/metrics"
	entitymem "watchlist/internal/screening/store/memory"
	entitypg "watchlist/internal/screening/store/postgres"
	"watchlist/internal/screening/store/rediscache"
	"watchlist/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	// Stores: postgres when configured, in-memory otherwise (dev mode).
	var (
		entityStore  screening.EntityStore
		replaceStore ingest.ReplaceStore
		auditStore   audit.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		if err := db.PingContext(ctx); err != nil {
			log.Error("ping database", "error", err)
			os.Exit(1)
		}
		pg := entitypg.NewStore(db)
		entityStore, replaceStore = pg, pg
		auditStore = auditpg.New(db)
	} else {
		log.Warn("DATABASE_URL not set; using in-memory stores")
		mem := entitymem.NewStore()
		entityStore, replaceStore = mem, mem
		auditStore = auditmem.NewInMemoryStore()
	}

	// Optional entity cache in front of exact lookups.
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		entityStore = rediscache.NewStore(entityStore, redisClient.Client, config.EntityCacheTTL, log)
		defer redisClient.Close()
	}

	// Audit recorder, optionally fanning out to Kafka.
	recorderOpts := []audit.Option{audit.WithLogger(log)}
	if len(cfg.KafkaBrokers) > 0 {
		pub, err := publisher.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		recorderOpts = append(recorderOpts, audit.WithPublisher(pub))
	}
	recorder, err := audit.NewRecorder(auditStore, recorderOpts...)
	if err != nil {
		log.Error("build audit recorder", "error", err)
		os.Exit(1)
	}

	pipeline, err := screening.New(entityStore,
		screening.WithLogger(log),
		screening.WithAuditRecorder(recorder),
		screening.WithMetrics(metrics.New()),
		screening.WithStageTimeout(cfg.StageTimeout),
		screening.WithBatchWorkers(cfg.BatchWorkers),
	)
	if err != nil {
		log.Error("build pipeline", "error", err)
		os.Exit(1)
	}

	loader, err := ingest.NewLoader(replaceStore, log)
	if err != nil {
		log.Error("build loader", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requesttime.Middleware)
	router.Use(platformmetrics.NewHTTP().Middleware)
	screeninghandler.New(pipeline, log).Register(router)
	ingesthandler.New(loader, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting watchlist", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
