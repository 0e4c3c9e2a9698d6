package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	fundhandler "fundsight/internal/fund/handler"
	fundmetrics "fundsight/internal/fund/metrics"
	fundservice "fundsight/internal/fund/service"
	fundstore "fundsight/internal/fund/store"
	"fundsight/internal/platform/config"
	"fundsight/internal/platform/httpserver"
	"fundsight/internal/platform/logger"
	"fundsight/internal/platform/middleware"
	"fundsight/internal/platform/postgres"
	platformredis "fundsight/internal/platform/redis"
	"fundsight/pkg/platform/audit"
	auditkafka "fundsight/pkg/platform/audit/kafka"
	auditmemory "fundsight/pkg/platform/audit/store/memory"
	auditworker "fundsight/pkg/platform/audit/worker"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Audit trail: Kafka when brokers are configured, otherwise an
	// in-process worker draining into a bounded memory store.
	var auditPublisher audit.Publisher
	if len(cfg.Audit.Brokers) > 0 {
		kafkaPublisher, err := auditkafka.NewPublisher(cfg.Audit.Brokers, cfg.Audit.Topic, log)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaPublisher.Close()
		auditPublisher = kafkaPublisher
	} else {
		inbox := make(chan audit.Event, 256)
		worker := auditworker.NewWorker(auditmemory.NewStore(), inbox, log)
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit worker stopped", "error", err)
			}
		}()
		auditPublisher = audit.NewChannelPublisher(inbox)
	}

	svc := fundservice.New(
		fundstore.NewPostgres(pool),
		fundstore.NewPostgresCatalog(pool),
		fundservice.WithLogger(log),
		fundservice.WithMetrics(fundmetrics.New()),
		fundservice.WithAuditPublisher(auditPublisher),
		fundservice.WithAggregateTimeout(cfg.AggregateTimeout),
	)

	router := chi.NewRouter()
	router.Use(chimw.Recoverer)
	router.Use(middleware.Metadata)
	router.Use(middleware.RequestLogger(log))
	if redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit, log)
		router.Use(limiter.Handler)
	}

	fundhandler.New(svc, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting fundsight", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
