package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminhandler "vedo/internal/admin/handler"
	adminservice "vedo/internal/admin/service"
	"vedo/internal/audit"
	authhandler "vedo/internal/auth/handler"
	authservice "vedo/internal/auth/service"
	authstore "vedo/internal/auth/store"
	creatorhandler "vedo/internal/creator/handler"
	creatormetrics "vedo/internal/creator/metrics"
	creatorservice "vedo/internal/creator/service"
	creatorstore "vedo/internal/creator/store"
	"vedo/internal/idgen"
	"vedo/internal/platform/config"
	"vedo/internal/platform/database"
	"vedo/internal/platform/health"
	"vedo/internal/platform/httpserver"
	"vedo/internal/platform/kafka"
	"vedo/internal/platform/kafka/producer"
	"vedo/internal/platform/logger"
	"vedo/internal/platform/middleware"
	redisclient "vedo/internal/platform/redis"
	"vedo/internal/seeder"
	httptransport "vedo/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing vedo portal",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	healthHandler := health.New(cfg.Environment)

	// Postgres is optional; without it everything runs in memory with demo
	// data seeded below.
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	var applications creatorstore.Store
	var auditStore audit.Store
	if pool != nil {
		applications = creatorstore.NewPostgres(pool.DB())
		auditStore = audit.NewPostgres(pool.DB())
		healthHandler.RegisterCheck("postgres", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Health(ctx)
		})
		defer pool.Close() //nolint:errcheck
		log.Info("using postgres stores")
	} else {
		applications = creatorstore.NewInMemory()
		auditStore = audit.NewInMemoryStore()
		log.Info("using in-memory stores")
	}

	// Kafka fan-out of audit entries is optional.
	auditOpts := []audit.PublisherOption{audit.WithLogger(log)}
	if cfg.AuditBuffer > 0 {
		auditOpts = append(auditOpts, audit.WithAsyncBuffer(cfg.AuditBuffer))
	}
	if cfg.KafkaBrokers != "" {
		kafkaProducer, err := producer.New(kafka.DefaultProducerConfig(cfg.KafkaBrokers), log)
		if err != nil {
			log.Error("kafka init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaProducer.Close() //nolint:errcheck
		auditOpts = append(auditOpts, audit.WithSink(audit.NewKafkaSink(kafkaProducer, cfg.AuditTopic)))
		log.Info("audit entries fan out to kafka", "topic", cfg.AuditTopic)
	}
	publisher := audit.NewPublisher(auditStore, auditOpts...)
	defer publisher.Close()

	generator, err := idgen.New(cfg.RegistryIDPrefix)
	if err != nil {
		log.Error("invalid registry prefix", "error", err)
		os.Exit(1)
	}

	creatorOpts := []creatorservice.Option{
		creatorservice.WithLogger(log),
		creatorservice.WithAuditRecorder(publisher),
		creatorservice.WithMetrics(creatormetrics.New()),
	}

	// Redis-backed lookup cache is optional.
	redisConn, err := redisclient.New(config.DefaultRedisConfig(cfg.RedisURL))
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisConn != nil {
		defer redisConn.Close() //nolint:errcheck
		healthHandler.RegisterCheck("redis", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisConn.Health(ctx)
		})
		creatorOpts = append(creatorOpts,
			creatorservice.WithLookupCache(creatorservice.NewRedisLookupCache(redisConn, cfg.LookupCacheTTL, log)))
		log.Info("lookup cache enabled", "ttl", cfg.LookupCacheTTL)

		poolStatsDone := make(chan struct{})
		defer close(poolStatsDone)
		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					redisConn.RecordPoolStats()
				case <-poolStatsDone:
					return
				}
			}
		}()
	}

	creatorSvc := creatorservice.New(applications, generator, creatorOpts...)

	users := authstore.NewInMemory()
	authSvc := authservice.New(users,
		authservice.NewTokenService(cfg.JWTSigningKey, cfg.TokenTTL),
		authservice.WithLogger(log),
	)

	dashboard := adminservice.New(applications, publisher, adminservice.WithLogger(log))

	if pool == nil {
		if err := seeder.New(users, applications, log).SeedAll(context.Background()); err != nil {
			log.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	} else {
		// Accounts stay in memory even with postgres; seed them always.
		if err := seeder.New(users, nil, log).SeedAll(context.Background()); err != nil {
			log.Error("seeding users failed", "error", err)
			os.Exit(1)
		}
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow, log)
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Creator:     creatorhandler.New(creatorSvc, log),
		Auth:        authhandler.New(authSvc, log),
		Admin:       adminhandler.New(dashboard, creatorSvc, log),
		Health:      healthHandler,
		Verifier:    authSvc.Verifier(),
		RateLimiter: limiter,
		Logger:      log,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
