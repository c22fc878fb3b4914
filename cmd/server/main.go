package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"prakan/internal/feedback"
	"prakan/internal/platform/config"
	"prakan/internal/platform/events"
	"prakan/internal/platform/httpserver"
	"prakan/internal/platform/logger"
	"prakan/internal/platform/metrics"
	"prakan/internal/platform/middleware"
	"prakan/internal/platform/redis"
	httptransport "prakan/internal/transport/http"
	"prakan/internal/wizard"
)

// main wires dependencies from the environment and keeps the server lifecycle
// small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	// Feedback store: Postgres when configured, memory otherwise.
	var feedbackStore feedback.Store
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		pg := feedback.NewPostgresStore(db)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			log.Error("failed to ensure database schema", "error", err)
			os.Exit(1)
		}
		feedbackStore = pg
		log.Info("feedback store: postgres")
	} else {
		feedbackStore = feedback.NewInMemoryStore()
		log.Info("feedback store: memory")
	}

	// Wizard session store: Redis when configured, memory otherwise.
	var sessionStore wizard.Store = wizard.NewInMemoryStore()
	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessionStore = wizard.NewRedisStore(redisClient.Client, cfg.SessionTTL)
		log.Info("session store: redis")
	} else {
		log.Info("session store: memory")
	}

	// Event publisher: Kafka when brokers are configured.
	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		publisher = kafka
		log.Info("event publisher: kafka", "topic", cfg.KafkaTopic)
	}

	feedbackSvc := feedback.NewService(feedbackStore, m, publisher, log)

	// The wizard submits in process unless a remote feedback endpoint is
	// configured.
	var submitter wizard.Submitter = wizard.NewServiceSubmitter(feedbackSvc)
	if cfg.FeedbackEndpoint != "" {
		submitter = wizard.NewHTTPSubmitter(cfg.FeedbackEndpoint, cfg.SubmitTimeout)
		log.Info("submitter: http", "endpoint", cfg.FeedbackEndpoint)
	}
	wizardSvc := wizard.NewService(sessionStore, submitter, m, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:        log,
		Metrics:       m,
		Wizard:        wizardSvc,
		Feedback:      feedbackSvc,
		SubmitLimiter: middleware.NewRateLimiter(cfg.SubmitRatePerMinute, time.Minute),
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
