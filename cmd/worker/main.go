// Package main runs the background worker that forwards analytics captures.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dev-events/backend/config"
	"github.com/dev-events/backend/internal/analytics"
	"github.com/dev-events/backend/internal/worker"
	"github.com/dev-events/backend/pkg/logger"
	"github.com/dev-events/backend/pkg/queue"
	"github.com/dev-events/backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	rdb, err := redis.NewClient(ctx, redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, log)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var sink analytics.Sink
	if cfg.Analytics.APIKey != "" {
		ph, err := analytics.NewPostHogSink(analytics.PostHogConfig{
			APIKey:        cfg.Analytics.APIKey,
			Host:          cfg.Analytics.Host,
			FlushInterval: time.Duration(cfg.Analytics.FlushIntervalSec) * time.Second,
		}, log)
		if err != nil {
			log.Fatal("posthog", zap.Error(err))
		}
		defer ph.Close()
		sink = ph
		log.Info("forwarding captures to posthog", zap.String("host", cfg.Analytics.Host))
	} else {
		sink = analytics.NewLogSink(log)
		log.Warn("POSTHOG_API_KEY not set, captures will only be logged")
	}

	jobQueue := queue.NewQueue(rdb.Client, log)
	processor := worker.NewCaptureProcessor(sink, jobQueue, log)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		processor.Run(workerCtx)
		close(done)
	}()
	log.Info("worker started", zap.String("queue", queue.QueueAnalytics))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		log.Warn("worker did not stop in time")
	}
	log.Info("worker stopped")
}
