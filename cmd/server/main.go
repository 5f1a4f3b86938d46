// Package main runs the events HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dev-events/backend/config"
	"github.com/dev-events/backend/internal/analytics"
	"github.com/dev-events/backend/internal/bookings"
	"github.com/dev-events/backend/internal/events"
	"github.com/dev-events/backend/pkg/database"
	"github.com/dev-events/backend/pkg/logger"
	"github.com/dev-events/backend/pkg/mongodb"
	"github.com/dev-events/backend/pkg/queue"
	"github.com/dev-events/backend/pkg/redis"
	"github.com/dev-events/backend/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

type stores struct {
	events   events.Store
	bookings bookings.Store
	close    func()
}

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
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal("store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer st.close()

	s3Client, err := storage.NewS3(ctx, storage.S3Config{
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		ImagesBucket:    cfg.Images.Bucket,
		PublicBaseURL:   cfg.Images.PublicBaseURL,
	}, log)
	if err != nil {
		log.Fatal("s3", zap.Error(err))
	}

	// Bookings must not fail because analytics is unavailable.
	var notifier bookings.Notifier
	rdb, err := redis.NewClient(ctx, redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, log)
	if err != nil {
		log.Warn("redis unavailable, analytics captures will only be logged", zap.Error(err))
		notifier = analytics.NewLogNotifier(log)
	} else {
		defer rdb.Close()
		notifier = analytics.NewQueueNotifier(queue.NewQueue(rdb.Client, log), log)
	}

	eventService := events.NewService(st.events, s3Client, cfg.Images.Folder, log)
	eventHandler := events.NewHandler(eventService, cfg.Server.MaxMultipartMemory, log)
	bookingService := bookings.NewService(st.bookings, notifier, log)
	bookingHandler := bookings.NewHandler(bookingService, log)

	router := newRouter(cfg.Server, eventHandler, bookingHandler, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

// openStores connects the configured document store and prepares its schema.
func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		mc, err := mongodb.NewClient(ctx, cfg.Mongo.URI, cfg.Mongo.Database, log)
		if err != nil {
			return nil, err
		}
		eventRepo := events.NewMongoRepository(mc.DB)
		if err := eventRepo.EnsureIndexes(ctx); err != nil {
			_ = mc.Close(context.Background())
			return nil, err
		}
		return &stores{
			events:   eventRepo,
			bookings: bookings.NewMongoRepository(mc.DB),
			close:    func() { _ = mc.Close(context.Background()) },
		}, nil
	default:
		pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), database.PoolOptions{
			MaxConns:        cfg.Database.MaxConns,
			MaxConnIdleTime: time.Duration(cfg.Database.MaxConnIdleSec) * time.Second,
		}, log)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &stores{
			events:   events.NewRepository(pool),
			bookings: bookings.NewRepository(pool),
			close:    pool.Close,
		}, nil
	}
}
