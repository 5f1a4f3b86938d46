package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/posthog/posthog-go"
	"go.uber.org/zap"

	"github.com/dev-events/backend/internal/models"
)

// Sink delivers a capture to its final destination.
type Sink interface {
	Send(ctx context.Context, c models.Capture) error
}

// PostHogConfig configures the PostHog sink. An empty Host uses the PostHog cloud endpoint.
type PostHogConfig struct {
	APIKey        string
	Host          string
	FlushInterval time.Duration
	BatchSize     int
}

// PostHogSink hands captures to a posthog-go client, which batches and retries delivery.
type PostHogSink struct {
	client posthog.Client
	logger *zap.Logger
}

// NewPostHogSink creates a PostHog sink. Close must be called to flush pending captures.
func NewPostHogSink(cfg PostHogConfig, logger *zap.Logger) (*PostHogSink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := posthog.NewWithConfig(cfg.APIKey, posthog.Config{
		Endpoint:  cfg.Host,
		Interval:  cfg.FlushInterval,
		BatchSize: cfg.BatchSize,
		Logger:    posthogLogger{logger.Sugar()},
	})
	if err != nil {
		return nil, fmt.Errorf("posthog client: %w", err)
	}
	return &PostHogSink{client: client, logger: logger}, nil
}

// Send enqueues c on the client.
func (s *PostHogSink) Send(_ context.Context, c models.Capture) error {
	props := posthog.NewProperties()
	for k, v := range c.Properties {
		props.Set(k, v)
	}
	if err := s.client.Enqueue(posthog.Capture{
		DistinctId: c.DistinctID,
		Event:      c.Event,
		Timestamp:  c.Timestamp,
		Properties: props,
	}); err != nil {
		return fmt.Errorf("enqueue capture: %w", err)
	}
	return nil
}

// Close flushes pending captures and stops the client.
func (s *PostHogSink) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("close posthog client: %w", err)
	}
	s.logger.Info("posthog sink flushed")
	return nil
}

// posthogLogger routes posthog-go client logs to zap.
type posthogLogger struct {
	s *zap.SugaredLogger
}

func (l posthogLogger) Logf(format string, args ...interface{})   { l.s.Debugf(format, args...) }
func (l posthogLogger) Errorf(format string, args ...interface{}) { l.s.Errorf(format, args...) }

// LogSink only logs captures.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a log-only sink.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Send logs c.
func (s *LogSink) Send(_ context.Context, c models.Capture) error {
	s.logger.Info("capture",
		zap.String("event", c.Event),
		zap.String("distinct_id", c.DistinctID),
		zap.Any("properties", c.Properties),
		zap.Time("timestamp", c.Timestamp))
	return nil
}
