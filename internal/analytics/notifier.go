// Package analytics emits booking notifications and forwards them to the capture endpoint.
package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dev-events/backend/internal/models"
	"github.com/dev-events/backend/pkg/queue"
)

// DefaultEnqueueTimeout bounds a single detached enqueue.
const DefaultEnqueueTimeout = 5 * time.Second

// Enqueuer pushes jobs onto the analytics queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, jobType queue.JobType, payload interface{}) error
}

// QueueNotifier enqueues captures from a detached goroutine. Callers never wait on Redis
// and never see its errors.
type QueueNotifier struct {
	enqueuer Enqueuer
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewQueueNotifier creates a notifier backed by enqueuer.
func NewQueueNotifier(enqueuer Enqueuer, logger *zap.Logger) *QueueNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueueNotifier{enqueuer: enqueuer, timeout: DefaultEnqueueTimeout, logger: logger, now: time.Now}
}

// Capture records a named event.
func (n *QueueNotifier) Capture(event, distinctID string, properties map[string]string) {
	n.send(models.Capture{Event: event, DistinctID: distinctID, Properties: properties, Timestamp: n.now().UTC()})
}

// CaptureException records a failure.
func (n *QueueNotifier) CaptureException(err error) {
	if err == nil {
		return
	}
	n.send(models.Capture{
		Event:      models.CaptureException,
		DistinctID: "server",
		Properties: map[string]string{"message": err.Error()},
		Timestamp:  n.now().UTC(),
	})
}

func (n *QueueNotifier) send(c models.Capture) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.enqueuer.Enqueue(ctx, queue.JobTypeCapture, c); err != nil {
			n.logger.Warn("analytics capture dropped", zap.Error(err), zap.String("event", c.Event))
		}
	}()
}

// LogNotifier writes captures to the log. Used when no queue is available.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Capture logs a named event.
func (n *LogNotifier) Capture(event, distinctID string, properties map[string]string) {
	n.logger.Info("analytics capture", zap.String("event", event), zap.String("distinct_id", distinctID), zap.Any("properties", properties))
}

// CaptureException logs a failure.
func (n *LogNotifier) CaptureException(err error) {
	n.logger.Warn("analytics exception", zap.Error(err))
}
