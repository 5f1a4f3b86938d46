package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dev-events/backend/internal/analytics"
	"github.com/dev-events/backend/internal/models"
	"github.com/dev-events/backend/pkg/queue"
)

// JobQueue is the part of queue.Queue the processor uses.
type JobQueue interface {
	Dequeue(ctx context.Context) (*queue.Job, error)
	Retry(ctx context.Context, job *queue.Job) error
}

// CaptureProcessor drains analytics capture jobs into a sink.
type CaptureProcessor struct {
	sink    analytics.Sink
	queue   JobQueue
	backoff time.Duration
	logger  *zap.Logger
}

// NewCaptureProcessor creates a capture processor.
func NewCaptureProcessor(sink analytics.Sink, q JobQueue, logger *zap.Logger) *CaptureProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CaptureProcessor{sink: sink, queue: q, backoff: queue.RetryBackoff, logger: logger}
}

// Process executes one capture job.
func (p *CaptureProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeCapture {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var c models.Capture
	if err := json.Unmarshal(job.Payload, &c); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if err := p.sink.Send(ctx, c); err != nil {
		return fmt.Errorf("send capture: %w", err)
	}
	p.logger.Debug("capture delivered", zap.String("job_id", job.ID), zap.String("event", c.Event))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *CaptureProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("capture worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			p.sleep(ctx)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			p.sleep(ctx)
		}
	}
}

func (p *CaptureProcessor) sleep(ctx context.Context) {
	t := time.NewTimer(p.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
