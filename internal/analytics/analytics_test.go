package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dev-events/backend/internal/models"
	"github.com/dev-events/backend/pkg/queue"
)

type enqueued struct {
	jobType queue.JobType
	capture models.Capture
}

// chanEnqueuer forwards every enqueue to a channel and returns err.
type chanEnqueuer struct {
	ch  chan enqueued
	err error
}

func (e *chanEnqueuer) Enqueue(_ context.Context, jobType queue.JobType, payload interface{}) error {
	e.ch <- enqueued{jobType: jobType, capture: payload.(models.Capture)}
	return e.err
}

func receive(t *testing.T, ch chan enqueued) enqueued {
	t.Helper()
	select {
	case got := <-ch:
		return got
	case <-time.After(2 * time.Second):
		t.Fatal("capture was not enqueued")
		return enqueued{}
	}
}

func TestQueueNotifier_Capture(t *testing.T) {
	enq := &chanEnqueuer{ch: make(chan enqueued, 1)}
	n := NewQueueNotifier(enq, zap.NewNop())
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	n.Capture(models.CaptureEventBooked, "ada@example.com", map[string]string{"slug": "sf-meetup"})

	got := receive(t, enq.ch)
	assert.Equal(t, queue.JobTypeCapture, got.jobType)
	assert.Equal(t, models.Capture{
		Event:      models.CaptureEventBooked,
		DistinctID: "ada@example.com",
		Properties: map[string]string{"slug": "sf-meetup"},
		Timestamp:  fixed,
	}, got.capture)
}

func TestQueueNotifier_CaptureExceptionIgnoresEnqueueFailure(t *testing.T) {
	enq := &chanEnqueuer{ch: make(chan enqueued, 1), err: errors.New("redis down")}
	n := NewQueueNotifier(enq, zap.NewNop())

	assert.NotPanics(t, func() { n.CaptureException(errors.New("insert booking: timeout")) })

	got := receive(t, enq.ch)
	assert.Equal(t, models.CaptureException, got.capture.Event)
	assert.Equal(t, "insert booking: timeout", got.capture.Properties["message"])
}

func TestQueueNotifier_CaptureExceptionNil(t *testing.T) {
	enq := &chanEnqueuer{ch: make(chan enqueued, 1)}
	n := NewQueueNotifier(enq, zap.NewNop())

	n.CaptureException(nil)

	select {
	case <-enq.ch:
		t.Fatal("nil error must not be captured")
	case <-time.After(50 * time.Millisecond):
	}
}

type batchRequest struct {
	APIKey string `json:"api_key"`
	Batch  []struct {
		Type       string                 `json:"type"`
		Event      string                 `json:"event"`
		DistinctID string                 `json:"distinct_id"`
		Properties map[string]interface{} `json:"properties"`
	} `json:"batch"`
}

func TestPostHogSink_SendFlushesOnClose(t *testing.T) {
	var (
		mu  sync.Mutex
		got []batchRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/batch/", r.URL.Path)
		var b batchRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&b)) {
			mu.Lock()
			got = append(got, b)
			mu.Unlock()
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := NewPostHogSink(PostHogConfig{APIKey: "phc_test", Host: srv.URL}, zap.NewNop())
	require.NoError(t, err)

	err = sink.Send(context.Background(), models.Capture{
		Event:      models.CaptureEventBooked,
		DistinctID: "ada@example.com",
		Properties: map[string]string{"eventId": "65f0c1", "slug": "sf-meetup"},
		Timestamp:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "phc_test", got[0].APIKey)
	require.Len(t, got[0].Batch, 1)
	msg := got[0].Batch[0]
	assert.Equal(t, "capture", msg.Type)
	assert.Equal(t, models.CaptureEventBooked, msg.Event)
	assert.Equal(t, "ada@example.com", msg.DistinctID)
	assert.Equal(t, "65f0c1", msg.Properties["eventId"])
	assert.Equal(t, "sf-meetup", msg.Properties["slug"])
}

func TestPostHogSink_SendRejectsMissingDistinctID(t *testing.T) {
	sink, err := NewPostHogSink(PostHogConfig{APIKey: "phc_test", Host: "http://127.0.0.1:0"}, zap.NewNop())
	require.NoError(t, err)
	defer sink.Close()

	err = sink.Send(context.Background(), models.Capture{Event: models.CaptureEventBooked})

	assert.ErrorContains(t, err, "enqueue capture")
}

func TestPostHogSink_SendAfterClose(t *testing.T) {
	sink, err := NewPostHogSink(PostHogConfig{APIKey: "phc_test", Host: "http://127.0.0.1:0"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	err = sink.Send(context.Background(), models.Capture{Event: models.CaptureEventBooked, DistinctID: "ada@example.com"})

	assert.Error(t, err)
}
