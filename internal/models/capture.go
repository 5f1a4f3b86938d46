package models

import "time"

// Capture names used by the booking flow.
const (
	CaptureEventBooked = "event_booked"
	CaptureException   = "$exception"
)

// Capture is one analytics notification.
type Capture struct {
	Event      string            `json:"event"`
	DistinctID string            `json:"distinct_id"`
	Properties map[string]string `json:"properties,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}
