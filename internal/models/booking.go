package models

import "time"

// Booking is one attendee's registration for an event. EventID and Slug are not
// checked against stored events.
type Booking struct {
	ID        string    `json:"_id"`
	EventID   string    `json:"eventId"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
