package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// SlugPattern matches lowercase alphanumeric segments joined by single hyphens.
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Event field names with dedicated handling. Everything else submitted with an
// event is kept verbatim in Fields.
const (
	FieldID        = "_id"
	FieldSlug      = "slug"
	FieldAgenda    = "agenda"
	FieldTags      = "tags"
	FieldImage     = "image"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Event is a schedulable gathering. Agenda and Tags are nil when they were not submitted.
type Event struct {
	ID        string
	Slug      string
	Agenda    []string
	Tags      []string
	Image     string
	Fields    map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsReserved reports whether name is one of the typed event fields.
func IsReserved(name string) bool {
	switch name {
	case FieldID, FieldSlug, FieldAgenda, FieldTags, FieldImage, FieldCreatedAt, FieldUpdatedAt:
		return true
	}
	return false
}

// Validate checks the constraints the stores enforce on insert.
func (e *Event) Validate() error {
	if e.Slug == "" {
		return errors.New("event validation failed: slug is required")
	}
	if !SlugPattern.MatchString(e.Slug) {
		return fmt.Errorf("event validation failed: slug %q is not a valid slug", e.Slug)
	}
	if e.Image == "" {
		return errors.New("event validation failed: image is required")
	}
	return nil
}

// MarshalJSON flattens the opaque fields next to the typed ones.
func (e Event) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(e.Fields)+7)
	for k, v := range e.Fields {
		if !IsReserved(k) {
			out[k] = v
		}
	}
	if e.ID != "" {
		out[FieldID] = e.ID
	}
	out[FieldSlug] = e.Slug
	out[FieldImage] = e.Image
	if e.Agenda != nil {
		out[FieldAgenda] = e.Agenda
	}
	if e.Tags != nil {
		out[FieldTags] = e.Tags
	}
	if !e.CreatedAt.IsZero() {
		out[FieldCreatedAt] = e.CreatedAt
	}
	if !e.UpdatedAt.IsZero() {
		out[FieldUpdatedAt] = e.UpdatedAt
	}
	return json.Marshal(out)
}
