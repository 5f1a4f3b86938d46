package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugPattern(t *testing.T) {
	valid := []string{"dev-meetup-2024", "sf-meetup", "a", "2024", "a-b-c"}
	invalid := []string{"", "Dev-Meetup", "dev--meetup", "-dev", "dev-", "dev_meetup", "dev meetup", "dév"}

	for _, s := range valid {
		assert.True(t, SlugPattern.MatchString(s), s)
	}
	for _, s := range invalid {
		assert.False(t, SlugPattern.MatchString(s), s)
	}
}

func TestEventValidate(t *testing.T) {
	ok := &Event{Slug: "sf-meetup", Image: "https://cdn.example.com/x.png"}
	assert.NoError(t, ok.Validate())

	assert.ErrorContains(t, (&Event{Image: "u"}).Validate(), "slug is required")
	assert.ErrorContains(t, (&Event{Slug: "Bad Slug", Image: "u"}).Validate(), "not a valid slug")
	assert.ErrorContains(t, (&Event{Slug: "ok"}).Validate(), "image is required")
}

func TestEventMarshalJSON(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	ev := Event{
		ID:        "abc",
		Slug:      "sf-meetup",
		Tags:      []string{"go"},
		Image:     "https://cdn.example.com/x.png",
		Fields:    map[string]string{"title": "SF Meetup", "slug": "ignored"},
		CreatedAt: created,
	}

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "abc", got["_id"])
	assert.Equal(t, "sf-meetup", got["slug"])
	assert.Equal(t, "SF Meetup", got["title"])
	assert.Equal(t, []interface{}{"go"}, got["tags"])
	assert.NotContains(t, got, "agenda")
	assert.NotContains(t, got, "updatedAt")
	assert.Equal(t, "2024-05-01T10:00:00Z", got["createdAt"])
}
