package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := map[Kind]int{
		InvalidInput:     http.StatusBadRequest,
		InvalidFormat:    http.StatusBadRequest,
		MissingImage:     http.StatusBadRequest,
		NotFound:         http.StatusNotFound,
		UploadError:      http.StatusInternalServerError,
		PersistenceError: http.StatusInternalServerError,
		StoreError:       http.StatusInternalServerError,
		Unexpected:       http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, StatusCode(kind), kind.String())
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Unexpected, KindOf(errors.New("boom")))
	assert.Equal(t, NotFound, KindOf(New(NotFound, "Event not found", "")))

	wrapped := fmt.Errorf("lookup: %w", New(StoreError, "Failed to fetch event", "timeout"))
	assert.Equal(t, StoreError, KindOf(wrapped))
	assert.True(t, Is(wrapped, StoreError))
	assert.False(t, Is(nil, StoreError))
}

func TestWrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(PersistenceError, "Event Creation Failed", cause)

	assert.Equal(t, "duplicate key", err.Detail)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Event Creation Failed: duplicate key", err.Error())
}
