package events

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-events/backend/internal/models"
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockStore) List(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, e *models.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockUploader is a mock implementation of ImageUploader. Uploaded keeps every
// object that was accepted so tests can check what remains remotely.
type MockUploader struct {
	mock.Mock
	Uploaded map[string][]byte
}

func (m *MockUploader) UploadImage(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, folder, filename, contentType, data)
	url, err := args.String(0), args.Error(1)
	if err == nil {
		if m.Uploaded == nil {
			m.Uploaded = map[string][]byte{}
		}
		m.Uploaded[url] = data
	}
	return url, err
}
