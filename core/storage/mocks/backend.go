package mocks

import (
	"context"

	"path-store/core/storage"

	"github.com/stretchr/testify/mock"
)

// Backend is a mock implementation of storage.Backend
type Backend struct {
	mock.Mock
}

func (m *Backend) CreateBucket(ctx context.Context, name string, opts storage.BucketOptions) error {
	args := m.Called(ctx, name, opts)
	return args.Error(0)
}

func (m *Backend) UpdateBucket(ctx context.Context, name string, opts storage.BucketOptions) error {
	args := m.Called(ctx, name, opts)
	return args.Error(0)
}

func (m *Backend) EmptyBucket(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *Backend) DeleteBucket(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *Backend) PublicURL(ctx context.Context, bucket, key string) (string, error) {
	args := m.Called(ctx, bucket, key)
	return args.String(0), args.Error(1)
}

func (m *Backend) List(ctx context.Context, bucket, prefix string) ([]storage.ObjectEntry, error) {
	args := m.Called(ctx, bucket, prefix)
	if entries, ok := args.Get(0).([]storage.ObjectEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) Copy(ctx context.Context, bucket, oldKey, newKey string) (string, error) {
	args := m.Called(ctx, bucket, oldKey, newKey)
	return args.String(0), args.Error(1)
}

func (m *Backend) Remove(ctx context.Context, bucket string, keys []string) ([]string, error) {
	args := m.Called(ctx, bucket, keys)
	if removed, ok := args.Get(0).([]string); ok {
		return removed, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) Upload(ctx context.Context, bucket, key string, content []byte, opts storage.UploadOptions) (string, error) {
	args := m.Called(ctx, bucket, key, content, opts)
	return args.String(0), args.Error(1)
}
