package pathstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"path-store/core/storage"
	"path-store/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Backend) {
	app := fiber.New()
	backend := new(mocks.Backend)
	backend.On("PublicURL", mock.Anything, "test-bucket", "").
		Return("http://localhost:9000/test-bucket/", nil).Once()

	store := New(backend, zap.NewNop())
	require.NoError(t, store.SetBucketName(context.Background(), "test-bucket"))

	handler := NewHandler(store, zap.NewNop())
	handler.RegisterRoutes(app)
	return app, backend
}

func TestHandleGetBucket(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/store/bucket", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "test-bucket", body["name"])
	assert.Equal(t, "http://localhost:9000/test-bucket/", body["url_prefix"])
}

func TestHandleGetBucket_NoneSelected(t *testing.T) {
	app := fiber.New()
	store := New(new(mocks.Backend), zap.NewNop())
	NewHandler(store, zap.NewNop()).RegisterRoutes(app)

	req := httptest.NewRequest("GET", "/store/bucket", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleInitBucket(t *testing.T) {
	app, backend := setupTestApp(t)

	// The JSON number arrives as float64 and is normalized to a string.
	backend.On("CreateBucket", mock.Anything, "test-bucket", storage.BucketOptions{
		Public:           true,
		FileSizeLimit:    "1048576",
		AllowedMimeTypes: []string{"text/plain"},
	}).Return(nil).Once()

	payload := `{"public": true, "file_size_limit": 1048576, "allowed_mime_types": ["text/plain"]}`
	req := httptest.NewRequest("POST", "/store/bucket/init", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	backend.AssertExpectations(t)
}

func TestHandleDestroyBucket(t *testing.T) {
	app, backend := setupTestApp(t)

	backend.On("EmptyBucket", mock.Anything, "test-bucket").Return(nil).Once()
	backend.On("DeleteBucket", mock.Anything, "test-bucket").Return(nil).Once()

	req := httptest.NewRequest("DELETE", "/store/bucket", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "destroyed", body["status"])
}

func TestHandleUpload(t *testing.T) {
	app, backend := setupTestApp(t)

	backend.On("Upload", mock.Anything, "test-bucket", "test.txt", []byte("hello"),
		storage.UploadOptions{ContentType: "text/plain", Upsert: true}).
		Return("test.txt", nil).Once()

	payload := `{"path": "/test.txt", "content": "hello", "content_type": "text/plain"}`
	req := httptest.NewRequest("POST", "/store/files", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "/test.txt", body["path"])
}

func TestHandleUpload_EmptyContent(t *testing.T) {
	app, _ := setupTestApp(t)

	payload := `{"path": "/test.txt", "content": ""}`
	req := httptest.NewRequest("POST", "/store/files", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, string(KindInvalidInput), body["kind"])
}

func TestHandleCopy(t *testing.T) {
	app, backend := setupTestApp(t)

	backend.On("Copy", mock.Anything, "test-bucket", "test.txt", "dir/test2.txt").
		Return("dir/test2.txt", nil).Once()

	payload := `{"from": "/test.txt", "to": "/dir/test2.txt"}`
	req := httptest.NewRequest("POST", "/store/files/copy", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "/dir/test2.txt", body["path"])
}

func TestHandleList(t *testing.T) {
	app, backend := setupTestApp(t)

	backend.On("List", mock.Anything, "test-bucket", "dir").
		Return([]storage.ObjectEntry{{Name: "test2.txt"}}, nil).Once()
	backend.On("List", mock.Anything, "test-bucket", "dir/test2.txt").
		Return([]storage.ObjectEntry{}, nil).Once()

	req := httptest.NewRequest("GET", "/store/files?path=/dir", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, []any{"dir/test2.txt"}, body["files"])
}

func TestHandleList_MissingPath(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/store/files", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleDelete(t *testing.T) {
	app, backend := setupTestApp(t)

	backend.On("List", mock.Anything, "test-bucket", "dir").
		Return([]storage.ObjectEntry{{Name: "test2.txt"}}, nil).Once()
	backend.On("List", mock.Anything, "test-bucket", "dir/test2.txt").
		Return([]storage.ObjectEntry{}, nil).Once()
	backend.On("Remove", mock.Anything, "test-bucket", []string{"dir/test2.txt"}).
		Return([]string{"dir/test2.txt"}, nil).Once()

	payload := `{"paths": ["/dir"]}`
	req := httptest.NewRequest("DELETE", "/store/files", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, []any{"/dir/test2.txt"}, body["removed"])
}

func TestHandleDelete_InvalidPath(t *testing.T) {
	app, _ := setupTestApp(t)

	payload := `{"paths": ["dir"]}`
	req := httptest.NewRequest("DELETE", "/store/files", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, string(KindInvalidPath), body["kind"])
}

func TestHandleInitBucket_NoBucket(t *testing.T) {
	app := fiber.New()
	store := New(new(mocks.Backend), zap.NewNop())
	NewHandler(store, zap.NewNop()).RegisterRoutes(app)

	req := httptest.NewRequest("POST", "/store/bucket/init", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestHandleList_BackendError(t *testing.T) {
	app, backend := setupTestApp(t)

	backend.On("List", mock.Anything, "test-bucket", "dir").
		Return(nil, errors.New("connection refused"))

	req := httptest.NewRequest("GET", "/store/files?path=/dir", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
}
