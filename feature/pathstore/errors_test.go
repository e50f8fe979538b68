package pathstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, KindBucketNotSelected, KindOf(errBucketNotSelected()))
	assert.Equal(t, KindInvalidPath, KindOf(errInvalidPath("bad")))
	assert.Equal(t, KindInvalidInput, KindOf(errInvalidInput("empty")))
	assert.Equal(t, KindBackend, KindOf(backendError("op", errors.New("boom"))))

	// Wrapped store errors are still matched.
	wrapped := fmt.Errorf("outer: %w", errInvalidPath("bad"))
	assert.Equal(t, KindInvalidPath, KindOf(wrapped))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := backendError("list objects", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "list objects")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestInvalidPathFields(t *testing.T) {
	err := errInvalidPath("dir/file.txt")
	assert.Equal(t, "dir/file.txt", err.Fields["path"])
}

func TestBackendErrorFieldPassthrough(t *testing.T) {
	cause := minio.ErrorResponse{
		Code:       "NoSuchBucket",
		Message:    "The specified bucket does not exist",
		BucketName: "files",
		Key:        "dir/test.txt",
		RequestID:  "17AB3",
	}
	err := backendError("copy object", cause)

	require.NotNil(t, err.Fields)
	assert.Equal(t, "NoSuchBucket", err.Fields["code"])
	assert.Equal(t, "The specified bucket does not exist", err.Fields["message"])
	assert.Equal(t, "files", err.Fields["bucket"])
	assert.Equal(t, "dir/test.txt", err.Fields["key"])
	assert.Equal(t, "17AB3", err.Fields["request_id"])
}

func TestBackendErrorPlainCause(t *testing.T) {
	err := backendError("upload object", errors.New("timeout"))
	assert.Nil(t, err.Fields)
	assert.Equal(t, KindBackend, err.Kind)
}
