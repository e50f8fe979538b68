package pathstore

import (
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// Kind classifies errors returned by Store operations.
type Kind string

const (
	// KindBucketNotSelected marks operations invoked before any bucket
	// was selected. Raised locally, before any backend call.
	KindBucketNotSelected Kind = "bucket_not_selected"
	// KindInvalidPath marks path arguments lacking the "/" prefix.
	KindInvalidPath Kind = "invalid_path"
	// KindInvalidInput marks other invalid arguments, such as empty
	// upload content.
	KindInvalidInput Kind = "invalid_input"
	// KindBackend wraps any error surfaced by the remote backend.
	KindBackend Kind = "backend_error"
)

// Error is the error type returned by every Store operation.
type Error struct {
	Kind    Kind
	Message string
	// Fields carries backend-supplied diagnostic fields untouched.
	Fields map[string]any

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf returns the Kind of err, or the empty string when err is not a
// store Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

func errBucketNotSelected() *Error {
	return &Error{Kind: KindBucketNotSelected, Message: "no bucket selected"}
}

func errInvalidPath(path string) *Error {
	return &Error{
		Kind:    KindInvalidPath,
		Message: fmt.Sprintf("path %q must start with \"/\"", path),
		Fields:  map[string]any{"path": path},
	}
}

func errInvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// backendError wraps a backend failure, copying the Minio error-response
// fields through for diagnostics when present.
func backendError(msg string, cause error) *Error {
	e := &Error{Kind: KindBackend, Message: msg, cause: cause}

	var resp minio.ErrorResponse
	if errors.As(cause, &resp) {
		e.Fields = map[string]any{
			"code":    resp.Code,
			"message": resp.Message,
		}
		if resp.BucketName != "" {
			e.Fields["bucket"] = resp.BucketName
		}
		if resp.Key != "" {
			e.Fields["key"] = resp.Key
		}
		if resp.RequestID != "" {
			e.Fields["request_id"] = resp.RequestID
		}
	}
	return e
}
