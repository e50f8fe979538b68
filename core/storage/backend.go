package storage

import "context"

// ObjectEntry is a single entry returned by a flat listing call.
// Name is the immediate child segment under the queried prefix,
// without any trailing slash.
type ObjectEntry struct {
	Name string `json:"name"`
}

// BucketOptions control bucket visibility and upload restrictions.
type BucketOptions struct {
	// Public grants anonymous read access to every object in the bucket.
	Public bool
	// FileSizeLimit is the maximum accepted object size ("10485760", "10MB", ...).
	// Empty means no limit.
	FileSizeLimit string
	// AllowedMimeTypes restricts uploads to the listed content types.
	// Nil or empty means any type.
	AllowedMimeTypes []string
}

// UploadOptions control a single object upload.
type UploadOptions struct {
	// ContentType is the MIME type stored with the object.
	ContentType string
	// Upsert overwrites an existing object at the same key.
	Upsert bool
}

// Backend defines the interface for the remote object-storage service.
// It is addressed by bucket name and object key (no leading slash).
type Backend interface {
	// CreateBucket creates a new bucket and applies the given options.
	CreateBucket(ctx context.Context, name string, opts BucketOptions) error
	// UpdateBucket re-applies options to an existing bucket.
	UpdateBucket(ctx context.Context, name string, opts BucketOptions) error
	// EmptyBucket removes every object in the bucket.
	EmptyBucket(ctx context.Context, name string) error
	// DeleteBucket removes the bucket itself. The bucket must be empty.
	DeleteBucket(ctx context.Context, name string) error
	// PublicURL returns the public URL for an object key. An empty key
	// yields the bucket's URL prefix.
	PublicURL(ctx context.Context, bucket, key string) (string, error)
	// List returns the immediate children of prefix. A key with no
	// children yields an empty slice.
	List(ctx context.Context, bucket, prefix string) ([]ObjectEntry, error)
	// Copy duplicates an object and returns the destination key.
	Copy(ctx context.Context, bucket, oldKey, newKey string) (string, error)
	// Remove deletes the given keys in one batch and returns the keys
	// that were removed.
	Remove(ctx context.Context, bucket string, keys []string) ([]string, error)
	// Upload stores content under key and returns the stored key.
	Upload(ctx context.Context, bucket, key string, content []byte, opts UploadOptions) (string, error)
}
