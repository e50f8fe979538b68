// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Backend interface, which models the
// remote service as buckets of keyed objects. This abstraction supports both
// AWS S3 and self-hosted MinIO instances, and makes storage interactions easy
// to mock in unit tests (see core/storage/mocks).
//
// # Backend Interface
//
// Backend is addressed by bucket name and object key. Keys never carry a
// leading slash; the "/"-rooted path convention lives one layer up, in
// feature/pathstore.
//
// # Operations
//
//   - CreateBucket / UpdateBucket: bucket provisioning with visibility and
//     upload restrictions (restrictions are persisted as bucket tags).
//   - EmptyBucket / DeleteBucket: bucket teardown.
//   - PublicURL: derives the public URL for a key. With an empty key it
//     yields the bucket's URL prefix.
//   - List: immediate children of a prefix. A key with no children lists
//     empty, which callers interpret as "this key is a file".
//   - Copy / Remove / Upload: object-level operations. Remove is batched.
//
// # Usage
//
//	backend, err := storage.NewBackend(config)
//	entries, err := backend.List(ctx, "files", "dir")
package storage
