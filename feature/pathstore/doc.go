// Package pathstore implements the path-oriented convenience layer over
// the object-storage backend.
//
// It maps user-facing "/"-rooted paths onto backend object keys and adds
// the operations the raw backend lacks: recursive listing, recursive
// deletion, and bucket lifecycle helpers (init/destroy).
//
// # Path Convention
//
// Public operations accept and return paths that start with "/". The
// backend only ever sees keys with the slash stripped. No other
// normalization is applied: trailing slashes and repeated slashes are the
// caller's responsibility.
//
// # Leaf Rule
//
// The backend's flat list call cannot distinguish an empty directory from
// a stored object. ListAllFiles therefore treats any key with zero listed
// children as a file and returns it as-is. This rule is what lets Delete
// accept both file and directory paths uniformly.
//
// # Components
//
//   - Store: the library core (SetBucketName, InitBucket, DestroyBucket,
//     Copy, Upload, ListAllFiles, Delete).
//   - Handler: exposes the Store over HTTP as JSON endpoints.
//   - Feature: registers the handler with the application loader.
//
// # Usage
//
//	store := pathstore.New(backend, logger)
//	if err := store.SetBucketName(ctx, "files"); err != nil { ... }
//	path, err := store.Upload(ctx, data, "/test.txt", "text/plain")
//	removed, err := store.Delete(ctx, []string{"/dir"})
package pathstore
