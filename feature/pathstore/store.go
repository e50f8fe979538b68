package pathstore

import (
	"context"
	"strings"

	"path-store/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultContentType is stored with uploads that do not specify one.
const DefaultContentType = "text/plain;charset=UTF-8"

// Store layers "/"-rooted path conventions over a storage.Backend.
//
// Public operations accept and return "/"-prefixed paths; the leading
// slash is stripped before keys reach the backend. The exception is
// ListAllFiles, which returns backend-form keys, matching what Delete
// feeds into the batched removal.
type Store struct {
	backend storage.Backend
	logger  *zap.Logger

	// sel is the two-state bucket selection: nil means no bucket is
	// selected, non-nil carries the name together with the URL prefix
	// derived from it. It is swapped wholesale so the two values can
	// never disagree.
	sel *selection
}

type selection struct {
	name      string
	urlPrefix string
}

// New creates a Store with no bucket selected.
func New(backend storage.Backend, logger *zap.Logger) *Store {
	return &Store{backend: backend, logger: logger}
}

// SetBucketName selects the active bucket and derives its public URL
// prefix from the backend. The selection is unchanged when the lookup
// fails.
//
// Calling this concurrently with other operations leaves undefined which
// bucket those operations apply to; callers are expected to select a
// bucket up front.
func (s *Store) SetBucketName(ctx context.Context, name string) error {
	prefix, err := s.backend.PublicURL(ctx, name, "")
	if err != nil {
		return backendError("derive bucket url prefix", err)
	}
	s.sel = &selection{name: name, urlPrefix: prefix}
	s.logger.Debug("bucket selected", zap.String("bucket", name), zap.String("url_prefix", prefix))
	return nil
}

// BucketName returns the selected bucket name, or "" when none is set.
func (s *Store) BucketName() string {
	if s.sel == nil {
		return ""
	}
	return s.sel.name
}

// BucketURLPrefix returns the public URL prefix of the selected bucket,
// or "" when none is set.
func (s *Store) BucketURLPrefix() string {
	if s.sel == nil {
		return ""
	}
	return s.sel.urlPrefix
}

func (s *Store) selected() (*selection, error) {
	if s.sel == nil {
		return nil, errBucketNotSelected()
	}
	return s.sel, nil
}

// InitBucket provisions the selected bucket idempotently: it attempts a
// create and falls back to an update when the create fails, typically
// because the bucket already exists.
func (s *Store) InitBucket(ctx context.Context, opts storage.BucketOptions) error {
	sel, err := s.selected()
	if err != nil {
		return err
	}

	createErr := s.backend.CreateBucket(ctx, sel.name, opts)
	if createErr == nil {
		s.logger.Info("bucket created", zap.String("bucket", sel.name))
		return nil
	}
	s.logger.Debug("bucket create failed, falling back to update",
		zap.String("bucket", sel.name), zap.Error(createErr))

	if err := s.backend.UpdateBucket(ctx, sel.name, opts); err != nil {
		return backendError("init bucket", err)
	}
	s.logger.Info("bucket updated", zap.String("bucket", sel.name))
	return nil
}

// DestroyBucket empties the selected bucket, then deletes it. The two
// steps are not transactional: a failure after the empty leaves the
// bucket present but empty. The local selection is deliberately kept
// as-is, so operations issued afterwards surface backend "not found"
// errors rather than a not-selected error.
func (s *Store) DestroyBucket(ctx context.Context) error {
	sel, err := s.selected()
	if err != nil {
		return err
	}
	if err := s.backend.EmptyBucket(ctx, sel.name); err != nil {
		return backendError("empty bucket", err)
	}
	if err := s.backend.DeleteBucket(ctx, sel.name); err != nil {
		return backendError("delete bucket", err)
	}
	s.logger.Info("bucket destroyed", zap.String("bucket", sel.name))
	return nil
}

// Copy duplicates the object at oldPath to newPath. Both paths must be
// "/"-prefixed. Returns the new path, "/"-prefixed.
func (s *Store) Copy(ctx context.Context, oldPath, newPath string) (string, error) {
	if !strings.HasPrefix(oldPath, "/") {
		return "", errInvalidPath(oldPath)
	}
	if !strings.HasPrefix(newPath, "/") {
		return "", errInvalidPath(newPath)
	}
	sel, err := s.selected()
	if err != nil {
		return "", err
	}

	key, err := s.backend.Copy(ctx, sel.name,
		strings.TrimPrefix(oldPath, "/"), strings.TrimPrefix(newPath, "/"))
	if err != nil {
		return "", backendError("copy object", err)
	}
	if key == "" {
		return "", backendError("copy object: backend returned no result", nil)
	}
	return "/" + key, nil
}

// Upload stores content under uploadPath with upsert semantics, so an
// existing object at the same path is overwritten. An empty contentType
// defaults to DefaultContentType. Returns the stored path, "/"-prefixed.
func (s *Store) Upload(ctx context.Context, content []byte, uploadPath, contentType string) (string, error) {
	if len(content) == 0 {
		return "", errInvalidInput("upload content is empty")
	}
	sel, err := s.selected()
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = DefaultContentType
	}

	key, err := s.backend.Upload(ctx, sel.name, strings.TrimPrefix(uploadPath, "/"), content,
		storage.UploadOptions{ContentType: contentType, Upsert: true})
	if err != nil {
		return "", backendError("upload object", err)
	}
	return "/" + key, nil
}

// ListAllFiles resolves path to the concrete file keys beneath it by
// walking the backend's flat listing one level at a time. A key the
// backend lists no children for is taken to be a file: the flat list
// call cannot tell an empty directory from a stored object, so the
// absence of children means "this is a file itself".
//
// Returns backend-form keys (no leading "/"), in backend listing order.
// The first listing failure at any depth aborts the whole walk.
func (s *Store) ListAllFiles(ctx context.Context, path string) ([]string, error) {
	sel, err := s.selected()
	if err != nil {
		return nil, err
	}
	return s.listAll(ctx, sel.name, strings.TrimPrefix(path, "/"))
}

func (s *Store) listAll(ctx context.Context, bucket, key string) ([]string, error) {
	entries, err := s.backend.List(ctx, bucket, key)
	if err != nil {
		return nil, backendError("list objects", err)
	}
	if len(entries) == 0 {
		return []string{key}, nil
	}

	files := []string{}
	for _, entry := range entries {
		child := entry.Name
		if key != "" {
			child = key + "/" + entry.Name
		}
		found, err := s.listAll(ctx, bucket, child)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// Delete expands each "/"-prefixed path into the concrete file keys
// beneath it and removes them in one batched backend call. The per-path
// expansions are all issued concurrently and joined before the removal.
// Keys reached through overlapping input paths are not deduplicated.
// Returns the removed paths, "/"-prefixed.
func (s *Store) Delete(ctx context.Context, paths []string) ([]string, error) {
	for _, p := range paths {
		if !strings.HasPrefix(p, "/") {
			return nil, errInvalidPath(p)
		}
	}
	sel, err := s.selected()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return []string{}, nil
	}

	results := make([][]string, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			files, err := s.listAll(gctx, sel.name, strings.TrimPrefix(p, "/"))
			if err != nil {
				return err
			}
			results[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	keys := []string{}
	for _, files := range results {
		keys = append(keys, files...)
	}
	s.logger.Debug("deleting objects",
		zap.String("bucket", sel.name), zap.Int("paths", len(paths)), zap.Int("keys", len(keys)))

	removed, err := s.backend.Remove(ctx, sel.name, keys)
	if err != nil {
		return nil, backendError("remove objects", err)
	}

	out := make([]string, len(removed))
	for i, name := range removed {
		out[i] = "/" + name
	}
	return out, nil
}
