package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/tags"
)

// Bucket tag keys used to persist upload restrictions on the bucket itself.
const (
	tagFileSizeLimit    = "file-size-limit"
	tagAllowedMimeTypes = "allowed-mime-types"
)

// NewBackend creates a Minio-backed Backend based on the configuration.
func NewBackend(cfg Config) (Backend, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioBackend{mc: minioClient, region: cfg.Region}, nil
}

type minioBackend struct {
	mc     *minio.Client
	region string
}

func (b *minioBackend) CreateBucket(ctx context.Context, name string, opts BucketOptions) error {
	if err := b.mc.MakeBucket(ctx, name, minio.MakeBucketOptions{Region: b.region}); err != nil {
		return err
	}
	return b.applyOptions(ctx, name, opts)
}

func (b *minioBackend) UpdateBucket(ctx context.Context, name string, opts BucketOptions) error {
	exists, err := b.mc.BucketExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", name)
	}
	return b.applyOptions(ctx, name, opts)
}

// applyOptions sets the anonymous-access policy and persists upload
// restrictions as bucket tags, so create and update stay symmetric.
func (b *minioBackend) applyOptions(ctx context.Context, name string, opts BucketOptions) error {
	policy := ""
	if opts.Public {
		policy = publicReadPolicy(name)
	}
	if err := b.mc.SetBucketPolicy(ctx, name, policy); err != nil {
		return fmt.Errorf("set bucket policy: %w", err)
	}

	tagSet := map[string]string{}
	if opts.FileSizeLimit != "" {
		tagSet[tagFileSizeLimit] = opts.FileSizeLimit
	}
	if len(opts.AllowedMimeTypes) > 0 {
		tagSet[tagAllowedMimeTypes] = strings.Join(opts.AllowedMimeTypes, ",")
	}
	if len(tagSet) == 0 {
		return nil
	}
	bucketTags, err := tags.NewTags(tagSet, false)
	if err != nil {
		return fmt.Errorf("build bucket tags: %w", err)
	}
	if err := b.mc.SetBucketTagging(ctx, name, bucketTags); err != nil {
		return fmt.Errorf("set bucket tags: %w", err)
	}
	return nil
}

func (b *minioBackend) EmptyBucket(ctx context.Context, name string) error {
	listErr := make(chan error, 1)
	objects := make(chan minio.ObjectInfo)
	go func() {
		defer close(objects)
		for obj := range b.mc.ListObjects(ctx, name, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				listErr <- obj.Err
				return
			}
			objects <- obj
		}
		listErr <- nil
	}()

	// Drain the result channel fully even after a failure: bailing out
	// early would strand the removal worker on its next send and the
	// producer goroutine above on objects.
	var removeErr error
	for rErr := range b.mc.RemoveObjects(ctx, name, objects, minio.RemoveObjectsOptions{}) {
		if rErr.Err != nil && removeErr == nil {
			removeErr = fmt.Errorf("remove %q: %w", rErr.ObjectName, rErr.Err)
		}
	}
	if removeErr != nil {
		return removeErr
	}
	return <-listErr
}

func (b *minioBackend) DeleteBucket(ctx context.Context, name string) error {
	return b.mc.RemoveBucket(ctx, name)
}

func (b *minioBackend) PublicURL(_ context.Context, bucket, key string) (string, error) {
	u := b.mc.EndpointURL()
	if u == nil {
		return "", errors.New("endpoint not configured")
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.String(), "/"), bucket, key), nil
}

func (b *minioBackend) List(ctx context.Context, bucket, prefix string) ([]ObjectEntry, error) {
	query := ""
	if prefix != "" {
		query = strings.TrimSuffix(prefix, "/") + "/"
	}

	entries := []ObjectEntry{}
	for obj := range b.mc.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: query}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		name := childName(query, obj.Key)
		if name == "" {
			continue
		}
		entries = append(entries, ObjectEntry{Name: name})
	}
	return entries, nil
}

func (b *minioBackend) Copy(ctx context.Context, bucket, oldKey, newKey string) (string, error) {
	info, err := b.mc.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: bucket, Object: newKey},
		minio.CopySrcOptions{Bucket: bucket, Object: oldKey},
	)
	if err != nil {
		return "", err
	}
	return info.Key, nil
}

func (b *minioBackend) Remove(ctx context.Context, bucket string, keys []string) ([]string, error) {
	objects := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objects <- minio.ObjectInfo{Key: key}
	}
	close(objects)

	// Keep the first failure but drain the result channel fully; the
	// removal worker blocks forever on its next send otherwise.
	var firstErr error
	for rErr := range b.mc.RemoveObjects(ctx, bucket, objects, minio.RemoveObjectsOptions{}) {
		if rErr.Err != nil && firstErr == nil {
			firstErr = fmt.Errorf("remove %q: %w", rErr.ObjectName, rErr.Err)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return keys, nil
}

func (b *minioBackend) Upload(ctx context.Context, bucket, key string, content []byte, opts UploadOptions) (string, error) {
	if !opts.Upsert {
		if _, err := b.mc.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err == nil {
			return "", fmt.Errorf("object %q already exists", key)
		}
	}
	info, err := b.mc.PutObject(ctx, bucket, key, bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: opts.ContentType})
	if err != nil {
		return "", err
	}
	return info.Key, nil
}

// childName extracts the immediate child segment of key under the query
// prefix. Directory entries from a non-recursive listing carry a trailing
// slash, which is stripped.
func childName(query, key string) string {
	rest := strings.TrimPrefix(key, query)
	return strings.TrimSuffix(rest, "/")
}

// publicReadPolicy builds an anonymous read-only bucket policy document.
func publicReadPolicy(bucket string) string {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Effect":    "Allow",
				"Principal": map[string]any{"AWS": []string{"*"}},
				"Action":    []string{"s3:GetObject"},
				"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/*", bucket)},
			},
		},
	}
	raw, _ := json.Marshal(policy)
	return string(raw)
}
