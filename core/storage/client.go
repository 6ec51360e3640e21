package storage

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client defines the interface for storage operations.
type Client interface {
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// PutObject uploads an object.
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	// StatObject fetches object metadata without downloading content.
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	// ListPage performs a single ListObjectsV2 round trip. With delimiter "/"
	// the provider groups keys one level below prefix into common prefixes.
	// The continuation token is opaque and comes from a previous page.
	ListPage(ctx context.Context, bucketName, prefix, continuationToken, delimiter string, maxKeys int) (minio.ListBucketV2Result, error)
	// PresignedGet returns a signed download URL for a single object.
	PresignedGet(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
}

// NewClient creates a new Minio-backed client based on the configuration.
func NewClient(cfg Config) (Client, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeoutDuration := time.Duration(cfg.Timeout()) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration, // Connection setup timeout
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration, // Wait for first response byte timeout
	}

	core, err := minio.NewCore(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	// The client connects lazily; transport timeouts bound connection setup
	// and operation-level contexts bound the rest.

	return &minioClientWrapper{core: core}, nil
}

type minioClientWrapper struct {
	core *minio.Core
}

func (c *minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return c.core.Client.BucketExists(ctx, bucketName)
}

func (c *minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return c.core.Client.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (c *minioClientWrapper) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return c.core.Client.StatObject(ctx, bucketName, objectName, opts)
}

// ListPage delegates to the low-level Core API, which does not take a
// context; the transport timeouts still bound the round trip.
func (c *minioClientWrapper) ListPage(_ context.Context, bucketName, prefix, continuationToken, delimiter string, maxKeys int) (minio.ListBucketV2Result, error) {
	return c.core.ListObjectsV2(bucketName, prefix, "", continuationToken, delimiter, maxKeys)
}

func (c *minioClientWrapper) PresignedGet(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error) {
	return c.core.Client.PresignedGetObject(ctx, bucketName, objectName, expires, nil)
}
