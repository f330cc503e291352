package minio

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// ObjectAPI is the subset of *minio.Client used by Client.
type ObjectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// Config holds connection parameters for a MinIO / S3-compatible endpoint.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	// Transport overrides the HTTP transport; nil uses the minio-go default.
	Transport http.RoundTripper
}

// Client reads survey extracts from object storage.
type Client struct {
	client ObjectAPI
	config Config
	logger logging.Logger
	mu     sync.RWMutex
	closed bool
}

var (
	ErrClientClosed   = errors.New(errors.ErrCodeInternal, "minio client is closed")
	ErrBucketNotFound = errors.New(errors.ErrCodeNotFound, "bucket not found")
	ErrObjectNotFound = errors.New(errors.ErrCodeNotFound, "object not found")
)

// NewClient builds a client for cfg. It does not contact the endpoint; call
// Ping to verify connectivity.
func NewClient(cfg Config, log logging.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New(errors.ErrCodeValidation, "minio endpoint is required")
	}
	applyDefaults(&cfg)
	if log == nil {
		log = logging.NewNopLogger()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create minio client")
	}

	log.Info("MinIO client configured", logging.String("endpoint", cfg.Endpoint), logging.Bool("ssl", cfg.UseSSL))
	return &Client{client: client, config: cfg, logger: log}, nil
}

// NewClientWithAPI wraps an existing ObjectAPI implementation.
func NewClientWithAPI(api ObjectAPI, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{client: api, logger: log}
}

func applyDefaults(cfg *Config) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
}

// Ping checks that bucket is reachable.
func (c *Client) Ping(ctx context.Context, bucket string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	exists, err := c.client.BucketExists(ctx, bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to reach minio")
	}
	if !exists {
		return ErrBucketNotFound.WithDetail(bucket)
	}
	return nil
}

// Fetch downloads bucket/object fully into memory.
func (c *Client) Fetch(ctx context.Context, bucket, object string) ([]byte, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	start := time.Now()

	obj, err := c.client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, c.translate(err, bucket, object)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, obj); err != nil {
		return nil, c.translate(err, bucket, object)
	}

	c.logger.Debug("Fetched object",
		logging.String("bucket", bucket),
		logging.String("object", object),
		logging.Int("bytes", buf.Len()),
		logging.Duration("duration", time.Since(start)))
	return buf.Bytes(), nil
}

func (c *Client) translate(err error, bucket, object string) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey":
		return ErrObjectNotFound.WithDetail(bucket + "/" + object)
	case "NoSuchBucket":
		return ErrBucketNotFound.WithDetail(bucket)
	}
	return errors.Wrap(err, errors.ErrCodeExternalService, "failed to download object").
		WithDetail(bucket + "/" + object)
}

func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Close marks the client closed. Subsequent calls fail with ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

//Personal.AI order the ending
