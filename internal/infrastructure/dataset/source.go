package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/turtacn/NFHS-Explorer/internal/config"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// Source yields the raw bytes of a survey extract.
type Source interface {
	// Kind is one of config.SourceFile, config.SourceHTTP or config.SourceMinIO.
	Kind() string
	// Location identifies the extract for logs (a path, URL or bucket/object).
	Location() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// ObjectFetcher downloads an object from a bucket.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, object string) ([]byte, error)
}

// FileSource reads a local file.
type FileSource struct {
	Path string
}

func (s FileSource) Kind() string     { return config.SourceFile }
func (s FileSource) Location() string { return s.Path }

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetLoadFailed, "failed to open dataset file").WithDetail(s.Path)
	}
	return f, nil
}

// HTTPSource downloads the extract with a GET request.  A positive MaxBytes
// fails the download once the body grows past it.
type HTTPSource struct {
	URL      string
	Client   *http.Client
	MaxBytes int64
}

func (s HTTPSource) Kind() string     { return config.SourceHTTP }
func (s HTTPSource) Location() string { return s.URL }

func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetLoadFailed, "invalid dataset url").WithDetail(s.URL)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetLoadFailed, "failed to download dataset").WithDetail(s.URL)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Newf(errors.ErrCodeDatasetLoadFailed, "dataset download returned %s", resp.Status).WithDetail(s.URL)
	}
	if s.MaxBytes <= 0 {
		return resp.Body, nil
	}
	if resp.ContentLength > s.MaxBytes {
		resp.Body.Close()
		return nil, s.tooLarge()
	}
	return &cappedBody{
		r:      io.LimitReader(resp.Body, s.MaxBytes+1),
		closer: resp.Body,
		max:    s.MaxBytes,
		err:    s.tooLarge,
	}, nil
}

func (s HTTPSource) tooLarge() error {
	return errors.Newf(errors.ErrCodeDatasetLoadFailed, "dataset download exceeds %d bytes", s.MaxBytes).WithDetail(s.URL)
}

// cappedBody reads at most max bytes and then fails.
type cappedBody struct {
	r      io.Reader
	closer io.Closer
	read   int64
	max    int64
	err    func() error
	failed error
}

func (b *cappedBody) Read(p []byte) (int, error) {
	if b.failed != nil {
		return 0, b.failed
	}
	n, err := b.r.Read(p)
	b.read += int64(n)
	if b.read > b.max {
		b.failed = b.err()
		return n, b.failed
	}
	return n, err
}

func (b *cappedBody) Close() error { return b.closer.Close() }

// ObjectSource reads the extract from object storage.
type ObjectSource struct {
	Fetcher ObjectFetcher
	Bucket  string
	Object  string
}

func (s ObjectSource) Kind() string     { return config.SourceMinIO }
func (s ObjectSource) Location() string { return s.Bucket + "/" + s.Object }

func (s ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.Fetcher == nil {
		return nil, errors.New(errors.ErrCodeDatasetLoadFailed, "object source has no fetcher")
	}
	data, err := s.Fetcher.Fetch(ctx, s.Bucket, s.Object)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetLoadFailed, "failed to fetch dataset object").WithDetail(s.Location())
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// NewSource selects a Source from configuration. objects may be nil unless
// cfg.Dataset.Source is "minio".
func NewSource(cfg *config.Config, objects ObjectFetcher) (Source, error) {
	switch cfg.Dataset.Source {
	case "", config.SourceFile:
		return FileSource{Path: cfg.Dataset.Path}, nil
	case config.SourceHTTP:
		timeout := cfg.Dataset.FetchTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		return HTTPSource{URL: cfg.Dataset.URL, Client: &http.Client{Timeout: timeout}, MaxBytes: cfg.Dataset.MaxBytes}, nil
	case config.SourceMinIO:
		if objects == nil {
			return nil, errors.New(errors.ErrCodeDatasetSourceUnsupported, "minio source requires an object client")
		}
		return ObjectSource{Fetcher: objects, Bucket: cfg.MinIO.Bucket, Object: cfg.MinIO.Object}, nil
	default:
		return nil, errors.New(errors.ErrCodeDatasetSourceUnsupported, fmt.Sprintf("unknown dataset source %q", cfg.Dataset.Source))
	}
}

//Personal.AI order the ending
