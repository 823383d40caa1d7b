package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/databricks-chaima/appsOPM2025/internal/application"
	"github.com/databricks-chaima/appsOPM2025/internal/domain/images"
)

// Options configures the blob store adapter. AllowedPrefix is the volume
// prefix image paths must carry; everything under it maps to object keys in
// Bucket.
type Options struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	AllowedPrefix string
	UseSSL        bool

	// MaxClientAge bounds how long a client is reused before it is rebuilt
	// with fresh credentials. Zero means the 59-minute default.
	MaxClientAge time.Duration
}

// Store is the process-wide blob store client. The underlying minio client
// is reused across calls and rebuilt once stale; at most one rebuild runs
// at a time.
type Store struct {
	opts  Options
	clock application.Clock

	mu       sync.Mutex
	client   *minio.Client
	openedAt time.Time
}

func New(ctx context.Context, opts Options, clock application.Clock) (*Store, error) {
	if opts.AllowedPrefix == "" {
		return nil, fmt.Errorf("storage: allowed prefix is required")
	}
	if !strings.HasSuffix(opts.AllowedPrefix, "/") {
		opts.AllowedPrefix += "/"
	}
	if opts.MaxClientAge <= 0 {
		opts.MaxClientAge = 59 * time.Minute
	}
	if clock == nil {
		clock = application.SystemClock{}
	}

	s := &Store{opts: opts, clock: clock}
	cli, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	// the bucket must already exist; this service never writes
	exists, err := cli.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("storage: bucket %q not found", opts.Bucket)
	}
	return s, nil
}

// Validate rejects any path outside the allowed prefix. No I/O.
func (s *Store) Validate(path string) error {
	if path == "" {
		return &images.ValidationError{Path: path, Reason: "path is required"}
	}
	if !strings.HasPrefix(path, s.opts.AllowedPrefix) {
		return &images.ValidationError{
			Path:   path,
			Reason: fmt.Sprintf("path must start with %s", s.opts.AllowedPrefix),
		}
	}
	return nil
}

// Fetch downloads the object behind a validated volume path.
func (s *Store) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := s.Validate(path); err != nil {
		return nil, err
	}

	cli, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	key := strings.TrimPrefix(path, s.opts.AllowedPrefix)
	obj, err := cli.GetObject(ctx, s.opts.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Check verifies the store is reachable, for health reporting.
func (s *Store) Check(ctx context.Context) error {
	cli, err := s.getClient(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err = cli.BucketExists(ctx, s.opts.Bucket)
	return err
}

func (s *Store) getClient(ctx context.Context) (*minio.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil && s.clock.Now().Sub(s.openedAt) <= s.opts.MaxClientAge {
		return s.client, nil
	}
	return s.connectLocked()
}

func (s *Store) connect(ctx context.Context) (*minio.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connectLocked()
}

func (s *Store) connectLocked() (*minio.Client, error) {
	cli, err := minio.New(s.opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.opts.AccessKey, s.opts.SecretKey, ""),
		Secure: s.opts.UseSSL,
		Region: s.opts.Region,
	})
	if err != nil {
		return nil, err
	}
	s.client = cli
	s.openedAt = s.clock.Now()
	return cli, nil
}
