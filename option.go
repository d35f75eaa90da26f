package storkitty

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// DefaultMaxFiles is the default number of files uploaded concurrently.
	DefaultMaxFiles = 3

	// DefaultMaxChunks is the default number of chunks in flight across all files.
	DefaultMaxChunks = 5

	// DefaultChunkSize is 5 MiB.
	DefaultChunkSize int64 = 5 * 1024 * 1024

	// DefaultRetention is how long finished uploads stay visible in Statuses.
	DefaultRetention = 10 * time.Minute
)

// Option configures an Uploader.
type Option func(o *options) error

type options struct {
	maxFiles   int
	maxChunks  int
	chunkSize  int64
	retention  time.Duration
	logger     *slog.Logger
	tracer     trace.Tracer
	onComplete func(Status)
}

func applyOptions(opts ...Option) (*options, error) {
	o := &options{
		maxFiles:  DefaultMaxFiles,
		maxChunks: DefaultMaxChunks,
		chunkSize: DefaultChunkSize,
		retention: DefaultRetention,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.maxFiles <= 0 {
		return nil, fmt.Errorf("%w: max files %d", ErrInvalidConfig, o.maxFiles)
	}
	if o.maxChunks <= 0 {
		return nil, fmt.Errorf("%w: max chunks %d", ErrInvalidConfig, o.maxChunks)
	}
	if o.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d", ErrInvalidConfig, o.chunkSize)
	}
	if o.retention <= 0 {
		return nil, fmt.Errorf("%w: retention %v", ErrInvalidConfig, o.retention)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.tracer == nil {
		o.tracer = noop.NewTracerProvider().Tracer("")
	}

	return o, nil
}

// WithMaxFiles sets how many files may be uploading at the same time.
func WithMaxFiles(n int) Option {
	return func(o *options) error {
		o.maxFiles = n
		return nil
	}
}

// WithMaxChunks sets how many chunks may be in flight at the same time,
// across all files.
func WithMaxChunks(n int) Option {
	return func(o *options) error {
		o.maxChunks = n
		return nil
	}
}

// WithChunkSize sets the chunk size in bytes.
func WithChunkSize(n int64) Option {
	return func(o *options) error {
		o.chunkSize = n
		return nil
	}
}

// WithRetention sets how long completed, failed and aborted uploads are kept
// by the tracker.
func WithRetention(d time.Duration) Option {
	return func(o *options) error {
		o.retention = d
		return nil
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used for chunk transfer spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}

// WithCompletion sets a function called once for every file whose chunks have
// all been transferred.
func WithCompletion(fn func(Status)) Option {
	return func(o *options) error {
		o.onComplete = fn
		return nil
	}
}
