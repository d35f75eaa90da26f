package storkitty

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned by NewUploader for non-positive limits,
	// a non-positive chunk size or a missing transport.
	ErrInvalidConfig = errors.New("invalid uploader configuration")

	// ErrClosed is reported through onError for files added after Close.
	ErrClosed = errors.New("uploader closed")
)

// ChunkError is delivered to a file's onError callback when one of its chunks
// could not be transferred.
type ChunkError struct {
	// Op is the transport operation that failed, e.g. "upload"
	Op string

	// Path is the destination path of the file
	Path string

	// Name is the file name
	Name string

	// Index of the failed chunk, -1 when the error is not about one chunk
	Index int

	Err error
}

func (e *ChunkError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("storkitty.%s %s/%s: %v", e.Op, e.Path, e.Name, e.Err)
	}
	return fmt.Sprintf("storkitty.%s %s/%s chunk %d: %v", e.Op, e.Path, e.Name, e.Index, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// StatusError is returned by Server when the API answers with status >= 400.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s. Body:%s Code:%d", e.Method, e.URL, e.Body, e.Code)
}
