package storkitty

import (
	"context"
	"io"

	"github.com/AlanLang/storkitty-v2/model"
)

// Transport sends chunks to the server. Implementations must honour ctx
// cancellation and be safe for concurrent use.
type Transport interface {
	// UploadChunk sends body, the bytes of one chunk, to the destination path.
	UploadChunk(ctx context.Context, path string, form model.ChunkForm, body io.Reader) error

	// NotifyAbort tells the server the upload of name to path was abandoned.
	NotifyAbort(ctx context.Context, path, name string) error
}

var _ Transport = (*Server)(nil)
