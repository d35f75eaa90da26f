package storkitty

import "github.com/oxtoacart/bpool"

const (
	defaultBufferPoolSize = DefaultMaxChunks

	// a chunk plus room for the multipart envelope
	defaultBufferSize = int(DefaultChunkSize) + 4*1024
)

// newBufferPoolForUploading keeps up to poolSize buffers of bufferSize bytes
// for assembling multipart bodies. Buffers that grew beyond bufferSize are
// replaced when returned, so idle memory stays bounded by
// poolSize*bufferSize. Non-positive arguments select the defaults, sized for
// DefaultMaxChunks chunks of DefaultChunkSize bytes.
func newBufferPoolForUploading(poolSize, bufferSize int) *bpool.SizedBufferPool {
	if poolSize <= 0 {
		poolSize = defaultBufferPoolSize
	}
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return bpool.NewSizedBufferPool(poolSize, bufferSize)
}
