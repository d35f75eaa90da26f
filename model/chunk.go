package model

// Chunk is one byte range [Start, End) of a file, the unit of transfer.
type Chunk struct {
	Index int   `json:"chunk"`
	Total int   `json:"total"`
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Size of the chunk in bytes.
func (c Chunk) Size() int64 {
	return c.End - c.Start
}

// Split a file of size bytes into ceil(size/chunkSize) contiguous chunks in
// ascending index order. The last chunk may be shorter than chunkSize.
// An empty file yields no chunks; a non-positive chunkSize yields nil.
func Split(size, chunkSize int64) []Chunk {
	if chunkSize <= 0 {
		return nil
	}
	if size <= 0 {
		return []Chunk{}
	}

	total := int((size + chunkSize - 1) / chunkSize)
	chunks := make([]Chunk, total)
	for i := range chunks {
		start := int64(i) * chunkSize
		end := start + chunkSize
		if end > size {
			end = size
		}
		chunks[i] = Chunk{
			Index: i,
			Total: total,
			Start: start,
			End:   end,
		}
	}

	return chunks
}
