package model

import (
	"net/url"
	"strconv"
)

// Multipart field names accepted by the chunk upload endpoint.
const (
	FieldFile     = "file"
	FieldChunk    = "chunk"
	FieldTotal    = "total"
	FieldSize     = "size"
	FieldFilename = "filename"
)

// ChunkForm holds the form fields sent alongside one chunk's bytes.
type ChunkForm struct {
	Chunk    int
	Total    int
	Size     int64 // size of the whole file
	Filename string
}

// NewChunkForm describes chunk c of file f.
func NewChunkForm(f File, c Chunk) ChunkForm {
	return ChunkForm{
		Chunk:    c.Index,
		Total:    c.Total,
		Size:     f.Size(),
		Filename: f.Name(),
	}
}

// Fields returns the non-file form fields, with the file name URL-encoded.
func (f ChunkForm) Fields() url.Values {
	return url.Values{
		FieldChunk:    {strconv.Itoa(f.Chunk)},
		FieldTotal:    {strconv.Itoa(f.Total)},
		FieldSize:     {strconv.FormatInt(f.Size, 10)},
		FieldFilename: {url.PathEscape(f.Filename)},
	}
}

// AbortRequest is the JSON body of an abort notification.
// Raw request: {"file":"movie.mkv"}
type AbortRequest struct {
	File string `json:"file"`
}
