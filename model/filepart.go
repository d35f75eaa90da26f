package model

import (
	"bytes"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// File is a named, sized and randomly readable file handle.
type File interface {
	io.ReaderAt
	Name() string
	Size() int64
}

// FilePart is a File backed by a local file or an in-memory buffer.
type FilePart struct {
	Reader   io.ReaderAt
	FileName string
	FileSize int64
	MimeType string
	ModTime  int64 //in seconds

	closer io.Closer
}

var _ File = (*FilePart)(nil)

// NewFilePart opens a local file. The caller must Close it once the upload
// has finished or was aborted.
func NewFilePart(fullPathFilename string) (*FilePart, error) {
	fh, err := os.Open(fullPathFilename)
	if err != nil {
		return nil, err
	}

	fi, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, err
	}

	ret := &FilePart{
		Reader:   fh,
		FileName: filepath.Base(fullPathFilename),
		FileSize: fi.Size(),
		ModTime:  fi.ModTime().UTC().Unix(),
		closer:   fh,
	}
	if ext := strings.ToLower(filepath.Ext(fullPathFilename)); ext != "" {
		ret.MimeType = mime.TypeByExtension(ext)
	}

	return ret, nil
}

// NewFilePartFromBytes wraps data as a file called name.
func NewFilePartFromBytes(name string, data []byte) *FilePart {
	return &FilePart{
		Reader:   bytes.NewReader(data),
		FileName: name,
		FileSize: int64(len(data)),
		MimeType: mime.TypeByExtension(strings.ToLower(filepath.Ext(name))),
	}
}

// NewFileParts opens every path, closing the already opened ones on error.
func NewFileParts(fullPathFilenames []string) (ret []*FilePart, err error) {
	ret = make([]*FilePart, 0, len(fullPathFilenames))
	for _, file := range fullPathFilenames {
		fp, err := NewFilePart(file)
		if err != nil {
			for _, opened := range ret {
				_ = opened.Close()
			}
			return nil, err
		}
		ret = append(ret, fp)
	}
	return ret, nil
}

func (f *FilePart) Name() string {
	return f.FileName
}

func (f *FilePart) Size() int64 {
	return f.FileSize
}

func (f *FilePart) ReadAt(p []byte, off int64) (int, error) {
	return f.Reader.ReadAt(p, off)
}

// Close the underlying file, if any.
func (f *FilePart) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}
