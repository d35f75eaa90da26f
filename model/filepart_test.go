package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFilePart(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "notes.txt")
	require.Nil(t, os.WriteFile(p, []byte("hello storkitty"), 0o644))

	fp, err := NewFilePart(p)
	require.Nil(t, err)
	defer fp.Close()

	require.Equal(t, "notes.txt", fp.Name())
	require.EqualValues(t, 15, fp.Size())
	require.Contains(t, fp.MimeType, "text/plain")
	require.NotZero(t, fp.ModTime)

	buf := make([]byte, 9)
	n, err := fp.ReadAt(buf, 6)
	require.Nil(t, err)
	require.Equal(t, "storkitty", string(buf[:n]))

	_, err = NewFilePart(filepath.Join(dir, "missing.txt"))
	require.NotNil(t, err)
}

func TestNewFileParts(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	require.Nil(t, os.WriteFile(a, []byte{1, 2, 3}, 0o644))

	fps, err := NewFileParts([]string{a})
	require.Nil(t, err)
	require.Len(t, fps, 1)
	require.Nil(t, fps[0].Close())

	_, err = NewFileParts([]string{a, filepath.Join(dir, "b.bin")})
	require.NotNil(t, err)
}

func TestNewFilePartFromBytes(t *testing.T) {
	fp := NewFilePartFromBytes("data.json", []byte(`{"a":1}`))
	require.Equal(t, "data.json", fp.Name())
	require.EqualValues(t, 7, fp.Size())
	require.Equal(t, "application/json", fp.MimeType)
	require.Nil(t, fp.Close())
}
