package storkitty

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferPoolForUploading(t *testing.T) {
	type fields struct {
		PoolSize   int
		BufferSize int
		WantCap    int
	}
	tests := []struct {
		name   string
		fields fields
	}{
		{
			name: "explicit size",
			fields: fields{
				PoolSize:   2,
				BufferSize: 1024,
				WantCap:    1024,
			},
		},
		{
			name: "defaults",
			fields: fields{
				WantCap: defaultBufferSize,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newBufferPoolForUploading(tt.fields.PoolSize, tt.fields.BufferSize)
			buf := pool.Get()
			require.Equal(t, 0, buf.Len())
			require.Equal(t, tt.fields.WantCap, cap(buf.Bytes()))

			_, err := buf.Write(bytes.Repeat([]byte{'x'}, 16))
			require.Nil(t, err)
			pool.Put(buf)

			// returned buffers come back reset
			buf = pool.Get()
			require.Equal(t, 0, buf.Len())
			pool.Put(buf)
		})
	}
}
