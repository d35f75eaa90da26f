package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const mib = 1024 * 1024

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		size      int64
		chunkSize int64
		want      []int64
	}{
		{name: "smaller than a chunk", size: 10, chunkSize: 16, want: []int64{10}},
		{name: "exact chunk", size: 16, chunkSize: 16, want: []int64{16}},
		{name: "exact multiple", size: 10 * mib, chunkSize: 5 * mib, want: []int64{5 * mib, 5 * mib}},
		{name: "short last chunk", size: 12 * mib, chunkSize: 5 * mib, want: []int64{5 * mib, 5 * mib, 2 * mib}},
		{name: "one byte over", size: 17, chunkSize: 16, want: []int64{16, 1}},
		{name: "one byte chunks", size: 3, chunkSize: 1, want: []int64{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.size, tt.chunkSize)
			require.Len(t, chunks, len(tt.want))
			for i, c := range chunks {
				require.Equal(t, i, c.Index)
				require.Equal(t, len(tt.want), c.Total)
				require.Equal(t, tt.want[i], c.Size())
			}
		})
	}
}

func TestSplit_Partition(t *testing.T) {
	for _, chunkSize := range []int64{1, 3, 7, 64, 1000} {
		for size := int64(1); size <= 2500; size += 37 {
			chunks := Split(size, chunkSize)
			require.Len(t, chunks, int((size+chunkSize-1)/chunkSize))

			var next, sum int64
			for _, c := range chunks {
				require.Equal(t, next, c.Start, "gap or overlap at chunk %d", c.Index)
				require.Greater(t, c.Size(), int64(0))
				require.LessOrEqual(t, c.Size(), chunkSize)
				next = c.End
				sum += c.Size()
			}
			require.Equal(t, size, next)
			require.Equal(t, size, sum)
		}
	}
}

func TestSplit_Degenerate(t *testing.T) {
	require.Empty(t, Split(0, 16))
	require.NotNil(t, Split(0, 16))
	require.Nil(t, Split(10, 0))
	require.Nil(t, Split(10, -1))
}
