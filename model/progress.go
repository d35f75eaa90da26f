package model

// Progress of one file, reported after every successful chunk.
type Progress struct {
	Percent          float64 `json:"percent"`
	TransferredBytes int64   `json:"transferredBytes"`
}

// NewProgress computes the progress of a file of size bytes of which
// transferred bytes have been sent. Percent is capped at 1.
func NewProgress(transferred, size int64) Progress {
	p := Progress{Percent: 1, TransferredBytes: transferred}
	if size > 0 && transferred < size {
		p.Percent = float64(transferred) / float64(size)
	}
	return p
}
