// Package storkitty uploads files to a storkitty server in fixed-size chunks,
// bounding both the number of files and the number of chunks in flight.
//
// Create a transport and an uploader:
//
//	server, err := storkitty.NewServer("http://localhost:3000/api", nil, storkitty.WithServerAuthToken(token))
//	if err != nil {
//	   panic(err)
//	}
//	uploader, err := storkitty.NewUploader(server, storkitty.WithMaxFiles(3), storkitty.WithMaxChunks(5))
//	if err != nil {
//	   panic(err)
//	}
//	defer uploader.Close()
//
// Then queue files; progress and errors are reported through the callbacks:
//
//	id := uploader.AddFile("local/photos", file, onProgress, onError)
package storkitty

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AlanLang/storkitty-v2/model"
)

// ErrInvalidFile is reported through onError when AddFile is given a nil file.
var ErrInvalidFile = errors.New("invalid file")

// ProgressFunc receives the progress of a file after each transferred chunk.
type ProgressFunc func(model.Progress)

// ErrorFunc receives every chunk transfer failure of a file.
type ErrorFunc func(error)

// Stats is a snapshot of the scheduler queues.
type Stats struct {
	PendingFiles  int
	ActiveFiles   int
	PendingChunks int
	ActiveChunks  int

	// InFlight counts transfer goroutines that have not returned yet,
	// including those of aborted chunks.
	InFlight int
}

// Uploader schedules chunk uploads. At most maxFiles files are active at a
// time, and at most maxChunks chunks are being transferred across all active
// files. Files and chunks are admitted in FIFO order.
type Uploader struct {
	transport Transport
	opts      *options
	tracker   *tracker
	events    *dispatcher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu            sync.Mutex
	pendingFiles  []*fileTask
	activeFiles   []*fileTask
	pendingChunks []*chunkTask
	activeChunks  map[*chunkTask]struct{}
	transfers     int
	notifying     int
	closed        bool
	changed       chan struct{}
}

// NewUploader creates an uploader sending chunks through t.
func NewUploader(t Transport, opts ...Option) (*Uploader, error) {
	if t == nil {
		return nil, ErrInvalidConfig
	}
	o, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	u := &Uploader{
		transport:    t,
		opts:         o,
		tracker:      newTracker(o.retention),
		events:       newDispatcher(),
		activeChunks: make(map[*chunkTask]struct{}, o.maxChunks),
		changed:      make(chan struct{}),
	}
	u.ctx, u.cancel = context.WithCancel(context.Background())

	return u, nil
}

// AddFile queues file for upload to the destination path and returns the ID
// of the upload. It never blocks on the network: admitted chunks are sent on
// their own goroutines. onProgress is called after every transferred chunk,
// onError after every failed one. Either may be nil.
//
// A failed chunk is not retried and the file is not completed; abort it to
// release its slot. An empty file completes immediately.
func (u *Uploader) AddFile(path string, file model.File, onProgress ProgressFunc, onError ErrorFunc) string {
	if file == nil {
		if onError != nil {
			u.events.push(func() { onError(ErrInvalidFile) })
		}
		return ""
	}

	f := newFileTask(uuid.NewString(), path, file, onProgress, onError)
	for _, c := range model.Split(file.Size(), u.opts.chunkSize) {
		ctx, cancel := context.WithCancel(u.ctx)
		f.chunks = append(f.chunks, &chunkTask{file: f, Chunk: c, ctx: ctx, cancel: cancel})
	}
	f.tally = make([]int64, len(f.chunks))

	u.mu.Lock()
	defer u.mu.Unlock()

	u.tracker.add(f)
	switch {
	case u.closed:
		f.state = fileAborted
		f.cancelChunks()
		u.tracker.update(f.id, func(s *Status) {
			s.State, s.Err = StateAborted, ErrClosed
		})
		u.emitErrorLocked(f, ErrClosed)
	case len(f.chunks) == 0:
		f.state = fileDone
		u.emitProgressLocked(f, model.NewProgress(0, 0))
		u.completeLocked(f)
	default:
		u.pendingFiles = append(u.pendingFiles, f)
		u.opts.logger.Debug("file queued", "id", f.id, "path", path, "name", file.Name(), "size", file.Size(), "chunks", len(f.chunks))
		u.scheduleLocked()
	}
	u.broadcastLocked()

	return f.id
}

// Stats returns the current queue sizes.
func (u *Uploader) Stats() Stats {
	u.mu.Lock()
	defer u.mu.Unlock()
	return Stats{
		PendingFiles:  len(u.pendingFiles),
		ActiveFiles:   len(u.activeFiles),
		PendingChunks: len(u.pendingChunks),
		ActiveChunks:  len(u.activeChunks),
		InFlight:      u.transfers,
	}
}

// Status of the upload with the given ID. Finished uploads are forgotten
// after the retention period.
func (u *Uploader) Status(id string) (Status, bool) {
	return u.tracker.get(id)
}

// Statuses of all known uploads, oldest first.
func (u *Uploader) Statuses() []Status {
	return u.tracker.list()
}

// Wait blocks until no file is pending or active, every transfer and abort
// notification has returned, and every callback has been delivered. A file
// with a failed chunk stays active until it is aborted, so Wait does not
// return while one exists.
func (u *Uploader) Wait(ctx context.Context) error {
	for {
		if err := u.waitIdle(ctx); err != nil {
			return err
		}
		if err := u.events.wait(ctx); err != nil {
			return err
		}

		// callbacks may have queued more files
		u.mu.Lock()
		idle := u.idleLocked()
		u.mu.Unlock()
		if idle {
			return nil
		}
	}
}

// Close cancels every pending and in-flight chunk without notifying the
// server, waits for transfer goroutines to return and delivers the callbacks
// already queued. It must not be called from a callback.
func (u *Uploader) Close() (err error) {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return
	}
	u.closed = true

	files := make([]*fileTask, 0, len(u.pendingFiles)+len(u.activeFiles))
	files = append(files, u.pendingFiles...)
	files = append(files, u.activeFiles...)
	for _, f := range files {
		f.state = fileAborted
		f.cancelChunks()
		u.tracker.update(f.id, func(s *Status) {
			s.State = StateAborted
		})
	}
	u.pendingFiles, u.activeFiles, u.pendingChunks = nil, nil, nil
	u.activeChunks = make(map[*chunkTask]struct{})
	u.broadcastLocked()
	u.mu.Unlock()

	u.cancel()
	u.wg.Wait()
	u.events.stop()

	u.opts.logger.Debug("uploader closed", "aborted", len(files))
	return
}

type fileState int

const (
	filePending fileState = iota
	fileActive
	fileDone
	fileAborted
)

// fileTask is the bookkeeping of one file. Everything but the immutable
// fields is guarded by Uploader.mu.
type fileTask struct {
	id         string
	path       string
	file       model.File
	chunks     []*chunkTask
	tally      []int64
	errs       []error
	onProgress ProgressFunc
	onError    ErrorFunc
	state      fileState
	startedAt  time.Time
}

func newFileTask(id, path string, file model.File, onProgress ProgressFunc, onError ErrorFunc) *fileTask {
	return &fileTask{
		id:         id,
		path:       path,
		file:       file,
		onProgress: onProgress,
		onError:    onError,
	}
}

func (f *fileTask) cancelChunks() {
	for _, c := range f.chunks {
		c.cancel()
		if c.state != chunkSettled {
			c.state = chunkAborted
		}
	}
}

type chunkState int

const (
	chunkCreated chunkState = iota
	chunkQueued
	chunkActive
	chunkSettled
	chunkAborted
)

// chunkTask is one chunk of a fileTask. Its context is created with the task
// so that queued chunks can be cancelled before they are sent.
type chunkTask struct {
	model.Chunk

	file   *fileTask
	ctx    context.Context
	cancel context.CancelFunc
	state  chunkState
}
