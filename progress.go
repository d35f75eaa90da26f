package storkitty

import (
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/AlanLang/storkitty-v2/model"
)

// settle records the outcome of a chunk transfer, frees its slot and
// reschedules. Results of chunks whose file was aborted are dropped: the
// slot was already released by the abort and the error is only the
// cancellation.
func (u *Uploader) settle(c *chunkTask, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.transfers--
	defer u.broadcastLocked()

	f := c.file
	if c.state == chunkAborted || f.state == fileAborted {
		u.opts.logger.Debug("aborted chunk returned", "id", f.id, "chunk", c.Index, "error", err)
		u.scheduleLocked()
		return
	}

	delete(u.activeChunks, c)
	c.state = chunkSettled
	c.cancel()

	if err != nil {
		u.failLocked(c, err)
	} else {
		u.recordLocked(c)
	}
	u.checkDoneLocked(f)
	u.scheduleLocked()
}

// recordLocked stores the size of a transferred chunk in its tally slot and
// reports the file's progress.
func (u *Uploader) recordLocked(c *chunkTask) {
	f := c.file
	f.tally[c.Index] = c.Size()

	var transferred int64
	for _, n := range f.tally {
		transferred += n
	}
	p := model.NewProgress(transferred, f.file.Size())

	u.tracker.update(f.id, func(s *Status) {
		s.Uploaded = p.TransferredBytes
		s.Percent = p.Percent
		if elapsed := time.Since(f.startedAt); elapsed > 0 {
			s.Speed = float64(transferred) / elapsed.Seconds()
		}
	})
	u.emitProgressLocked(f, p)
}

// failLocked reports a failed chunk. Sibling chunks carry on; the file
// can no longer complete.
func (u *Uploader) failLocked(c *chunkTask, err error) {
	f := c.file
	err = &ChunkError{Op: "upload", Path: f.path, Name: f.file.Name(), Index: c.Index, Err: err}
	f.errs = append(f.errs, err)

	merr := multierror.Append(nil, f.errs...)
	u.tracker.update(f.id, func(s *Status) {
		s.State = StateFailed
		s.Err = merr.ErrorOrNil()
	})

	u.opts.logger.Warn("chunk upload failed", "id", f.id, "path", f.path, "name", f.file.Name(), "chunk", c.Index, "error", err)
	u.emitErrorLocked(f, err)
}

// checkDoneLocked completes an active file once every tally slot is positive.
func (u *Uploader) checkDoneLocked(f *fileTask) {
	if f.state != fileActive {
		return
	}
	finished := 0
	for _, n := range f.tally {
		if n > 0 {
			finished++
		}
	}
	if finished != len(f.chunks) {
		return
	}

	f.state = fileDone
	u.activeFiles = removeFile(u.activeFiles, f)
	u.completeLocked(f)
}

func (u *Uploader) completeLocked(f *fileTask) {
	var st Status
	u.tracker.update(f.id, func(s *Status) {
		s.State = StateCompleted
		s.Percent = 1
		s.Uploaded = f.file.Size()
		st = *s
	})

	u.opts.logger.Info("file upload complete", "id", f.id, "path", f.path, "name", f.file.Name(), "size", f.file.Size())
	u.emitCompleteLocked(st)
}
