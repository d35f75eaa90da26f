package storkitty

// AbortFile cancels the upload with the given ID. A pending file is dropped
// before any of its chunks is sent. An active file has its in-flight chunks
// cancelled, its queued chunks dropped and the server notified, and its slot
// is handed to the next pending file. It reports whether the upload was
// pending or active.
func (u *Uploader) AbortFile(id string) bool {
	return u.abortMatching(func(f *fileTask) bool {
		return f.id == id
	})
}

// AbortFileNamed aborts the first pending, or else the first active, upload
// of a file called name.
func (u *Uploader) AbortFileNamed(name string) bool {
	return u.abortMatching(func(f *fileTask) bool {
		return f.file.Name() == name
	})
}

func (u *Uploader) abortMatching(match func(*fileTask) bool) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, f := range u.pendingFiles {
		if match(f) {
			u.abortPendingLocked(f)
			u.broadcastLocked()
			return true
		}
	}
	for _, f := range u.activeFiles {
		if match(f) {
			u.abortActiveLocked(f)
			u.scheduleLocked()
			u.broadcastLocked()
			return true
		}
	}
	return false
}

// abortPendingLocked drops a file that was never admitted. Its chunks were
// never queued, so cancelling their contexts is all there is to do.
func (u *Uploader) abortPendingLocked(f *fileTask) {
	u.pendingFiles = removeFile(u.pendingFiles, f)
	u.pendingChunks = removeChunks(u.pendingChunks, f)
	f.state = fileAborted
	f.cancelChunks()

	u.tracker.update(f.id, func(s *Status) {
		s.State = StateAborted
	})
	u.opts.logger.Debug("pending file aborted", "id", f.id, "path", f.path, "name", f.file.Name())
}

func (u *Uploader) abortActiveLocked(f *fileTask) {
	for _, c := range f.chunks {
		if c.state == chunkActive {
			delete(u.activeChunks, c)
		}
	}
	u.pendingChunks = removeChunks(u.pendingChunks, f)
	u.activeFiles = removeFile(u.activeFiles, f)
	f.state = fileAborted
	f.cancelChunks()

	u.tracker.update(f.id, func(s *Status) {
		s.State = StateAborted
	})
	u.opts.logger.Debug("active file aborted", "id", f.id, "path", f.path, "name", f.file.Name())

	u.notifyAbortLocked(f)
}

// notifyAbortLocked tells the server to discard the chunks it received. The
// notification is best-effort: failures are only logged.
func (u *Uploader) notifyAbortLocked(f *fileTask) {
	path, name := f.path, f.file.Name()

	u.notifying++
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()

		if err := u.transport.NotifyAbort(u.ctx, path, name); err != nil {
			u.opts.logger.Warn("abort notification failed", "path", path, "name", name, "error", &ChunkError{Op: "abort", Path: path, Name: name, Index: -1, Err: err})
		}

		u.mu.Lock()
		u.notifying--
		u.broadcastLocked()
		u.mu.Unlock()
	}()
}

func removeFile(files []*fileTask, f *fileTask) []*fileTask {
	for i := range files {
		if files[i] == f {
			copy(files[i:], files[i+1:])
			files[len(files)-1] = nil
			return files[:len(files)-1]
		}
	}
	return files
}

// removeChunks drops the chunks of f, keeping the order of the others.
func removeChunks(chunks []*chunkTask, f *fileTask) []*chunkTask {
	kept := chunks[:0]
	for _, c := range chunks {
		if c.file != f {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(chunks); i++ {
		chunks[i] = nil
	}
	return kept
}
