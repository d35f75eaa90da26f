package storkitty

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AlanLang/storkitty-v2/model"
)

const spanUploadChunk = "storkitty.UploadChunk"

// scheduleLocked admits pending files while file slots are free, queueing
// their chunks in index order, then dispatches pending chunks while chunk
// slots are free.
func (u *Uploader) scheduleLocked() {
	if u.closed {
		return
	}

	for len(u.activeFiles) < u.opts.maxFiles && len(u.pendingFiles) > 0 {
		f := u.pendingFiles[0]
		u.pendingFiles[0] = nil
		u.pendingFiles = u.pendingFiles[1:]

		f.state = fileActive
		f.startedAt = time.Now()
		u.activeFiles = append(u.activeFiles, f)
		for _, c := range f.chunks {
			c.state = chunkQueued
			u.pendingChunks = append(u.pendingChunks, c)
		}

		u.tracker.update(f.id, func(s *Status) {
			s.State = StateInProgress
			s.StartedAt = f.startedAt
		})
		u.opts.logger.Debug("file admitted", "id", f.id, "path", f.path, "name", f.file.Name())
	}

	for len(u.activeChunks) < u.opts.maxChunks && len(u.pendingChunks) > 0 {
		c := u.pendingChunks[0]
		u.pendingChunks[0] = nil
		u.pendingChunks = u.pendingChunks[1:]

		c.state = chunkActive
		u.activeChunks[c] = struct{}{}
		u.transfers++
		u.wg.Add(1)
		go u.transfer(c)
	}
}

// transfer sends one chunk and settles it, whatever the outcome.
func (u *Uploader) transfer(c *chunkTask) {
	defer u.wg.Done()
	u.settle(c, u.send(c))
}

func (u *Uploader) send(c *chunkTask) (err error) {
	f := c.file
	ctx, span := u.opts.tracer.Start(c.ctx, spanUploadChunk, trace.WithAttributes(
		attribute.String("storkitty.path", f.path),
		attribute.String("storkitty.file", f.file.Name()),
		attribute.Int("storkitty.chunk", c.Index),
		attribute.Int("storkitty.total", c.Total),
		attribute.Int64("storkitty.bytes", c.Size()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// aborted while waiting to be scheduled
	if err = ctx.Err(); err != nil {
		return
	}

	body := io.NewSectionReader(f.file, c.Start, c.Size())
	return u.transport.UploadChunk(ctx, f.path, model.NewChunkForm(f.file, c.Chunk), body)
}

func (u *Uploader) idleLocked() bool {
	return len(u.pendingFiles) == 0 && len(u.activeFiles) == 0 && u.transfers == 0 && u.notifying == 0
}

// broadcastLocked wakes every Wait caller to re-check the queues.
func (u *Uploader) broadcastLocked() {
	close(u.changed)
	u.changed = make(chan struct{})
}

func (u *Uploader) waitIdle(ctx context.Context) error {
	for {
		u.mu.Lock()
		idle, changed := u.idleLocked(), u.changed
		u.mu.Unlock()

		if idle {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}
