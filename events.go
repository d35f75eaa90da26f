package storkitty

import (
	"context"
	"sync"

	"github.com/AlanLang/storkitty-v2/model"
)

// dispatcher delivers callbacks one at a time, in the order they were
// queued, on its own goroutine. Queueing never blocks, so callbacks can be
// queued while the scheduler lock is held and may call back into the
// Uploader.
type dispatcher struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	busy    bool
	stopped bool
	changed chan struct{}
	done    chan struct{}
}

func newDispatcher() *dispatcher {
	d := &dispatcher{
		changed: make(chan struct{}),
		done:    make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	go d.run()
	return d
}

func (d *dispatcher) run() {
	defer close(d.done)

	d.mu.Lock()
	defer d.mu.Unlock()
	for {
		for len(d.queue) == 0 && !d.stopped {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			return
		}

		fn := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.busy = true
		d.mu.Unlock()

		fn()

		d.mu.Lock()
		d.busy = false
		if len(d.queue) == 0 {
			close(d.changed)
			d.changed = make(chan struct{})
		}
	}
}

// push queues fn. Once the dispatcher is stopped fn runs on a goroutine of
// its own.
func (d *dispatcher) push(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		go fn()
		return
	}
	d.queue = append(d.queue, fn)
	d.cond.Signal()
}

// wait blocks until the queue is empty and no callback is running.
func (d *dispatcher) wait(ctx context.Context) error {
	for {
		d.mu.Lock()
		idle, changed := len(d.queue) == 0 && !d.busy, d.changed
		d.mu.Unlock()

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

// stop delivers what is queued and ends the dispatcher goroutine.
func (d *dispatcher) stop() {
	d.mu.Lock()
	d.stopped = true
	d.cond.Broadcast()
	d.mu.Unlock()
	<-d.done
}

func (u *Uploader) emitProgressLocked(f *fileTask, p model.Progress) {
	if fn := f.onProgress; fn != nil {
		u.events.push(func() { fn(p) })
	}
}

func (u *Uploader) emitErrorLocked(f *fileTask, err error) {
	if fn := f.onError; fn != nil {
		u.events.push(func() { fn(err) })
	}
}

func (u *Uploader) emitCompleteLocked(st Status) {
	if fn := u.opts.onComplete; fn != nil {
		u.events.push(func() { fn(st) })
	}
}
