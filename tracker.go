package storkitty

import (
	"sort"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// State of an upload.
type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateAborted    State = "aborted"
)

// Finished reports whether no more chunks of the upload will be sent.
func (s State) Finished() bool {
	return s == StateCompleted || s == StateAborted
}

// Status of one upload.
type Status struct {
	ID       string
	Name     string
	Path     string
	Size     int64
	Uploaded int64
	Percent  float64

	// Speed in bytes per second since the file was admitted
	Speed float64
	State State

	// Err collects every chunk failure of the upload
	Err error

	CreatedAt time.Time
	StartedAt time.Time
	UpdatedAt time.Time
}

// tracker keeps a Status per upload. Unfinished uploads never expire,
// finished ones are dropped after the retention period. Writes are
// serialized by Uploader.mu.
type tracker struct {
	cache     *cache.Cache
	retention time.Duration
}

func newTracker(retention time.Duration) *tracker {
	return &tracker{
		cache:     cache.New(retention, retention),
		retention: retention,
	}
}

func (t *tracker) add(f *fileTask) {
	now := time.Now()
	t.cache.Set(f.id, Status{
		ID:        f.id,
		Name:      f.file.Name(),
		Path:      f.path,
		Size:      f.file.Size(),
		State:     StatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}, cache.NoExpiration)
}

func (t *tracker) update(id string, fn func(*Status)) {
	item, exist := t.cache.Get(id)
	if !exist {
		return
	}
	st, ok := item.(Status)
	if !ok {
		return
	}

	fn(&st)
	st.UpdatedAt = time.Now()

	d := cache.NoExpiration
	if st.State.Finished() {
		d = t.retention
	}
	t.cache.Set(id, st, d)
}

func (t *tracker) get(id string) (Status, bool) {
	if item, exist := t.cache.Get(id); exist {
		if st, ok := item.(Status); ok {
			return st, true
		}
	}
	return Status{}, false
}

func (t *tracker) list() []Status {
	items := t.cache.Items()
	result := make([]Status, 0, len(items))
	for _, item := range items {
		if st, ok := item.Object.(Status); ok {
			result = append(result, st)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}
