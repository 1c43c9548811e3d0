package cardsui

import (
	"context"
	"sync"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// Snapshot is a point-in-time copy of a Query's state.
type Snapshot[T any] struct {
	Data     T
	Err      error
	Status   Status
	Stale    bool
	Fetching bool
}

// Query caches the result of one remote read. Mutations never touch the
// cached value; they Invalidate and the data is fetched again.
//
// Fetches may overlap. Each gets a sequence number when issued and its
// result is applied only if no later-issued fetch has already been applied,
// so the cache always ends on the newest request's answer.
type Query[T any] struct {
	fetch func(context.Context) (T, error)

	mu            sync.Mutex
	data          T
	err           error
	status        Status
	issued        uint64
	applied       uint64
	staleBefore   uint64
	inflight      int
	invalidations int
	nextSub       int
	onInvalidate  map[int]func()
	onChange      map[int]func(Snapshot[T])
}

func NewQuery[T any](fetch func(context.Context) (T, error)) *Query[T] {
	return &Query[T]{
		fetch:        fetch,
		onInvalidate: map[int]func(){},
		onChange:     map[int]func(Snapshot[T]){},
	}
}

// Fetch reads from the remote store, bypassing the cache.
func (q *Query[T]) Fetch(ctx context.Context) (T, error) {
	q.mu.Lock()
	q.issued++
	seq := q.issued
	q.inflight++
	if q.status == StatusIdle {
		q.status = StatusLoading
	}
	q.mu.Unlock()
	q.changed()

	data, err := q.fetch(ctx)

	q.mu.Lock()
	q.inflight--
	if seq > q.applied {
		q.applied = seq
		if err != nil {
			q.err = err
			q.status = StatusError
		} else {
			q.data = data
			q.err = nil
			q.status = StatusSuccess
		}
	}
	q.mu.Unlock()
	q.changed()

	return data, err
}

// Read returns the cached value while it is fresh and fetches otherwise.
func (q *Query[T]) Read(ctx context.Context) (T, error) {
	q.mu.Lock()
	if q.status == StatusSuccess && !q.staleLocked() {
		data := q.data
		q.mu.Unlock()
		return data, nil
	}
	q.mu.Unlock()

	return q.Fetch(ctx)
}

// Invalidate marks the cached value stale so the next Read goes to the
// remote store, and tells OnInvalidate listeners.
func (q *Query[T]) Invalidate() {
	q.mu.Lock()
	q.invalidations++
	q.staleBefore = q.issued
	listeners := make([]func(), 0, len(q.onInvalidate))
	for _, fn := range q.onInvalidate {
		listeners = append(listeners, fn)
	}
	q.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	q.changed()
}

// Invalidations reports how many times Invalidate has been called.
func (q *Query[T]) Invalidations() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.invalidations
}

func (q *Query[T]) Snapshot() Snapshot[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// OnInvalidate registers fn to run after every Invalidate. The returned
// func unregisters it.
func (q *Query[T]) OnInvalidate(fn func()) func() {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := q.nextSub
	q.nextSub++
	q.onInvalidate[id] = fn

	return func() {
		q.mu.Lock()
		delete(q.onInvalidate, id)
		q.mu.Unlock()
	}
}

// Subscribe registers fn to receive a snapshot after every state change.
func (q *Query[T]) Subscribe(fn func(Snapshot[T])) func() {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := q.nextSub
	q.nextSub++
	q.onChange[id] = fn

	return func() {
		q.mu.Lock()
		delete(q.onChange, id)
		q.mu.Unlock()
	}
}

// staleLocked: data applied from a fetch issued at or before the last
// invalidation is stale.
func (q *Query[T]) staleLocked() bool {
	return q.applied <= q.staleBefore
}

func (q *Query[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{
		Data:     q.data,
		Err:      q.err,
		Status:   q.status,
		Stale:    q.staleLocked(),
		Fetching: q.inflight > 0,
	}
}

func (q *Query[T]) changed() {
	q.mu.Lock()
	snap := q.snapshotLocked()
	listeners := make([]func(Snapshot[T]), 0, len(q.onChange))
	for _, fn := range q.onChange {
		listeners = append(listeners, fn)
	}
	q.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
