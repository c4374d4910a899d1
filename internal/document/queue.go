package document

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/barrero/supertareas/internal/model"
)

// ErrQueueClosed is returned by Update after Close.
var ErrQueueClosed = errors.New("document: write queue closed")

type op struct {
	fn    func(*model.Document) error
	reply chan error
}

// Queue serializes all mutations of the document. A single goroutine drains
// submitted operations in FIFO order; each turn loads the document from
// disk, applies the operation, and saves the result, so every operation
// observes the committed state of all operations before it.
//
// A failed operation (or a failed save) rejects only its own caller; the
// drain loop keeps going.
type Queue struct {
	store  *Store
	ops    chan op
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func NewQueue(store *Store, logger *slog.Logger) *Queue {
	q := &Queue{
		store:  store,
		ops:    make(chan op),
		done:   make(chan struct{}),
		logger: logger,
	}
	go q.drain()
	return q
}

// Update runs fn inside the queue's exclusive load-mutate-save cycle. fn
// may mutate the document freely; if it returns an error the document is
// not saved and the error is returned to the caller. A cancelled context
// abandons the wait but never interrupts a cycle already in flight.
func (q *Queue) Update(ctx context.Context, fn func(*model.Document) error) error {
	o := op{fn: fn, reply: make(chan error, 1)}
	select {
	case q.ops <- o:
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-o.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the drain loop. In-flight work finishes; operations submitted
// afterwards fail with ErrQueueClosed. Close must not race with Update from
// the caller's side — stop accepting requests first.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

func (q *Queue) drain() {
	for {
		select {
		case <-q.done:
			return
		case o := <-q.ops:
			o.reply <- q.run(o.fn)
		}
	}
}

func (q *Queue) run(fn func(*model.Document) error) error {
	doc := q.store.Load()
	if err := fn(doc); err != nil {
		return err
	}
	if err := q.store.Save(doc); err != nil {
		q.logger.Error("save document failed", "error", err)
		return err
	}
	return nil
}
