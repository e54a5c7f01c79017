// Package worker runs best-effort side jobs off the request path.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrQueueFull = errors.New("worker queue is full")

var ErrQueueClosed = errors.New("worker queue is closed")

// Queue hands jobs to a single goroutine through a buffered channel.
// Enqueue never blocks: when the buffer is full the job is dropped.
type Queue[T any] struct {
	jobs    chan T
	handle  func(ctx context.Context, job T)
	timeout time.Duration
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// New starts the consumer goroutine. Each job runs under its own context
// bounded by timeout.
func New[T any](size int, timeout time.Duration, handle func(ctx context.Context, job T)) *Queue[T] {
	q := &Queue[T]{
		jobs:    make(chan T, size),
		handle:  handle,
		timeout: timeout,
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue[T]) Enqueue(job T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting jobs and waits for the buffered ones to finish
// or for ctx to end.
func (q *Queue[T]) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue[T]) run() {
	defer close(q.done)
	for job := range q.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		q.handle(ctx, job)
		cancel()
	}
}
