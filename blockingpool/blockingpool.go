// Package blockingpool provides a fixed capacity object pool used to bound the
// number of decoded frame buffers in flight.
package blockingpool

import "context"

// BlockingPool is a channel backed pool with back-pressure on both ends. Get
// blocks while the pool is empty and Put blocks while it is full, so a
// producer can never run more than Cap objects ahead of its consumer.
//
// The zero value has no capacity and blocks forever; use NewBlockingPool.
type BlockingPool[T any] struct {
	pool chan T
}

// NewBlockingPool creates a pool able to hold capacity idle objects. It starts
// empty; callers fill it with Put.
func NewBlockingPool[T any](capacity int) BlockingPool[T] {
	return BlockingPool[T]{pool: make(chan T, capacity)}
}

// Get takes an object out of the pool, waiting for one to be returned if
// needed.
func (p *BlockingPool[T]) Get() T { return <-p.pool }

// Put hands obj back, waiting for room if the pool is full.
func (p *BlockingPool[T]) Put(obj T) { p.pool <- obj }

// GetContext is Get that gives up when ctx ends.
func (p *BlockingPool[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case obj := <-p.pool:
		return obj, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// PutContext is Put that gives up when ctx ends. obj is dropped in that case.
func (p *BlockingPool[T]) PutContext(ctx context.Context, obj T) error {
	select {
	case p.pool <- obj:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len is the number of idle objects currently in the pool.
func (p *BlockingPool[T]) Len() int { return len(p.pool) }

func (p *BlockingPool[T]) Cap() int { return cap(p.pool) }
