package gostreams

import (
	"context"
	"iter"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/deadlyengineer/chunk-streaming-with-go/internal/logging"
)

// Chunk is a run of consecutive source elements that share the same key.
//
// Elements are pulled from the source lazily, the first time any reader asks
// for an element past the ones already buffered. Buffered elements are kept
// for the lifetime of the Chunk, so it can be read any number of times.
// A Chunk is safe for concurrent use.
type Chunk[K any, T any] struct {
	key K

	mu     sync.Mutex
	values []T

	// src is nil once the end of the chunk has been found.
	src *cursor[K, T]

	exhausted bool
}

func newChunk[K any, T any](key K, first T, src *cursor[K, T]) *Chunk[K, T] {
	return &Chunk[K, T]{
		key:    key,
		values: []T{first},
		src:    src,
	}
}

// Key returns the key shared by all elements of c.
func (c *Chunk[K, T]) Key() K {
	return c.key
}

// All returns a sequence of the elements of c, in source order.
// The sequence may be ranged over more than once; elements already buffered are replayed
// without touching the source.
func (c *Chunk[K, T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; ; i++ {
			elem, ok := c.at(i)
			if !ok || !yield(elem) {
				return
			}
		}
	}
}

// Values returns a copy of all elements of c, reading the rest of the chunk from the source if necessary.
func (c *Chunk[K, T]) Values() []T {
	c.drain()

	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.values)
}

// Buffered returns the number of elements read from the source into c so far.
func (c *Chunk[K, T]) Buffered() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.values)
}

// Closed returns true if the end of c has been found, that is, no more elements will be added to it.
func (c *Chunk[K, T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.src == nil
}

// Produce returns a producer that produces the elements of c, in order.
func (c *Chunk[K, T]) Produce() ProducerFunc[T] {
	return func(ctx context.Context, _ context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for elem := range c.All() {
				select {
				case outCh <- elem:

				case <-ctx.Done():
					return
				}
			}
		}()

		return outCh
	}
}

// at returns the element at index i, extending c from the source if i is just past the buffered elements.
func (c *Chunk[K, T]) at(i int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i >= len(c.values) {
		if !c.extend() {
			var zero T
			return zero, false
		}
	}

	return c.values[i], true
}

// drain reads the rest of c from the source.
// It returns true if the source has no more elements.
func (c *Chunk[K, T]) drain() bool {
	for {
		done, exhausted := c.drainStep()
		if done {
			return exhausted
		}
	}
}

// drainStep extends c by at most one element, taking the lock once per source pull
// so that readers of c are not blocked for the whole drain.
func (c *Chunk[K, T]) drainStep() (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.src == nil {
		return true, c.exhausted
	}

	c.extend()

	return false, false
}

// extend pulls the next element from the source and appends it to c if its key matches.
// It returns false if c is closed, or becomes closed by the pull.
// c.mu must be held.
func (c *Chunk[K, T]) extend() bool {
	if c.src == nil {
		return false
	}

	elem, key, ok := c.src.pull()

	switch {
	case !ok:
		c.exhausted = true
		c.close()
		return false

	case !c.src.equal(c.key, key):
		c.src.hold(elem, key)
		c.close()
		return false
	}

	c.values = append(c.values, elem)

	return true
}

// close releases the source. c.mu must be held.
func (c *Chunk[K, T]) close() {
	c.src = nil

	logging.Trace().
		Any("key", c.key).
		Int("len", len(c.values)).
		Bool("exhausted", c.exhausted).
		Msg("chunk closed")
}
