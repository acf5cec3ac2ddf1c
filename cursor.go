package gostreams

import (
	"context"
	"iter"
	"sync"
)

// cursor is the one-shot source shared by a Chunks and every Chunk it opens.
// Only the chunk that is currently open pulls from it; the chunk's mutex
// serializes those pulls.
type cursor[K any, T any] struct {
	next     func() (T, bool)
	stop     func()
	stopOnce sync.Once

	keyOf func(elem T, index uint64) K
	equal EqualFunc[K]

	index uint64

	// lookahead is the element that closed the previous chunk, together with its key.
	lookahead    T
	lookaheadKey K
	held         bool
}

func newSeqCursor[K any, T any](seq iter.Seq[T], keyOf func(T, uint64) K, equal EqualFunc[K]) *cursor[K, T] {
	next, stop := iter.Pull(seq)

	return &cursor[K, T]{
		next:  next,
		stop:  stop,
		keyOf: keyOf,
		equal: equal,
	}
}

// newChannelCursor returns a cursor that receives from ch until it is closed or ctx is done.
func newChannelCursor[K any, T any](ctx context.Context, ch <-chan T, keyOf func(T, uint64) K, equal EqualFunc[K]) *cursor[K, T] {
	next := func() (T, bool) {
		select {
		case elem, ok := <-ch:
			return elem, ok

		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}

	return &cursor[K, T]{
		next:  next,
		stop:  func() {},
		keyOf: keyOf,
		equal: equal,
	}
}

// pull advances the source by one element and computes its key.
func (c *cursor[K, T]) pull() (T, K, bool) {
	elem, ok := c.next()
	if !ok {
		var key K
		return elem, key, false
	}

	key := c.keyOf(elem, c.index)
	c.index++

	return elem, key, true
}

// hold stores elem as the first element of the next chunk.
func (c *cursor[K, T]) hold(elem T, key K) {
	c.lookahead = elem
	c.lookaheadKey = key
	c.held = true
}

// take returns the held lookahead, or pulls a new element if none is held.
func (c *cursor[K, T]) take() (T, K, bool) {
	if !c.held {
		return c.pull()
	}

	elem, key := c.lookahead, c.lookaheadKey

	var zeroElem T
	var zeroKey K
	c.lookahead, c.lookaheadKey, c.held = zeroElem, zeroKey, false

	return elem, key, true
}

func (c *cursor[K, T]) release() {
	c.stopOnce.Do(c.stop)
}
