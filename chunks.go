package gostreams

import (
	"iter"
	"sync"

	"github.com/deadlyengineer/chunk-streaming-with-go/internal/logging"
)

// Chunks is a lazy sequence of chunks of consecutive source elements sharing the same key.
//
// The source is read at most once: Next drains whatever is left of the previous chunk before
// opening the next one, and the element that ends a chunk becomes the first element of the
// following chunk without being read again. Chunks is safe for concurrent use.
type Chunks[K any, T any] struct {
	mu      sync.Mutex
	src     *cursor[K, T]
	current *Chunk[K, T]
	done    bool
}

// NewChunks returns chunks of the elements of seq, grouping consecutive elements for which key
// returns the same value.
func NewChunks[T any, K comparable](seq iter.Seq[T], key Function[T, K]) *Chunks[K, T] {
	return NewChunksFunc(seq, key, equal[K])
}

// NewChunksFunc is like NewChunks, but compares keys using eq.
func NewChunksFunc[T any, K any](seq iter.Seq[T], key Function[T, K], eq EqualFunc[K]) *Chunks[K, T] {
	keyOf := func(elem T, _ uint64) K {
		return key(elem)
	}

	return newChunks(newSeqCursor(seq, keyOf, eq))
}

func newChunks[K any, T any](src *cursor[K, T]) *Chunks[K, T] {
	return &Chunks[K, T]{
		src: src,
	}
}

// Next returns the next chunk. It returns false if the source has no more elements.
func (s *Chunks[K, T]) Next() (*Chunk[K, T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil, false
	}

	if s.current != nil && s.current.drain() {
		s.finish()
		return nil, false
	}

	first, key, ok := s.src.take()
	if !ok {
		s.finish()
		return nil, false
	}

	s.current = newChunk(key, first, s.src)

	logging.Trace().Any("key", key).Msg("chunk opened")

	return s.current, true
}

// All returns a sequence of all remaining chunks, keyed by their keys.
func (s *Chunks[K, T]) All() iter.Seq2[K, *Chunk[K, T]] {
	return func(yield func(K, *Chunk[K, T]) bool) {
		for {
			chunk, ok := s.Next()
			if !ok || !yield(chunk.Key(), chunk) {
				return
			}
		}
	}
}

// Stop releases the source. Chunks that have not been completely read will end early.
// It is safe to call Stop more than once.
func (s *Chunks[K, T]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		// the open chunk is the only other reader of the source
		s.current.mu.Lock()
		defer s.current.mu.Unlock()
	}

	s.finish()
}

// finish marks s as done and releases the source. s.mu must be held.
func (s *Chunks[K, T]) finish() {
	s.done = true
	s.src.release()
}

// ChunkSeq returns a sequence of chunks of the elements of seq, grouping consecutive elements
// for which key returns the same value.
// The source is released when the loop over the sequence ends, so chunks should be read inside
// the loop body. Elements already read remain available afterwards.
func ChunkSeq[T any, K comparable](seq iter.Seq[T], key Function[T, K]) iter.Seq2[K, *Chunk[K, T]] {
	return ChunkSeqFunc(seq, key, equal[K])
}

// ChunkSeqFunc is like ChunkSeq, but compares keys using eq.
func ChunkSeqFunc[T any, K any](seq iter.Seq[T], key Function[T, K], eq EqualFunc[K]) iter.Seq2[K, *Chunk[K, T]] {
	return func(yield func(K, *Chunk[K, T]) bool) {
		chunks := NewChunksFunc(seq, key, eq)
		defer chunks.Stop()

		chunks.All()(yield)
	}
}

func equal[K comparable](a K, b K) bool {
	return a == b
}
