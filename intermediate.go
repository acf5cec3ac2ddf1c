package gostreams

import (
	"context"
)

// Function returns the result of applying an operation to elem.
type Function[T any, U any] func(elem T) U

// MapperFunc maps element elem to type U.
// The index is the 0-based index of elem, in the order produced by the upstream producer.
type MapperFunc[T any, U any] func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) U

// EqualFunc returns true if keys a and b are equal.
type EqualFunc[K any] func(a K, b K) bool

// FuncMapper returns a mapper that calls mapp for each element.
func FuncMapper[T any, U any](mapp Function[T, U]) MapperFunc[T, U] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64) U {
		return mapp(elem)
	}
}

// Map returns a producer that calls mapp for each element produced by prod, mapping it to type U.
func Map[T any, U any](prod ProducerFunc[T], mapp MapperFunc[T, U]) ProducerFunc[U] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan U {
		ch := prod(ctx, cancel)

		outCh := make(chan U)

		go func() {
			defer close(outCh)

			index := uint64(0)

			for elem := range ch {
				outElem := mapp(ctx, cancel, elem, index)

				if contextDone(ctx) {
					return
				}

				select {
				case outCh <- outElem:
					index++

				case <-ctx.Done():
					return
				}
			}
		}()

		return outCh
	}
}

// ChunkBy returns a producer that groups consecutive elements produced by prod into chunks.
// Consecutive elements for which key returns the same value belong to the same chunk.
//
// Each chunk reads its elements from prod lazily. Before producing the next chunk, the
// previous chunk is read to its end, so a consumer may skip chunks without reading them.
// Chunks must be read before the stream's context is canceled; elements not read by then
// are missing from the chunk.
func ChunkBy[T any, K comparable](prod ProducerFunc[T], key MapperFunc[T, K]) ProducerFunc[*Chunk[K, T]] {
	return ChunkByFunc(prod, key, equal[K])
}

// ChunkByFunc is like ChunkBy, but compares keys using eq.
func ChunkByFunc[T any, K any](prod ProducerFunc[T], key MapperFunc[T, K], eq EqualFunc[K]) ProducerFunc[*Chunk[K, T]] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan *Chunk[K, T] {
		ch := prod(ctx, cancel)

		keyOf := func(elem T, index uint64) K {
			return key(ctx, cancel, elem, index)
		}

		chunks := newChunks(newChannelCursor(ctx, ch, keyOf, eq))

		outCh := make(chan *Chunk[K, T])

		go func() {
			defer close(outCh)

			for {
				chunk, ok := chunks.Next()
				if !ok || contextDone(ctx) {
					return
				}

				select {
				case outCh <- chunk:

				case <-ctx.Done():
					return
				}
			}
		}()

		return outCh
	}
}

// Identity returns a mapper that returns the same element it receives.
func Identity[T any]() MapperFunc[T, T] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64) T {
		return elem
	}
}
