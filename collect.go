package gostreams

import "context"

// Group is a chunk that has been read to its end.
type Group[K any, T any] struct {
	Key    K
	Values []T
}

// CollectSlice returns an accumulator that collects elements into a slice.
func CollectSlice[T any]() AccumulatorFunc[T, []T] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64, acc []T) []T {
		return append(acc, elem)
	}
}

// CollectGroups returns an accumulator that reads chunks to their end and collects them into a slice of groups.
func CollectGroups[K any, T any]() AccumulatorFunc[*Chunk[K, T], []Group[K, T]] {
	return func(_ context.Context, _ context.CancelCauseFunc, chunk *Chunk[K, T], _ uint64, acc []Group[K, T]) []Group[K, T] {
		return append(acc, Group[K, T]{
			Key:    chunk.Key(),
			Values: chunk.Values(),
		})
	}
}
