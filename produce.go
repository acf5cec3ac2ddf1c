package gostreams

import (
	"context"
	"iter"
)

// ProducerFunc returns a channel of elements for a stream.
type ProducerFunc[T any] func(ctx context.Context, cancel context.CancelCauseFunc) <-chan T

// Produce returns a producer that produces the elements of the given slices, in order.
func Produce[T any](slices ...[]T) ProducerFunc[T] {
	return func(ctx context.Context, _ context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for _, slice := range slices {
				for _, elem := range slice {
					select {
					case outCh <- elem:

					case <-ctx.Done():
						return
					}
				}
			}
		}()

		return outCh
	}
}

// ProduceChannel returns a producer that produces the elements received through the given channels, in order.
func ProduceChannel[T any](channels ...<-chan T) ProducerFunc[T] {
	return func(ctx context.Context, _ context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for _, ch := range channels {
				for elem := range ch {
					select {
					case outCh <- elem:

					case <-ctx.Done():
						return
					}
				}
			}
		}()

		return outCh
	}
}

// ProduceSeq returns a producer that produces the elements of seq, in order.
// seq is ranged over once per call of the producer.
func ProduceSeq[T any](seq iter.Seq[T]) ProducerFunc[T] {
	return func(ctx context.Context, _ context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for elem := range seq {
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

// Seq returns a sequence of the elements produced by prod.
// The stream is canceled when the loop over the sequence ends; the cause of the cancelation,
// if any, is not reported. Use Each to observe it.
func Seq[T any](ctx context.Context, prod ProducerFunc[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		ctx, cancel := context.WithCancelCause(ctx)
		defer cancel(nil)

		for elem := range prod(ctx, cancel) {
			if contextDone(ctx) || !yield(elem) {
				return
			}
		}
	}
}
