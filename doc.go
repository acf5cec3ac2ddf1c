// Package gostreams groups streams of elements into chunks of consecutive elements sharing the same key.
//
// Given a source and a key function, chunking produces a lazy sequence of chunks. Each chunk is
// itself a lazy sequence of the longest run of consecutive source elements for which the key function
// returns the same key. Keys may repeat in non-adjacent chunks: chunking never sorts or regroups.
//
//	A We, A think, B Linq, A really  =>  A [We think], B [Linq], A [really]
//
// The source is read only once, one element at a time, and only when a reader needs an element
// that has not been read yet. Chunks buffer the elements they have read, so a chunk may be read
// again after it ends, and a consumer may skip a chunk entirely: it is read to its end when the
// next chunk is requested.
//
// Sources can be range functions (NewChunks, ChunkSeq) or stream producers (ChunkBy).
// Producers are ProducerFuncs as in the rest of the package: they return a channel of elements and
// receive a context.CancelCauseFunc that stops the whole stream. Terminal operations such as Each and
// Reduce return the cause of the cancelation.
//
// Chunks and their elements may be read from multiple goroutines. Reads that need the source to
// advance are serialized, and the source is never advanced twice for the same element.
package gostreams
