package gostreams

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/matryer/is"
)

func TestMap(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := Produce([]int{1, 2, 3, 4, 5})

	ints = Map(ints, func(_ context.Context, _ context.CancelCauseFunc, elem int, index uint64) int {
		is.Equal(index, uint64(elem-1))

		return elem * 2
	})

	result, _ := Reduce(ctx, ints, nil, CollectSlice[int]())

	is.Equal(result, []int{2, 4, 6, 8, 10})
}

func TestMap_Cancel(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := Produce([]int{1, 2, 3, 4, 5})

	ints = Map(ints, func(_ context.Context, cancel context.CancelCauseFunc, elem int, index uint64) int {
		is.True(elem <= 3)

		if elem == 3 {
			cancel(nil)
			return 0
		}

		return elem * 2
	})

	result, err := Reduce(ctx, ints, nil, CollectSlice[int]())

	is.Equal(result, []int{2, 4})
	is.True(errors.Is(err, context.Canceled))
}

func TestChunkBy(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	key := func(_ context.Context, _ context.CancelCauseFunc, elem pair, index uint64) string {
		is.Equal(elem, scenario()[index])

		return elem.key
	}

	chunks := ChunkBy(Produce(scenario()), key)

	groups, err := Reduce(ctx, chunks, nil, CollectGroups[string, pair]())
	is.NoErr(err)

	is.Equal(len(groups), 5)

	keys := []string{}
	vals := [][]string{}

	for _, group := range groups {
		keys = append(keys, group.Key)

		groupVals := []string{}
		for _, p := range group.Values {
			groupVals = append(groupVals, p.value)
		}

		vals = append(vals, groupVals)
	}

	is.Equal(keys, []string{"A", "B", "C", "A", "B"})
	is.Equal(vals, [][]string{
		{"We", "think", "that"},
		{"Linq"},
		{"is"},
		{"really"},
		{"cool", "!"},
	})
}

func TestChunkBy_Skip(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	chunks := ChunkBy(Produce(scenario()), FuncMapper(pairKey))

	count, err := Count(ctx, chunks)
	is.NoErr(err)
	is.Equal(count, uint64(5))
}

func TestChunkBy_Empty(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	chunks := ChunkBy(Produce([]pair{}), FuncMapper(pairKey))

	count, err := Count(ctx, chunks)
	is.NoErr(err)
	is.Equal(count, uint64(0))
}

func TestChunkBy_Inner(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	chunks := ChunkBy(Produce(scenario()), FuncMapper(pairKey))

	lines := []string{}

	err := Each(ctx, chunks, func(ctx context.Context, cancel context.CancelCauseFunc, chunk *Chunk[string, pair], index uint64) {
		vals, err := ReduceSlice(ctx, Map(chunk.Produce(), FuncMapper(pairValue)))
		if err != nil {
			cancel(err)
			return
		}

		lines = append(lines, strconv.FormatUint(index, 10)+chunk.Key()+strconv.Itoa(len(vals)))
	})

	is.NoErr(err)
	is.Equal(lines, []string{"0A3", "1B1", "2C1", "3A1", "4B2"})
}

func TestChunkBy_Cancel(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	errBadKey := errors.New("bad key")

	key := func(_ context.Context, cancel context.CancelCauseFunc, elem pair, _ uint64) string {
		if elem.key == "C" {
			cancel(errBadKey)
		}

		return elem.key
	}

	chunks := ChunkBy(Produce(scenario()), key)

	_, err := Reduce(ctx, chunks, nil, CollectGroups[string, pair]())
	is.True(errors.Is(err, errBadKey))
}

func TestChunkBy_Channels(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	intsCh1 := Produce([]int{1, 1, 2})(ctx, cancel)
	intsCh2 := Produce([]int{2, 2, 3})(ctx, cancel)

	// chunks continue across the boundary between channels
	chunks := ChunkBy(ProduceChannel(intsCh1, intsCh2), Identity[int]())

	groups, err := Reduce(ctx, chunks, nil, CollectGroups[int, int]())
	is.NoErr(err)

	is.Equal(groups, []Group[int, int]{
		{Key: 1, Values: []int{1, 1}},
		{Key: 2, Values: []int{2, 2, 2}},
		{Key: 3, Values: []int{3}},
	})
}

func TestChunkByFunc(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := Produce([]int{1, 2, 3, 10, 11, 30, 4})

	magnitude := FuncMapper(func(i int) int {
		return i
	})

	sameDecade := func(a int, b int) bool {
		return a/10 == b/10
	}

	groups, err := Reduce(ctx, ChunkByFunc(ints, magnitude, sameDecade), nil, CollectGroups[int, int]())
	is.NoErr(err)

	is.Equal(groups, []Group[int, int]{
		{Key: 1, Values: []int{1, 2, 3}},
		{Key: 10, Values: []int{10, 11}},
		{Key: 30, Values: []int{30}},
		{Key: 4, Values: []int{4}},
	})
}

func TestIdentity(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	is.Equal(Identity[int]()(ctx, cancel, 42, 0), 42)
}
