// Package demo prints chunks of key/value records.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	gostreams "github.com/deadlyengineer/chunk-streaming-with-go"
	"github.com/deadlyengineer/chunk-streaming-with-go/internal/logging"
)

// Record is a key/value pair.
type Record struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// DefaultRecords returns the built-in record set.
func DefaultRecords() []Record {
	return []Record{
		{Key: "A", Value: "We"},
		{Key: "A", Value: "think"},
		{Key: "A", Value: "that"},
		{Key: "B", Value: "Linq"},
		{Key: "C", Value: "is"},
		{Key: "A", Value: "really"},
		{Key: "B", Value: "cool"},
		{Key: "B", Value: "!"},
	}
}

// Load decodes a YAML list of records from r.
func Load(r io.Reader) ([]Record, error) {
	records := []Record{}

	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		return nil, fmt.Errorf("decode records: %w", err)
	}

	return records, nil
}

func recordKey(r Record) string {
	return r.Key
}

// Print writes one line per chunk of records with the same key, followed by one indented line per value.
func Print(ctx context.Context, w io.Writer, records []Record) error {
	chunks := gostreams.ChunkBy(gostreams.Produce(records), gostreams.FuncMapper(recordKey))

	return gostreams.Each(ctx, chunks, func(_ context.Context, cancel context.CancelCauseFunc, chunk *gostreams.Chunk[string, Record], index uint64) {
		logging.Debug().Uint64("chunk", index).Str("key", chunk.Key()).Msg("printing chunk")

		if _, err := fmt.Fprintf(w, "Key=%s\n", chunk.Key()); err != nil {
			cancel(err)
			return
		}

		for rec := range chunk.All() {
			if _, err := fmt.Fprintf(w, "  %s\n", rec.Value); err != nil {
				cancel(err)
				return
			}
		}
	})
}

// PrintCounts writes the key and the number of records of each chunk, one chunk per line.
func PrintCounts(ctx context.Context, w io.Writer, records []Record) error {
	chunks := gostreams.ChunkBy(gostreams.Produce(records), gostreams.FuncMapper(recordKey))

	groups, err := gostreams.Reduce(ctx, chunks, []gostreams.Group[string, Record]{}, gostreams.CollectGroups[string, Record]())
	if err != nil {
		return err
	}

	counts := gostreams.Map(gostreams.Produce(groups), gostreams.FuncMapper(func(g gostreams.Group[string, Record]) string {
		return fmt.Sprintf("%s\t%d", g.Key, len(g.Values))
	}))

	return gostreams.Each(ctx, counts, func(_ context.Context, cancel context.CancelCauseFunc, line string, _ uint64) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			cancel(err)
		}
	})
}
