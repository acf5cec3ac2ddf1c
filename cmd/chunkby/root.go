package main

import (
	"fmt"
	"os"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deadlyengineer/chunk-streaming-with-go/internal/demo"
	"github.com/deadlyengineer/chunk-streaming-with-go/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunkby",
		Short: "prints runs of consecutive records sharing the same key",
		Long: `Groups key/value records into runs of consecutive records with the same key
and prints each run's key followed by its values, in input order.

Records are read from a YAML list of {key, value} objects given with --file,
or the built-in record set is used.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrazerolog.New(
				cobrazerolog.WithTarget(func(logger zerolog.Logger) {
					logging.SetGlobalLogger(logger)
				}),
			).RunE(),
		),
		RunE: runRoot,
	}

	cobrazerolog.New().RegisterFlags(cmd.PersistentFlags())
	cmd.Flags().String("file", "", "YAML file of records to read instead of the built-in records")
	cmd.Flags().Bool("counts", false, "print the number of records in each run instead of the values")

	return cmd
}

func runRoot(cmd *cobra.Command, _ []string) error {
	path := cobrautil.MustGetString(cmd, "file")
	counts := cobrautil.MustGetBool(cmd, "counts")

	records := demo.DefaultRecords()

	if path != "" {
		var err error
		records, err = loadRecords(path)
		if err != nil {
			return err
		}
	}

	logging.Debug().Int("records", len(records)).Str("file", path).Msg("loaded records")

	if counts {
		return demo.PrintCounts(cmd.Context(), cmd.OutOrStdout(), records)
	}

	return demo.Print(cmd.Context(), cmd.OutOrStdout(), records)
}

func loadRecords(path string) ([]demo.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	return demo.Load(f)
}
