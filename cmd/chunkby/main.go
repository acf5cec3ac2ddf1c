package main

import (
	"context"
	"os"

	"github.com/deadlyengineer/chunk-streaming-with-go/internal/logging"
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logging.Err(err).Msg("terminated with errors")
		os.Exit(1)
	}
}
