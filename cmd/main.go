package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stock-sentiment",
	Short: "A CLI for the stock news sentiment pipeline",
	Long: `Stock sentiment scores financial news per ticker and correlates it with price moves.

The pipeline runs as separate binaries:
  sentiment-service   consumes ticker sync tasks and runs the scoring pipeline
  scheduling-service  owns the watch list, the cron scheduler and the HTTP API
  migrate             applies the PostgreSQL schema`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
