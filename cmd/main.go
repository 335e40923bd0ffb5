package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-signalist",
	Short: "A CLI for managing the Signalist backend services",
	Long:  `Signalist is a watchlist dashboard backend: market data API, price alerts, and an email notification pipeline.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
