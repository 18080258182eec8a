package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brokerctl",
	Short: "Manage the metadata broker",
	Long: `brokerctl manages the specimen metadata broker.

It runs the API server, applies database migrations, imports bulk
datasets, renders submission documents and issues access tokens.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
