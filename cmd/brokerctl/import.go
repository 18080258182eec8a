package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/atol-data/metadata-broker/pkg/db"
	"github.com/atol-data/metadata-broker/pkg/importer"
	"github.com/atol-data/metadata-broker/pkg/model"
	gormstore "github.com/atol-data/metadata-broker/pkg/server/store/gorm"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <kind> <file>",
	Short: "Import a bulk dataset",
	Long: `Import a bulk dataset from a JSON file.

The file maps natural keys to row payloads. Rows that already exist or
cannot be resolved are skipped; the command reports aggregate counts with
a per-reason breakdown.

Example:
  brokerctl import organism organisms.json
  brokerctl import sample samples.json`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := model.KindString(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		if err := importDatasetFile(database, kind, args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func importDatasetFile(database *gorm.DB, kind model.Kind, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read dataset file: %w", err)
	}

	var dataset importer.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return fmt.Errorf("malformed dataset: %w", err)
	}

	result := importer.NewJob(gormstore.NewRecordsStore(database), kind).Run(dataset)

	fmt.Println(result.Message)
	for reason, count := range result.Debug {
		fmt.Printf("  %s: %d\n", reason, count)
	}
	return nil
}
