package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/atol-data/metadata-broker/pkg/config"
	"github.com/atol-data/metadata-broker/pkg/db"
	"github.com/atol-data/metadata-broker/pkg/ena"
	"github.com/atol-data/metadata-broker/pkg/export"
	gormstore "github.com/atol-data/metadata-broker/pkg/server/store/gorm"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <document> <id>",
	Short: "Render a submission document to stdout",
	Long: `Render a submission XML document to stdout.

Documents:
  sample      SAMPLE_SET for one sample record
  experiment  EXPERIMENT_SET for one experiment record
  runs        RUN_SET batching all reads of one experiment

Example:
  brokerctl export sample 12
  brokerctl export experiment 20 --study-accession ERP000001
  brokerctl export runs 20`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id64, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid record id:", args[1])
			os.Exit(1)
		}
		id := uint(id64)

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		exporter := export.New(
			gormstore.NewRecordsStore(database),
			gormstore.NewSubmissionsStore(database),
			gormstore.NewFetchedStore(database),
			config.Get(),
		)

		var doc string
		switch args[0] {
		case "sample":
			doc, err = exporter.SampleXML(id)
		case "experiment":
			studyAccession, _ := cmd.Flags().GetString("study-accession")
			studyRefname, _ := cmd.Flags().GetString("study-refname")
			doc, err = exporter.ExperimentXML(id,
				ena.Reference{Accession: studyAccession, Refname: studyRefname},
				ena.Reference{},
			)
		case "runs":
			doc, err = exporter.RunSetXML(id)
		default:
			fmt.Fprintln(os.Stderr, "unknown document type:", args[0])
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(doc)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("study-accession", "", "study accession for experiment documents")
	exportCmd.Flags().String("study-refname", "", "study refname for experiment documents")
}
