package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/atol-data/metadata-broker/pkg/db"
	"github.com/atol-data/metadata-broker/pkg/model"
)

// importWatchCmd represents the import watch command
var importWatchCmd = &cobra.Command{
	Use:   "watch <kind> <file>",
	Short: "Watch a trigger file and import datasets as they arrive",
	Long: `Watch a file and import a dataset when it changes.

To trigger an import, replace the contents of the watched file with the
path to the dataset JSON. The path must be visible to the process running
"brokerctl import watch".

Example:
  brokerctl import watch sample /run/broker/import/samples`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := model.KindString(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := watchImports(kind, args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch imports: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	importCmd.AddCommand(importWatchCmd)
}

func watchImports(kind model.Kind, filename string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for %s datasets\n", filename, kind)

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] Trigger file modified, importing...\n", time.Now().Format(time.RFC3339))
				runTriggeredImport(database, kind, filename)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}

func runTriggeredImport(database *gorm.DB, kind model.Kind, filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading trigger file: %v\n", err)
		return
	}

	datasetPath := strings.TrimSpace(string(content))
	if datasetPath == "" {
		return
	}

	if err := importDatasetFile(database, kind, datasetPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing dataset: %v\n", err)
	} else {
		fmt.Printf("Dataset imported successfully from %s\n", datasetPath)
	}
}
