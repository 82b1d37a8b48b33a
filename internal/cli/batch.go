package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/textcheck/internal/worker"
)

var batchWorkers int

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Check many files concurrently",
	Long: `Batch runs the unified check over every named file through a worker
pool and summarizes findings per file.

Example:
  textcheck batch docs/*.md
  textcheck batch --workers 8 --json site/*.html --html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addCheckFlags(batchCmd)
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent files (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	c, err := newChecker(cfg)
	if err != nil {
		return err
	}
	workers := batchWorkers
	if workers <= 0 {
		workers = cfg.Concurrency.BatchWorkers
	}

	results := worker.Batch(context.Background(), c, args, ignoreWords, htmlInput, workers)

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(results)
	}
	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Error)
			continue
		}
		fmt.Printf("%s\t%d words\t%d finding(s)\n", res.Path, res.Words, len(res.Results))
		if verbose {
			for _, r := range res.Results {
				fmt.Printf("  %d+%d\t%s\t%s\n", r.Range.Location, r.Range.Length, r.Kind, r.Message)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}
