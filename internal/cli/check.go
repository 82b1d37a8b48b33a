package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run every check type at once",
	Long: `Check runs spelling, grammar, orthography and date recognition over
the input in one pass and reports the findings in engine order.

Example:
  textcheck check notes.txt
  textcheck check page.html --html --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addCheckFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	c, err := newChecker(loadConfig())
	if err != nil {
		return err
	}

	results, err := c.Check(context.Background(), text, ignoreWords)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(results)
	}
	for _, r := range results {
		line := fmt.Sprintf("%d+%d\t%-11s\t%s", r.Range.Location, r.Range.Length, r.Kind, wordAt(text, r.Range))
		if r.Message != "" {
			line += "\t" + r.Message
		}
		if r.Suggestion != "" {
			line += fmt.Sprintf("\t-> %s", r.Suggestion)
		}
		fmt.Println(line)
	}
	reportCount(len(results))
	return nil
}
