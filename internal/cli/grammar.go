package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// grammarCmd represents the grammar command
var grammarCmd = &cobra.Command{
	Use:   "grammar [file]",
	Short: "Find grammar errors",
	Long: `Grammar reports grammar findings with the engine's rule name and
message where available.

Example:
  textcheck grammar essay.txt
  echo "Me and him was going to the store." | textcheck grammar`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGrammar,
}

func init() {
	rootCmd.AddCommand(grammarCmd)
	addCheckFlags(grammarCmd)
}

func runGrammar(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	c, err := newChecker(loadConfig())
	if err != nil {
		return err
	}

	matches, err := c.CheckGrammar(context.Background(), text, ignoreWords)
	if err != nil {
		return fmt.Errorf("grammar check: %w", err)
	}
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(matches)
	}
	for _, m := range matches {
		line := fmt.Sprintf("%d+%d\t%s", m.Range.Location, m.Range.Length, wordAt(text, m.Range))
		if m.Detail != nil && m.Detail.Message != "" {
			line += "\t" + m.Detail.Message
		}
		fmt.Println(line)
	}
	reportCount(len(matches))
	return nil
}
