package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/textcheck/pkg/checker"
)

var withGuesses bool

// spellCmd represents the spell command
var spellCmd = &cobra.Command{
	Use:   "spell [file]",
	Short: "Find misspelled words",
	Long: `Spell reports the position of every misspelled word in the input,
read from a file or stdin.

Example:
  textcheck spell draft.txt
  echo "Helllo, how's goign" | textcheck spell --guess
  textcheck spell draft.txt --ignore helllo --ignore tbd`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSpell,
}

func init() {
	rootCmd.AddCommand(spellCmd)
	addCheckFlags(spellCmd)
	spellCmd.Flags().BoolVar(&withGuesses, "guess", false, "include ranked correction suggestions")
}

func runSpell(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	c, err := newChecker(loadConfig())
	if err != nil {
		return err
	}
	ctx := context.Background()

	if withGuesses {
		matches, err := c.CheckSpellingWithGuesses(ctx, text, ignoreWords)
		if err != nil {
			return fmt.Errorf("spell check: %w", err)
		}
		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(matches)
		}
		for _, m := range matches {
			word := wordAt(text, m.Range)
			if len(m.Guesses) == 0 {
				fmt.Printf("%d+%d\t%s\t(no suggestions)\n", m.Range.Location, m.Range.Length, word)
				continue
			}
			fmt.Printf("%d+%d\t%s\t%s\n", m.Range.Location, m.Range.Length, word, strings.Join(m.Guesses, ", "))
		}
		reportCount(len(matches))
		return nil
	}

	ranges, err := c.CheckSpelling(ctx, text, ignoreWords)
	if err != nil {
		return fmt.Errorf("spell check: %w", err)
	}
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(ranges)
	}
	for _, rng := range ranges {
		fmt.Printf("%d+%d\t%s\n", rng.Location, rng.Length, wordAt(text, rng))
	}
	reportCount(len(ranges))
	return nil
}

// wordAt returns the text covered by a rune range.
func wordAt(text string, rng checker.Range) string {
	runes := []rune(text)
	if !rng.Found() || rng.End() > len(runes) {
		return ""
	}
	return string(runes[rng.Location:rng.End()])
}

func reportCount(n int) {
	if verbose {
		fmt.Fprintf(os.Stderr, "%d finding(s)\n", n)
	}
}
