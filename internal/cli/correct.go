package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/textcheck/pkg/checker"
)

// correctCmd represents the correct command
var correctCmd = &cobra.Command{
	Use:   "correct [file]",
	Short: "Autocorrect the whole input",
	Long: `Correct resolves the input's dominant language against the engine's
supported variants and prints the corrected text. When the engine finds
no better alternative the input is printed unchanged.

Example:
  echo "Helllo, how's goign" | textcheck correct`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCorrect,
}

func init() {
	rootCmd.AddCommand(correctCmd)
	addCheckFlags(correctCmd)
}

func runCorrect(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	c, err := newChecker(loadConfig())
	if err != nil {
		return err
	}

	corrected, err := c.Correct(context.Background(), text, ignoreWords)
	switch {
	case errors.Is(err, checker.ErrNoLanguageDetected):
		return fmt.Errorf("could not determine the input's language; set language.identifier to static in the config to force one")
	case errors.Is(err, checker.ErrUnsupportedLanguage):
		return fmt.Errorf("autocorrect: %w", err)
	case err != nil:
		return fmt.Errorf("autocorrect: %w", err)
	}

	if corrected == "" {
		if verbose {
			fmt.Fprintln(os.Stderr, "No better alternative found")
		}
		fmt.Print(text)
		return nil
	}
	fmt.Print(corrected)
	return nil
}
