package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// vocabCmd represents the vocab command
var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage the learned-word dictionary",
	Long: `Vocab manages the engine's persistent learned-word dictionary.
Learned words are accepted by every later check, including after the
process restarts.`,
}

var vocabLearnCmd = &cobra.Command{
	Use:   "learn <word>...",
	Short: "Add words to the dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newChecker(loadConfig())
		if err != nil {
			return err
		}
		for _, word := range args {
			if err := c.LearnWord(word); err != nil {
				return fmt.Errorf("learn %q: %w", word, err)
			}
		}
		return nil
	},
}

var vocabUnlearnCmd = &cobra.Command{
	Use:   "unlearn <word>...",
	Short: "Remove words from the dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newChecker(loadConfig())
		if err != nil {
			return err
		}
		for _, word := range args {
			if err := c.UnlearnWord(word); err != nil {
				return fmt.Errorf("unlearn %q: %w", word, err)
			}
		}
		return nil
	},
}

var vocabHasCmd = &cobra.Command{
	Use:   "has <word>",
	Short: "Check whether a word has been learned",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newChecker(loadConfig())
		if err != nil {
			return err
		}
		fmt.Println(c.HasLearnedWord(args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.AddCommand(vocabLearnCmd)
	vocabCmd.AddCommand(vocabUnlearnCmd)
	vocabCmd.AddCommand(vocabHasCmd)
}
