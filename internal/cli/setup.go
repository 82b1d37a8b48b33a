package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/textcheck/internal/engine"
	"github.com/ppiankov/textcheck/internal/extract"
	"github.com/ppiankov/textcheck/internal/langid"
	"github.com/ppiankov/textcheck/internal/model"
	"github.com/ppiankov/textcheck/pkg/checker"
)

// Flags shared by the checking commands.
var (
	ignoreWords []string
	htmlInput   bool
	jsonOutput  bool
	engineName  string
)

// loadConfig layers the config file over the defaults.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if v := viper.GetString("engine.backend"); v != "" {
		cfg.Engine.Backend = v
	}
	if v := viper.GetString("engine.user_dict"); v != "" {
		cfg.Engine.UserDict = v
	}
	if v := viper.GetStringSlice("engine.languages"); len(v) > 0 {
		cfg.Engine.Languages = v
	}
	if v := viper.GetString("engine.openai.model"); v != "" {
		cfg.Engine.OpenAI.Model = v
	}
	if v := viper.GetString("engine.openai.base_url"); v != "" {
		cfg.Engine.OpenAI.BaseURL = v
	}
	if v := viper.GetString("language.identifier"); v != "" {
		cfg.Language.Identifier = v
	}
	if v := viper.GetString("language.static"); v != "" {
		cfg.Language.Static = v
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetInt("concurrency.batch_workers"); v > 0 {
		cfg.Concurrency.BatchWorkers = v
	}
	if engineName != "" {
		cfg.Engine.Backend = engineName
	}
	return cfg
}

// newChecker builds the checker from configuration. The OpenAI backend
// takes its key from OPENAI_API_KEY when the config has none.
func newChecker(cfg *model.Config) (*checker.Checker, error) {
	if cfg.Engine.Backend == "openai" && cfg.Engine.OpenAI.APIKey == "" {
		cfg.Engine.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Engine.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	ident, err := langid.New(cfg.Language.Identifier, cfg.Language.Static)
	if err != nil {
		return nil, err
	}
	return checker.New(eng, ident), nil
}

// readInput loads the text to check: the file named by args[0], or stdin
// when no argument (or "-") is given. HTML input is reduced to visible
// text first.
func readInput(args []string) (string, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	text := string(data)
	if htmlInput {
		text, err = extract.Text(text)
		if err != nil {
			return "", err
		}
	}
	return text, nil
}

// addCheckFlags installs the flags every checking command shares.
func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&ignoreWords, "ignore", nil, "word to skip for this run only (repeatable)")
	cmd.Flags().BoolVar(&htmlInput, "html", false, "treat input as HTML and check its visible text")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of plain text")
	cmd.Flags().StringVar(&engineName, "engine", "", "engine backend (embedded, openai)")
}
