package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cleancorp/internal/classify"
	"github.com/sells-group/cleancorp/internal/config"
	"github.com/sells-group/cleancorp/internal/termdata"
	"github.com/sells-group/cleancorp/internal/terms"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "cleancorp",
	Short: "Legal business name classifier",
	Long:  "Strips corporate suffixes from business names and infers entity type, country of incorporation and industry from curated term dictionaries.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

// loadIndex builds the term index from terms.path, or from the embedded
// dictionaries when no path is configured.
func loadIndex() (*terms.Index, error) {
	d := termdata.Default()
	if cfg.Terms.Path != "" {
		var err error
		if d, err = termdata.Load(cfg.Terms.Path); err != nil {
			return nil, err
		}
	}
	idx, err := terms.Build(d)
	if err != nil {
		return nil, eris.Wrap(err, "build term index")
	}
	return idx, nil
}

func newClassifier(fold bool) (*classify.Classifier, error) {
	idx, err := loadIndex()
	if err != nil {
		return nil, err
	}
	return classify.New(idx, classify.WithFold(fold || cfg.Classify.FoldUnicode)), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
