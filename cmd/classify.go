package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cleancorp/internal/classify"
	"github.com/sells-group/cleancorp/internal/terms"
)

var (
	classifyExplain bool
	classifyFold    bool
)

type classifyOutput struct {
	classify.Record
	MatchedTerms []terms.Entry `json:"matched_terms,omitempty"`
}

var classifyCmd = &cobra.Command{
	Use:   "classify NAME...",
	Short: "Classify one or more business names",
	Long: `Prints one JSON record per name with the clean name, entity type,
country and industry derived from the term dictionaries.

Examples:
  cleancorp classify "Acme Pty Ltd"
  cleancorp classify --explain "Foo Bank AG" "Widgets Co."`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClassifier(classifyFold)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		for _, raw := range args {
			b := c.Classify(raw)
			out := classifyOutput{Record: b.Record()}
			if classifyExplain {
				out.MatchedTerms = b.Explain()
			}
			if err := enc.Encode(out); err != nil {
				return eris.Wrap(err, "classify: encode record")
			}
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyExplain, "explain", false, "include every matched term")
	classifyCmd.Flags().BoolVar(&classifyFold, "fold", false, "apply NFKC and width folding before matching")
	rootCmd.AddCommand(classifyCmd)
}
