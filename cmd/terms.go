package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/cleancorp/internal/termdata"
	"github.com/sells-group/cleancorp/internal/terms"
)

var (
	termsList     string
	termsValidate string
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Print or validate ranked term lists",
	Long: `Prints one ranked term list as YAML, longest terms first, or validates a
dictionary file by building an index from it.

Lists: types, countries, industries, suffixes (types and countries), all.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if termsValidate != "" {
			d, err := termdata.Load(termsValidate)
			if err != nil {
				return err
			}
			idx, err := terms.Build(d)
			if err != nil {
				return eris.Wrapf(err, "terms: validate %s", termsValidate)
			}
			zap.L().Info("terms: dictionary valid",
				zap.String("path", termsValidate),
				zap.Int("terms", len(idx.All)),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d types, %d countries, %d industries)\n",
				termsValidate, len(idx.Types), len(idx.Countries), len(idx.Industries))
			return err
		}

		idx, err := loadIndex()
		if err != nil {
			return err
		}
		list, ok := idx.List(termsList)
		if !ok {
			return eris.Errorf("terms: unknown list %q", termsList)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return eris.Wrap(err, "terms: encode list")
		}
		return enc.Close()
	},
}

func init() {
	termsCmd.Flags().StringVar(&termsList, "list", "suffixes", "list to print: types, countries, industries, suffixes, all")
	termsCmd.Flags().StringVar(&termsValidate, "validate", "", "dictionary YAML file to validate")
	rootCmd.AddCommand(termsCmd)
}
