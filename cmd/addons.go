package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jasicon/jasreg/internal/catalog"
	"github.com/jasicon/jasreg/internal/presentation"
)

var addonsCmd = &cobra.Command{
	Use:   "addons",
	Short: "List the workshop add-ons as JSON",
	Long: `List the workshop add-ons offered with registration as JSON.

The catalog comes from catalog.path in the config, or the built-in
workshops when it is unset.

Examples:
  jasreg addons
  jasreg addons | jq '.[].title'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := catalog.NewSource(cfg.Catalog.Path, cfg.Catalog.CacheTTL).Load(cmd.Context())
		if err != nil {
			return err
		}
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatCatalog(presentation.FromCatalog(c))
	},
}

func init() {
	rootCmd.AddCommand(addonsCmd)
}
