package commands

import (
	"github.com/spf13/cobra"

	"github.com/vsinha/stockcheck/pkg/interfaces/cli/output"
)

// NewTiersCommand creates the tiers command.
func NewTiersCommand(rootOpts *RootOptions) *cobra.Command {
	var stock, hierarchyFile string

	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "Print the tier hierarchy and the aggregated stock per tier",
		Long: `Print the configured tier hierarchy, narrowest first. With --stock the
inventory is aggregated and every tier's key count and total are shown.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(rootOpts, hierarchyFile)
			if err != nil {
				return err
			}
			defer env.logger.Sync()

			if stock == "" {
				if err := env.hierarchy.Validate(); err != nil {
					return err
				}
				return output.GenerateHierarchy(cmd.OutOrStdout(), env.hierarchy, rootOpts.Format)
			}

			ix, err := env.buildIndex(cmd.Context(), stock)
			if err != nil {
				return err
			}
			return output.GenerateTiers(cmd.OutOrStdout(), ix, rootOpts.Format)
		},
	}

	cmd.Flags().StringVar(&stock, "stock", "", "inventory source (file.csv, file.xlsx#Sheet, sqlite:db#table, sheets:id#range)")
	cmd.Flags().StringVar(&hierarchyFile, "hierarchy", "", "YAML file with tiers and column aliases")

	return cmd
}
