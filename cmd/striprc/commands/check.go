package commands

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/striprc/cmd/striprc/opts"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show what run would change without writing",
		Long: `Check is a dry run: every rule is applied in memory and a diff is printed for
each file that would change. Nothing is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd.Context(), o, afero.NewOsFs(), cmd.OutOrStdout(), true)
		},
	}

	return cmd
}
