package cli

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/bookshelf/internal/render"
)

func newListCommand(_ *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			books := catalogFromContext(cmd.Context())
			return render.Table(cmd.OutOrStdout(), books.Books(), nil)
		},
	}
}
