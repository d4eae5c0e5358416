package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/odvcencio/bookshelf/catalog"
	"github.com/odvcencio/bookshelf/internal/picker"
	"github.com/odvcencio/bookshelf/internal/render"
)

func newPickCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a book interactively and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}

			sel := catalog.NewSelection(logger)
			p := picker.New(screen, catalogFromContext(cmd.Context()), sel, logger)
			defer p.Close()
			if err := p.Run(cmd.Context()); err != nil {
				return err
			}
			return render.Current(cmd.OutOrStdout(), sel.Current(), opts.Render())
		},
	}
}
