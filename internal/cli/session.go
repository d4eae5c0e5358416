package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/bookshelf/catalog"
	"github.com/odvcencio/bookshelf/internal/session"
)

func newSessionCommand(opts *Options) *cobra.Command {
	var (
		script string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run selection commands read from stdin or a script",
		Long:  "session keeps one selection in memory and applies select/set/clear/show/list/history commands line by line.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			var in io.Reader = cmd.InOrStdin()
			if script != "" {
				f, err := os.Open(script)
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			sel := catalog.NewSelection(logger)
			s := session.New(catalogFromContext(cmd.Context()), sel, cmd.OutOrStdout(), opts.Render(), logger)
			defer s.Close()

			if err := s.Run(cmd.Context(), in); err != nil {
				return err
			}
			logger.Debug("session finished", "changes", len(s.History()), "failed", s.Failed())
			if strict && s.Failed() > 0 {
				return fmt.Errorf("%d command(s) failed", s.Failed())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "Read commands from this file instead of stdin")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error if any command failed")
	return cmd
}
