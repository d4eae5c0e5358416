// Package cli defines the bookshelf command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/odvcencio/bookshelf/catalog"
	"github.com/odvcencio/bookshelf/internal/config"
	"github.com/odvcencio/bookshelf/internal/logging"
	"github.com/odvcencio/bookshelf/internal/render"
)

// Options stores global flags shared between commands.
type Options struct {
	CatalogPath string
	LogLevel    string
	Format      string
	NoColor     bool
	Style       string
}

// OptionsFromConfig seeds flag defaults from the environment configuration.
func OptionsFromConfig(cfg config.Config) *Options {
	return &Options{
		CatalogPath: cfg.CatalogPath,
		LogLevel:    cfg.LogLevel,
		Format:      cfg.Format,
		NoColor:     cfg.NoColor,
		Style:       cfg.Style,
	}
}

// Render returns the render options selected by the flags.
func (o *Options) Render() render.Options {
	return render.Options{Format: o.Format, Style: o.Style, NoColor: o.NoColor}
}

// Execute loads configuration, builds the root command and runs it. A
// failure is logged to stderr with the level and colour settings in effect
// after flag parsing, then returned.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger(stderr, slog.LevelInfo, noColorFromEnv()).Error("load config", "error", err)
		return err
	}
	opts := OptionsFromConfig(cfg)
	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger := logging.NewLogger(stderr, logging.ParseLevel(opts.LogLevel), opts.NoColor)
		logger.Error("command failed", "error", err)
		return err
	}
	return nil
}

// noColorFromEnv reads the colour preference when the config itself could
// not be parsed.
func noColorFromEnv() bool {
	if v, err := strconv.ParseBool(os.Getenv(config.Prefix + "NO_COLOR")); err == nil {
		return v
	}
	return os.Getenv("NO_COLOR") != ""
}

// NewRootCommand constructs the root command with global flags and
// subcommands.
func NewRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bookshelf",
		Short:         "bookshelf keeps track of the book you are looking at",
		Long:          "bookshelf browses a YAML book catalog and keeps the currently selected book in a reactive store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(opts.LogLevel)
			logger := logging.NewLogger(cmd.ErrOrStderr(), level, opts.NoColor)
			if err := (config.Config{Format: opts.Format}).Validate(); err != nil {
				return err
			}
			books, err := loadCatalog(opts.CatalogPath)
			if err != nil {
				return err
			}
			logger.Debug("catalog loaded", "path", opts.CatalogPath, "books", books.Len())
			ctx := context.WithValue(cmd.Context(), loggerKey{}, logger)
			ctx = context.WithValue(ctx, catalogKey{}, books)
			cmd.SetContext(ctx)
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.CatalogPath, "catalog", "c", opts.CatalogPath, "Path to a YAML book catalog (built-in sample when empty)")
	flags.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVarP(&opts.Format, "format", "f", opts.Format, "Output format for the current book (text, json, html)")
	flags.BoolVar(&opts.NoColor, "no-color", opts.NoColor, "Disable colours in logs and output")
	flags.StringVar(&opts.Style, "style", opts.Style, "Highlight style for json output")

	cmd.AddCommand(
		newListCommand(opts),
		newSessionCommand(opts),
		newPickCommand(opts),
	)
	return cmd
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	books, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return books, nil
}

type loggerKey struct{}

type catalogKey struct{}

// LoggerFromContext extracts the command logger or falls back to a default.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return logging.NewLogger(os.Stderr, slog.LevelInfo, false)
}

func catalogFromContext(ctx context.Context) *catalog.Catalog {
	if ctx != nil {
		if c, ok := ctx.Value(catalogKey{}).(*catalog.Catalog); ok && c != nil {
			return c
		}
	}
	return catalog.Default()
}
