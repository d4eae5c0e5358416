// Package session runs line-oriented commands against one selection.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/odvcencio/bookshelf/catalog"
	"github.com/odvcencio/bookshelf/internal/logging"
	"github.com/odvcencio/bookshelf/internal/render"
	"github.com/odvcencio/bookshelf/store"
)

// ErrUnknownCommand is returned by Exec for an unrecognised verb.
var ErrUnknownCommand = errors.New("unknown command")

const helpText = `commands:
  select <ref>  request the book with id or number <ref>
  set <ref>     write the book directly
  clear         deselect
  show          print the current book
  list          print the catalog
  history       print every change so far
  help          print this text
`

// Session holds one selection for the lifetime of a script or terminal.
type Session struct {
	books   *catalog.Catalog
	sel     *catalog.Selection
	out     io.Writer
	opts    render.Options
	logger  *slog.Logger
	history []store.Mutation[*catalog.Book]
	failed  int
	unwatch func()
}

// New creates a session over sel. Every change to sel is echoed to out
// as "current: <title>".
func New(books *catalog.Catalog, sel *catalog.Selection, out io.Writer, opts render.Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Session{
		books:  books,
		sel:    sel,
		out:    out,
		opts:   opts,
		logger: logger,
	}
	s.unwatch = sel.OnMutation(func(m store.Mutation[*catalog.Book]) {
		s.history = append(s.history, m)
		fmt.Fprintf(s.out, "current: %s\n", catalog.TitleOf(m.Payload, "none"))
	})
	return s
}

// Close detaches the session from its selection.
func (s *Session) Close() {
	if s.unwatch != nil {
		s.unwatch()
	}
}

// Failed returns how many commands returned an error during Run.
func (s *Session) Failed() int {
	return s.failed
}

// History returns the changes observed so far, oldest first.
func (s *Session) History() []store.Mutation[*catalog.Book] {
	return append([]store.Mutation[*catalog.Book](nil), s.history...)
}

// Run executes r line by line. Blank lines and lines starting with '#'
// are skipped. A failing command is reported on out and does not stop
// the run.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.Exec(line); err != nil {
			s.failed++
			s.logger.Debug("command failed", "line", lineNo, "command", line, "error", err)
			fmt.Fprintf(s.out, "error: line %d: %v\n", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}

// Exec runs a single command.
func (s *Session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]
	s.logger.Debug("exec", "verb", verb, "args", args)

	switch verb {
	case "select", "set":
		if len(args) != 1 {
			return fmt.Errorf("%s: want exactly one book reference", verb)
		}
		book, err := s.books.Find(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", verb, err)
		}
		if verb == "select" {
			s.sel.RequestSetCurrent(book)
		} else {
			s.sel.SetCurrent(book)
		}
		return nil
	case "clear":
		s.sel.RequestSetCurrent(nil)
		return nil
	case "show":
		return render.Current(s.out, s.sel.Current(), s.opts)
	case "list":
		return render.Table(s.out, s.books.Books(), s.sel.Current())
	case "history":
		for i, m := range s.history {
			fmt.Fprintf(s.out, "%d. %s %s -> %s\n", i+1, m.Type,
				catalog.TitleOf(m.Previous, "none"), catalog.TitleOf(m.Payload, "none"))
		}
		return nil
	case "help":
		_, err := io.WriteString(s.out, helpText)
		return err
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, verb)
	}
}
