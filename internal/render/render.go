// Package render writes the current selection in the configured format.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/yuin/goldmark"

	"github.com/odvcencio/bookshelf/catalog"
	"github.com/odvcencio/bookshelf/internal/config"
)

// NoSelection is printed in text mode when nothing is selected.
const NoSelection = "No book selected."

// Options controls Current.
type Options struct {
	Format  string
	Style   string
	NoColor bool
}

// Current writes b, which may be nil, to w.
func Current(w io.Writer, b *catalog.Book, opts Options) error {
	switch opts.Format {
	case "", config.FormatText:
		return writeText(w, b)
	case config.FormatJSON:
		return writeJSON(w, b, opts)
	case config.FormatHTML:
		return writeHTML(w, b)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

func writeText(w io.Writer, b *catalog.Book) error {
	if b == nil {
		_, err := fmt.Fprintln(w, NoSelection)
		return err
	}
	rows := [][2]string{{"Title", b.Title}}
	if b.Author != "" {
		rows = append(rows, [2]string{"Author", b.Author})
	}
	if b.Year != 0 {
		rows = append(rows, [2]string{"Year", strconv.Itoa(b.Year)})
	}
	if len(b.Tags) > 0 {
		rows = append(rows, [2]string{"Tags", strings.Join(b.Tags, ", ")})
	}
	rows = append(rows, [2]string{"ID", b.ID})

	var buf bytes.Buffer
	for _, row := range rows {
		buf.WriteString(PadRight(row[0], 8))
		buf.WriteString(row[1])
		buf.WriteByte('\n')
	}
	if summary := strings.TrimSpace(b.Summary); summary != "" {
		buf.WriteByte('\n')
		buf.WriteString(summary)
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

type jsonDocument struct {
	Current *catalog.Book `json:"current"`
}

func writeJSON(w io.Writer, b *catalog.Book, opts Options) error {
	src, err := json.MarshalIndent(jsonDocument{Current: b}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	src = append(src, '\n')
	if opts.NoColor {
		_, err = w.Write(src)
		return err
	}
	style := opts.Style
	if style == "" {
		style = "monokai"
	}
	if err := quick.Highlight(w, string(src), "json", "terminal256", style); err != nil {
		return fmt.Errorf("highlight json: %w", err)
	}
	return nil
}

func writeHTML(w io.Writer, b *catalog.Book) error {
	if err := goldmark.Convert([]byte(Markdown(b)), w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// Markdown returns a short markdown card for b.
func Markdown(b *catalog.Book) string {
	if b == nil {
		return "_" + NoSelection + "_\n"
	}
	var sb strings.Builder
	sb.WriteString("## " + b.Title + "\n\n")
	var meta []string
	if b.Author != "" {
		meta = append(meta, b.Author)
	}
	if b.Year != 0 {
		meta = append(meta, strconv.Itoa(b.Year))
	}
	if len(meta) > 0 {
		sb.WriteString("*" + strings.Join(meta, ", ") + "*\n\n")
	}
	if summary := strings.TrimSpace(b.Summary); summary != "" {
		sb.WriteString(summary + "\n\n")
	}
	if len(b.Tags) > 0 {
		tags := make([]string, len(b.Tags))
		for i, tag := range b.Tags {
			tags[i] = "`" + tag + "`"
		}
		sb.WriteString("Tags: " + strings.Join(tags, " ") + "\n")
	}
	return sb.String()
}
