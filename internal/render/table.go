package render

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/bookshelf/catalog"
)

// MaxTitleWidth caps the title column in Table.
const MaxTitleWidth = 40

// Truncate shortens s to at most width terminal cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads s with spaces to width terminal cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Table writes one row per book. The row of current is marked with '*'.
func Table(w io.Writer, books []*catalog.Book, current *catalog.Book) error {
	idWidth, titleWidth, authorWidth := len("ID"), len("TITLE"), len("AUTHOR")
	for _, b := range books {
		idWidth = max(idWidth, runewidth.StringWidth(b.ID))
		titleWidth = max(titleWidth, min(MaxTitleWidth, runewidth.StringWidth(b.Title)))
		authorWidth = max(authorWidth, runewidth.StringWidth(b.Author))
	}
	numWidth := max(1, len(strconv.Itoa(len(books))))

	var buf bytes.Buffer
	writeRow := func(mark, num, id, title, author, year string) {
		line := mark + " " +
			PadRight(num, numWidth) + "  " +
			PadRight(id, idWidth) + "  " +
			PadRight(Truncate(title, titleWidth), titleWidth) + "  " +
			PadRight(author, authorWidth) + "  " +
			year
		buf.WriteString(strings.TrimRight(line, " "))
		buf.WriteByte('\n')
	}
	writeRow(" ", "#", "ID", "TITLE", "AUTHOR", "YEAR")
	for i, b := range books {
		mark := " "
		if b == current {
			mark = "*"
		}
		year := ""
		if b.Year != 0 {
			year = strconv.Itoa(b.Year)
		}
		writeRow(mark, strconv.Itoa(i+1), b.ID, b.Title, b.Author, year)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
