// Package catalog defines the books a selection can point at and loads
// them from YAML.
package catalog

import (
	"log/slog"
	"strconv"
	"strings"
)

// Book is one catalog entry. A nil *Book means nothing is selected.
type Book struct {
	ID      string   `yaml:"id" json:"id"`
	Title   string   `yaml:"title" json:"title"`
	Author  string   `yaml:"author,omitempty" json:"author,omitempty"`
	Year    int      `yaml:"year,omitempty" json:"year,omitempty"`
	Tags    []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Summary string   `yaml:"summary,omitempty" json:"summary,omitempty"`
}

// Label returns "Title (Author, Year)" with empty parts left out.
func (b *Book) Label() string {
	if b == nil {
		return ""
	}
	var meta []string
	if b.Author != "" {
		meta = append(meta, b.Author)
	}
	if b.Year != 0 {
		meta = append(meta, strconv.Itoa(b.Year))
	}
	if len(meta) == 0 {
		return b.Title
	}
	return b.Title + " (" + strings.Join(meta, ", ") + ")"
}

// LogValue keeps log lines short: id and title only.
func (b *Book) LogValue() slog.Value {
	if b == nil {
		return slog.StringValue("none")
	}
	return slog.GroupValue(
		slog.String("id", b.ID),
		slog.String("title", b.Title),
	)
}
