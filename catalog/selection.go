package catalog

import (
	"log/slog"

	"github.com/odvcencio/bookshelf/store"
)

// Selection tracks the currently selected book. Its zero state is nil.
type Selection = store.Store[*Book]

// NewSelection creates an empty selection. A non-nil logger receives a
// debug line for every action and mutation.
func NewSelection(logger *slog.Logger) *Selection {
	return store.New(store.WithLogger[*Book](logger))
}

// TitleOf returns b's title or placeholder when b is nil.
func TitleOf(b *Book, placeholder string) string {
	if b == nil {
		return placeholder
	}
	return b.Title
}
