package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned when a reference matches no book.
	ErrNotFound = errors.New("book not found")
	// ErrDuplicateID is returned when two books share an ID.
	ErrDuplicateID = errors.New("duplicate book id")
	// ErrMissingTitle is returned for a book without a title.
	ErrMissingTitle = errors.New("book has no title")
)

//go:embed books.yaml
var defaultBooks []byte

// Catalog is an ordered, read-only list of books indexed by ID.
type Catalog struct {
	books []*Book
	byID  map[string]*Book
}

type document struct {
	Books []*Book `yaml:"books"`
}

// New builds a catalog from copies of books; the caller's values are left
// untouched. Titles and IDs are trimmed, IDs that parse as a ULID are stored
// in canonical upper case, and books without an ID are assigned a ULID.
func New(books ...*Book) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Book, len(books))}
	for i, src := range books {
		if src == nil {
			continue
		}
		b := *src
		b.Tags = slices.Clone(src.Tags)
		b.Title = strings.TrimSpace(b.Title)
		if b.Title == "" {
			return nil, fmt.Errorf("book %d: %w", i+1, ErrMissingTitle)
		}
		b.ID = canonicalID(b.ID)
		if _, ok := c.byID[b.ID]; ok {
			return nil, fmt.Errorf("book %d %q: %w", i+1, b.ID, ErrDuplicateID)
		}
		c.byID[b.ID] = &b
		c.books = append(c.books, &b)
	}
	return c, nil
}

func canonicalID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ulid.Make().String()
	}
	if parsed, err := ulid.ParseStrict(strings.ToUpper(id)); err == nil {
		return parsed.String()
	}
	return id
}

// Parse reads a YAML document of the form {books: [...]}.
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Books...)
}

// Load reads a catalog file from path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the built-in sample catalog.
func Default() *Catalog {
	c, err := Parse(bytes.NewReader(defaultBooks))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded books.yaml: %v", err))
	}
	return c
}

// Books returns the books in catalog order.
func (c *Catalog) Books() []*Book {
	if c == nil {
		return nil
	}
	return append([]*Book(nil), c.books...)
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.books)
}

// At returns the book at a 0-based position, or nil when out of range.
func (c *Catalog) At(i int) *Book {
	if c == nil || i < 0 || i >= len(c.books) {
		return nil
	}
	return c.books[i]
}

// IndexOf returns the 0-based position of b, or -1.
func (c *Catalog) IndexOf(b *Book) int {
	if c == nil || b == nil {
		return -1
	}
	for i, candidate := range c.books {
		if candidate == b {
			return i
		}
	}
	return -1
}

// Find resolves ref as a book ID first and then as a 1-based position.
// ULIDs match case-insensitively.
func (c *Catalog) Find(ref string) (*Book, error) {
	ref = strings.TrimSpace(ref)
	if c != nil && ref != "" {
		if b, ok := c.byID[ref]; ok {
			return b, nil
		}
		if id := canonicalID(ref); id != ref {
			if b, ok := c.byID[id]; ok {
				return b, nil
			}
		}
		if n, err := strconv.Atoi(ref); err == nil {
			if b := c.At(n - 1); b != nil {
				return b, nil
			}
		}
	}
	return nil, fmt.Errorf("%q: %w", ref, ErrNotFound)
}
