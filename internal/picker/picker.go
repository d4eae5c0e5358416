// Package picker is a full-screen terminal list for choosing the current
// book. It only reads the selection reactively and writes it through the
// selection's action entry point.
package picker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/bookshelf/catalog"
	"github.com/odvcencio/bookshelf/internal/logging"
	"github.com/odvcencio/bookshelf/state"
	"github.com/odvcencio/bookshelf/store"
)

// Intent is what a key press asks the picker to do.
type Intent int

const (
	IntentNone Intent = iota
	IntentUp
	IntentDown
	IntentSelect
	IntentClear
	IntentQuit
)

// IntentFor maps a key event to an Intent.
func IntentFor(ev *tcell.EventKey) Intent {
	if ev == nil {
		return IntentNone
	}
	return intentForKey(ev.Key(), ev.Rune())
}

func intentForKey(key tcell.Key, r rune) Intent {
	switch key {
	case tcell.KeyUp:
		return IntentUp
	case tcell.KeyDown:
		return IntentDown
	case tcell.KeyEnter:
		return IntentSelect
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return IntentClear
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return IntentQuit
	case tcell.KeyRune:
		switch r {
		case 'k':
			return IntentUp
		case 'j':
			return IntentDown
		case ' ':
			return IntentSelect
		case 'x':
			return IntentClear
		case 'q':
			return IntentQuit
		}
	}
	return IntentNone
}

type message any

type keyMsg struct{ intent Intent }

type resizeMsg struct{}

// Picker draws the catalog and moves a cursor over it.
type Picker struct {
	screen tcell.Screen
	books  *catalog.Catalog
	sel    *catalog.Selection
	logger *slog.Logger

	header *state.Derived[string]
	queue  *state.Queue
	subs   *state.Subscriptions

	cursor int
	offset int
	dirty  bool
}

// New creates a picker over sel. Selection changes are queued and drawn at
// the end of the event that caused them.
func New(screen tcell.Screen, books *catalog.Catalog, sel *catalog.Selection, logger *slog.Logger) *Picker {
	if logger == nil {
		logger = logging.Discard()
	}
	queue := state.NewQueue()
	p := &Picker{
		screen: screen,
		books:  books,
		sel:    sel,
		logger: logger,
		queue:  queue,
		subs:   state.NewSubscriptions(queue),
		dirty:  true,
	}
	p.header = store.Getter(sel, queue, func(b *catalog.Book) string {
		return "Current: " + catalog.TitleOf(b, "none")
	})
	p.subs.Add(p.header.Stop)
	p.subs.Observe(p.header, p.invalidate)
	if i := books.IndexOf(sel.Current()); i >= 0 {
		p.cursor = i
	}
	return p
}

// Cursor returns the 0-based highlighted row.
func (p *Picker) Cursor() int {
	return p.cursor
}

// Header returns the header text as of the last Flush.
func (p *Picker) Header() string {
	return p.header.Get()
}

// Close releases the picker's subscriptions.
func (p *Picker) Close() {
	p.subs.Clear()
}

// Apply performs intent and reports whether the picker should exit.
func (p *Picker) Apply(intent Intent) bool {
	n := p.books.Len()
	switch intent {
	case IntentUp:
		if p.cursor > 0 {
			p.cursor--
			p.dirty = true
		}
	case IntentDown:
		if p.cursor < n-1 {
			p.cursor++
			p.dirty = true
		}
	case IntentSelect:
		if b := p.books.At(p.cursor); b != nil {
			p.logger.Debug("picker select", "book", b)
			p.sel.RequestSetCurrent(b)
		}
	case IntentClear:
		p.sel.RequestSetCurrent(nil)
	case IntentQuit:
		return true
	}
	return false
}

// Flush applies queued selection notifications and redraws when needed.
// It returns true if a frame was drawn.
func (p *Picker) Flush() bool {
	p.queue.Flush()
	if !p.dirty {
		return false
	}
	p.Draw()
	return true
}

// Run takes over the screen until the user quits or ctx ends.
func (p *Picker) Run(ctx context.Context) error {
	if p.screen == nil {
		return errors.New("picker: screen is required")
	}
	if err := p.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer p.screen.Fini()
	p.screen.HideCursor()

	messages := make(chan message, 16)
	done := make(chan struct{})
	defer close(done)
	go p.pollEvents(messages, done)

	p.Flush()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-messages:
			switch m := msg.(type) {
			case keyMsg:
				if p.Apply(m.intent) {
					return nil
				}
			case resizeMsg:
				w, h := p.screen.Size()
				p.logger.Debug("picker resized", "width", w, "height", h)
				p.screen.Sync()
				p.dirty = true
			}
		}
		p.Flush()
	}
}

func (p *Picker) pollEvents(messages chan<- message, done <-chan struct{}) {
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		var msg message
		switch e := ev.(type) {
		case *tcell.EventKey:
			intent := IntentFor(e)
			if intent == IntentNone {
				continue
			}
			msg = keyMsg{intent: intent}
		case *tcell.EventResize:
			msg = resizeMsg{}
		default:
			continue
		}
		select {
		case messages <- msg:
		case <-done:
			return
		}
	}
}

func (p *Picker) invalidate() {
	p.dirty = true
}
