package picker

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/bookshelf/internal/render"
)

const helpLine = "up/down move  enter select  del clear  q quit"

var (
	headerStyle = tcell.StyleDefault.Bold(true)
	cursorStyle = tcell.StyleDefault.Reverse(true)
	dimStyle    = tcell.StyleDefault.Dim(true)
)

// Draw renders a full frame: header, list, help line.
func (p *Picker) Draw() {
	p.dirty = false
	p.screen.Clear()
	width, height := p.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	p.drawText(0, 0, width, p.header.Get(), headerStyle)

	listTop, listHeight := 1, height-2
	if listHeight > 0 {
		p.scrollTo(listHeight)
		current := p.sel.Current()
		for row := 0; row < listHeight; row++ {
			i := p.offset + row
			b := p.books.At(i)
			if b == nil {
				break
			}
			mark := "  "
			if b == current {
				mark = "* "
			}
			style := tcell.StyleDefault
			if i == p.cursor {
				style = cursorStyle
			}
			line := mark + strconv.Itoa(i+1) + ". " + b.Label()
			p.drawText(0, listTop+row, width, render.PadRight(render.Truncate(line, width), width), style)
		}
	}
	if height > 1 {
		p.drawText(0, height-1, width, helpLine, dimStyle)
	}
	p.screen.Show()
}

// scrollTo keeps the cursor inside a window of rows lines.
func (p *Picker) scrollTo(rows int) {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+rows {
		p.offset = p.cursor - rows + 1
	}
}

func (p *Picker) drawText(x, y, width int, text string, style tcell.Style) {
	limit := x + width
	for _, r := range render.Truncate(text, width) {
		w := runewidth.RuneWidth(r)
		if x+w > limit {
			return
		}
		p.screen.SetContent(x, y, r, nil, style)
		x += w
	}
}
