//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package editor

import (
	"errors"
	"fmt"

	rilo "github.com/timburks/rilo/pkg/types"
)

// ErrBounds reports a cursor or offset outside the buffer.
// It indicates a bug and is only returned by CheckInvariants.
var ErrBounds = errors.New("cursor out of bounds")

// A Window is a view of a buffer.
// The cursor is kept relative to the display offset, so the buffer
// position under the cursor is cursor + offset.
type Window struct {
	buffer   *Buffer
	size     rilo.Size  // size of the text area
	cursor   rilo.Point // cursor position on screen
	offset   rilo.Size  // display offset
	tabWidth int
}

func NewWindow(b *Buffer, tabWidth int) *Window {
	if tabWidth < 1 {
		tabWidth = 1
	}
	return &Window{
		buffer:   b,
		size:     rilo.Size{Rows: 1, Cols: 1},
		tabWidth: tabWidth,
	}
}

func (w *Window) GetBuffer() *Buffer {
	return w.buffer
}

func (w *Window) GetCursor() rilo.Point {
	return w.cursor
}

func (w *Window) GetOffset() rilo.Size {
	return w.offset
}

func (w *Window) GetSize() rilo.Size {
	return w.size
}

func (w *Window) GetTabWidth() int {
	return w.tabWidth
}

// Position returns the buffer position under the cursor.
func (w *Window) Position() rilo.Point {
	return rilo.Point{
		Row: w.cursor.Row + w.offset.Rows,
		Col: w.cursor.Col + w.offset.Cols,
	}
}

// SetSize changes the size of the text area and keeps the cursor onscreen.
func (w *Window) SetSize(s rilo.Size) {
	if s.Rows < 1 {
		s.Rows = 1
	}
	if s.Cols < 1 {
		s.Cols = 1
	}
	w.size = s
	w.SetPosition(w.Position())
}

// SetPosition moves the cursor to a buffer position, clamping it to the
// buffer and scrolling as needed to keep it onscreen.
func (w *Window) SetPosition(p rilo.Point) {
	p.Row = clipToRange(p.Row, 0, w.buffer.GetRowCount())
	p.Col = clipToRange(p.Col, 0, w.buffer.GetRowLength(p.Row))
	w.adjustDisplayOffsetForScrolling(p)
	w.cursor = rilo.Point{
		Row: p.Row - w.offset.Rows,
		Col: p.Col - w.offset.Cols,
	}
}

// Recompute the display offset to keep a buffer position onscreen.
func (w *Window) adjustDisplayOffsetForScrolling(p rilo.Point) {
	if p.Row < w.offset.Rows {
		// scroll up
		w.offset.Rows = p.Row
	}
	if p.Row-w.offset.Rows >= w.size.Rows {
		// scroll down
		w.offset.Rows = p.Row - w.size.Rows + 1
	}
	if p.Col < w.offset.Cols {
		// scroll left
		w.offset.Cols = p.Col
	}
	row := w.buffer.GetRow(p.Row)
	if row == nil {
		return
	}
	// scroll right, measuring in screen columns so tabs stay visible
	for w.offset.Cols < p.Col && row.DisplayWidth(w.offset.Cols, p.Col, w.tabWidth) >= w.size.Cols {
		w.offset.Cols++
	}
}

// RenderColumn returns the screen column of the cursor after tab expansion.
func (w *Window) RenderColumn() int {
	p := w.Position()
	row := w.buffer.GetRow(p.Row)
	if row == nil {
		return 0
	}
	return row.DisplayWidth(w.offset.Cols, p.Col, w.tabWidth)
}

func (w *Window) MoveCursor(key rilo.Key) {
	b := w.buffer
	p := w.Position()
	switch key {
	case rilo.KeyLeft:
		if p.Col > 0 {
			p.Col--
		} else if p.Row > 0 {
			p.Row--
			p.Col = b.GetRowLength(p.Row)
		}
	case rilo.KeyRight:
		if p.Col < b.GetRowLength(p.Row) {
			p.Col++
		} else if p.Row+1 < b.GetRowCount() {
			p.Row++
			p.Col = 0
		}
	case rilo.KeyUp:
		if p.Row > 0 {
			p.Row--
		}
	case rilo.KeyDown:
		if p.Row < b.GetRowCount() {
			p.Row++
		}
	case rilo.KeyHome:
		p.Col = 0
	case rilo.KeyEnd:
		p.Col = b.GetRowLength(p.Row)
	case rilo.KeyPageUp:
		w.PageUp()
		return
	case rilo.KeyPageDown:
		w.PageDown()
		return
	}
	// SetPosition keeps the column within the new row
	w.SetPosition(p)
}

// PageUp moves to the top visible row, or scrolls up a page when already there.
func (w *Window) PageUp() {
	p := w.Position()
	if w.cursor.Row == 0 {
		w.offset.Rows -= w.size.Rows
		if w.offset.Rows < 0 {
			w.offset.Rows = 0
		}
	}
	p.Row = w.offset.Rows
	w.SetPosition(p)
}

// PageDown moves to the bottom visible row, or scrolls down a page when already there.
// Scrolling stops once the offset reaches rowCount-rows-1.
func (w *Window) PageDown() {
	b := w.buffer
	p := w.Position()
	bottom := w.size.Rows - 1
	target := min(w.offset.Rows+bottom, b.GetRowCount())
	if p.Row < target {
		p.Row = target
	} else {
		limit := max(0, b.GetRowCount()-w.size.Rows-1)
		if next := min(w.offset.Rows+w.size.Rows, limit); next > w.offset.Rows {
			w.offset.Rows = next
		}
		p.Row = min(w.offset.Rows+bottom, b.GetRowCount())
	}
	w.SetPosition(p)
}

// CheckInvariants verifies that the cursor and offsets address a valid
// buffer position that is visible in the window.
func (w *Window) CheckInvariants() error {
	b := w.buffer
	p := w.Position()
	switch {
	case w.offset.Rows < 0 || w.offset.Cols < 0:
		return fmt.Errorf("%w: negative offset %+v", ErrBounds, w.offset)
	case w.cursor.Row < 0 || w.cursor.Row >= w.size.Rows || w.cursor.Col < 0:
		return fmt.Errorf("%w: cursor %+v outside window %+v", ErrBounds, w.cursor, w.size)
	case p.Row > b.GetRowCount():
		return fmt.Errorf("%w: row %d past end of %d rows", ErrBounds, p.Row, b.GetRowCount())
	case p.Col > b.GetRowLength(p.Row):
		return fmt.Errorf("%w: column %d past end of row %d (length %d)", ErrBounds, p.Col, p.Row, b.GetRowLength(p.Row))
	case w.offset.Cols > b.GetRowLength(p.Row):
		return fmt.Errorf("%w: column offset %d past end of row %d", ErrBounds, w.offset.Cols, p.Row)
	case w.RenderColumn() >= w.size.Cols:
		return fmt.Errorf("%w: render column %d outside window %+v", ErrBounds, w.RenderColumn(), w.size)
	}
	return nil
}

func clipToRange(v, low, high int) int {
	if v > high {
		v = high
	}
	if v < low {
		v = low
	}
	return v
}
