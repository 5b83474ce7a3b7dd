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

package screen

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/timburks/rilo/pkg/editor"
)

// VT100 control sequences
const (
	ClearLine   = "\x1b[K"
	ClearScreen = "\x1b[2J"
	CursorHome  = "\x1b[H"
	HideCursor  = "\x1b[?25l"
	ShowCursor  = "\x1b[?25h"
	Inverse     = "\x1b[7m"
	Normal      = "\x1b[m"
)

// MoveCursor returns the sequence that moves the cursor to a zero-based row and column.
func MoveCursor(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row+1, col+1)
}

// The Screen draws the state of an Editor.
type Screen struct {
	out  io.Writer
	last []byte // last frame written
}

func NewScreen(out io.Writer) *Screen {
	return &Screen{out: out}
}

// Render draws a frame with a single write. A frame identical to the
// previous one is skipped unless a full redraw is requested.
func (s *Screen) Render(e *editor.Editor, full bool) error {
	frame := Frame(e, full)
	if !full && bytes.Equal(frame, s.last) {
		return nil
	}
	s.last = frame
	_, err := s.out.Write(frame)
	return err
}

// Clear erases the screen and homes the cursor.
func (s *Screen) Clear() error {
	s.last = nil
	_, err := io.WriteString(s.out, ClearScreen+CursorHome)
	return err
}

// Frame returns the bytes that draw the editor: the visible rows,
// the status bar, and the cursor. A full frame clears the screen first.
func Frame(e *editor.Editor, full bool) []byte {
	w := e.GetWindow()
	b := e.GetBuffer()
	size := w.GetSize()
	offset := w.GetOffset()

	var f bytes.Buffer
	f.WriteString(HideCursor)
	if full {
		f.WriteString(ClearScreen)
	}
	f.WriteString(CursorHome)
	for i := 0; i < size.Rows; i++ {
		f.WriteString(ClearLine)
		if row := b.GetRow(i + offset.Rows); row != nil {
			line := row.DisplayText(offset.Cols, w.GetTabWidth())
			// truncate line to fit screen
			if len(line) > size.Cols {
				line = line[0:size.Cols]
			}
			f.Write(line)
		} else {
			f.WriteString("~")
		}
		f.WriteString("\r\n")
	}
	f.WriteString(ClearLine)
	f.WriteString(Inverse)
	f.WriteString(StatusBarText(e, size.Cols))
	f.WriteString(Normal)
	cursor := w.GetCursor()
	f.WriteString(MoveCursor(cursor.Row, w.RenderColumn()))
	f.WriteString(ShowCursor)
	return f.Bytes()
}

// StatusBarText computes the status bar, exactly width columns wide.
func StatusBarText(e *editor.Editor, width int) string {
	b := e.GetBuffer()
	name := b.GetFileName()
	if name == "" {
		name = "[No Name]"
	}
	// widths are counted in bytes throughout
	name = name[:min(len(name), 20)]
	text := fmt.Sprintf(" %s - %d lines", name, b.GetRowCount())
	if b.IsDirty() {
		text += " (modified)"
	}
	if message := e.GetMessage(); message != "" {
		text += " | " + message
	}

	total := b.GetRowCount()
	line := min(e.GetWindow().Position().Row+1, total)
	percent := 0
	if total > 0 {
		percent = line * 100 / total
	}
	finalText := fmt.Sprintf(" %d/%d %d%% ", line, total, percent)

	if len(finalText) >= width {
		return fit(finalText, width)
	}
	return fit(text, width-len(finalText)) + finalText
}

// fit pads or truncates text to exactly width bytes.
func fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(text) > width {
		return text[0:width]
	}
	return text + strings.Repeat(" ", width-len(text))
}
