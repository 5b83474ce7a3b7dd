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
	"time"

	"github.com/charmbracelet/log"

	"github.com/timburks/rilo/pkg/config"
	rilo "github.com/timburks/rilo/pkg/types"
)

// The Editor manages the editing of text in a Buffer through a Window.
// There is only one editor in a rilo instance.
type Editor struct {
	buffer         *Buffer
	window         *Window
	message        string    // status message
	messageTime    time.Time // when the status message was set
	messageTimeout time.Duration
	now            func() time.Time
}

func NewEditor(options config.Options) *Editor {
	b := NewBuffer()
	return &Editor{
		buffer:         b,
		window:         NewWindow(b, options.TabWidth),
		messageTimeout: options.MessageTimeout,
		now:            time.Now,
	}
}

func (e *Editor) GetBuffer() *Buffer {
	return e.buffer
}

func (e *Editor) GetWindow() *Window {
	return e.window
}

// SetClock replaces the time source used to expire status messages.
func (e *Editor) SetClock(now func() time.Time) {
	e.now = now
}

// SetScreenSize sizes the window to the screen, leaving the last row for the status bar.
func (e *Editor) SetScreenSize(s rilo.Size) {
	e.window.SetSize(rilo.Size{Rows: s.Rows - 1, Cols: s.Cols})
}

func (e *Editor) SetMessage(format string, args ...any) {
	e.message = fmt.Sprintf(format, args...)
	e.messageTime = e.now()
}

// GetMessage returns the status message, or "" once it has expired.
func (e *Editor) GetMessage() string {
	if e.message == "" || e.now().Sub(e.messageTime) >= e.messageTimeout {
		return ""
	}
	return e.message
}

// ReadFile loads a file into the buffer. A file that does not exist yet
// becomes the save target of an empty buffer.
func (e *Editor) ReadFile(path string) error {
	err := e.buffer.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		e.buffer.SetFileName(path)
		e.SetMessage("new file: %s", path)
	default:
		e.SetMessage("can't open %s: %v", path, err)
	}
	e.window.SetPosition(rilo.Point{})
	return err
}

// Save writes the buffer and reports the result in the status message.
func (e *Editor) Save() error {
	n, err := e.buffer.WriteFile()
	if err != nil {
		e.SetMessage("can't save! %v", err)
		log.Error("save failed", "path", e.buffer.GetFileName(), "err", err)
		return err
	}
	e.SetMessage("%d bytes written to %s", n, e.buffer.GetFileName())
	return nil
}

func (e *Editor) MoveCursor(key rilo.Key) {
	e.window.MoveCursor(key)
}

// InsertChar inserts c at the cursor and moves past it.
func (e *Editor) InsertChar(c byte) {
	p := e.window.Position()
	e.buffer.InsertCharacter(p.Row, p.Col, c)
	e.window.MoveCursor(rilo.KeyRight)
}

// InsertNewline breaks the row at the cursor and moves to the start of the new row.
func (e *Editor) InsertNewline() {
	p := e.window.Position()
	e.buffer.InsertNewline(p.Row, p.Col)
	e.window.SetPosition(rilo.Point{Row: p.Row + 1, Col: 0})
}

// BackspaceChar deletes the character left of the cursor and moves onto its position.
func (e *Editor) BackspaceChar() {
	p := e.window.Position()
	if p.Col == 0 && p.Row == 0 {
		return
	}
	// the cursor lands where the deleted character was, which is
	// the end of the previous row when rows are joined
	target := rilo.Point{Row: p.Row, Col: p.Col - 1}
	if p.Col == 0 {
		target = rilo.Point{Row: p.Row - 1, Col: e.buffer.GetRowLength(p.Row - 1)}
	}
	e.buffer.DeleteCharacter(p.Row, p.Col)
	e.window.SetPosition(target)
}

// DeleteChar deletes the character under the cursor, joining the next row at end of line.
func (e *Editor) DeleteChar() {
	before := e.window.Position()
	e.window.MoveCursor(rilo.KeyRight)
	if e.window.Position() != before {
		e.BackspaceChar()
	}
}
