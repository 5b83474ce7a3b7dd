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
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

var (
	ErrNotFound   = errors.New("file not found")
	ErrIO         = errors.New("i/o error")
	ErrNoFileName = errors.New("no file name")
)

// A Buffer represents a file being edited.
// An empty document has no rows; row index RowCount() is the
// position just past the last row, where new text is appended.
type Buffer struct {
	rows     []*Row
	fileName string
	dirty    bool
}

func NewBuffer() *Buffer {
	return &Buffer{rows: make([]*Row, 0)}
}

func (b *Buffer) GetFileName() string {
	return b.fileName
}

func (b *Buffer) SetFileName(name string) {
	b.fileName = name
}

func (b *Buffer) IsDirty() bool {
	return b.dirty
}

// LoadBytes replaces the contents of the buffer with lines split at newlines.
// A trailing newline ends the last row rather than starting an empty one.
func (b *Buffer) LoadBytes(data []byte) {
	b.rows = make([]*Row, 0)
	if len(data) > 0 {
		data = bytes.TrimSuffix(data, []byte("\n"))
		for _, line := range bytes.Split(data, []byte("\n")) {
			b.rows = append(b.rows, &Row{Text: append([]byte(nil), line...)})
		}
	}
	b.dirty = false
}

// Bytes returns the file representation: every row followed by a newline.
func (b *Buffer) Bytes() []byte {
	var out bytes.Buffer
	for _, row := range b.rows {
		out.Write(row.Text)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

func (b *Buffer) ReadFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	} else if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrIO, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	b.LoadBytes(data)
	b.fileName = path
	log.Debug("read file", "path", path, "rows", len(b.rows))
	return nil
}

// WriteFile saves the buffer to its file and returns the number of bytes written.
// The file is truncated to the new length before writing so that a failed
// write leaves at most the old contents cut short; the dirty flag is only
// cleared when everything was written.
func (b *Buffer) WriteFile() (int, error) {
	if b.fileName == "" {
		return 0, ErrNoFileName
	}
	data := b.Bytes()
	f, err := os.OpenFile(b.fileName, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	if err := f.Truncate(int64(len(data))); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	n, err := f.WriteAt(data, 0)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return n, fmt.Errorf("%w: %w", ErrIO, err)
	}
	b.dirty = false
	log.Debug("wrote file", "path", b.fileName, "bytes", n)
	return n, nil
}

func (b *Buffer) GetRowCount() int {
	return len(b.rows)
}

func (b *Buffer) GetRowLength(i int) int {
	if i >= 0 && i < len(b.rows) {
		return b.rows[i].Length()
	}
	return 0
}

// GetRow returns the row at index i, or nil past the end of the buffer.
func (b *Buffer) GetRow(i int) *Row {
	if i >= 0 && i < len(b.rows) {
		return b.rows[i]
	}
	return nil
}

// Lines returns a copy of the buffer contents, one string per row.
func (b *Buffer) Lines() []string {
	lines := make([]string, len(b.rows))
	for i, row := range b.rows {
		lines[i] = string(row.Text)
	}
	return lines
}

func (b *Buffer) InsertCharacter(row, col int, c byte) {
	if row < 0 || row > len(b.rows) {
		return
	}
	if row == len(b.rows) {
		b.rows = append(b.rows, NewRow(""))
	}
	b.rows[row].InsertChar(col, c)
	b.dirty = true
}

// InsertNewline splits a row at col. At the end of the buffer it appends an empty row.
func (b *Buffer) InsertNewline(row, col int) {
	if row < 0 || row > len(b.rows) {
		return
	}
	if row == len(b.rows) {
		b.rows = append(b.rows, NewRow(""))
	} else {
		newRow := b.rows[row].Split(col)
		b.rows = append(b.rows, nil)
		copy(b.rows[row+2:], b.rows[row+1:])
		b.rows[row+1] = newRow
	}
	b.dirty = true
}

// DeleteCharacter removes the character to the left of col, joining the row
// with the previous one when col is zero. It reports whether the buffer changed.
func (b *Buffer) DeleteCharacter(row, col int) bool {
	if row < 0 || row >= len(b.rows) {
		return false
	}
	if col > 0 {
		if col > b.rows[row].Length() {
			return false
		}
		b.rows[row].DeleteChar(col - 1)
	} else if row > 0 {
		b.rows[row-1].Join(b.rows[row])
		b.rows = append(b.rows[0:row], b.rows[row+1:]...)
	} else {
		return false
	}
	b.dirty = true
	return true
}
