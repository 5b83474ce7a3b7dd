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

// A row of text in the editor.
// Text is kept as raw bytes so that files round-trip exactly.
type Row struct {
	Text []byte
}

func NewRow(text string) *Row {
	return &Row{Text: []byte(text)}
}

func (r *Row) Length() int {
	return len(r.Text)
}

func (r *Row) InsertChar(col int, c byte) {
	if col > len(r.Text) {
		col = len(r.Text)
	}
	if col < 0 {
		col = 0
	}
	line := make([]byte, 0, len(r.Text)+1)
	line = append(line, r.Text[0:col]...)
	line = append(line, c)
	line = append(line, r.Text[col:]...)
	r.Text = line
}

// delete character at col and return the deleted character
func (r *Row) DeleteChar(col int) byte {
	if col < 0 || col >= len(r.Text) {
		return 0
	}
	c := r.Text[col]
	r.Text = append(r.Text[0:col], r.Text[col+1:]...)
	return c
}

// splits row at col, return a new row containing the remaining text.
func (r *Row) Split(col int) *Row {
	if col >= len(r.Text) {
		return NewRow("")
	}
	after := string(r.Text[col:])
	r.Text = r.Text[0:col:col]
	return NewRow(after)
}

// joins rows by appending the passed-in row to the current row
func (r *Row) Join(other *Row) {
	r.Text = append(r.Text, other.Text...)
}

// DisplayText returns the row starting at col with tabs expanded to
// tabWidth spaces and other control bytes shown as '?'.
func (r *Row) DisplayText(col int, tabWidth int) []byte {
	if col >= len(r.Text) {
		return nil
	}
	out := make([]byte, 0, len(r.Text)-col)
	for _, c := range r.Text[col:] {
		switch {
		case c == '\t':
			for i := 0; i < tabWidth; i++ {
				out = append(out, ' ')
			}
		case c < 0x20 || c == 0x7f:
			out = append(out, '?')
		default:
			out = append(out, c)
		}
	}
	return out
}

// DisplayWidth returns the number of screen columns used by the bytes in [from, to).
func (r *Row) DisplayWidth(from, to int, tabWidth int) int {
	if to > len(r.Text) {
		to = len(r.Text)
	}
	width := 0
	for i := from; i < to; i++ {
		if r.Text[i] == '\t' {
			width += tabWidth
		} else {
			width++
		}
	}
	return width
}
