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
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/timburks/rilo/pkg/config"
	rilo "github.com/timburks/rilo/pkg/types"
)

func newEditor(text string) *Editor {
	e := NewEditor(config.Default())
	e.GetBuffer().LoadBytes([]byte(text))
	e.SetScreenSize(rilo.Size{Rows: 24, Cols: 80})
	return e
}

func expectLines(t *testing.T, e *Editor, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if got := e.GetBuffer().Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Unexpected lines %q, expected %q", got, want)
	}
}

func TestInsertIntoEmptyBuffer(t *testing.T) {
	e := newEditor("")
	e.InsertChar('x')
	expectLines(t, e, "x")
	if c := e.GetWindow().GetCursor(); c.Row != 0 || c.Col != 1 {
		t.Errorf("Unexpected cursor %+v", c)
	}
	if !e.GetBuffer().IsDirty() {
		t.Errorf("Buffer is not dirty after editing")
	}
}

func TestEnterSplitsRow(t *testing.T) {
	e := newEditor("abc\nde\n")
	e.GetWindow().SetPosition(rilo.Point{Row: 1, Col: 1})
	e.InsertNewline()
	expectLines(t, e, "abc", "d", "e")
	if p := e.GetWindow().Position(); p.Row != 2 || p.Col != 0 {
		t.Errorf("Unexpected position %+v", p)
	}
}

func TestEnterAtEndOfBuffer(t *testing.T) {
	e := newEditor("abc\n")
	e.MoveCursor(rilo.KeyDown)
	e.InsertNewline()
	expectLines(t, e, "abc", "")
	if p := e.GetWindow().Position(); p.Row != 2 || p.Col != 0 {
		t.Errorf("Unexpected position %+v", p)
	}
	e.InsertChar('z')
	expectLines(t, e, "abc", "", "z")
}

func TestInsertThenBackspace(t *testing.T) {
	text := "Four score\n\tand seven\n\nyears ago\n"
	e := newEditor(text)
	w := e.GetWindow()
	b := e.GetBuffer()
	for row := 0; row < b.GetRowCount(); row++ {
		for col := 0; col <= b.GetRowLength(row); col++ {
			w.SetPosition(rilo.Point{Row: row, Col: col})
			e.InsertChar('#')
			e.BackspaceChar()
			if p := w.Position(); p.Row != row || p.Col != col {
				t.Fatalf("Cursor moved from %d,%d to %+v", row, col, p)
			}
			if got := string(b.Bytes()); got != text {
				t.Fatalf("Insert then backspace at %d,%d changed the text to %q", row, col, got)
			}
		}
	}
	// after the last row the inserted character starts a new row,
	// which stays behind empty
	w.SetPosition(rilo.Point{Row: 4})
	e.InsertChar('#')
	e.BackspaceChar()
	expectLines(t, e, "Four score", "\tand seven", "", "years ago", "")
	if p := w.Position(); p.Row != 4 || p.Col != 0 {
		t.Errorf("Unexpected position %+v", p)
	}
}

func TestBackspaceJoinsRows(t *testing.T) {
	e := newEditor("abc\nde\n")
	e.GetWindow().SetPosition(rilo.Point{Row: 1, Col: 0})
	e.BackspaceChar()
	expectLines(t, e, "abcde")
	if p := e.GetWindow().Position(); p.Row != 0 || p.Col != 3 {
		t.Errorf("Unexpected position %+v", p)
	}
	e.GetWindow().SetPosition(rilo.Point{})
	e.BackspaceChar()
	expectLines(t, e, "abcde")
}

func TestBackspaceAfterLastRow(t *testing.T) {
	e := newEditor("abc\n")
	e.MoveCursor(rilo.KeyDown)
	e.BackspaceChar()
	expectLines(t, e, "abc")
	if p := e.GetWindow().Position(); p.Row != 0 || p.Col != 3 {
		t.Errorf("Unexpected position %+v", p)
	}
	if e.GetBuffer().IsDirty() {
		t.Errorf("Buffer is dirty after moving the cursor")
	}
}

func TestDeleteUnderCursor(t *testing.T) {
	e := newEditor("abc\nde\n")
	e.GetWindow().SetPosition(rilo.Point{Row: 0, Col: 1})
	e.DeleteChar()
	expectLines(t, e, "ac", "de")
	if p := e.GetWindow().Position(); p.Row != 0 || p.Col != 1 {
		t.Errorf("Unexpected position %+v", p)
	}
	e.MoveCursor(rilo.KeyEnd)
	e.DeleteChar()
	expectLines(t, e, "acde")
	if p := e.GetWindow().Position(); p.Row != 0 || p.Col != 2 {
		t.Errorf("Unexpected position %+v", p)
	}
	e.MoveCursor(rilo.KeyEnd)
	e.DeleteChar()
	expectLines(t, e, "acde")
}

func TestMessageExpires(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	e := newEditor("")
	e.SetClock(func() time.Time { return now })
	e.SetMessage("hello %s", "world")
	if m := e.GetMessage(); m != "hello world" {
		t.Errorf("Unexpected message %q", m)
	}
	now = now.Add(config.DefaultMessageTimeout - time.Millisecond)
	if m := e.GetMessage(); m != "hello world" {
		t.Errorf("Message expired early: %q", m)
	}
	now = now.Add(time.Millisecond)
	if m := e.GetMessage(); m != "" {
		t.Errorf("Message did not expire: %q", m)
	}
}

func TestReadNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	e := NewEditor(config.Default())
	if err := e.ReadFile(path); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if name := e.GetBuffer().GetFileName(); name != path {
		t.Errorf("Unexpected file name %q", name)
	}
	if m := e.GetMessage(); !strings.HasPrefix(m, "new file") {
		t.Errorf("Unexpected message %q", m)
	}
	e.InsertChar('x')
	if err := e.Save(); err != nil {
		t.Fatalf("Save failed: %+v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "x\n" {
		t.Errorf("Unexpected file contents %q (%v)", got, err)
	}
	if m := e.GetMessage(); m != "2 bytes written to "+path {
		t.Errorf("Unexpected message %q", m)
	}
}

func TestReadDirectoryReportsError(t *testing.T) {
	e := NewEditor(config.Default())
	if err := e.ReadFile(t.TempDir()); !errors.Is(err, ErrIO) {
		t.Errorf("Expected ErrIO, got %v", err)
	}
	if name := e.GetBuffer().GetFileName(); name != "" {
		t.Errorf("Unexpected file name %q", name)
	}
	if m := e.GetMessage(); !strings.HasPrefix(m, "can't open") {
		t.Errorf("Unexpected message %q", m)
	}
}

func TestSaveWithoutFileName(t *testing.T) {
	e := newEditor("")
	e.InsertChar('x')
	if err := e.Save(); !errors.Is(err, ErrNoFileName) {
		t.Errorf("Expected ErrNoFileName, got %v", err)
	}
	if m := e.GetMessage(); !strings.HasPrefix(m, "can't save!") {
		t.Errorf("Unexpected message %q", m)
	}
	if !e.GetBuffer().IsDirty() {
		t.Errorf("Dirty flag cleared by a failed save")
	}
	expectLines(t, e, "x")
}

func TestScreenSizeReservesStatusBar(t *testing.T) {
	e := newEditor("")
	if s := e.GetWindow().GetSize(); s.Rows != 23 || s.Cols != 80 {
		t.Errorf("Unexpected window size %+v", s)
	}
}

// Random edits and resizes keep the cursor inside the buffer and the window.
func TestEditingStaysInBounds(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	chars := []byte{'a', 'b', ' ', '\t', 0x01}
	for run := 0; run < 200; run++ {
		e := newEditor("")
		if run%2 == 1 {
			e = newEditor("Four score\n\tand seven\n\nyears ago\n")
		}
		for step := 0; step < 400; step++ {
			var op string
			switch n := r.Intn(10); {
			case n < 3:
				c := chars[r.Intn(len(chars))]
				op = fmt.Sprintf("insert %q", c)
				e.InsertChar(c)
			case n == 3:
				op = "newline"
				e.InsertNewline()
			case n == 4:
				op = "backspace"
				e.BackspaceChar()
			case n == 5:
				op = "delete"
				e.DeleteChar()
			case n == 6:
				size := rilo.Size{Rows: 1 + r.Intn(12), Cols: 1 + r.Intn(20)}
				op = fmt.Sprintf("resize %+v", size)
				e.SetScreenSize(size)
			default:
				key := rilo.Key(r.Intn(int(rilo.KeyPageDown) + 1))
				op = key.String()
				e.MoveCursor(key)
			}
			if err := e.GetWindow().CheckInvariants(); err != nil {
				t.Fatalf("Run %d step %d after %s: %v", run, step, op, err)
			}
		}
	}
}
