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

// Package terminal puts the controlling terminal into raw mode and
// moves bytes to and from it.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	rilo "github.com/timburks/rilo/pkg/types"
)

// ErrStartup is returned when the terminal cannot be used for editing.
var ErrStartup = errors.New("terminal unavailable")

type Terminal struct {
	in      *os.File
	out     *os.File
	state   *term.State // saved configuration, restored on exit
	restore sync.Once
}

// Open puts in into raw mode with a short read timeout.
// Restore must be called on every path out of the program.
func Open(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%w: input is not a terminal", ErrStartup)
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStartup, err)
	}
	t := &Terminal{in: in, out: out, state: state}
	if err := setReadTimeout(fd); err != nil {
		t.Restore()
		return nil, fmt.Errorf("%w: %w", ErrStartup, err)
	}
	return t, nil
}

// Restore puts the terminal back into the state it had before Open.
// Only the first call has any effect.
func (t *Terminal) Restore() error {
	var err error
	t.restore.Do(func() {
		err = term.Restore(int(t.in.Fd()), t.state)
		if err != nil {
			log.Error("restoring terminal", "err", err)
		}
	})
	return err
}

// Size returns the number of rows and columns of the terminal.
func (t *Terminal) Size() (rilo.Size, error) {
	cols, rows, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return rilo.Size{}, fmt.Errorf("%w: %w", ErrStartup, err)
	}
	if cols == 0 {
		return rilo.Size{}, fmt.Errorf("%w: terminal has zero width", ErrStartup)
	}
	return rilo.Size{Rows: rows, Cols: cols}, nil
}

// ReadByte returns the next input byte, or rilo.ErrNoInput when none
// arrived before the read timeout.
func (t *Terminal) ReadByte() (byte, error) {
	var buf [1]byte
	n, err := t.in.Read(buf[:])
	if n == 1 {
		return buf[0], nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0, rilo.ErrNoInput
	}
	return 0, err
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}
