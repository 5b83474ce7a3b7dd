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

package commander

import (
	"errors"
	"fmt"
	"io"

	rilo "github.com/timburks/rilo/pkg/types"
)

// ErrInvalidEscapeSequence is returned for escape sequences with no binding.
// The bytes of the sequence are consumed.
var ErrInvalidEscapeSequence = errors.New("invalid escape sequence")

const (
	keyEsc       = 0x1b
	keyBackspace = 0x7f
)

// ctrlKey returns the byte sent when k is typed with the control key held.
func ctrlKey(k byte) byte {
	return k & 0x1f
}

// A Decoder reads bytes from the terminal and converts them into actions.
type Decoder struct {
	r io.ByteReader
}

func NewDecoder(r io.ByteReader) *Decoder {
	return &Decoder{r: r}
}

// ReadAction blocks for the next action. Errors from the reader,
// including rilo.ErrNoInput, are returned unchanged.
func (d *Decoder) ReadAction() (rilo.Action, error) {
	c, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch {
	case c == ctrlKey('q'):
		return rilo.Quit{}, nil
	case c == ctrlKey('x'):
		return rilo.Refresh{}, nil
	case c == ctrlKey('s'):
		return rilo.Save{}, nil
	case c == '\r' || c == '\n':
		return rilo.Enter{}, nil
	case c == keyBackspace || c == ctrlKey('h'):
		return rilo.Delete{}, nil
	case c == keyEsc:
		return d.readEscapeSequence()
	case c == '\t' || (c >= 0x20):
		return rilo.Input{Char: c}, nil
	default:
		return rilo.Unbound{Char: c}, nil
	}
}

// readEscapeSequence decodes the bytes that follow an escape.
func (d *Decoder) readEscapeSequence() (rilo.Action, error) {
	c, err := d.r.ReadByte()
	if errors.Is(err, rilo.ErrNoInput) {
		return rilo.Escape{}, nil
	} else if err != nil {
		return nil, err
	}
	switch c {
	case '[':
		return d.readCSI()
	case 'O':
		c, err = d.next()
		if err != nil {
			return nil, err
		}
		switch c {
		case 'H':
			return rilo.Move{Key: rilo.KeyHome}, nil
		case 'F':
			return rilo.Move{Key: rilo.KeyEnd}, nil
		}
		return nil, fmt.Errorf("%w: ESC O %q", ErrInvalidEscapeSequence, c)
	}
	return nil, fmt.Errorf("%w: ESC %q", ErrInvalidEscapeSequence, c)
}

// readCSI decodes the bytes that follow ESC [. Parameter and intermediate
// bytes are read up to the final byte in 0x40-0x7e, so an unknown sequence
// is consumed whole.
func (d *Decoder) readCSI() (rilo.Action, error) {
	var params []byte
	for {
		c, err := d.next()
		if err != nil {
			return nil, err
		}
		switch {
		case c >= 0x20 && c <= 0x3f:
			params = append(params, c)
			continue
		case c < 0x40 || c > 0x7e:
			return nil, fmt.Errorf("%w: ESC [ %q %q", ErrInvalidEscapeSequence, params, c)
		}
		if action, ok := csiAction(string(params), c); ok {
			return action, nil
		}
		return nil, fmt.Errorf("%w: ESC [ %q %q", ErrInvalidEscapeSequence, params, c)
	}
}

// csiAction maps the parameters and final byte of a control sequence to an action.
func csiAction(params string, final byte) (rilo.Action, bool) {
	if params == "" {
		switch final {
		case 'A':
			return rilo.Move{Key: rilo.KeyUp}, true
		case 'B':
			return rilo.Move{Key: rilo.KeyDown}, true
		case 'C':
			return rilo.Move{Key: rilo.KeyRight}, true
		case 'D':
			return rilo.Move{Key: rilo.KeyLeft}, true
		case 'H':
			return rilo.Move{Key: rilo.KeyHome}, true
		case 'F':
			return rilo.Move{Key: rilo.KeyEnd}, true
		}
		return nil, false
	}
	if final != '~' {
		return nil, false
	}
	switch params {
	case "1", "7":
		return rilo.Move{Key: rilo.KeyHome}, true
	case "4", "8":
		return rilo.Move{Key: rilo.KeyEnd}, true
	case "3":
		return rilo.Delete{Forward: true}, true
	case "5":
		return rilo.Move{Key: rilo.KeyPageUp}, true
	case "6":
		return rilo.Move{Key: rilo.KeyPageDown}, true
	}
	return nil, false
}

// next reads a byte inside an escape sequence. A sequence cut short
// by the read timeout is invalid.
func (d *Decoder) next() (byte, error) {
	c, err := d.r.ReadByte()
	if errors.Is(err, rilo.ErrNoInput) {
		return 0, fmt.Errorf("%w: incomplete sequence", ErrInvalidEscapeSequence)
	}
	return c, err
}
