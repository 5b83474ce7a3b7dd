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

package types

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned by byte sources when a read timed out without input.
var ErrNoInput = errors.New("no input")

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

// Navigation keys
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

var keyNames = [...]string{"left", "right", "up", "down", "home", "end", "pageup", "pagedown"}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return fmt.Sprintf("key(%d)", int(k))
	}
	return keyNames[k]
}

// An Action is one decoded unit of user input.
// The set of actions is closed: only the types below implement it.
type Action interface {
	action()
}

// Quit ends the editing session.
type Quit struct{}

// Refresh forces a full redraw.
type Refresh struct{}

// Save writes the buffer to its file.
type Save struct{}

// Escape is a lone escape key with no sequence after it.
type Escape struct{}

// Enter breaks the line at the cursor.
type Enter struct{}

// Delete removes the character left of the cursor,
// or the character under it when Forward is set.
type Delete struct {
	Forward bool
}

// Move is a navigation key.
type Move struct {
	Key Key
}

// Input inserts a literal character.
type Input struct {
	Char byte
}

// Unbound is a control byte with no binding.
type Unbound struct {
	Char byte
}

func (Quit) action()    {}
func (Refresh) action() {}
func (Save) action()    {}
func (Escape) action()  {}
func (Enter) action()   {}
func (Delete) action()  {}
func (Move) action()    {}
func (Input) action()   {}
func (Unbound) action() {}
