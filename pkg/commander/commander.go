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
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/timburks/rilo/pkg/editor"
	rilo "github.com/timburks/rilo/pkg/types"
)

// The Commander converts user input into commands for the Editor.
type Commander struct {
	editor  *editor.Editor
	running bool
	refresh bool // the next frame should redraw the whole screen
}

func NewCommander(e *editor.Editor) *Commander {
	return &Commander{editor: e, running: true, refresh: true}
}

func (c *Commander) IsRunning() bool {
	return c.running
}

// TakeRefresh reports whether a full redraw was requested and clears the request.
func (c *Commander) TakeRefresh() bool {
	refresh := c.refresh
	c.refresh = false
	return refresh
}

// ProcessAction applies one action to the editor.
func (c *Commander) ProcessAction(action rilo.Action) error {
	e := c.editor
	log.Debug("action", "type", fmt.Sprintf("%T", action), "value", fmt.Sprintf("%+v", action))

	switch a := action.(type) {
	case rilo.Quit:
		c.running = false
	case rilo.Refresh:
		c.refresh = true
	case rilo.Save:
		// failures are reported in the status bar
		e.Save()
	case rilo.Move:
		e.MoveCursor(a.Key)
	case rilo.Input:
		e.InsertChar(a.Char)
	case rilo.Enter:
		e.InsertNewline()
	case rilo.Delete:
		if a.Forward {
			e.DeleteChar()
		} else {
			e.BackspaceChar()
		}
	case rilo.Escape, rilo.Unbound:
		break
	default:
		return fmt.Errorf("unhandled action %T", action)
	}
	return nil
}
