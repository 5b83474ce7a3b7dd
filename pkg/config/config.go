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

// Package config holds the named options of the editor and reads them
// from an optional startup script written in lisp, for example:
//
//	(tab-width 8)
//	(message-timeout 3)
//	(log-level "debug")
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/steelseries/golisp"
)

const (
	DefaultTabWidth       = 4
	DefaultMessageTimeout = 5 * time.Second
	DefaultLogLevel       = "info"

	maxTabWidth = 16
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Options are the settings that can be changed from the startup script.
type Options struct {
	TabWidth       int           // screen columns used by a tab
	MessageTimeout time.Duration // how long status messages stay visible
	LogLevel       string
}

func Default() Options {
	return Options{
		TabWidth:       DefaultTabWidth,
		MessageTimeout: DefaultMessageTimeout,
		LogLevel:       DefaultLogLevel,
	}
}

// Path returns the location of the startup script.
// $XDG_CONFIG_HOME/rilo/rilorc is used when it exists, otherwise $HOME/.rilorc.
func Path() string {
	if base, err := os.UserConfigDir(); err == nil && strings.TrimSpace(base) != "" {
		p := filepath.Join(base, "rilo", "rilorc")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rilorc")
}

// Load reads the startup script at path. A missing script is not an error.
// When the script fails, the defaults are returned along with the error.
func Load(path string) (Options, error) {
	o := Default()
	if path == "" {
		return o, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return o, nil
	} else if err != nil {
		return o, err
	}
	if err := Eval(string(b), &o); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// Eval runs a script and applies its settings to o.
func Eval(script string, o *Options) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}
	next := *o
	bind(&next)
	if _, err := golisp.ParseAndEval("(begin " + script + "\n)"); err != nil {
		return err
	}
	*o = next
	return nil
}

// bind defines the configuration primitives so that they update o.
func bind(o *Options) {
	golisp.MakePrimitiveFunction("tab-width", "1", func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
		val := golisp.Car(args)
		n, err := number(val)
		if err != nil {
			return nil, fmt.Errorf("tab-width: %w", err)
		}
		if n < 1 || n > maxTabWidth {
			return nil, fmt.Errorf("tab-width must be between 1 and %d, got %d", maxTabWidth, n)
		}
		o.TabWidth = n
		return val, nil
	})
	golisp.MakePrimitiveFunction("message-timeout", "1", func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
		val := golisp.Car(args)
		n, err := number(val)
		if err != nil {
			return nil, fmt.Errorf("message-timeout: %w", err)
		}
		if n < 0 {
			return nil, fmt.Errorf("message-timeout must not be negative, got %d", n)
		}
		o.MessageTimeout = time.Duration(n) * time.Second
		return val, nil
	})
	golisp.MakePrimitiveFunction("log-level", "1", func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
		val := golisp.Car(args)
		if !golisp.StringP(val) {
			return nil, errors.New("log-level requires a string argument")
		}
		level := strings.ToLower(golisp.StringValue(val))
		for _, l := range logLevels {
			if l == level {
				o.LogLevel = level
				return val, nil
			}
		}
		return nil, fmt.Errorf("unknown log level %q", level)
	})
}

func number(val *golisp.Data) (int, error) {
	switch {
	case golisp.IntegerP(val):
		return int(golisp.IntegerValue(val)), nil
	case golisp.FloatP(val):
		return int(golisp.FloatValue(val)), nil
	default:
		return 0, errors.New("requires a numeric argument")
	}
}
