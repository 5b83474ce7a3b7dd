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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/timburks/rilo/pkg/commander"
	"github.com/timburks/rilo/pkg/config"
	"github.com/timburks/rilo/pkg/editor"
	"github.com/timburks/rilo/pkg/screen"
	"github.com/timburks/rilo/pkg/terminal"
	rilo "github.com/timburks/rilo/pkg/types"
)

const helpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-X = refresh"

var rootCmd = &cobra.Command{
	Use:                "rilo [file]",
	Short:              "rilo is a small screen-oriented text editor",
	Args:               cobra.MaximumNArgs(1),
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filename string
		if len(args) == 1 {
			filename = args[0]
		}
		return run(filename)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(filename string) error {
	options, configErr := config.Load(config.Path())

	// Open a log file; the terminal is not available for logging.
	logFile := openLog()
	if logFile != nil {
		defer logFile.Close()
	}
	if configErr != nil {
		log.Warn("using default options", "err", configErr)
	}
	if level, err := log.ParseLevel(options.LogLevel); err == nil {
		log.SetLevel(level)
	}

	t, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	// restore terminal however we exit
	defer t.Restore()
	restoreOnSignal(t)

	size, err := t.Size()
	if err != nil {
		return err
	}

	// The editor manages all text manipulation.
	e := editor.NewEditor(options)
	e.SetScreenSize(size)
	e.SetMessage(helpMessage)
	if filename != "" {
		if err := e.ReadFile(filename); err != nil {
			log.Warn("reading file", "path", filename, "err", err)
		}
	}

	// The commander converts user inputs into commands for the editor.
	c := commander.NewCommander(e)
	d := commander.NewDecoder(t)
	s := screen.NewScreen(t)

	// Run the main event loop.
	for c.IsRunning() {
		if size, err := t.Size(); err == nil {
			e.SetScreenSize(size)
		} else {
			log.Warn("querying terminal size", "err", err)
		}
		if err := s.Render(e, c.TakeRefresh()); err != nil {
			return err
		}
		action, err := d.ReadAction()
		switch {
		case errors.Is(err, rilo.ErrNoInput):
			continue
		case errors.Is(err, commander.ErrInvalidEscapeSequence):
			log.Debug("ignoring input", "err", err)
			continue
		case err != nil:
			return err
		}
		if err := c.ProcessAction(action); err != nil {
			log.Error("processing action", "err", err)
		}
	}
	log.Info("quit")
	return s.Clear()
}

func openLog() *os.File {
	log.SetDefault(log.NewWithOptions(io.Discard, log.Options{}))
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(home, ".rilolog"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil
	}
	log.SetDefault(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "rilo",
	}))
	return f
}

// restoreOnSignal restores the terminal if the process is told to stop.
func restoreOnSignal(t *terminal.Terminal) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		sig := <-signals
		log.Info("terminated", "signal", sig)
		t.Write([]byte(screen.ClearScreen + screen.CursorHome))
		t.Restore()
		os.Exit(1)
	}()
}
