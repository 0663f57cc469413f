package core

import (
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/ldoolitt/yosys/core/kernel"
)

// Terminal describes the console a Shell reads from.
type Terminal struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	IsTerminal bool
	// Width returns the current console width, nil asks the OS.
	Width func() int

	// HistoryFile persists entered lines, empty disables history.
	HistoryFile string
}

// lineReader is the part of readline the shell loop needs.
type lineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

// Shell reads commands from a terminal and runs them through a kernel until
// the input ends or the user types exit.
type Shell struct {
	Kernel *kernel.Kernel

	reader lineReader
}

func NewShell(k *kernel.Kernel, term Terminal) (*Shell, error) {
	cfg := &readline.Config{
		Stdin:        readline.NewCancelableStdin(term.Stdin),
		Stdout:       term.Stdout,
		Stderr:       term.Stderr,
		HistoryFile:  term.HistoryFile,
		FuncGetWidth: term.Width,
		FuncIsTerminal: func() bool {
			return term.IsTerminal
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &Shell{Kernel: k, reader: rl}, nil
}

// Run executes lines until the input is closed. Command errors are logged and
// the loop continues. A fatal error stops the loop and is returned.
func (s *Shell) Run() (err error) {
	defer kernel.RecoverFatal(&err)

	log := s.Kernel.Log()
	for {
		s.reader.SetPrompt(s.Kernel.Prompt())
		line, err := s.reader.Readline()

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue // Drop the partial line.

		case err != nil:
			return err
		}

		switch strings.Trim(line, " \t\r\n") {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := s.Kernel.CallString(line); err != nil {
			log.Error(err)
		}
	}
}

func (s *Shell) Close() error {
	return s.reader.Close()
}
