package kernel

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/ldoolitt/yosys/core/logger"
	"github.com/ldoolitt/yosys/core/rtlil"
	"github.com/spf13/afero"
)

const (
	DefaultPrompt = "yosys"
	DefaultShell  = "/bin/sh"
)

// Options configure a Kernel. Zero values select the process defaults.
type Options struct {
	// Fs is used for every file a command opens.
	Fs afero.Fs
	// Log receives human readable command output.
	Log *logger.Sink
	// Events receives the machine readable event log.
	Events *logger.SessionLogger

	Stdin  io.Reader
	Stdout io.Writer

	// Shell interprets "!" lines.
	Shell string
	// DisableShell rejects "!" lines.
	DisableShell bool

	// Prompt is the program name shown in the prompt.
	Prompt string
	// Echo logs each command before it runs.
	Echo bool
}

// Kernel runs commands against one design.
type Kernel struct {
	registry *Registry
	design   *rtlil.Design

	fs       afero.Fs
	log      *logger.Sink
	events   *logger.SessionLogger
	rawStdin io.Reader
	stdin    Input
	stdout   io.Writer

	shell        string
	disableShell bool
	prompt       string
	echo         bool

	// depth counts nested Call invocations.
	depth            int
	scripts          []Input
	lastHereDocument string
}

// New creates a kernel dispatching through reg.
func New(reg *Registry, design *rtlil.Design, opts Options) *Kernel {
	k := &Kernel{
		registry:     reg,
		design:       design,
		fs:           opts.Fs,
		log:          opts.Log,
		events:       opts.Events,
		rawStdin:     opts.Stdin,
		stdout:       opts.Stdout,
		shell:        opts.Shell,
		disableShell: opts.DisableShell,
		prompt:       opts.Prompt,
		echo:         opts.Echo,
	}

	if k.fs == nil {
		k.fs = afero.NewOsFs()
	}
	if k.stdout == nil {
		k.stdout = os.Stdout
	}
	if k.rawStdin == nil {
		k.rawStdin = os.Stdin
	}
	if k.log == nil {
		k.log = logger.NewSink(k.stdout)
	}
	if k.events == nil {
		k.events = logger.NewNopLogger().Sessionless()
	}
	if k.shell == "" {
		k.shell = DefaultShell
	}
	if k.prompt == "" {
		k.prompt = DefaultPrompt
	}
	k.stdin = nopCloseInput{NewReaderInput("<stdin>", k.rawStdin)}

	return k
}

func (k *Kernel) Registry() *Registry {
	return k.registry
}

func (k *Kernel) Design() *rtlil.Design {
	return k.design
}

func (k *Kernel) Fs() afero.Fs {
	return k.fs
}

// Log returns the sink commands write their output to.
func (k *Kernel) Log() *logger.Sink {
	return k.log
}

// Stdin returns standard input. Closing it is a no-op.
func (k *Kernel) Stdin() Input {
	return k.stdin
}

func (k *Kernel) Stdout() io.Writer {
	return k.stdout
}

func (k *Kernel) Echo() bool {
	return k.echo
}

func (k *Kernel) SetEcho(enabled bool) {
	k.echo = enabled
}

// Script returns the innermost script being read, or nil.
func (k *Kernel) Script() Input {
	if len(k.scripts) == 0 {
		return nil
	}
	return k.scripts[len(k.scripts)-1]
}

// LastHereDocument returns the text of the most recent here-document.
func (k *Kernel) LastHereDocument() string {
	return k.lastHereDocument
}

// Prompt returns the interactive prompt, e.g. "yosys [top]> ". A "*" marks a
// selection narrower than the whole design.
func (k *Kernel) Prompt() string {
	var sb strings.Builder
	sb.WriteString(k.prompt)
	if mod := k.design.SelectedActiveModule(); mod != "" {
		fmt.Fprintf(&sb, " [%s]", rtlil.ID2Str(mod))
	}
	if k.design.SelectionDepth() > 0 && !k.design.CurrentSelection().Full {
		sb.WriteString("*")
	}
	sb.WriteString("> ")
	return sb.String()
}

// CallString tokenizes one line and dispatches the resulting commands in
// order, stopping at the first error.
func (k *Kernel) CallString(command string) error {
	line := Tokenize(command)
	if line.Shell {
		return k.runShell(line.ShellCommand)
	}

	for _, args := range line.Commands {
		if err := k.Call(args); err != nil {
			return err
		}
	}
	return nil
}

// Call dispatches one argument vector. The selection stack is restored to
// its depth before the call and the design is checked afterwards, whether or
// not the command failed. A failed check is fatal.
func (k *Kernel) Call(args []string) (err error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return nil
	}

	if k.echo {
		k.log.Logf("\n%s%s\n", k.Prompt(), strings.Join(args, " "))
	}

	cmd := k.registry.Lookup(args[0])
	if cmd == nil {
		k.events.UnknownCommand(args)
		return Errorf("No such command: %s (type 'help' for a command overview)", args[0])
	}

	k.events.RunCommand(args)
	k.depth++
	defer func() {
		k.depth--
		if err != nil && k.depth == 0 {
			k.events.CommandError(args, err)
		}
	}()

	cmd.descriptor().called()
	err = k.run(cmd, args)
	k.check()
	return err
}

func (k *Kernel) run(cmd Command, args []string) error {
	depth := k.design.SelectionDepth()
	defer k.design.UnwindSelection(depth)

	switch cmd.Kind() {
	case KindFrontend:
		return k.runFrontend(cmd.(Frontend), args)
	case KindBackend:
		return k.runBackend(cmd.(Backend), args)
	default:
		return cmd.(Pass).Execute(k, args)
	}
}

func (k *Kernel) check() {
	if err := k.design.Check(); err != nil {
		Fatalf("Design consistency check failed: %v", err)
	}
}

// RunScript dispatches every line of in. The script is visible to
// here-documents while it runs. The first error stops the script.
func (k *Kernel) RunScript(in Input) error {
	k.scripts = append(k.scripts, in)
	defer func() {
		k.scripts = k.scripts[:len(k.scripts)-1]
	}()

	for {
		line, err := in.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := k.CallString(line); err != nil {
			return err
		}
	}
}

// LogArgs logs the full command line of commands with arguments.
func (k *Kernel) LogArgs(args []string) {
	if len(args) <= 1 {
		return
	}
	k.log.Logf("Full command line: %s\n", strings.Join(args, " "))
}

// CmdError logs the command's help and returns a syntax error pointing at
// args[argidx].
func (k *Kernel) CmdError(cmd Command, args []string, argidx int, msg string) error {
	k.log.Logf("\nSyntax error in command `%s':\n", strings.Join(args, " "))
	cmd.Help(k)
	return SyntaxError(args, argidx, msg)
}

// ExtraArgs checks the operands left over after option parsing. Options are
// rejected. Operands are rejected unless selectOperands is set, in which case
// they are module name patterns whose matches are pushed as a new selection
// for the rest of the command.
func (k *Kernel) ExtraArgs(cmd Command, args []string, argidx int, selectOperands bool) error {
	for i := argidx; i < len(args); i++ {
		if strings.HasPrefix(args[i], "-") {
			return k.CmdError(cmd, args, i, "Unknown option or option in arguments.")
		}
		if !selectOperands {
			return k.CmdError(cmd, args, i, "Extra argument.")
		}
	}

	if argidx >= len(args) {
		return nil
	}

	sel := rtlil.NewSelection(false)
	for i := argidx; i < len(args); i++ {
		matched := false
		for _, name := range k.design.ModuleNames() {
			ok, err := matchModule(args[i], name)
			if err != nil {
				return k.CmdError(cmd, args, i, fmt.Sprintf("Invalid pattern: %v", err))
			}
			if ok {
				sel.Select(k.design.Module(name))
				matched = true
			}
		}
		if !matched {
			k.log.Warning("Selection \"%s\" did not match any module.", args[i])
		}
	}
	k.design.PushSelection(sel)
	return nil
}

// matchModule matches a pattern against both the raw and the displayed name
// so "top" and "\top" select the same module.
func matchModule(pattern, name string) (bool, error) {
	if ok, err := path.Match(pattern, name); ok || err != nil {
		return ok, err
	}
	return path.Match(pattern, rtlil.ID2Str(name))
}
