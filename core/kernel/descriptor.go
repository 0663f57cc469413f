package kernel

import (
	"io"
	"strings"
	"sync/atomic"
)

// Kind distinguishes the three flavors of command.
type Kind int

const (
	KindPass Kind = iota
	KindFrontend
	KindBackend
)

func (k Kind) String() string {
	switch k {
	case KindPass:
		return "pass"
	case KindFrontend:
		return "frontend"
	case KindBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// Command is anything that can be registered. Implementations embed a
// Descriptor and additionally implement Pass, Frontend or Backend to match
// the Descriptor's kind.
type Command interface {
	Name() string
	ShortHelp() string
	Kind() Kind
	Calls() int64

	// Help writes usage text to the kernel log.
	Help(k *Kernel)

	descriptor() *Descriptor
}

// Pass is a plain command.
type Pass interface {
	Command

	Execute(k *Kernel, args []string) error
}

// Frontend reads an external format into the design. ExecuteFrontend parses
// its options and then calls ctx.ExtraArgs to obtain the input.
type Frontend interface {
	Command

	ExecuteFrontend(ctx *FrontendContext, args []string) error
}

// Backend writes the design to an external format. ExecuteBackend parses its
// options and then calls ctx.ExtraArgs to obtain the output.
type Backend interface {
	Command

	ExecuteBackend(ctx *BackendContext, args []string) error
}

// Descriptor holds the identity shared by every command.
type Descriptor struct {
	name      string
	shortHelp string
	format    string
	kind      Kind

	// Sessions share commands, so the counter is updated atomically.
	calls int64
}

// NewPass creates the descriptor for a plain pass.
func NewPass(name, shortHelp string) Descriptor {
	return Descriptor{name: name, shortHelp: shortHelp, kind: KindPass}
}

// NewFrontend creates the descriptor for a frontend. A name "X" registers the
// command read_X for format X, a name "=X" registers the command X.
func NewFrontend(name, shortHelp string) Descriptor {
	cmd, format := formatNames("read_", name)
	return Descriptor{name: cmd, shortHelp: shortHelp, format: format, kind: KindFrontend}
}

// NewBackend creates the descriptor for a backend. A name "X" registers the
// command write_X for format X, a name "=X" registers the command X.
func NewBackend(name, shortHelp string) Descriptor {
	cmd, format := formatNames("write_", name)
	return Descriptor{name: cmd, shortHelp: shortHelp, format: format, kind: KindBackend}
}

func formatNames(prefix, name string) (cmd, format string) {
	if strings.HasPrefix(name, "=") {
		return name[1:], name[1:]
	}
	return prefix + name, name
}

func (d *Descriptor) Name() string {
	return d.name
}

func (d *Descriptor) ShortHelp() string {
	return d.shortHelp
}

// Format is the frontend or backend format name, empty for plain passes.
func (d *Descriptor) Format() string {
	return d.format
}

func (d *Descriptor) Kind() Kind {
	return d.kind
}

// Calls returns the number of times the command was invoked.
func (d *Descriptor) Calls() int64 {
	return atomic.LoadInt64(&d.calls)
}

func (d *Descriptor) called() {
	atomic.AddInt64(&d.calls, 1)
}

// Help writes the default help message.
func (d *Descriptor) Help(k *Kernel) {
	k.Log().Logf("\n")
	k.Log().Logf("No help message for command `%s'.\n", d.name)
	k.Log().Logf("\n")
}

func (d *Descriptor) descriptor() *Descriptor {
	return d
}

// FrontendContext carries the input for one frontend invocation.
type FrontendContext struct {
	kernel *Kernel
	cmd    Frontend

	in       Input
	filename string
	direct   bool
	owned    bool

	continuation []string
}

// Kernel returns the kernel running the frontend.
func (ctx *FrontendContext) Kernel() *Kernel {
	return ctx.kernel
}

// Input returns the resolved input, nil before ExtraArgs in file mode.
func (ctx *FrontendContext) Input() Input {
	return ctx.in
}

// Filename returns the name of the resolved input.
func (ctx *FrontendContext) Filename() string {
	return ctx.filename
}

// Direct reports whether the caller supplied the input stream.
func (ctx *FrontendContext) Direct() bool {
	return ctx.direct
}

// Continuation returns the arguments the frontend will be re-invoked with.
func (ctx *FrontendContext) Continuation() []string {
	return ctx.continuation
}

func (ctx *FrontendContext) close() error {
	if ctx.in == nil || !ctx.owned {
		return nil
	}
	return ctx.in.Close()
}

// BackendContext carries the output for one backend invocation.
type BackendContext struct {
	kernel *Kernel
	cmd    Backend

	out      io.Writer
	filename string
	direct   bool
	closer   io.Closer
}

// Kernel returns the kernel running the backend.
func (ctx *BackendContext) Kernel() *Kernel {
	return ctx.kernel
}

// Output returns the resolved output, nil before ExtraArgs in file mode.
func (ctx *BackendContext) Output() io.Writer {
	return ctx.out
}

// Filename returns the name of the resolved output.
func (ctx *BackendContext) Filename() string {
	return ctx.filename
}

// Direct reports whether the caller supplied the output stream.
func (ctx *BackendContext) Direct() bool {
	return ctx.direct
}

func (ctx *BackendContext) close() error {
	if ctx.closer == nil {
		return nil
	}
	return ctx.closer.Close()
}
