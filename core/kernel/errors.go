package kernel

import (
	"fmt"
	"strings"
)

// CommandError is a user-facing failure. It aborts the current command and
// everything enclosing it up to the nearest command loop.
type CommandError struct {
	Msg string

	// Args and ArgIdx locate the failing argument. Args is nil for errors
	// that aren't tied to a position.
	Args   []string
	ArgIdx int
}

var _ error = (*CommandError)(nil)

func (e *CommandError) Error() string {
	if e.Args == nil {
		return e.Msg
	}

	return fmt.Sprintf("Command syntax error: %s\n> %s\n> %s^",
		e.Msg, strings.Join(e.Args, " "), strings.Repeat(" ", errorPos(e.Args, e.ArgIdx)))
}

// errorPos is the column of args[argidx] in the space joined command line.
func errorPos(args []string, argidx int) int {
	pos := 0
	for i := 0; i < argidx && i < len(args); i++ {
		pos += len(args[i]) + 1
	}
	return pos
}

// Errorf creates a CommandError without a position.
func Errorf(format string, a ...interface{}) *CommandError {
	return &CommandError{Msg: fmt.Sprintf(format, a...)}
}

// SyntaxError creates a CommandError pointing at args[argidx].
func SyntaxError(args []string, argidx int, msg string) *CommandError {
	return &CommandError{
		Msg:    msg,
		Args:   append([]string(nil), args...),
		ArgIdx: argidx,
	}
}

// FatalError is an internal invariant violation. It's raised with panic and
// never turned into a CommandError.
type FatalError struct {
	Msg string
}

func (e *FatalError) Error() string {
	return e.Msg
}

// Fatalf panics with a FatalError.
func Fatalf(format string, a ...interface{}) {
	panic(&FatalError{Msg: fmt.Sprintf(format, a...)})
}

// RecoverFatal converts a FatalError panic into an error stored in *errp.
// Other panics are re-raised. It must be called directly by defer.
func RecoverFatal(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if fatal, ok := r.(*FatalError); ok {
		*errp = fatal
		return
	}
	panic(r)
}
