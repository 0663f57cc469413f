package kernel

import (
	"errors"
	"os"
	"strings"

	"github.com/anmitsu/go-shlex"
)

func (k *Kernel) runFrontend(fe Frontend, args []string) error {
	for {
		ctx := &FrontendContext{kernel: k, cmd: fe}
		fe.descriptor().called()

		if err := k.executeFrontend(ctx, args); err != nil {
			return err
		}

		if len(ctx.continuation) == 0 {
			return nil
		}
		args = ctx.continuation
	}
}

func (k *Kernel) executeFrontend(ctx *FrontendContext, args []string) error {
	defer ctx.close()
	return ctx.cmd.ExecuteFrontend(ctx, args)
}

// ExtraArgs resolves the input from the operands starting at args[argidx].
//
// The first operand names the input: a path, or "<<MARKER" to read a
// here-document from the enclosing script. Any further operands are queued
// as a new invocation with the same leading arguments.
func (ctx *FrontendContext) ExtraArgs(args []string, argidx int) error {
	k := ctx.kernel
	ctx.continuation = nil

	if argidx < len(args) {
		if strings.HasPrefix(args[argidx], "-") {
			return k.CmdError(ctx.cmd, args, argidx, "Unknown option or option in arguments.")
		}
		if ctx.direct {
			return k.CmdError(ctx.cmd, args, argidx, "Extra filename argument in direct file mode.")
		}

		fileidx := argidx
		filename := args[argidx]
		if filename == "<<" && argidx+1 < len(args) {
			argidx++
			filename += args[argidx]
		}

		if strings.HasPrefix(filename, "<<") {
			ctx.in = NewStringInput(filename, k.readHereDocument(filename))
		} else {
			in, err := OpenInput(k.fs, filename)
			if err != nil {
				return Errorf("Can't open input file `%s' for reading: %v", filename, osError(err))
			}
			ctx.in = in
		}
		ctx.owned = true
		ctx.filename = filename

		for i := argidx + 1; i < len(args); i++ {
			if strings.HasPrefix(args[i], "-") {
				return k.CmdError(ctx.cmd, args, i, "Found option, expected arguments.")
			}
		}

		if argidx+1 < len(args) {
			next := append([]string(nil), args[:fileidx]...)
			ctx.continuation = append(next, args[argidx+1:]...)
		}
	}

	if ctx.in == nil {
		return k.CmdError(ctx.cmd, args, argidx, "No filename given.")
	}
	return nil
}

// readHereDocument reads lines from the current script up to the marker.
// A here-document that can't be read is fatal.
func (k *Kernel) readHereDocument(filename string) string {
	script := k.Script()
	if script == nil {
		Fatalf("Unexpected here document '%s' outside of script!", filename)
	}

	marker := strings.TrimPrefix(filename, "<<")
	if marker == "" {
		Fatalf("Missing EOT marker in here document!")
	}

	var sb strings.Builder
	for {
		line, err := script.ReadLine()
		if err != nil {
			Fatalf("Unexpected end of file in here document '%s'!", filename)
		}
		if strings.Trim(line, blanks) == marker {
			break
		}
		sb.WriteString(line)
	}

	k.lastHereDocument = sb.String()
	return k.lastHereDocument
}

// CallFrontend runs the frontend for the format in args[0]. With a non-nil
// in the frontend reads it directly and filename names it. Otherwise a
// filename of "-" reads standard input and any other filename is appended
// to args.
func (k *Kernel) CallFrontend(in Input, filename string, args []string) error {
	if len(args) == 0 {
		return nil
	}

	fe := k.registry.Frontend(args[0])
	if fe == nil {
		return Errorf("No such frontend: %s", args[0])
	}

	var err error
	switch {
	case in != nil:
		err = k.callFrontendDirect(fe, in, filename, args)
	case filename == "-":
		err = k.callFrontendDirect(fe, k.stdin, "<stdin>", args)
	default:
		if filename != "" {
			args = append(args[:len(args):len(args)], filename)
		}
		err = k.runFrontend(fe, args)
	}

	k.check()
	return err
}

// CallFrontendString is CallFrontend with the arguments split from a string.
func (k *Kernel) CallFrontendString(in Input, filename, command string) error {
	args, err := splitCommand(command)
	if err != nil {
		return err
	}
	return k.CallFrontend(in, filename, args)
}

func (k *Kernel) callFrontendDirect(fe Frontend, in Input, filename string, args []string) error {
	fe.descriptor().called()
	ctx := &FrontendContext{
		kernel:   k,
		cmd:      fe,
		in:       in,
		filename: filename,
		direct:   true,
	}
	return fe.ExecuteFrontend(ctx, args)
}

// splitCommand splits command on blanks. Backslashes are kept, they start
// RTLIL identifiers.
func splitCommand(command string) ([]string, error) {
	args, err := shlex.Split(command, false)
	if err != nil {
		return nil, Errorf("Can't parse command `%s': %v", command, err)
	}
	return args, nil
}

// osError strips the operation and path from file errors.
func osError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
