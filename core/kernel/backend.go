package kernel

import (
	"io"
	"os"
	"strings"
)

func (k *Kernel) runBackend(be Backend, args []string) (err error) {
	ctx := &BackendContext{kernel: k, cmd: be}
	be.descriptor().called()

	defer func() {
		if closeErr := ctx.close(); err == nil && closeErr != nil {
			err = Errorf("Can't close output file `%s': %v", ctx.filename, osError(closeErr))
		}
	}()
	return be.ExecuteBackend(ctx, args)
}

// ExtraArgs resolves the output from the operands starting at args[argidx].
// "-" and no operand at all select standard output.
func (ctx *BackendContext) ExtraArgs(args []string, argidx int) error {
	k := ctx.kernel

	for ; argidx < len(args); argidx++ {
		arg := args[argidx]

		if strings.HasPrefix(arg, "-") && arg != "-" {
			return k.CmdError(ctx.cmd, args, argidx, "Unknown option or option in arguments.")
		}
		if ctx.direct {
			return k.CmdError(ctx.cmd, args, argidx, "Extra filename argument in direct file mode.")
		}
		if ctx.out != nil {
			return k.CmdError(ctx.cmd, args, argidx, "Extra filename argument.")
		}

		if arg == "-" {
			ctx.out = k.stdout
			ctx.filename = "<stdout>"
			continue
		}

		fd, err := k.fs.OpenFile(arg, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return Errorf("Can't open output file `%s' for writing: %v", arg, osError(err))
		}
		ctx.out = fd
		ctx.closer = fd
		ctx.filename = arg
	}

	if ctx.out == nil {
		ctx.out = k.stdout
		ctx.filename = "<stdout>"
	}
	return nil
}

// CallBackend runs the backend for the format in args[0]. With a non-nil out
// the backend writes to it directly and filename names it. Otherwise a
// filename of "-" writes standard output and any other filename is appended
// to args.
func (k *Kernel) CallBackend(out io.Writer, filename string, args []string) error {
	if len(args) == 0 {
		return nil
	}

	be := k.registry.Backend(args[0])
	if be == nil {
		return Errorf("No such backend: %s", args[0])
	}

	err := k.callBackend(be, out, filename, args)
	k.check()
	return err
}

func (k *Kernel) callBackend(be Backend, out io.Writer, filename string, args []string) error {
	depth := k.design.SelectionDepth()
	defer k.design.UnwindSelection(depth)

	switch {
	case out != nil:
		return k.callBackendDirect(be, out, filename, args)
	case filename == "-":
		return k.callBackendDirect(be, k.stdout, "<stdout>", args)
	default:
		if filename != "" {
			args = append(args[:len(args):len(args)], filename)
		}
		return k.runBackend(be, args)
	}
}

// CallBackendString is CallBackend with the arguments split from a string.
func (k *Kernel) CallBackendString(out io.Writer, filename, command string) error {
	args, err := splitCommand(command)
	if err != nil {
		return err
	}
	return k.CallBackend(out, filename, args)
}

func (k *Kernel) callBackendDirect(be Backend, out io.Writer, filename string, args []string) error {
	be.descriptor().called()
	ctx := &BackendContext{
		kernel:   k,
		cmd:      be,
		out:      out,
		filename: filename,
		direct:   true,
	}
	return be.ExecuteBackend(ctx, args)
}
