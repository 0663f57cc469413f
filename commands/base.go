package commands

import (
	"strings"

	"github.com/ldoolitt/yosys/core/kernel"
	getopt "github.com/pborman/getopt/v2"
)

// ListBuiltinCommands returns fresh instances of every built-in command in
// registration order.
func ListBuiltinCommands() []kernel.Command {
	return []kernel.Command{
		NewHelpPass(),
		NewEchoPass(),
		NewLogPass(),
		NewTeePass(),
		NewLsPass(),
		NewCdPass(),
		NewCleanPass(),
		NewScriptFrontend(),
		NewIlangFrontend(),
		NewIlangBackend(),
	}
}

// NewRegistry queues every built-in command and promotes the queue into a
// registry.
func NewRegistry() *kernel.Registry {
	var queue kernel.Queue
	queue.Add(ListBuiltinCommands()...)

	reg := kernel.NewRegistry(&queue)
	if queue.Len() != 0 {
		kernel.Fatalf("%d built-in commands were not registered.", queue.Len())
	}
	return reg
}

// parseOptions parses the options at the start of args[1:] and returns the
// index of the first operand. Options may be spelled with a single dash,
// e.g. "-purge".
func parseOptions(k *kernel.Kernel, cmd kernel.Command, opts *getopt.Set, args []string) (int, error) {
	known := optionNames(opts)

	if err := opts.Getopt(normalizeOptions(known, args), nil); err != nil {
		if i := unknownOptionIndex(known, args); i > 0 {
			name := strings.SplitN(args[i], "=", 2)[0]
			return 0, k.CmdError(cmd, args, i, "unknown option: "+name)
		}
		return 0, k.CmdError(cmd, args, len(args)-1, err.Error())
	}

	return len(args) - len(opts.Args()), nil
}

// optionNames collects the short and long names registered in opts.
func optionNames(opts *getopt.Set) map[string]bool {
	known := make(map[string]bool)
	opts.VisitAll(func(o getopt.Option) {
		if name := o.ShortName(); name != "" {
			known[name] = true
		}
		if name := o.LongName(); name != "" {
			known[name] = true
		}
	})
	return known
}

// normalizeOptions rewrites single dash long options to the double dash form
// getopt expects.
func normalizeOptions(known map[string]bool, args []string) []string {
	out := make([]string, len(args))
	copy(out, args)

	for i := 1; i < len(out); i++ {
		arg := out[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			break
		}
		if strings.HasPrefix(arg, "--") {
			continue
		}

		name := strings.SplitN(arg[1:], "=", 2)[0]
		if len(name) > 1 && known[name] {
			out[i] = "-" + arg
		}
	}

	return out
}

// unknownOptionIndex returns the index of the first option in args that is
// not registered, or 0 if there is none.
func unknownOptionIndex(known map[string]bool, args []string) int {
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		name := strings.SplitN(strings.TrimLeft(arg, "-"), "=", 2)[0]
		if known[name] {
			continue
		}
		// Clustered short options, e.g. "-qo file".
		if name != "" && !strings.HasPrefix(arg, "--") && known[name[:1]] {
			continue
		}
		return i
	}

	return 0
}

// logHelp writes help text line by line, the way every pass formats it.
func logHelp(k *kernel.Kernel, lines ...string) {
	for _, line := range lines {
		k.Log().Logf("%s\n", line)
	}
}
