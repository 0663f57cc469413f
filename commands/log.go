package commands

import (
	"strings"

	"github.com/ldoolitt/yosys/core/kernel"
	getopt "github.com/pborman/getopt/v2"
)

type logPass struct {
	kernel.Descriptor
}

func NewLogPass() kernel.Pass {
	return &logPass{Descriptor: kernel.NewPass("log", "print text and log files")}
}

func (p *logPass) Help(k *kernel.Kernel) {
	logHelp(k,
		"",
		"    log [options] string",
		"",
		"Print the given string to the screen and/or the log file. This is useful for TCL",
		"scripts, because the TCL command \"puts\" only goes to stdout but not to",
		"logfiles.",
		"",
		"    -n",
		"        do not append a newline",
		"",
	)
}

func (p *logPass) Execute(k *kernel.Kernel, args []string) error {
	opts := getopt.New()
	noNewline := opts.Bool('n', "do not append a newline")

	argidx, err := parseOptions(k, p, opts, args)
	if err != nil {
		return err
	}

	text := strings.Join(args[argidx:], " ")
	if !*noNewline {
		text += "\n"
	}
	k.Log().Logf("%s", text)
	return nil
}
