package commands

import (
	"github.com/ldoolitt/yosys/core/kernel"
)

type scriptFrontend struct {
	kernel.Descriptor
}

func NewScriptFrontend() kernel.Frontend {
	return &scriptFrontend{Descriptor: kernel.NewFrontend("=script", "execute commands from script file")}
}

func (f *scriptFrontend) Help(k *kernel.Kernel) {
	logHelp(k,
		"",
		"    script <filename>",
		"",
		"This command executes the yosys commands in the specified file.",
		"",
		"Lines starting with '#' are comments and lines starting with '!' are passed",
		"to the shell. A command may read a here-document that follows it in the",
		"script, e.g.:",
		"",
		"    read_ilang <<EOT",
		"    module \\top",
		"    end",
		"    EOT",
		"",
	)
}

func (f *scriptFrontend) ExecuteFrontend(ctx *kernel.FrontendContext, args []string) error {
	if err := ctx.ExtraArgs(args, 1); err != nil {
		return err
	}

	return ctx.Kernel().RunScript(ctx.Input())
}
