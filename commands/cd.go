package commands

import (
	"strings"

	"github.com/ldoolitt/yosys/core/kernel"
	"github.com/ldoolitt/yosys/core/rtlil"
)

type cdPass struct {
	kernel.Descriptor
}

func NewCdPass() kernel.Pass {
	return &cdPass{Descriptor: kernel.NewPass("cd", "change the active module")}
}

func (p *cdPass) Help(k *kernel.Kernel) {
	logHelp(k,
		"",
		"    cd <modname>",
		"",
		"Make the given module the active module and select all of it. Commands then",
		"operate on that module only and the prompt shows its name.",
		"",
		"    cd ..",
		"    cd",
		"",
		"Leave the active module and select the whole design again.",
		"",
	)
}

func (p *cdPass) Execute(k *kernel.Kernel, args []string) error {
	if len(args) > 2 {
		return k.CmdError(p, args, 2, "Extra argument.")
	}

	d := k.Design()
	if len(args) == 1 || args[1] == ".." {
		d.SetSelectedActiveModule("")
		d.ReplaceSelection(rtlil.NewSelection(true))
		return nil
	}

	name := args[1]
	if d.Module(name) == nil && !strings.HasPrefix(name, `\`) {
		name = `\` + name
	}
	if d.Module(name) == nil {
		return kernel.Errorf("No such module `%s' found!", args[1])
	}

	d.SetSelectedActiveModule(name)
	d.ReplaceSelection(rtlil.NewSelection(true))
	return nil
}
