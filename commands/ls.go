package commands

import (
	"github.com/ldoolitt/yosys/core/kernel"
	"github.com/ldoolitt/yosys/core/rtlil"
)

type lsPass struct {
	kernel.Descriptor
}

func NewLsPass() kernel.Pass {
	return &lsPass{Descriptor: kernel.NewPass("ls", "list modules or objects in modules")}
}

func (p *lsPass) Help(k *kernel.Kernel) {
	logHelp(k,
		"",
		"    ls [pattern..]",
		"",
		"When no active module is selected, this prints a list of modules.",
		"",
		"When an active module is selected, this prints a list of objects in the module.",
		"",
	)
}

func (p *lsPass) Execute(k *kernel.Kernel, args []string) error {
	if err := k.ExtraArgs(p, args, 1, true); err != nil {
		return err
	}

	d := k.Design()
	if d.SelectedActiveModule() == "" {
		var names []string
		for _, m := range d.SelectedModules() {
			names = append(names, m.Name)
		}
		logList(k, "modules", names)
		return nil
	}

	m := d.Module(d.SelectedActiveModule())
	if m == nil {
		return nil
	}
	logList(k, "wires", m.WireNames())
	logList(k, "cells", m.CellNames())
	return nil
}

func logList(k *kernel.Kernel, title string, names []string) {
	if len(names) == 0 {
		return
	}

	k.Log().Logf("\n%d %s:\n", len(names), title)
	for _, name := range names {
		k.Log().Logf("  %s\n", rtlil.ID2Str(name))
	}
}
