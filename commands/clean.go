package commands

import (
	"github.com/ldoolitt/yosys/core/kernel"
	"github.com/ldoolitt/yosys/core/rtlil"
	getopt "github.com/pborman/getopt/v2"
)

type cleanPass struct {
	kernel.Descriptor
}

func NewCleanPass() kernel.Pass {
	return &cleanPass{Descriptor: kernel.NewPass("clean", "remove unused wires")}
}

func (p *cleanPass) Help(k *kernel.Kernel) {
	logHelp(k,
		"",
		"    clean [options] [selection]",
		"",
		"Remove wires that are neither ports nor connected to any cell. Wires with",
		"public names are kept unless -purge is given.",
		"",
		"This command is run automatically after a command that ends in ';;'. A",
		"command ending in ';;;' runs 'clean -purge'.",
		"",
		"    -purge",
		"        also remove unused wires with public names",
		"",
	)
}

func (p *cleanPass) Execute(k *kernel.Kernel, args []string) error {
	opts := getopt.New()
	purge := opts.BoolLong("purge", 0, "also remove unused wires with public names")

	argidx, err := parseOptions(k, p, opts, args)
	if err != nil {
		return err
	}
	if err := k.ExtraArgs(p, args, argidx, true); err != nil {
		return err
	}

	removed := 0
	for _, m := range k.Design().SelectedModules() {
		removed += cleanModule(m, *purge)
	}

	if removed > 0 {
		k.Log().Logf("Removed %d unused wires.\n", removed)
	}
	return nil
}

func cleanModule(m *rtlil.Module, purge bool) int {
	used := m.UsedWires()

	removed := 0
	for _, name := range m.WireNames() {
		w := m.Wires[name]
		if w.IsPort() || used[name] {
			continue
		}
		if rtlil.IsPublic(name) && !purge {
			continue
		}
		m.RemoveWire(name)
		removed++
	}
	return removed
}
