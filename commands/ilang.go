package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ldoolitt/yosys/core/kernel"
	"github.com/ldoolitt/yosys/core/rtlil"
	getopt "github.com/pborman/getopt/v2"
)

// The ilang text format holds one statement per line:
//
//	module \top
//	  wire input \a
//	  wire output \y
//	  cell $not \inv
//	    connect A \a
//	    connect Y \y
//	  end
//	end
//
// Blank lines and lines starting with "#" are ignored.

type ilangFrontend struct {
	kernel.Descriptor
}

func NewIlangFrontend() kernel.Frontend {
	return &ilangFrontend{Descriptor: kernel.NewFrontend("ilang", "read modules from ilang file")}
}

func (f *ilangFrontend) Help(k *kernel.Kernel) {
	logHelp(k,
		"",
		"    read_ilang [options] [filename]",
		"",
		"Load modules from an ilang file to the current design.",
		"",
		"    -overwrite",
		"        replace modules that already exist in the design",
		"",
	)
}

func (f *ilangFrontend) ExecuteFrontend(ctx *kernel.FrontendContext, args []string) error {
	k := ctx.Kernel()
	k.Log().Header("Executing ILANG frontend.")

	opts := getopt.New()
	overwrite := opts.BoolLong("overwrite", 0, "replace modules that already exist in the design")

	argidx, err := parseOptions(k, f, opts, args)
	if err != nil {
		return err
	}
	if err := ctx.ExtraArgs(args, argidx); err != nil {
		return err
	}
	k.Log().Logf("Input filename: %s\n", ctx.Filename())

	modules, err := parseIlang(ctx.Input(), ctx.Filename())
	if err != nil {
		return err
	}

	d := k.Design()
	for _, m := range modules {
		if d.Module(m.Name) != nil {
			if !*overwrite {
				return kernel.Errorf("%s: Re-definition of module `%s'!", ctx.Filename(), m.Name)
			}
			k.Log().Warning("Replacing existing module %s.", m.Name)
			d.RemoveModule(m.Name)
		}
		if err := d.AddModule(m); err != nil {
			return kernel.Errorf("%s: %v", ctx.Filename(), err)
		}
	}
	return nil
}

type ilangParser struct {
	filename string
	lineNo   int

	modules []*rtlil.Module
	module  *rtlil.Module
	cell    *rtlil.Cell
}

func (p *ilangParser) errorf(format string, a ...interface{}) error {
	return kernel.Errorf("%s:%d: %s", p.filename, p.lineNo, fmt.Sprintf(format, a...))
}

func parseIlang(r io.Reader, filename string) ([]*rtlil.Module, error) {
	p := &ilangParser{filename: filename}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := p.statement(fields); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, kernel.Errorf("%s: %v", filename, err)
	}

	if p.module != nil {
		return nil, p.errorf("unexpected end of file in module %s", p.module.Name)
	}
	return p.modules, nil
}

func (p *ilangParser) statement(fields []string) error {
	switch fields[0] {
	case "module":
		if p.module != nil {
			return p.errorf("nested module definition")
		}
		if len(fields) != 2 {
			return p.errorf("expected: module <name>")
		}
		p.module = rtlil.NewModule(fields[1])

	case "wire":
		if p.module == nil || p.cell != nil {
			return p.errorf("wire outside of module")
		}
		if len(fields) < 2 {
			return p.errorf("expected: wire [input] [output] <name>")
		}
		w := &rtlil.Wire{Name: fields[len(fields)-1]}
		for _, attr := range fields[1 : len(fields)-1] {
			switch attr {
			case "input":
				w.Input = true
			case "output":
				w.Output = true
			default:
				return p.errorf("unknown wire attribute %q", attr)
			}
		}
		if err := p.module.AddWire(w); err != nil {
			return p.errorf("%v", err)
		}

	case "cell":
		if p.module == nil || p.cell != nil {
			return p.errorf("cell outside of module")
		}
		if len(fields) != 3 {
			return p.errorf("expected: cell <type> <name>")
		}
		p.cell = &rtlil.Cell{Type: fields[1], Name: fields[2]}
		if err := p.module.AddCell(p.cell); err != nil {
			return p.errorf("%v", err)
		}

	case "connect":
		if p.cell == nil {
			return p.errorf("connect outside of cell")
		}
		if len(fields) != 3 {
			return p.errorf("expected: connect <port> <wire>")
		}
		if _, ok := p.module.Wires[fields[2]]; !ok {
			return p.errorf("wire %s not declared in module %s", fields[2], p.module.Name)
		}
		p.cell.Connections[fields[1]] = fields[2]

	case "end":
		switch {
		case p.cell != nil:
			p.cell = nil
		case p.module != nil:
			p.modules = append(p.modules, p.module)
			p.module = nil
		default:
			return p.errorf("unexpected end")
		}

	default:
		return p.errorf("unknown statement %q", fields[0])
	}

	return nil
}

type ilangBackend struct {
	kernel.Descriptor
}

func NewIlangBackend() kernel.Backend {
	return &ilangBackend{Descriptor: kernel.NewBackend("ilang", "write design to ilang file")}
}

func (b *ilangBackend) Help(k *kernel.Kernel) {
	logHelp(k,
		"",
		"    write_ilang [options] [filename]",
		"",
		"Write the current design to an ilang file.",
		"",
		"    -selected",
		"        only write selected modules",
		"",
	)
}

func (b *ilangBackend) ExecuteBackend(ctx *kernel.BackendContext, args []string) error {
	k := ctx.Kernel()
	k.Log().Header("Executing ILANG backend.")

	opts := getopt.New()
	selected := opts.BoolLong("selected", 0, "only write selected modules")

	argidx, err := parseOptions(k, b, opts, args)
	if err != nil {
		return err
	}
	if err := ctx.ExtraArgs(args, argidx); err != nil {
		return err
	}
	k.Log().Logf("Output filename: %s\n", ctx.Filename())

	d := k.Design()
	var modules []*rtlil.Module
	if *selected {
		modules = d.SelectedModules()
	} else {
		for _, name := range d.ModuleNames() {
			modules = append(modules, d.Module(name))
		}
	}

	w := bufio.NewWriter(ctx.Output())
	dumpIlang(w, modules)
	if err := w.Flush(); err != nil {
		return kernel.Errorf("Can't write %s: %v", ctx.Filename(), err)
	}
	return nil
}

func dumpIlang(w io.Writer, modules []*rtlil.Module) {
	fmt.Fprintf(w, "# Generated by yosys\n")
	for _, m := range modules {
		fmt.Fprintf(w, "module %s\n", m.Name)
		for _, name := range m.WireNames() {
			wire := m.Wires[name]
			fmt.Fprint(w, "  wire")
			if wire.Input {
				fmt.Fprint(w, " input")
			}
			if wire.Output {
				fmt.Fprint(w, " output")
			}
			fmt.Fprintf(w, " %s\n", name)
		}
		for _, name := range m.CellNames() {
			cell := m.Cells[name]
			fmt.Fprintf(w, "  cell %s %s\n", cell.Type, name)
			for _, port := range cell.Ports() {
				fmt.Fprintf(w, "    connect %s %s\n", port, cell.Connections[port])
			}
			fmt.Fprintf(w, "  end\n")
		}
		fmt.Fprintf(w, "end\n")
	}
}
