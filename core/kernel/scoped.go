package kernel

import (
	"github.com/ldoolitt/yosys/core/rtlil"
)

// CallOnSelection runs args with sel pushed and no active module.
func (k *Kernel) CallOnSelection(sel rtlil.Selection, args []string) error {
	defer k.scope("", sel)()
	return k.Call(args)
}

// CallOnSelectionString is CallOnSelection for a command line.
func (k *Kernel) CallOnSelectionString(sel rtlil.Selection, command string) error {
	defer k.scope("", sel)()
	return k.CallString(command)
}

// CallOnModule runs args with m as the active module and a selection holding
// only m.
func (k *Kernel) CallOnModule(m *rtlil.Module, args []string) error {
	defer k.scope(m.Name, moduleSelection(m))()
	return k.Call(args)
}

// CallOnModuleString is CallOnModule for a command line.
func (k *Kernel) CallOnModuleString(m *rtlil.Module, command string) error {
	defer k.scope(m.Name, moduleSelection(m))()
	return k.CallString(command)
}

func moduleSelection(m *rtlil.Module) rtlil.Selection {
	sel := rtlil.NewSelection(false)
	sel.Select(m)
	return sel
}

// scope overrides the active module and pushes sel. The returned func puts
// both back.
func (k *Kernel) scope(activeModule string, sel rtlil.Selection) (restore func()) {
	d := k.design
	savedModule := d.SelectedActiveModule()
	depth := d.SelectionDepth()

	d.SetSelectedActiveModule(activeModule)
	d.PushSelection(sel)

	return func() {
		d.UnwindSelection(depth)
		d.SetSelectedActiveModule(savedModule)
	}
}
