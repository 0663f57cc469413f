// Package rtlil holds the in-memory design the command kernel operates on.
//
// Only the pieces the kernel and the built-in passes need are modelled:
// modules with wires and cells, the selection stack and the active module.
package rtlil

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrModuleExists = errors.New("module already exists")
	ErrWireExists   = errors.New("wire already exists")
	ErrCellExists   = errors.New("cell already exists")
)

// IsPublic reports whether a name was given by the user rather than
// generated by a pass. Public names start with a backslash.
func IsPublic(name string) bool {
	return strings.HasPrefix(name, `\`)
}

// ID2Str returns the name as shown to the user, public names lose their
// leading backslash.
func ID2Str(name string) string {
	if IsPublic(name) {
		return name[1:]
	}
	return name
}

// Wire is a named net inside a module.
type Wire struct {
	Name   string `json:"name"`
	Input  bool   `json:"input,omitempty"`
	Output bool   `json:"output,omitempty"`
}

// IsPort reports whether the wire is part of the module interface.
func (w *Wire) IsPort() bool {
	return w.Input || w.Output
}

// Cell is an instance of a primitive or module. Connections maps the cell
// port name to the name of a wire in the enclosing module.
type Cell struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Connections map[string]string `json:"connections"`
}

// Ports returns the connected port names in sorted order.
func (c *Cell) Ports() []string {
	var out []string
	for port := range c.Connections {
		out = append(out, port)
	}
	sort.Strings(out)
	return out
}

type Module struct {
	Name  string
	Wires map[string]*Wire
	Cells map[string]*Cell
}

func NewModule(name string) *Module {
	return &Module{
		Name:  name,
		Wires: make(map[string]*Wire),
		Cells: make(map[string]*Cell),
	}
}

// AddWire adds a wire, failing if the name is taken.
func (m *Module) AddWire(w *Wire) error {
	if _, ok := m.Wires[w.Name]; ok {
		return fmt.Errorf("%s in module %s: %w", w.Name, m.Name, ErrWireExists)
	}
	m.Wires[w.Name] = w
	return nil
}

// AddCell adds a cell, failing if the name is taken.
func (m *Module) AddCell(c *Cell) error {
	if _, ok := m.Cells[c.Name]; ok {
		return fmt.Errorf("%s in module %s: %w", c.Name, m.Name, ErrCellExists)
	}
	if c.Connections == nil {
		c.Connections = make(map[string]string)
	}
	m.Cells[c.Name] = c
	return nil
}

func (m *Module) RemoveWire(name string) {
	delete(m.Wires, name)
}

// WireNames returns the wire names in sorted order.
func (m *Module) WireNames() []string {
	var out []string
	for name := range m.Wires {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CellNames returns the cell names in sorted order.
func (m *Module) CellNames() []string {
	var out []string
	for name := range m.Cells {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// UsedWires returns the set of wires connected to at least one cell.
func (m *Module) UsedWires() map[string]bool {
	used := make(map[string]bool)
	for _, cell := range m.Cells {
		for _, wire := range cell.Connections {
			used[wire] = true
		}
	}
	return used
}

// Design is a collection of modules plus the scoping state the command
// kernel uses to narrow passes to part of the design.
type Design struct {
	modules map[string]*Module

	selectionStack       []Selection
	selectedActiveModule string
}

// NewDesign creates an empty design whose selection stack holds one full
// selection.
func NewDesign() *Design {
	return &Design{
		modules:        make(map[string]*Module),
		selectionStack: []Selection{NewSelection(true)},
	}
}

func (d *Design) AddModule(m *Module) error {
	if _, ok := d.modules[m.Name]; ok {
		return fmt.Errorf("%s: %w", m.Name, ErrModuleExists)
	}
	d.modules[m.Name] = m
	return nil
}

// Module returns the named module or nil.
func (d *Design) Module(name string) *Module {
	return d.modules[name]
}

func (d *Design) RemoveModule(name string) {
	delete(d.modules, name)
}

// ModuleNames returns all module names in sorted order.
func (d *Design) ModuleNames() []string {
	var out []string
	for name := range d.modules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// PushSelection pushes a new scoping frame.
func (d *Design) PushSelection(s Selection) {
	d.selectionStack = append(d.selectionStack, s)
}

// PopSelection removes the innermost scoping frame. Popping an empty stack
// is a no-op.
func (d *Design) PopSelection() {
	if len(d.selectionStack) == 0 {
		return
	}
	d.selectionStack = d.selectionStack[:len(d.selectionStack)-1]
}

// UnwindSelection pops frames until at most depth remain.
func (d *Design) UnwindSelection(depth int) {
	for len(d.selectionStack) > depth {
		d.PopSelection()
	}
}

// ReplaceSelection overwrites the innermost frame, pushing one if the stack
// is empty.
func (d *Design) ReplaceSelection(s Selection) {
	if len(d.selectionStack) == 0 {
		d.PushSelection(s)
		return
	}
	d.selectionStack[len(d.selectionStack)-1] = s
}

func (d *Design) SelectionDepth() int {
	return len(d.selectionStack)
}

// CurrentSelection returns the innermost selection, or a full selection if
// the stack is empty.
func (d *Design) CurrentSelection() Selection {
	if len(d.selectionStack) == 0 {
		return NewSelection(true)
	}
	return d.selectionStack[len(d.selectionStack)-1]
}

func (d *Design) SelectedActiveModule() string {
	return d.selectedActiveModule
}

func (d *Design) SetSelectedActiveModule(name string) {
	d.selectedActiveModule = name
}

// SelectedModules returns the modules in the current selection in sorted
// order. An active module narrows the result to that module.
func (d *Design) SelectedModules() []*Module {
	sel := d.CurrentSelection()
	var out []*Module
	for _, name := range d.ModuleNames() {
		if d.selectedActiveModule != "" && name != d.selectedActiveModule {
			continue
		}
		if sel.Selected(name) {
			out = append(out, d.modules[name])
		}
	}
	return out
}

// Check verifies the internal invariants of the design. A non-nil result
// means a pass corrupted the design.
func (d *Design) Check() error {
	if d.selectedActiveModule != "" && d.modules[d.selectedActiveModule] == nil {
		return fmt.Errorf("active module %q does not exist", d.selectedActiveModule)
	}

	for name, m := range d.modules {
		if m == nil || m.Name != name {
			return fmt.Errorf("module %q registered under wrong name", name)
		}
		for wireName, w := range m.Wires {
			if w == nil || w.Name != wireName {
				return fmt.Errorf("module %s: wire %q registered under wrong name", name, wireName)
			}
		}
		for cellName, c := range m.Cells {
			if c == nil || c.Name != cellName {
				return fmt.Errorf("module %s: cell %q registered under wrong name", name, cellName)
			}
			for _, port := range c.Ports() {
				wire := c.Connections[port]
				if _, ok := m.Wires[wire]; !ok {
					return fmt.Errorf("module %s: cell %s port %s connects to missing wire %q", name, cellName, port, wire)
				}
			}
		}
	}

	return nil
}
