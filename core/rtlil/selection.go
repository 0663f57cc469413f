package rtlil

import "sort"

// Selection marks a subset of the design's modules. A full selection
// contains every module regardless of Modules.
type Selection struct {
	Full    bool
	Modules map[string]bool
}

// NewSelection creates an empty selection, or a full one if full is set.
func NewSelection(full bool) Selection {
	return Selection{
		Full:    full,
		Modules: make(map[string]bool),
	}
}

// Select adds the module to the selection.
func (s *Selection) Select(m *Module) {
	if s.Modules == nil {
		s.Modules = make(map[string]bool)
	}
	s.Modules[m.Name] = true
}

// Selected reports whether the named module is part of the selection.
func (s Selection) Selected(name string) bool {
	return s.Full || s.Modules[name]
}

// Names returns the explicitly selected module names in sorted order.
func (s Selection) Names() []string {
	var out []string
	for name := range s.Modules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
