package kernel

import (
	"sort"
)

// Queue holds commands that were declared but not yet registered. Command
// packages add to it from an ordinary startup routine, then NewRegistry
// drains it.
type Queue struct {
	pending []Command
}

// Add queues commands for registration.
func (q *Queue) Add(cmds ...Command) {
	q.pending = append(q.pending, cmds...)
}

// Len returns the number of commands still waiting for registration.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Registry maps names to commands. Plain passes, frontends and backends share
// one dispatch namespace; frontends and backends are also indexed by format.
type Registry struct {
	queue *Queue

	byName    map[string]Command
	frontends map[string]Frontend
	backends  map[string]Backend
}

// NewRegistry creates a registry from every queued command, leaving the
// queue empty. Duplicate names are fatal.
func NewRegistry(q *Queue) *Registry {
	r := &Registry{
		queue:     q,
		byName:    make(map[string]Command),
		frontends: make(map[string]Frontend),
		backends:  make(map[string]Backend),
	}

	pending := q.pending
	q.pending = nil
	for _, cmd := range pending {
		r.Register(cmd)
	}

	return r
}

// Register adds a command. Registering a name twice in the same namespace,
// or a command whose methods don't match its kind, is fatal.
func (r *Registry) Register(cmd Command) {
	d := cmd.descriptor()
	if d.name == "" {
		Fatalf("Registering %s with an empty name.", d.kind)
	}
	if _, ok := r.byName[d.name]; ok {
		Fatalf("Duplicate command name `%s'.", d.name)
	}

	switch d.kind {
	case KindPass:
		if _, ok := cmd.(Pass); !ok {
			Fatalf("Command `%s' is not a pass.", d.name)
		}
	case KindFrontend:
		fe, ok := cmd.(Frontend)
		if !ok {
			Fatalf("Command `%s' is not a frontend.", d.name)
		}
		if _, ok := r.frontends[d.format]; ok {
			Fatalf("Duplicate frontend name `%s'.", d.format)
		}
		r.frontends[d.format] = fe
	case KindBackend:
		be, ok := cmd.(Backend)
		if !ok {
			Fatalf("Command `%s' is not a backend.", d.name)
		}
		if _, ok := r.backends[d.format]; ok {
			Fatalf("Duplicate backend name `%s'.", d.format)
		}
		r.backends[d.format] = be
	default:
		Fatalf("Command `%s' has unknown kind %d.", d.name, d.kind)
	}

	r.byName[d.name] = cmd
}

// Lookup returns the command with the given name, or nil.
func (r *Registry) Lookup(name string) Command {
	return r.byName[name]
}

// Frontend returns the frontend for the given format, or nil.
func (r *Registry) Frontend(format string) Frontend {
	return r.frontends[format]
}

// Backend returns the backend for the given format, or nil.
func (r *Registry) Backend(format string) Backend {
	return r.backends[format]
}

// Names returns every command name in sorted order.
func (r *Registry) Names() []string {
	var out []string
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Commands returns every command sorted by name.
func (r *Registry) Commands() []Command {
	var out []Command
	for _, name := range r.Names() {
		out = append(out, r.byName[name])
	}
	return out
}

// Clear empties the registry. Commands still waiting in the queue were never
// promoted, which is fatal.
func (r *Registry) Clear() {
	r.byName = make(map[string]Command)
	r.frontends = make(map[string]Frontend)
	r.backends = make(map[string]Backend)

	if r.queue != nil && r.queue.Len() != 0 {
		Fatalf("%d commands were queued but never registered.", r.queue.Len())
	}
}
