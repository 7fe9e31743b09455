// Package host is a minimal reference embedding for the reflection VM:
// a name-keyed registry of host classes, each optionally carrying its
// own encoded program (spec.md §3 invariant 3, §4.1.3 `classReference`).
// A real embedding host (a JS engine, a schema compiler, whatever holds
// the actual class objects) would supply its own types.HostClass and
// packed.ClassThunk implementations directly; this package exists so
// cmd/reflectdump and cmd/reflectd have something concrete to resolve
// `classReference` opcodes against without depending on a real host
// runtime, grounded on the teacher's builtins registry
// (pkg/builtins/builtins.go: a package-level name→definition map guarded
// by sync.Once).
package host

import (
	"typegraph/pkg/packed"
	"typegraph/pkg/types"
)

// Class is the registry's concrete types.HostClass / packed.HostClassRef
// implementation: a name, an optional attached program, and any deferred
// decorator records registered against it (spec.md §6.4).
type Class struct {
	name       string
	program    *packed.Packed
	decorators []packed.DecoratorRecord
}

// Name satisfies types.HostClass and packed.HostClassRef.
func (c *Class) Name() string { return c.name }

// Program satisfies packed.HostClassRef directly.
func (c *Class) Program() *packed.Packed { return c.program }

// Decorators satisfies packed.HostClassRef directly.
func (c *Class) Decorators() []packed.DecoratorRecord { return c.decorators }

// Decorate records a deferred decorator entry against this class, applied
// once its program terminates (spec.md §6.4).
func (c *Class) Decorate(property string, data any, parameterIndexOrDescriptor any) {
	c.decorators = append(c.decorators, packed.DecoratorRecord{
		Data:                       data,
		Property:                   property,
		ParameterIndexOrDescriptor: parameterIndexOrDescriptor,
	})
}

// asHostClass adapts Class to types.HostClass, whose Program method
// returns `any` rather than `*packed.Packed` (the types package sits
// below packed in the import graph and can't name packed.Packed
// directly). A separate wrapper keeps Class.Program itself typed for
// packed.HostClassRef callers.
type asHostClass struct{ *Class }

func (h asHostClass) Program() any {
	if h.Class.program == nil {
		return nil
	}
	return h.Class.program
}

func (h asHostClass) Decorators() []types.DecoratorRecord {
	if len(h.Class.decorators) == 0 {
		return nil
	}
	out := make([]types.DecoratorRecord, len(h.Class.decorators))
	for i, r := range h.Class.decorators {
		out[i] = types.DecoratorRecord{
			Data:                       r.Data,
			Property:                   r.Property,
			ParameterIndexOrDescriptor: r.ParameterIndexOrDescriptor,
		}
	}
	return out
}

// AsHostClass returns c through types.HostClass's interface shape, for
// use as a ClassType's PatchHostClass argument.
func (c *Class) AsHostClass() types.HostClass { return asHostClass{c} }

// Registry is a name-keyed collection of host classes. The zero value
// is not usable; construct with NewRegistry.
type Registry struct {
	classes map[string]*Class
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// Register adds (or replaces) a class by name. program may be nil for a
// bare class with no encoded members of its own.
func (r *Registry) Register(name string, program *packed.Packed) *Class {
	c := &Class{name: name, program: program}
	r.classes[name] = c
	return c
}

// Lookup returns the registered class by name.
func (r *Registry) Lookup(name string) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Thunk returns a packed.ClassThunk that resolves name lazily against r,
// so a constant pool can reference a class before it's registered (the
// registration order and the constant-pool build order need not agree)
// as long as it's registered before the thunk is actually invoked.
func (r *Registry) Thunk(name string) packed.ClassThunk {
	return func() packed.HostClassRef {
		c, ok := r.classes[name]
		if !ok {
			return nil
		}
		return c
	}
}

// Names returns every registered class name, in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	return names
}
