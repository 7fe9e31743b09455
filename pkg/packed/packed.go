package packed

import "sync"

// Thunk is a deferred constant-pool entry: a function the codec calls
// lazily the first time an opcode references it (default-value thunks,
// `typeof` value thunks per spec.md §4.1.3 `typeof P`).
type Thunk func() any

// ClassThunk resolves to a host class lazily, for `classReference P`
// (spec.md §4.1.3): "resolves a host class (via the deferred thunk at
// initialStack[P])". Returning nil signals the "Unresolved class thunk"
// fail-fast error (spec.md §7).
type ClassThunk func() HostClassRef

// DecoratorRecord mirrors types.DecoratorRecord (spec.md §6.4's deferred
// `{data, property, parameterIndexOrDescriptor}` triple) without importing
// the types package: ParameterIndexOrDescriptor is nil for a property
// target, or an int parameter index for a method-parameter target.
type DecoratorRecord struct {
	Data                       any
	Property                   string
	ParameterIndexOrDescriptor any
}

// HostClassRef is the minimal shape packed.go needs from a host class —
// just enough to detect "has an attached program" and carry its deferred
// decorator records without importing the types package (which would
// create an import cycle, since types.HostClass already plays this role
// for the resolved graph). reflectvm bridges the two via an adapter.
type HostClassRef interface {
	Name() string
	Program() *Packed // nil if the class carries no encoded program
	Decorators() []DecoratorRecord
}

// Packed is the carrier of spec.md §6.1: "an ordered sequence whose last
// element is a string. That string encodes opcode bytes... All preceding
// elements form the initial stack (constant pool)."
type Packed struct {
	mu sync.Mutex

	// Values holds the full ordered sequence as received: constant-pool
	// entries followed by the trailing opcode string. Unpack splits this
	// once and memoizes the split.
	Values []any

	// unpacked caches (ops, stack) across repeated Unpack calls on the
	// same carrier (spec.md §4.1.6: "decoded once per Packed carrier and
	// memoized").
	unpacked   bool
	ops        []int
	initStack  []any

	// cachedType holds the resolution cached under §4.1.6's reuseCached
	// rule; reflectvm's Processor (reflect and finishProgram in
	// processor.go) is the only code that touches these.
	CachedType   any
	CachedTypeOK bool

	// Optional auxiliary caches spec.md §6.1 names (`__is`, `__type`,
	// `__unpack`): a host artefact this carrier is attached to (a class,
	// function, or bare value).
	Owner HostClassRef
}

// New builds a Packed from its constant-pool entries followed by the
// opcode string, matching the wire shape literally (ops string last).
func New(values ...any) *Packed {
	return &Packed{Values: values}
}

// OpsString returns the trailing opcode string, or "" if Values is empty
// or its last element isn't a string (a malformed carrier — the ok
// result is false, and Unpack reports it as an error).
func (p *Packed) OpsString() (string, bool) {
	if len(p.Values) == 0 {
		return "", false
	}
	s, ok := p.Values[len(p.Values)-1].(string)
	return s, ok
}

// ConstantPool returns the preceding elements (everything but the
// trailing opcode string).
func (p *Packed) ConstantPool() []any {
	if len(p.Values) == 0 {
		return nil
	}
	return p.Values[:len(p.Values)-1]
}
