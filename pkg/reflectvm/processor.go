package reflectvm

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"typegraph/pkg/packed"
	"typegraph/pkg/rerrors"
	"typegraph/pkg/types"
)

// Processor is the reflection VM (spec.md §4.1, §5): "strictly
// single-threaded, cooperative... a singleton per process with a
// mutable program chain; there is no concurrent reentry." Grounded on
// the teacher's VM struct (a single mutable interpreter instance walked
// by one dispatch loop), generalized from the teacher's fixed
// `frames [MaxFrames]CallFrame` array to a linked *Program chain per
// spec.md §4.1.1, since reflection programs nest arbitrarily deep across
// distinct Packed carriers rather than within one function's call stack.
type Processor struct {
	mu         sync.Mutex
	current    *Program
	decorators *types.DecoratorRegistry
	inflight   singleflight.Group
}

// NewProcessor constructs an isolated Processor for testability
// (spec.md §9 design note: "allow constructing an isolated Processor...
// global access is a convenience, not a requirement").
func NewProcessor(decorators *types.DecoratorRegistry) *Processor {
	if decorators == nil {
		decorators = types.DefaultDecoratorRegistry()
	}
	return &Processor{decorators: decorators}
}

var defaultProcessor = NewProcessor(types.DefaultDecoratorRegistry())

// Default returns the process-wide singleton Processor (spec.md §5
// "Processor is a singleton per process").
func Default() *Processor { return defaultProcessor }

// ReflectOptions mirrors spec.md §6.3's `opts` parameter.
type ReflectOptions struct {
	ReuseCached bool
}

// Reflect is the §6.3 entry point `reflect(object, inputs, opts)`.
// object is a *packed.Packed or anything satisfying packed.HostClassRef
// with an attached program. Concurrent calls that share the same carrier,
// inputs, and options collapse onto a single in-flight resolution via
// singleflight (spec.md §5's port note: "interning must be guarded by a
// single-writer lock with double-checked lookup" — the VM's own mutex is
// that single writer; singleflight avoids queuing duplicate callers
// behind it only to redo work the first caller already finished).
func (proc *Processor) Reflect(object any, inputs []types.Type, opts ReflectOptions) (types.Type, error) {
	key := reflectKey(object, inputs, opts)
	v, err, _ := proc.inflight.Do(key, func() (any, error) {
		proc.mu.Lock()
		defer proc.mu.Unlock()
		return proc.reflect(object, inputs, opts)
	})
	if err != nil {
		return nil, err
	}
	return v.(types.Type), nil
}

// reflectKey identifies a Reflect call for singleflight collapsing.
// Pointer identity of the carrier/inputs is enough: distinct generic
// instantiations pass distinct type-argument values and so never
// collapse onto each other (spec.md §8 property 3, never sharing a
// reference across generic instantiations).
func reflectKey(object any, inputs []types.Type, opts ReflectOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%p:%t", object, opts.ReuseCached)
	for _, in := range inputs {
		fmt.Fprintf(&b, ":%p", in)
	}
	return b.String()
}

// reflect is Reflect's body without the lock, so opcode handlers that
// already hold proc.mu (the Value Inferer's function/class case, §4.5)
// can recurse into it without deadlocking a non-reentrant mutex.
func (proc *Processor) reflect(object any, inputs []types.Type, opts ReflectOptions) (types.Type, error) {
	carrier, hostRef, err := resolveCarrier(object)
	if err != nil {
		return nil, err
	}

	if opts.ReuseCached && len(inputs) == 0 && carrier.CachedTypeOK {
		if t, ok := carrier.CachedType.(types.Type); ok {
			return t, nil
		}
	}

	outer := proc.current
	result, err := proc.enterProgram(outer, carrier, inputs, firstNonNil(hostRef, object))
	if err != nil {
		return nil, err
	}
	if result != nil {
		return result, nil
	}
	nested := proc.current
	nested.reuseCached = opts.ReuseCached
	if outer != nil {
		// A call made while already mid-dispatch of another program (the
		// Value Inferer's "function carrying an attached program" case,
		// §4.5, reached via typeof) must not auto-resume outer by pushing
		// onto its stack — outer's own opcode handler consumes this Go
		// return value directly instead.
		nested.resumeParent = false
	}

	if err := proc.runLoop(outer); err != nil {
		return nil, err
	}
	return nested.ResultType, nil
}

// vmReflector adapts Processor to pkg/infer's Reflector interface
// without exporting the lock-free reflect method.
type vmReflector struct{ proc *Processor }

func (r vmReflector) Reflect(object any, inputs []types.Type) (types.Type, error) {
	return r.proc.reflect(object, inputs, ReflectOptions{})
}

// ResolveRuntimeType is §6.3's `resolveRuntimeType(object, inputs)` —
// `reflect` with cache reuse always on.
func (proc *Processor) ResolveRuntimeType(object any, inputs []types.Type) (types.Type, error) {
	return proc.Reflect(object, inputs, ReflectOptions{ReuseCached: true})
}

func firstNonNil(hostRef packed.HostClassRef, object any) any {
	if hostRef != nil {
		return hostRef
	}
	return object
}

// resolveCarrier extracts the *packed.Packed to run from object, per
// spec.md §7 "Missing type program": object is a Packed directly, or a
// host class/function carrying one via packed.HostClassRef.
func resolveCarrier(object any) (*packed.Packed, packed.HostClassRef, error) {
	switch v := object.(type) {
	case *packed.Packed:
		return v, nil, nil
	case packed.HostClassRef:
		prog := v.Program()
		if prog == nil {
			return nil, nil, rerrors.NewMissingProgramError(object)
		}
		return prog, v, nil
	default:
		return nil, nil, rerrors.NewMissingProgramError(object)
	}
}

// findActive walks the running program chain looking for one already
// executing against carrier — the cycle-detection check of spec.md
// §4.1.5 ("a program whose source object is already on the active
// program chain").
func (proc *Processor) findActive(carrier *packed.Packed) *Program {
	for p := proc.current; p != nil; p = p.Previous {
		if p.carrierRef() == carrier {
			return p
		}
	}
	return nil
}

func (p *Program) carrierRef() *packed.Packed { return p.carrier }

// runLoop is the main dispatch loop (spec.md §4.1.4): iterative, not
// recursive, across the whole chained set of programs, "to avoid host
// stack overflow on deeply nested types." It runs until proc.current
// returns to stopAt — nil for a fresh outermost reflect() call, or the
// program that was active when a nested out-of-band reflect() call
// began (so that call's own runLoop invocation doesn't spill over into
// re-dispatching a program already mid-dispatch higher on the Go stack).
func (proc *Processor) runLoop(stopAt *Program) error {
	for proc.current != stopAt {
		prog := proc.current
		if prog.Done() {
			if err := proc.finishProgram(prog); err != nil {
				return err
			}
			continue
		}
		op := packed.OpCode(prog.Ops[prog.PC])
		prog.PC++
		if err := proc.dispatch(prog, op); err != nil {
			return err
		}
	}
	return nil
}

// finishProgram implements §4.1.4's completion step: narrow the final
// stack top, assign it into resultType in place, patch every outstanding
// placeholder reference, cache if eligible, and pop the program chain.
func (proc *Processor) finishProgram(prog *Program) error {
	final, err := prog.PopType()
	if err != nil {
		// A program that never pushed anything terminates with its
		// preallocated unknown placeholder left as-is.
		final = prog.ResultType
	} else {
		final = types.NarrowOriginalLiteral(final, prog.narrowTo)
	}

	if placeholder, ok := prog.ResultType.(*types.Placeholder); ok {
		placeholder.PatchFrom(final)
	} else {
		prog.ResultType = final
	}
	for _, rt := range prog.ResultTypes {
		if placeholder, ok := rt.(*types.Placeholder); ok {
			placeholder.PatchFrom(final)
			tagInstantiation(placeholder, prog.pendingResultArgs[placeholder])
		}
	}
	tagInstantiation(prog.ResultType, prog.pendingTypeArguments)

	proc.patchHostClassIfOwning(prog, final)

	if prog.reuseCached && len(prog.Inputs) == 0 && prog.carrier != nil {
		prog.carrier.CachedType = prog.ResultType
		prog.carrier.CachedTypeOK = true
	}

	proc.current = prog.Previous
	if prog.Previous != nil && prog.resumeParent {
		// A nested program (classReference/inline/inlineCall) resumes its
		// parent with the resolved type sitting on top of the parent's own
		// stack, exactly as a `call` would — the generalization of §4.1.4's
		// "yield to it" to a different Packed carrier instead of the same
		// ops vector.
		prog.Previous.Push(prog.ResultType)
	}
	return nil
}

// enterProgram resolves carrier and either returns an immediately
// available placeholder (cycle detected, per §4.1.5) or links a fresh
// nested Program as proc.current so the main loop runs it before
// resuming outer. Callers that get back (nil, nil) must return from
// their opcode handler without pushing anything themselves — the
// pushed value appears on outer's stack once the nested program
// finishes, via finishProgram's parent-resume step.
func (proc *Processor) enterProgram(outer *Program, carrier *packed.Packed, inputs []types.Type, object any) (types.Type, error) {
	if active := proc.findActive(carrier); active != nil {
		placeholder := types.NewUnknown()
		active.ResultTypes = append(active.ResultTypes, placeholder)
		if ph, ok := placeholder.(*types.Placeholder); ok && len(inputs) > 0 {
			if active.pendingResultArgs == nil {
				active.pendingResultArgs = make(map[*types.Placeholder][]types.Type)
			}
			active.pendingResultArgs[ph] = inputs
		}
		return placeholder, nil
	}
	ops, initialStack, err := packed.Unpack(carrier)
	if err != nil {
		return nil, err
	}
	nested := NewProgram(carrier, ops, initialStack, inputs, object, outer)
	proc.current = nested
	return nil, nil
}

// patchHostClassIfOwning implements spec.md §3 invariant 3 / §4.1.3
// `class`: when the program that produced a class node terminates and
// that program's own Object was a host class handle, the class node's
// placeholder classType is overwritten with the host reference.
func (proc *Processor) patchHostClassIfOwning(prog *Program, final types.Type) {
	hostRef, ok := prog.Object.(packed.HostClassRef)
	if !ok {
		return
	}
	ct, ok := final.(*types.ClassType)
	if !ok || ct.ClassType != types.ObjectPlaceholder {
		return
	}
	ct.PatchHostClass(adaptHostClass(hostRef))
	types.ApplyClassDecorators(ct)
}

func errStackUnderflow(prog *Program) error {
	return rerrors.NewStackUnderflowError("pop", prog.PC)
}
