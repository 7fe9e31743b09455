package reflectvm

import (
	"typegraph/pkg/packed"
	"typegraph/pkg/types"
)

// Program is one activation of a Packed carrier's decoded ops against an
// operand stack (spec.md §4.1.1). Grounded on the teacher's per-closure
// execution state in vm.go's run() (cached code/constants/registers
// pulled out of the active frame), reinterpreted around an explicit
// operand stack and a linked Previous chain instead of a fixed frame
// array, since spec.md §4.1.4 requires "logical recursion implemented
// iteratively" across nested programs, not just nested calls within one.
type Program struct {
	Ops          []int
	InitialStack []any

	Stack        []any
	StackPointer int

	PC  int
	End int

	Frame *Frame

	Inputs []types.Type

	// ResultType is pre-allocated and mutated in place on completion,
	// enabling cycle breaking (spec.md §4.1.5).
	ResultType types.Type
	// ResultTypes collects additional placeholder references handed out
	// for the same object while this program was still running; all are
	// patched alongside ResultType.
	ResultTypes []types.Type

	// Object is the host artefact (class, function, or raw *packed.Packed)
	// that sourced this program.
	Object   any
	Previous *Program

	carrier *packed.Packed

	// narrowTo, when non-nil, is the literal the final stack-top value
	// should be narrowed back to via NarrowOriginalLiteral (§4.1.4) if it
	// widened to the same primitive during this run.
	narrowTo *types.LiteralType

	reuseCached bool

	// pendingTypeArguments holds instantiation arguments an inlineCall
	// handed this program before it started running. They're applied to
	// ResultType in finishProgram, after PatchFrom — tagging the
	// placeholder any earlier would be overwritten, since PatchFrom
	// replaces the placeholder's whole Meta (including typeArguments)
	// with the resolved node's.
	pendingTypeArguments []types.Type

	// pendingResultArgs mirrors pendingTypeArguments for the entries in
	// ResultTypes: a cycle reference handed out with nonzero instantiation
	// arguments needs those reapplied after its own PatchFrom, for the
	// same reason.
	pendingResultArgs map[*types.Placeholder][]types.Type

	// resumeParent controls whether finishProgram pushes this program's
	// result onto Previous's stack (the intra-VM classReference/inline
	// chaining case) or leaves Previous untouched because its caller is
	// consuming the result directly via a Go return value instead (an
	// out-of-band recursive reflect() call, §4.5).
	resumeParent bool
}

// NewProgram allocates a program over ops/initialStack decoded from
// carrier, with a fresh unknown placeholder as its ResultType (§4.1.5).
func NewProgram(carrier *packed.Packed, ops []int, initialStack []any, inputs []types.Type, object any, previous *Program) *Program {
	return &Program{
		Ops:          ops,
		InitialStack: initialStack,
		StackPointer: -1,
		End:          len(ops),
		Inputs:       inputs,
		ResultType:   types.NewUnknown(),
		Object:       object,
		Previous:     previous,
		carrier:      carrier,
		resumeParent: true,
	}
}

func (p *Program) Push(v any) {
	if p.StackPointer+1 < len(p.Stack) {
		p.Stack[p.StackPointer+1] = v
	} else {
		p.Stack = append(p.Stack, v)
	}
	p.StackPointer++
}

func (p *Program) Pop() (any, error) {
	if p.StackPointer < 0 {
		return nil, errStackUnderflow(p)
	}
	v := p.Stack[p.StackPointer]
	p.StackPointer--
	return v, nil
}

func (p *Program) PopType() (types.Type, error) {
	v, err := p.Pop()
	if err != nil {
		return nil, err
	}
	t, ok := v.(types.Type)
	if !ok {
		return nil, errStackUnderflow(p)
	}
	return t, nil
}

func (p *Program) At(idx int) any {
	if idx < 0 || idx >= len(p.Stack) {
		return nil
	}
	return p.Stack[idx]
}

func (p *Program) Done() bool { return p.PC >= p.End }
