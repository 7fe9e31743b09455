package reflectvm

import "typegraph/pkg/types"

// opExtends pops right, pops left, and pushes literal(isExtendable(left,
// right)) — spec.md §4.1.3 `extends`.
func (proc *Processor) opExtends(prog *Program) error {
	right, err := prog.PopType()
	if err != nil {
		return err
	}
	left, err := prog.PopType()
	if err != nil {
		return err
	}
	prog.Push(types.NewLiteralType(types.LitBool(types.IsExtendable(left, right))))
	return nil
}

// opCondition pops right, left, condition, then the frame, and pushes
// left if condition is truthy.
func (proc *Processor) opCondition(prog *Program) error {
	right, err := prog.PopType()
	if err != nil {
		return err
	}
	left, err := prog.PopType()
	if err != nil {
		return err
	}
	condition, err := prog.PopType()
	if err != nil {
		return err
	}
	if _, err := proc.popFrame(prog); err != nil {
		return err
	}
	if isTruthy(condition) {
		prog.Push(left)
	} else {
		prog.Push(right)
	}
	return nil
}

func isTruthy(t types.Type) bool {
	switch v := t.(type) {
	case *types.LiteralType:
		return v.Value.Truthy()
	case *types.Primitive:
		return v.Kind() != types.KindNever && v.Kind() != types.KindUndefined && v.Kind() != types.KindNull
	default:
		return t != nil
	}
}

// opJumpCondition pops the condition and calls L or R. Both operands (L
// and R) have already been consumed by the time this runs, so the
// return address is entryPC+2 — the instruction after both — not
// entryPC+1.
func (proc *Processor) opJumpCondition(prog *Program, entryPC, left, right int) error {
	condition, err := prog.PopType()
	if err != nil {
		return err
	}
	if isTruthy(condition) {
		proc.call(prog, left, entryPC, 2)
	} else {
		proc.call(prog, right, entryPC, 2)
	}
	return nil
}
