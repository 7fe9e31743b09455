package reflectvm

import "typegraph/pkg/types"

// expansionMembers mirrors pkg/types' unexported expansionOf: a union's
// members, or the type itself as a one-element slice.
func expansionMembers(t types.Type) []types.Type {
	if u, ok := t.(*types.UnionType); ok {
		return u.Types
	}
	return []types.Type{t}
}

// opDistribute implements spec.md §4.3's distributive conditional loop.
// Its iteration state (the Loop) lives on the enclosing frame, which
// must already be open (the conditional's own `frame` opcode) — the
// first pass installs it, every pass after a `call(bodyPC, −1)` return
// collects the body's result and advances.
func (proc *Processor) opDistribute(prog *Program, entryPC, bodyPC int) error {
	frame := prog.Frame
	if frame == nil {
		return errStackUnderflow(prog)
	}

	if frame.DistributiveLoop == nil {
		over, err := prog.PopType()
		if err != nil {
			return err
		}
		frame.DistributiveLoop = &Loop{Members: expansionMembers(over)}
	} else {
		result, err := prog.PopType()
		if err != nil {
			return err
		}
		if result.Kind() != types.KindNever {
			frame.DistributiveLoop.Accumulated = append(frame.DistributiveLoop.Accumulated, result)
		}
	}

	loop := frame.DistributiveLoop
	member, ok := loop.Next()
	if !ok {
		acc := loop.Accumulated
		prog.Frame = frame.Previous
		prog.Push(types.NewUnionType(acc...))
		return nil
	}

	slot := frame.StartIndex + 1
	for slot >= len(prog.Stack) {
		prog.Stack = append(prog.Stack, nil)
	}
	prog.Stack[slot] = member
	proc.call(prog, bodyPC, entryPC, -1)
	return nil
}
