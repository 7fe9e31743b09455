package reflectvm

import "typegraph/pkg/types"

// call implements spec.md §4.1.2's calling convention: push a return
// address, open a frame at the current stack pointer, and jump.
// jumpBackOffset is measured from entryPC — the PC value right after
// this instruction's own opcode byte was fetched, pointing at its first
// inline operand, before any of them were consumed — not from prog.PC
// at the point call() runs. Each caller's offset accounts for its own
// operand count: `call N` (one operand) uses +1 to resume right after N;
// `jumpCondition L, R` (two operands) uses +2 to resume after both;
// `distribute P` and `mappedType F, M` use −1 to resume at entryPC−1,
// the opcode's own byte, so the main loop re-executes the instruction
// for the next loop iteration.
func (proc *Processor) call(prog *Program, targetPC, entryPC, jumpBackOffset int) {
	returnAddr := entryPC + jumpBackOffset
	prog.Push(returnAddr)
	prog.Frame = &Frame{
		StartIndex: prog.StackPointer,
		Inputs:     prog.Inputs,
		Previous:   prog.Frame,
	}
	if prog.Frame.Previous != nil {
		prog.Frame.Index = prog.Frame.Previous.Index + 1
	}
	prog.PC = targetPC
}

// ret implements spec.md §4.1.2 `return`.
func (proc *Processor) ret(prog *Program) error {
	value, err := prog.Pop()
	if err != nil {
		return err
	}
	frame := prog.Frame
	if frame == nil {
		return errStackUnderflow(prog)
	}
	raw := prog.At(frame.StartIndex)
	returnAddr, _ := raw.(int)
	prog.StackPointer = frame.StartIndex - 1
	prog.Push(value)
	prog.Frame = frame.Previous
	prog.PC = returnAddr
	return nil
}

// openFrame implements the bare `frame` opcode: open a new frame at the
// current stack pointer with no associated call.
func (proc *Processor) openFrame(prog *Program) {
	prog.Frame = &Frame{StartIndex: prog.StackPointer, Previous: prog.Frame}
}

// moveFrame pops a value, discards the current frame, and re-pushes it.
func (proc *Processor) moveFrame(prog *Program) error {
	value, err := prog.Pop()
	if err != nil {
		return err
	}
	if prog.Frame != nil {
		prog.StackPointer = prog.Frame.StartIndex
		prog.Frame = prog.Frame.Previous
	}
	prog.Push(value)
	return nil
}

// popFrame yields the values produced inside the active frame —
// `stack[frame.startIndex + frame.variables + 1 .. stackPointer+1]` per
// spec.md §4.1.2 — then discards the frame.
func (proc *Processor) popFrame(prog *Program) ([]types.Type, error) {
	frame := prog.Frame
	if frame == nil {
		return nil, errStackUnderflow(prog)
	}
	lo := frame.StartIndex + frame.Variables + 1
	hi := prog.StackPointer + 1
	if hi < lo {
		hi = lo
	}
	result := make([]types.Type, 0, hi-lo)
	for i := lo; i < hi; i++ {
		if i < 0 || i >= len(prog.Stack) {
			continue
		}
		if t, ok := prog.Stack[i].(types.Type); ok {
			result = append(result, t)
		}
	}
	prog.StackPointer = frame.StartIndex
	prog.Frame = frame.Previous
	return result, nil
}
