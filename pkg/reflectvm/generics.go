package reflectvm

import (
	"typegraph/pkg/packed"
	"typegraph/pkg/types"
)

// opTypeParameter implements spec.md §4.1.3 `typeParameter N`: read the
// next instantiation slot from frame.inputs, advancing variables; when
// unbound, push a typeParameter sentinel instead.
func (proc *Processor) opTypeParameter(prog *Program, pool int) error {
	name, _ := prog.InitialStack[pool].(string)
	return proc.bindTypeParameter(prog, name, nil)
}

// opTypeParameterDefault is the same, but pops a default value to
// substitute when no instantiation argument was supplied.
func (proc *Processor) opTypeParameterDefault(prog *Program, pool int) error {
	def, err := prog.PopType()
	if err != nil {
		return err
	}
	name, _ := prog.InitialStack[pool].(string)
	return proc.bindTypeParameter(prog, name, def)
}

func (proc *Processor) bindTypeParameter(prog *Program, name string, def types.Type) error {
	frame := prog.Frame
	if frame == nil {
		return errStackUnderflow(prog)
	}
	slot := frame.Variables
	frame.Variables++
	if slot < len(frame.Inputs) && frame.Inputs[slot] != nil {
		prog.Push(frame.Inputs[slot])
		return nil
	}
	if def != nil {
		prog.Push(def)
		return nil
	}
	prog.Push(types.NewTypeParameterType(name))
	return nil
}

// opVar pushes `never` and reserves a local slot in the active frame.
func (proc *Processor) opVar(prog *Program) error {
	if prog.Frame != nil {
		prog.Frame.Variables++
	}
	prog.Push(types.Never)
	return nil
}

// opLoads implements `loads F, I`: read a variable from a lexical frame
// ancestor F slots up, variable index I.
func (proc *Processor) opLoads(prog *Program, depth, index int) error {
	frame := prog.Frame
	if frame == nil {
		return errStackUnderflow(prog)
	}
	target := frame.AtDepth(depth)
	if target == nil {
		return errStackUnderflow(prog)
	}
	v := prog.At(target.StartIndex + 1 + index)
	t, ok := v.(types.Type)
	if !ok {
		return errStackUnderflow(prog)
	}
	prog.Push(t)
	return nil
}

// opArg implements `arg N`: read a call argument below the current frame.
func (proc *Processor) opArg(prog *Program, n int) error {
	frame := prog.Frame
	if frame == nil {
		return errStackUnderflow(prog)
	}
	v := prog.At(frame.StartIndex - n)
	t, ok := v.(types.Type)
	if !ok {
		return errStackUnderflow(prog)
	}
	prog.Push(t)
	return nil
}

// opInfer pushes an infer node whose Resolve writes the matched type
// back into the (F, I) variable slot — spec.md §4.1.3 `infer F, I`.
func (proc *Processor) opInfer(prog *Program, depth, index int) error {
	frame := prog.Frame
	if frame == nil {
		return errStackUnderflow(prog)
	}
	target := frame.AtDepth(depth)
	if target == nil {
		return errStackUnderflow(prog)
	}
	slotIdx := target.StartIndex + 1 + index
	infer := types.NewInferType("T", depth, index, func(t types.Type) {
		if slotIdx >= 0 && slotIdx < len(prog.Stack) {
			prog.Stack[slotIdx] = t
		}
	})
	prog.Push(infer)
	return nil
}

func (proc *Processor) opJump(prog *Program, target int) error {
	prog.PC = target
	return nil
}

func (proc *Processor) opCall(prog *Program, entryPC, target int) error {
	proc.call(prog, target, entryPC, 1)
	return nil
}

// opInline implements `inline P`: resolve initialStack[P] — a *Packed, a
// packed.Thunk returning one, or 0 meaning self-reference to this
// program's own resultType — and push the resolved type. Self-reference
// (a pool value of 0) is pushed directly from resultType since it names "this
// program", not a nested one to run.
func (proc *Processor) opInline(prog *Program, pool int) error {
	raw := prog.InitialStack[pool]
	carrier, object, isSelf, err := resolveInlineTarget(prog, raw)
	if err != nil {
		return err
	}
	if isSelf {
		prog.Push(prog.ResultType)
		return nil
	}
	result, err := proc.enterProgram(prog, carrier, nil, object)
	if err != nil {
		return err
	}
	if carrier != nil {
		proc.current.reuseCached = true
	}
	if result != nil {
		prog.Push(result)
	}
	return nil
}

// opInlineCall implements `inlineCall P, N`: pop N arguments (a popped
// `never` in position i forwards program.inputs[i], for generic
// forwarding), then instantiate the referenced program with them.
// Self-reference with N>0 re-runs the current program (recursive
// generic call).
func (proc *Processor) opInlineCall(prog *Program, pool, n int) error {
	args := make([]types.Type, n)
	for i := n - 1; i >= 0; i-- {
		t, err := prog.PopType()
		if err != nil {
			return err
		}
		if t.Kind() == types.KindNever && i < len(prog.Inputs) {
			t = prog.Inputs[i]
		}
		args[i] = t
	}

	raw := prog.InitialStack[pool]
	carrier, object, isSelf, err := resolveInlineTarget(prog, raw)
	if err != nil {
		return err
	}
	if isSelf {
		carrier = prog.carrier
		object = prog.Object
	}

	// enterProgram tags a cycle placeholder's pending instantiation args
	// itself (so they survive PatchFrom); a fresh nested program needs the
	// same args stashed here since it isn't running yet.
	result, err := proc.enterProgram(prog, carrier, args, object)
	if err != nil {
		return err
	}
	if result != nil {
		prog.Push(result)
		return nil
	}
	proc.current.pendingTypeArguments = args
	return nil
}

func tagInstantiation(t types.Type, args []types.Type) {
	if t == nil || len(args) == 0 {
		return
	}
	t.SetTypeArguments(args)
}

// resolveInlineTarget interprets an inline/inlineCall pool entry: a
// *packed.Packed directly, a packed.Thunk returning one (or a
// packed.HostClassRef carrying one), or the literal 0 meaning
// self-reference to this program.
func resolveInlineTarget(prog *Program, raw any) (carrier *packed.Packed, object any, isSelf bool, err error) {
	switch v := raw.(type) {
	case int:
		if v == 0 {
			return nil, nil, true, nil
		}
		return nil, nil, false, errStackUnderflow(prog)
	case float64:
		if v == 0 {
			return nil, nil, true, nil
		}
		return nil, nil, false, errStackUnderflow(prog)
	case *packed.Packed:
		return v, v, false, nil
	case packed.HostClassRef:
		p := v.Program()
		if p == nil {
			return nil, nil, false, errStackUnderflow(prog)
		}
		return p, v, false, nil
	case packed.Thunk:
		resolved := v()
		return resolveInlineTarget(prog, resolved)
	default:
		return nil, nil, false, errStackUnderflow(prog)
	}
}
