package reflectvm

import (
	"typegraph/pkg/packed"
	"typegraph/pkg/rerrors"
	"typegraph/pkg/types"
)

// opObjectLiteral implements spec.md §4.1.3 `objectLiteral`: pop the
// frame, spread any nested objectLiteral members at the front (these
// arose from `extends` clauses), intercept decorator object-literals
// into annotations instead of spreading them, then add the frame's own
// members — later members override earlier ones by name via AddMember.
func (proc *Processor) opObjectLiteral(prog *Program) error {
	members, err := proc.popFrame(prog)
	if err != nil {
		return err
	}
	ol := types.NewObjectLiteralType()
	var spread []types.Type
	var own []types.Type
	for _, m := range members {
		nested, ok := m.(*types.ObjectLiteralType)
		if !ok {
			own = append(own, m)
			continue
		}
		if _, matched := proc.decorators.Match(nested); matched {
			proc.decorators.Absorb(ol, nested)
			continue
		}
		spread = append(spread, nested.Members...)
	}
	for _, m := range spread {
		ol.AddMember(m)
	}
	for _, m := range own {
		ol.AddMember(m)
	}
	prog.Push(ol)
	return nil
}

// opClass implements spec.md §4.1.3 `class`: pop the frame, promote
// constructor parameters carrying a visibility modifier into properties,
// gather generic arguments from the frame's inputs, and leave classType
// provisionally Object (patched on program completion, §4.1.5).
func (proc *Processor) opClass(prog *Program) error {
	frame := prog.Frame
	members, err := proc.popFrame(prog)
	if err != nil {
		return err
	}
	ct := types.NewClassType()
	for _, m := range members {
		if ctor, ok := m.(*types.MethodType); ok && ctor.Name == "constructor" {
			for _, p := range ctor.Parameters {
				if p.Visibility == "" {
					continue
				}
				ct.AddMember(&types.PropertyType{
					Name:       p.Name,
					PropType:   p.ParamType,
					Optional:   p.Optional,
					ReadOnly:   p.ReadOnly,
					Visibility: p.Visibility,
				})
			}
		}
		ct.AddMember(m)
	}
	if frame != nil {
		ct.SetTypeArguments(frame.Inputs)
	}
	prog.Push(ct)
	return nil
}

// opClassExtends pops N types and attaches them as TOS's super-class
// type arguments.
func (proc *Processor) opClassExtends(prog *Program, n int) error {
	args := make([]types.Type, n)
	for i := n - 1; i >= 0; i-- {
		t, err := prog.PopType()
		if err != nil {
			return err
		}
		args[i] = t
	}
	if prog.StackPointer < 0 {
		return errStackUnderflow(prog)
	}
	ct, ok := prog.Stack[prog.StackPointer].(*types.ClassType)
	if !ok {
		return errStackUnderflow(prog)
	}
	ct.ExtendsArguments = args
	return nil
}

// opClassReference implements spec.md §4.1.3 `classReference`: resolve
// the host class thunk, pop its instantiation arguments from the
// current frame, and either emit a bare class node (no attached
// program) or recursively reflect the referenced class, yielding to its
// nested program via the shared dispatch loop.
func (proc *Processor) opClassReference(prog *Program, pool int) error {
	args, err := proc.popFrame(prog)
	if err != nil {
		return err
	}
	raw := prog.InitialStack[pool]
	hostRef, err := resolveHostClassThunk(raw, pool)
	if err != nil {
		return err
	}

	classProgram := hostRef.Program()
	if classProgram == nil {
		bare := types.NewClassType()
		bare.PatchHostClass(adaptHostClass(hostRef))
		types.ApplyClassDecorators(bare)
		bare.SetTypeArguments(args)
		prog.Push(bare)
		return nil
	}

	result, err := proc.enterProgram(prog, classProgram, args, hostRef)
	if err != nil {
		return err
	}
	if result != nil {
		prog.Push(result)
	}
	return nil
}

func resolveHostClassThunk(raw any, slot int) (packed.HostClassRef, error) {
	switch v := raw.(type) {
	case packed.HostClassRef:
		return v, nil
	case packed.ClassThunk:
		ref := v()
		if ref == nil {
			return nil, rerrors.NewUnresolvedClassThunkError(slot)
		}
		return ref, nil
	default:
		return nil, rerrors.NewUnresolvedClassThunkError(slot)
	}
}

func (proc *Processor) opEnum(prog *Program) error {
	members, err := proc.popFrame(prog)
	if err != nil {
		return err
	}
	et := types.NewEnumType("")
	for _, m := range members {
		em, ok := m.(*types.EnumMemberType)
		if !ok {
			continue
		}
		if em.HasDefault {
			v := em.Default
			et.AddMember(em.Name, &v)
		} else {
			et.AddMember(em.Name, nil)
		}
	}
	prog.Push(et)
	return nil
}

// opEnumMember always pops a value: an explicit default (pushed as a
// literal) or a `never` sentinel standing in for "no default, continue
// the auto-increment sequence" — mirroring the pop-then-name convention
// every other named-member opcode (`property`, `parameter`, ...) uses.
func (proc *Processor) opEnumMember(prog *Program, pool int) error {
	v, err := prog.PopType()
	if err != nil {
		return err
	}
	name, _ := prog.InitialStack[pool].(string)
	m := &types.EnumMemberType{Name: name}
	if lit, ok := v.(*types.LiteralType); ok {
		m.Default = lit.Value
		m.HasDefault = true
	}
	prog.Push(m)
	return nil
}

func (proc *Processor) opUnion(prog *Program) error {
	members, err := proc.popFrame(prog)
	if err != nil {
		return err
	}
	prog.Push(types.NewUnionType(members...))
	return nil
}

func (proc *Processor) opIntersection(prog *Program) error {
	members, err := proc.popFrame(prog)
	if err != nil {
		return err
	}
	prog.Push(types.NewIntersectionType(proc.decorators, members...))
	return nil
}

func (proc *Processor) opFunction(prog *Program, pool int) error {
	members, err := proc.popFrame(prog)
	if err != nil {
		return err
	}
	params, ret := parametersAndReturn(members)
	name, _ := prog.InitialStack[pool].(string)
	prog.Push(&types.FunctionType{Name: name, Parameters: params, Return: ret})
	return nil
}
