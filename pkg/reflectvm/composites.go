package reflectvm

import "typegraph/pkg/types"

func (proc *Processor) opArray(prog *Program) error {
	elem, err := prog.PopType()
	if err != nil {
		return err
	}
	prog.Push(types.NewArrayType(elem))
	return nil
}

func (proc *Processor) opTuple(prog *Program) error {
	members, err := proc.popFrame(prog)
	if err != nil {
		return err
	}
	prog.Push(types.NewTupleType(spliceRestTuples(members)))
	return nil
}

// spliceRestTuples implements the "a rest whose payload is a concrete
// tuple is spliced in place" rule of spec.md §4.1.3.
func spliceRestTuples(members []types.Type) []types.Type {
	result := make([]types.Type, 0, len(members))
	for _, m := range members {
		if rest, ok := m.(*types.RestType); ok {
			if inner, ok := rest.ElementType.(*types.TupleType); ok {
				result = append(result, inner.Members...)
				continue
			}
		}
		result = append(result, m)
	}
	return result
}

func (proc *Processor) opTupleMember(prog *Program) error {
	t, err := prog.PopType()
	if err != nil {
		return err
	}
	prog.Push(&types.TupleMemberType{ElementType: t})
	return nil
}

func (proc *Processor) opNamedTupleMember(prog *Program, pool int) error {
	t, err := prog.PopType()
	if err != nil {
		return err
	}
	name, _ := prog.InitialStack[pool].(string)
	prog.Push(&types.TupleMemberType{ElementType: t, Name: name})
	return nil
}

func (proc *Processor) opRest(prog *Program) error {
	t, err := prog.PopType()
	if err != nil {
		return err
	}
	prog.Push(&types.RestType{ElementType: t})
	return nil
}

func (proc *Processor) opSet(prog *Program) error {
	elem, err := prog.PopType()
	if err != nil {
		return err
	}
	prog.Push(types.NewSetType(elem))
	return nil
}

func (proc *Processor) opMap(prog *Program) error {
	value, err := prog.PopType()
	if err != nil {
		return err
	}
	key, err := prog.PopType()
	if err != nil {
		return err
	}
	prog.Push(types.NewMapType(key, value))
	return nil
}

func (proc *Processor) opPromise(prog *Program) error {
	elem, err := prog.PopType()
	if err != nil {
		return err
	}
	prog.Push(types.NewPromiseType(elem))
	return nil
}

// opTemplateLiteral implements spec.md §4.1.3 `templateLiteral`: pop the
// current frame's types and delegate to the Cartesian-product builder.
func (proc *Processor) opTemplateLiteral(prog *Program) error {
	parts, err := proc.popFrame(prog)
	if err != nil {
		return err
	}
	prog.Push(types.BuildTemplateLiteral(parts))
	return nil
}
