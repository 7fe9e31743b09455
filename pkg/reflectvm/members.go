package reflectvm

import "typegraph/pkg/types"

// unwrapOptionalUnion implements spec.md §4.1.3's "unwrap `T | undefined`
// into `(T, optional=true)`" step shared by `property`/`propertySignature`.
func unwrapOptionalUnion(t types.Type) (types.Type, bool) {
	u, ok := t.(*types.UnionType)
	if !ok {
		return t, false
	}
	var rest []types.Type
	hasUndefined := false
	for _, m := range u.Types {
		if m.Kind() == types.KindUndefined {
			hasUndefined = true
			continue
		}
		rest = append(rest, m)
	}
	if !hasUndefined {
		return t, false
	}
	return types.NewUnionType(rest...), true
}

func (proc *Processor) opProperty(prog *Program, pool int) error {
	t, err := prog.PopType()
	if err != nil {
		return err
	}
	name, _ := prog.InitialStack[pool].(string)
	base, optional := unwrapOptionalUnion(t)
	prop := &types.PropertyType{
		Name:       name,
		Optional:   optional,
		Visibility: types.VisibilityPublic,
	}
	prop.PropType = types.Adopt(base, prop)
	prog.Push(prop)
	return nil
}

func (proc *Processor) opPropertySignature(prog *Program, pool int) error {
	t, err := prog.PopType()
	if err != nil {
		return err
	}
	name, _ := prog.InitialStack[pool].(string)
	base, optional := unwrapOptionalUnion(t)
	sig := &types.PropertySignatureType{
		Name:     name,
		Optional: optional,
	}
	sig.PropType = types.Adopt(base, sig)
	prog.Push(sig)
	return nil
}

func parametersAndReturn(members []types.Type) ([]*types.ParameterType, types.Type) {
	if len(members) == 0 {
		return nil, types.Void
	}
	params := make([]*types.ParameterType, 0, len(members)-1)
	for _, m := range members[:len(members)-1] {
		if p, ok := m.(*types.ParameterType); ok {
			params = append(params, p)
		}
	}
	return params, members[len(members)-1]
}

func (proc *Processor) opMethod(prog *Program, pool int) error {
	members, err := proc.popFrame(prog)
	if err != nil {
		return err
	}
	name, _ := prog.InitialStack[pool].(string)
	params, ret := parametersAndReturn(members)
	prog.Push(&types.MethodType{Name: name, Parameters: params, Return: ret, Visibility: types.VisibilityPublic})
	return nil
}

func (proc *Processor) opMethodSignature(prog *Program, pool int) error {
	members, err := proc.popFrame(prog)
	if err != nil {
		return err
	}
	name, _ := prog.InitialStack[pool].(string)
	params, ret := parametersAndReturn(members)
	prog.Push(&types.MethodSignatureType{Name: name, Parameters: params, Return: ret})
	return nil
}

func (proc *Processor) opParameter(prog *Program, pool int) error {
	t, err := prog.PopType()
	if err != nil {
		return err
	}
	name, _ := prog.InitialStack[pool].(string)
	base, optional := unwrapOptionalUnion(t)
	param := &types.ParameterType{Name: name, Optional: optional}
	param.ParamType = types.Adopt(base, param)
	prog.Push(param)
	return nil
}

// Modifier opcodes mutate the member on TOS in place.
func (proc *Processor) opOptional(prog *Program) error  { return mutateTOS(prog, setOptional) }
func (proc *Processor) opReadOnly(prog *Program) error  { return mutateTOS(prog, setReadOnly) }
func (proc *Processor) opPublic(prog *Program) error    { return mutateTOS(prog, setVisibility(types.VisibilityPublic)) }
func (proc *Processor) opProtected(prog *Program) error { return mutateTOS(prog, setVisibility(types.VisibilityProtected)) }
func (proc *Processor) opPrivate(prog *Program) error   { return mutateTOS(prog, setVisibility(types.VisibilityPrivate)) }
func (proc *Processor) opAbstract(prog *Program) error  { return mutateTOS(prog, setAbstract) }

func mutateTOS(prog *Program, fn func(types.Type)) error {
	if prog.StackPointer < 0 {
		return errStackUnderflow(prog)
	}
	t, ok := prog.Stack[prog.StackPointer].(types.Type)
	if !ok {
		return errStackUnderflow(prog)
	}
	fn(t)
	return nil
}

func setOptional(t types.Type) {
	switch m := t.(type) {
	case *types.PropertyType:
		m.Optional = true
	case *types.PropertySignatureType:
		m.Optional = true
	case *types.ParameterType:
		m.Optional = true
	case *types.MethodSignatureType:
		m.Optional = true
	}
}

func setReadOnly(t types.Type) {
	switch m := t.(type) {
	case *types.PropertyType:
		m.ReadOnly = true
	case *types.PropertySignatureType:
		m.ReadOnly = true
	case *types.ParameterType:
		m.ReadOnly = true
	}
}

func setVisibility(v types.Visibility) func(types.Type) {
	return func(t types.Type) {
		switch m := t.(type) {
		case *types.PropertyType:
			m.Visibility = v
		case *types.ParameterType:
			m.Visibility = v
		case *types.MethodType:
			m.Visibility = v
		}
	}
}

func setAbstract(t types.Type) {
	if m, ok := t.(*types.MethodType); ok {
		m.Abstract = true
	}
}

func (proc *Processor) opDefaultValue(prog *Program, pool int) error {
	v := prog.InitialStack[pool]
	return mutateTOS(prog, func(t types.Type) {
		switch m := t.(type) {
		case *types.PropertyType:
			m.Default = v
		case *types.PropertySignatureType:
			m.Default = v
		case *types.ParameterType:
			m.Default = v
		}
	})
}

func (proc *Processor) opDescription(prog *Program, pool int) error {
	desc, _ := prog.InitialStack[pool].(string)
	return mutateTOS(prog, func(t types.Type) {
		switch m := t.(type) {
		case *types.PropertyType:
			m.Description = desc
		case *types.PropertySignatureType:
			m.Description = desc
		}
	})
}

func (proc *Processor) opIndexSignature(prog *Program) error {
	valueType, err := prog.PopType()
	if err != nil {
		return err
	}
	indexType, err := prog.PopType()
	if err != nil {
		return err
	}
	sig := &types.IndexSignatureType{}
	sig.IndexType = types.Adopt(indexType, sig)
	sig.ValueType = types.Adopt(valueType, sig)
	prog.Push(sig)
	return nil
}
