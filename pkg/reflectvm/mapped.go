package reflectvm

import "typegraph/pkg/types"

// Mapped-type modifier bits for `mappedType F, M` (spec.md §4.4:
// "Apply modifier bits M: optional, −optional, readonly, −readonly").
// The encoding isn't specified further, so each of the four named
// modifiers gets its own bit.
const (
	modifierAddOptional    = 1 << 0
	modifierRemoveOptional = 1 << 1
	modifierAddReadOnly    = 1 << 2
	modifierRemoveReadOnly = 1 << 3
)

func isPrimitiveKeyDomain(t types.Type) bool {
	switch t.Kind() {
	case types.KindString, types.KindNumber, types.KindSymbol:
		return true
	}
	return false
}

// opMappedType implements spec.md §4.4. Like distribute, its Loop state
// lives on the enclosing frame.
func (proc *Processor) opMappedType(prog *Program, entryPC, bodyPC, modifiers int) error {
	frame := prog.Frame
	if frame == nil {
		return errStackUnderflow(prog)
	}

	if frame.MappedType == nil {
		keySource, err := prog.PopType()
		if err != nil {
			return err
		}
		frame.MappedType = &Loop{Members: expansionMembers(keySource)}
	} else {
		value, err := prog.PopType()
		if err != nil {
			return err
		}
		key := frame.MappedType.CurrentKey
		if member := buildMappedMember(key, value, modifiers); member != nil {
			frame.MappedType.Accumulated = append(frame.MappedType.Accumulated, member)
		}
	}

	loop := frame.MappedType
	key, ok := loop.Next()
	if !ok {
		members := loop.Accumulated
		prog.Frame = frame.Previous
		ol := types.NewObjectLiteralType()
		for _, m := range members {
			ol.AddMember(m)
		}
		prog.Push(ol)
		return nil
	}

	loop.CurrentKey = key
	slot := frame.StartIndex + 1
	for slot >= len(prog.Stack) {
		prog.Stack = append(prog.Stack, nil)
	}
	prog.Stack[slot] = key
	proc.call(prog, bodyPC, entryPC, -1)
	return nil
}

func buildMappedMember(key, value types.Type, modifiers int) types.Type {
	if isPrimitiveKeyDomain(key) {
		sig := &types.IndexSignatureType{}
		sig.IndexType = types.Adopt(key, sig)
		sig.ValueType = types.Adopt(value, sig)
		return sig
	}
	if value.Kind() == types.KindNever {
		return nil
	}

	var sig *types.PropertySignatureType
	if existing, ok := value.(*types.PropertySignatureType); ok {
		sig = existing
	} else {
		name := ""
		if lit, ok := key.(*types.LiteralType); ok && lit.Value.Str != nil {
			name = *lit.Value.Str
		}
		sig = &types.PropertySignatureType{Name: name}
		sig.PropType = types.Adopt(value, sig)
	}

	if modifiers&modifierAddOptional != 0 {
		sig.Optional = true
	}
	if modifiers&modifierRemoveOptional != 0 {
		sig.Optional = false
	}
	if modifiers&modifierAddReadOnly != 0 {
		sig.ReadOnly = true
	}
	if modifiers&modifierRemoveReadOnly != 0 {
		sig.ReadOnly = false
	}
	return sig
}
