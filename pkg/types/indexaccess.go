package types

// IndexAccess is the §6.2 helper `indexAccess(container, key) → Type`,
// implementing `T[K]`. For an object-literal/class container, a literal
// string key looks up that member's type; a union key distributes across
// its members; `keyof T` style unions resolve one property each. Falls
// back to an index signature's value type when no named member matches.
func IndexAccess(container, key Type) Type {
	if u, ok := key.(*UnionType); ok {
		parts := make([]Type, 0, len(u.Types))
		for _, k := range u.Types {
			parts = append(parts, IndexAccess(container, k))
		}
		return NewUnionType(parts...)
	}

	lit, isLiteral := key.(*LiteralType)
	if isLiteral && lit.Value.Str != nil {
		if m := GetMember(container, *lit.Value.Str); m != nil {
			return memberType(m)
		}
		if sig := indexSignatureFor(container, String); sig != nil {
			return sig.ValueType
		}
		return Never
	}

	if key.Kind() == KindNumber {
		if arr, ok := container.(*ArrayType); ok {
			return arr.ElementType
		}
		if tup, ok := container.(*TupleType); ok {
			return NewUnionType(tupleElementTypes(tup)...)
		}
		if sig := indexSignatureFor(container, Number); sig != nil {
			return sig.ValueType
		}
	}

	if key.Kind() == KindString {
		if sig := indexSignatureFor(container, String); sig != nil {
			return sig.ValueType
		}
	}

	return Never
}

func tupleElementTypes(t *TupleType) []Type {
	out := make([]Type, 0, len(t.Members))
	for _, m := range t.Members {
		if tm, ok := m.(*TupleMemberType); ok {
			out = append(out, tm.ElementType)
			continue
		}
		if rm, ok := m.(*RestType); ok {
			out = append(out, rm.ElementType)
			continue
		}
		out = append(out, m)
	}
	return out
}

func indexSignatureFor(container Type, keyKind Type) *IndexSignatureType {
	var sigs []*IndexSignatureType
	switch t := container.(type) {
	case *ObjectLiteralType:
		sigs = t.IndexSignatures()
	case *ClassType:
		for _, m := range t.Members {
			if sig, ok := m.(*IndexSignatureType); ok {
				sigs = append(sigs, sig)
			}
		}
	}
	for _, sig := range sigs {
		if sig.IndexType.Kind() == keyKind.Kind() {
			return sig
		}
	}
	return nil
}

// Keyof implements the `keyof` opcode: for objectLiteral/class, the union
// of member-name literals (spec.md §4.1.3 `keyof`, TESTABLE PROPERTIES
// S6).
func Keyof(t Type) Type {
	var names []Type
	switch ot := t.(type) {
	case *ObjectLiteralType:
		for _, m := range ot.Members {
			if name := namedMember(m); name != "" {
				names = append(names, NewLiteralType(LitString(name)))
			} else if sig, ok := m.(*IndexSignatureType); ok {
				names = append(names, sig.IndexType)
			}
		}
	case *ClassType:
		for _, m := range ot.Members {
			if name := namedMember(m); name != "" {
				names = append(names, NewLiteralType(LitString(name)))
			}
		}
	default:
		return Never
	}
	if len(names) == 0 {
		return Never
	}
	return NewUnionType(names...)
}
