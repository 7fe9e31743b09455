package types

// IsExtendable is the §6.2 helper `isExtendable(left, right) → bool`,
// structural assignability used by the `extends` opcode. Grounded on the
// teacher's IsAssignable (pkg/types/assignable.go): any/unknown/never
// absorption, identity and Equals shortcuts, then union/intersection
// distribution, then structural matching for object-literal/class
// candidates (every member `right` requires must be present and
// extendable on `left`).
func IsExtendable(left, right Type) bool {
	if left == nil || right == nil {
		return false
	}
	if right.Kind() == KindAny || right.Kind() == KindUnknown {
		return true
	}
	if left.Kind() == KindNever {
		return true
	}
	if left.Kind() == KindAny {
		// `any` extends everything, `never` included, mirroring the
		// teacher's treatment of Any as assignable to/from anything.
		return true
	}
	if left.Equals(right) {
		return true
	}

	if rl, ok := right.(*LiteralType); ok {
		if ll, ok := left.(*LiteralType); ok {
			return ll.Equals(rl)
		}
		return false
	}
	if ll, ok := left.(*LiteralType); ok {
		return IsExtendable(ll.Value.Widened(), right)
	}

	if lu, ok := left.(*UnionType); ok {
		for _, m := range lu.Types {
			if !IsExtendable(m, right) {
				return false
			}
		}
		return true
	}
	if ru, ok := right.(*UnionType); ok {
		for _, m := range ru.Types {
			if IsExtendable(left, m) {
				return true
			}
		}
		return false
	}

	if ri, ok := right.(*IntersectionType); ok {
		for _, m := range ri.Types {
			if !IsExtendable(left, m) {
				return false
			}
		}
		return true
	}
	if li, ok := left.(*IntersectionType); ok {
		for _, m := range li.Types {
			if IsExtendable(m, right) {
				return true
			}
		}
		return false
	}

	switch r := right.(type) {
	case *ArrayType:
		l, ok := left.(*ArrayType)
		return ok && IsExtendable(l.ElementType, r.ElementType)
	case *ObjectLiteralType:
		return structurallyExtends(left, r.Members)
	case *ClassType:
		return structurallyExtends(left, r.Members)
	case *Primitive:
		return left.Kind() == r.Kind()
	}
	return false
}

// structurallyExtends checks that left carries every member right
// requires, each extendable in turn (optional members on right may be
// absent from left).
func structurallyExtends(left Type, wanted []Type) bool {
	for _, w := range wanted {
		name := namedMember(w)
		if name == "" {
			continue // index signatures aren't required structurally here
		}
		got := GetMember(left, name)
		if got == nil {
			if isOptionalMember(w) {
				continue
			}
			return false
		}
		if !IsExtendable(memberType(got), memberType(w)) {
			return false
		}
	}
	return true
}

func isOptionalMember(m Type) bool {
	switch t := m.(type) {
	case *PropertyType:
		return t.Optional
	case *PropertySignatureType:
		return t.Optional
	case *MethodSignatureType:
		return t.Optional
	default:
		return false
	}
}

func memberType(m Type) Type {
	switch t := m.(type) {
	case *PropertyType:
		return t.PropType
	case *PropertySignatureType:
		return t.PropType
	case *MethodType:
		return &FunctionType{Parameters: t.Parameters, Return: t.Return}
	case *MethodSignatureType:
		return &FunctionType{Parameters: t.Parameters, Return: t.Return}
	default:
		return m
	}
}
