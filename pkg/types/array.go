package types

import "strings"

// ArrayType is `array(elem)` (spec.md §3).
type ArrayType struct {
	Meta
	ElementType Type
}

func NewArrayType(elem Type) *ArrayType {
	a := &ArrayType{}
	a.ElementType = adopt(elem, a)
	return a
}

func (a *ArrayType) Kind() Kind     { return KindArray }
func (a *ArrayType) String() string { return a.ElementType.String() + "[]" }
func (a *ArrayType) typeNode()      {}
func (a *ArrayType) Equals(other Type) bool {
	o, ok := other.(*ArrayType)
	if !ok || a == nil || o == nil {
		return a == o
	}
	return a.ElementType.Equals(o.ElementType)
}

// TupleMemberType is `tupleMember(type, name?, optional?)`.
type TupleMemberType struct {
	Meta
	ElementType Type
	Name        string
	Optional    bool
}

func (m *TupleMemberType) Kind() Kind { return KindTupleMember }
func (m *TupleMemberType) String() string {
	s := m.ElementType.String()
	if m.Name != "" {
		s = m.Name + ": " + s
	}
	if m.Optional {
		s += "?"
	}
	return s
}
func (m *TupleMemberType) typeNode() {}
func (m *TupleMemberType) Equals(other Type) bool {
	o, ok := other.(*TupleMemberType)
	if !ok || m == nil || o == nil {
		return m == o
	}
	return m.Name == o.Name && m.Optional == o.Optional && m.ElementType.Equals(o.ElementType)
}

// RestType is `rest(type)`: the trailing `...T` tuple element or rest
// parameter.
type RestType struct {
	Meta
	ElementType Type
}

func (r *RestType) Kind() Kind     { return KindRest }
func (r *RestType) String() string { return "..." + r.ElementType.String() }
func (r *RestType) typeNode()      {}
func (r *RestType) Equals(other Type) bool {
	o, ok := other.(*RestType)
	if !ok || r == nil || o == nil {
		return r == o
	}
	return r.ElementType.Equals(o.ElementType)
}

// TupleType is `tuple(members[])`, each member a *TupleMemberType or a
// trailing *RestType (spec.md §4.1.3: "a rest whose payload is a concrete
// tuple is spliced in place" is handled by the opcode handler, not here).
type TupleType struct {
	Meta
	Members []Type
}

func NewTupleType(members []Type) *TupleType {
	t := &TupleType{Members: make([]Type, len(members))}
	for i, m := range members {
		t.Members[i] = adopt(m, t)
	}
	return t
}

func (t *TupleType) Kind() Kind { return KindTuple }
func (t *TupleType) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (t *TupleType) typeNode() {}
func (t *TupleType) Equals(other Type) bool {
	o, ok := other.(*TupleType)
	if !ok || t == nil || o == nil {
		return t == o
	}
	if len(t.Members) != len(o.Members) {
		return false
	}
	for i, m := range t.Members {
		if !m.Equals(o.Members[i]) {
			return false
		}
	}
	return true
}
