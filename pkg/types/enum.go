package types

import "strings"

// EnumMemberType is `enumMember(name, default?)`.
type EnumMemberType struct {
	Meta
	Name    string
	Default LiteralValue
	HasDefault bool
}

func (e *EnumMemberType) Kind() Kind     { return KindEnumMember }
func (e *EnumMemberType) String() string { return e.Name }
func (e *EnumMemberType) typeNode()      {}
func (e *EnumMemberType) Equals(other Type) bool {
	o, ok := other.(*EnumMemberType)
	if !ok || e == nil || o == nil {
		return e == o
	}
	if e.Name != o.Name || e.HasDefault != o.HasDefault {
		return false
	}
	return !e.HasDefault || e.Default.Equals(o.Default)
}

// EnumType is `enum(map, values[])`.
type EnumType struct {
	Meta
	Name    string
	Members []*EnumMemberType
}

func NewEnumType(name string) *EnumType {
	return &EnumType{Name: name}
}

// AddMember appends a member, resolving its default value when omitted.
// spec.md §9 open question: "numeric continuation (i = v+1) assumes
// integer semantics for any numeric default. Non-integer defaults are
// undefined behavior" — we implement exactly that: auto-increment only
// continues when the previous member's default was a whole-number
// float64; anything else (string default, fractional default, or no
// prior member) requires an explicit default on this member.
func (e *EnumType) AddMember(name string, explicit *LiteralValue) {
	m := &EnumMemberType{Name: name}
	switch {
	case explicit != nil:
		m.Default = *explicit
		m.HasDefault = true
	case len(e.Members) > 0:
		prev := e.Members[len(e.Members)-1]
		if prev.HasDefault && prev.Default.Num != nil && *prev.Default.Num == float64(int64(*prev.Default.Num)) {
			next := *prev.Default.Num + 1
			m.Default = LitNumber(next)
			m.HasDefault = true
		}
	default:
		m.Default = LitNumber(0)
		m.HasDefault = true
	}
	SetParentOf(m, e)
	e.Members = append(e.Members, m)
}

func (e *EnumType) Kind() Kind { return KindEnum }
func (e *EnumType) String() string {
	parts := make([]string, len(e.Members))
	for i, m := range e.Members {
		parts[i] = m.Name
	}
	return "enum " + e.Name + " { " + strings.Join(parts, ", ") + " }"
}
func (e *EnumType) typeNode() {}
func (e *EnumType) Equals(other Type) bool {
	o, ok := other.(*EnumType)
	if !ok || e == nil || o == nil {
		return e == o
	}
	if e.Name != o.Name || len(e.Members) != len(o.Members) {
		return false
	}
	for i, m := range e.Members {
		if !m.Equals(o.Members[i]) {
			return false
		}
	}
	return true
}
