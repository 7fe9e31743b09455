package types

// PromiseType is `promise(type)` — one of the built-in generic
// instantiations spec.md §4.1.3's `promise` opcode produces.
type PromiseType struct {
	Meta
	ElementType Type
}

func NewPromiseType(elem Type) *PromiseType {
	p := &PromiseType{}
	p.ElementType = adopt(elem, p)
	return p
}

func (p *PromiseType) Kind() Kind     { return KindPromise }
func (p *PromiseType) String() string { return "Promise<" + p.ElementType.String() + ">" }
func (p *PromiseType) typeNode()      {}
func (p *PromiseType) Equals(other Type) bool {
	o, ok := other.(*PromiseType)
	if !ok || p == nil || o == nil {
		return p == o
	}
	return p.ElementType.Equals(o.ElementType)
}

// SetType and MapType realize the `set`/`map` built-in generic
// instantiations alongside `promise` (spec.md §4.1.3 "produce the
// built-in generic instantiations with the appropriate argument
// positions").
type SetType struct {
	Meta
	ElementType Type
}

func NewSetType(elem Type) *SetType {
	s := &SetType{}
	s.ElementType = adopt(elem, s)
	return s
}
func (s *SetType) Kind() Kind     { return KindSet }
func (s *SetType) String() string { return "Set<" + s.ElementType.String() + ">" }
func (s *SetType) typeNode()      {}
func (s *SetType) Equals(other Type) bool {
	o, ok := other.(*SetType)
	if !ok || s == nil || o == nil {
		return s == o
	}
	return s.ElementType.Equals(o.ElementType)
}

type MapType struct {
	Meta
	KeyType   Type
	ValueType Type
}

func NewMapType(key, value Type) *MapType {
	m := &MapType{}
	m.KeyType = adopt(key, m)
	m.ValueType = adopt(value, m)
	return m
}
func (m *MapType) Kind() Kind { return KindMap }
func (m *MapType) String() string {
	return "Map<" + m.KeyType.String() + ", " + m.ValueType.String() + ">"
}
func (m *MapType) typeNode() {}
func (m *MapType) Equals(other Type) bool {
	o, ok := other.(*MapType)
	if !ok || m == nil || o == nil {
		return m == o
	}
	return m.KeyType.Equals(o.KeyType) && m.ValueType.Equals(o.ValueType)
}
