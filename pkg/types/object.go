package types

import "strings"

// Visibility is the member-visibility modifier tracked on properties and
// parameters (spec.md §3 `property`/`parameter` payload).
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// PropertyType is `property(name, type, optional?, readonly?, visibility,
// default?, description?)`.
type PropertyType struct {
	Meta
	Name        string
	PropType    Type
	Optional    bool
	ReadOnly    bool
	Visibility  Visibility
	Default     any
	Description string
}

func (p *PropertyType) Kind() Kind { return KindProperty }
func (p *PropertyType) String() string {
	s := p.Name
	if p.Optional {
		s += "?"
	}
	return s + ": " + p.PropType.String()
}
func (p *PropertyType) typeNode() {}
func (p *PropertyType) Equals(other Type) bool {
	o, ok := other.(*PropertyType)
	if !ok || p == nil || o == nil {
		return p == o
	}
	return p.Name == o.Name && p.Optional == o.Optional && p.ReadOnly == o.ReadOnly &&
		p.Visibility == o.Visibility && p.PropType.Equals(o.PropType)
}

// PropertySignatureType is `propertySignature(...)` — the interface-level
// counterpart of PropertyType (no visibility, used inside objectLiteral
// and mappedType results).
type PropertySignatureType struct {
	Meta
	Name        string
	PropType    Type
	Optional    bool
	ReadOnly    bool
	Default     any
	Description string
}

func (p *PropertySignatureType) Kind() Kind { return KindPropertySig }
func (p *PropertySignatureType) String() string {
	s := p.Name
	if p.Optional {
		s += "?"
	}
	return s + ": " + p.PropType.String()
}
func (p *PropertySignatureType) typeNode() {}
func (p *PropertySignatureType) Equals(other Type) bool {
	o, ok := other.(*PropertySignatureType)
	if !ok || p == nil || o == nil {
		return p == o
	}
	return p.Name == o.Name && p.Optional == o.Optional && p.ReadOnly == o.ReadOnly &&
		p.PropType.Equals(o.PropType)
}

// ParameterType is `parameter(name, type, optional?, readonly?,
// visibility?, default?)`.
type ParameterType struct {
	Meta
	Name       string
	ParamType  Type
	Optional   bool
	ReadOnly   bool
	Visibility Visibility // "" when the parameter carries no promotion modifier
	Default    any
}

func (p *ParameterType) Kind() Kind { return KindParameter }
func (p *ParameterType) String() string {
	s := p.Name
	if p.Optional {
		s += "?"
	}
	return s + ": " + p.ParamType.String()
}
func (p *ParameterType) typeNode() {}
func (p *ParameterType) Equals(other Type) bool {
	o, ok := other.(*ParameterType)
	if !ok || p == nil || o == nil {
		return p == o
	}
	return p.Name == o.Name && p.Optional == o.Optional && p.ParamType.Equals(o.ParamType)
}

// IndexSignatureType is `indexSignature(index, type)`.
type IndexSignatureType struct {
	Meta
	IndexType Type // the key type, e.g. string/number/a template literal
	ValueType Type
}

func (i *IndexSignatureType) Kind() Kind { return KindIndexSignature }
func (i *IndexSignatureType) String() string {
	return "[key: " + i.IndexType.String() + "]: " + i.ValueType.String()
}
func (i *IndexSignatureType) typeNode() {}
func (i *IndexSignatureType) Equals(other Type) bool {
	o, ok := other.(*IndexSignatureType)
	if !ok || i == nil || o == nil {
		return i == o
	}
	return i.IndexType.Equals(o.IndexType) && i.ValueType.Equals(o.ValueType)
}

// FunctionType is `function(name?, parameters[], return)`.
type FunctionType struct {
	Meta
	Name       string
	Parameters []*ParameterType
	Return     Type
}

func (f *FunctionType) Kind() Kind { return KindFunction }
func (f *FunctionType) String() string {
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i] = p.String()
	}
	ret := "void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return "(" + strings.Join(parts, ", ") + ") => " + ret
}
func (f *FunctionType) typeNode() {}
func (f *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || f == nil || o == nil {
		return f == o
	}
	if len(f.Parameters) != len(o.Parameters) {
		return false
	}
	for i, p := range f.Parameters {
		if !p.Equals(o.Parameters[i]) {
			return false
		}
	}
	if (f.Return == nil) != (o.Return == nil) {
		return false
	}
	return f.Return == nil || f.Return.Equals(o.Return)
}

// MethodType is `method(...)` — a function attached to a class instance.
type MethodType struct {
	Meta
	Name       string
	Parameters []*ParameterType
	Return     Type
	Visibility Visibility
	Abstract   bool
}

func (m *MethodType) Kind() Kind { return KindMethod }
func (m *MethodType) String() string {
	return m.Name + (&FunctionType{Parameters: m.Parameters, Return: m.Return}).String()
}
func (m *MethodType) typeNode() {}
func (m *MethodType) Equals(other Type) bool {
	o, ok := other.(*MethodType)
	if !ok || m == nil || o == nil {
		return m == o
	}
	return m.Name == o.Name && (&FunctionType{Parameters: m.Parameters, Return: m.Return}).
		Equals(&FunctionType{Parameters: o.Parameters, Return: o.Return})
}

// MethodSignatureType is `methodSignature(...)` — the interface-level
// counterpart of MethodType.
type MethodSignatureType struct {
	Meta
	Name       string
	Parameters []*ParameterType
	Return     Type
	Optional   bool
}

func (m *MethodSignatureType) Kind() Kind { return KindMethodSignature }
func (m *MethodSignatureType) String() string {
	return m.Name + (&FunctionType{Parameters: m.Parameters, Return: m.Return}).String()
}
func (m *MethodSignatureType) typeNode() {}
func (m *MethodSignatureType) Equals(other Type) bool {
	o, ok := other.(*MethodSignatureType)
	if !ok || m == nil || o == nil {
		return m == o
	}
	return m.Name == o.Name && (&FunctionType{Parameters: m.Parameters, Return: m.Return}).
		Equals(&FunctionType{Parameters: o.Parameters, Return: o.Return})
}

// namedMember extracts a member's dedup key (its name), or "" for members
// (index signatures) that don't dedup by name.
func namedMember(m Type) string {
	switch t := m.(type) {
	case *PropertyType:
		return t.Name
	case *PropertySignatureType:
		return t.Name
	case *MethodType:
		return t.Name
	case *MethodSignatureType:
		return t.Name
	default:
		return ""
	}
}

// ObjectLiteralType is `objectLiteral(members[])`.
type ObjectLiteralType struct {
	Meta
	Members []Type
}

func NewObjectLiteralType() *ObjectLiteralType {
	return &ObjectLiteralType{}
}

// AddMember inserts m, replacing any existing named member with the same
// name (spec.md §4.1.3 `objectLiteral`: "Duplicates by name are
// replaced."). Unnamed members (index signatures) are always appended.
func (o *ObjectLiteralType) AddMember(m Type) {
	m = adopt(m, o)
	name := namedMember(m)
	if name != "" {
		for i, existing := range o.Members {
			if namedMember(existing) == name {
				o.Members[i] = m
				return
			}
		}
	}
	o.Members = append(o.Members, m)
}

// IndexSignatures returns the index-signature members, in insertion order.
func (o *ObjectLiteralType) IndexSignatures() []*IndexSignatureType {
	var sigs []*IndexSignatureType
	for _, m := range o.Members {
		if sig, ok := m.(*IndexSignatureType); ok {
			sigs = append(sigs, sig)
		}
	}
	return sigs
}

func (o *ObjectLiteralType) Kind() Kind { return KindObjectLiteral }
func (o *ObjectLiteralType) String() string {
	parts := make([]string, len(o.Members))
	for i, m := range o.Members {
		parts[i] = m.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}
func (o *ObjectLiteralType) typeNode() {}
func (o *ObjectLiteralType) Equals(other Type) bool {
	ot, ok := other.(*ObjectLiteralType)
	if !ok || o == nil || ot == nil {
		return o == ot
	}
	if len(o.Members) != len(ot.Members) {
		return false
	}
	// Structural equality is order-independent on member name, matching
	// object-literal semantics elsewhere in this package (unions,
	// intersections): compare as a set, not a sequence.
	used := make([]bool, len(ot.Members))
	for _, m := range o.Members {
		found := false
		for j, om := range ot.Members {
			if !used[j] && m.Equals(om) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// GetMember looks up a named member (property or method, signature or
// concrete) by name — one of the §6.2 "required external helpers"
// (`getMember(type, name)`).
func GetMember(t Type, name string) Type {
	switch ot := t.(type) {
	case *ObjectLiteralType:
		for _, m := range ot.Members {
			if namedMember(m) == name {
				return m
			}
		}
	case *ClassType:
		for _, m := range ot.Members {
			if namedMember(m) == name {
				return m
			}
		}
	}
	return nil
}

// GetAnnotations is the §6.2 accessor `getAnnotations(type)`.
func GetAnnotations(t Type) map[*Symbol][]any {
	if t == nil {
		return nil
	}
	return t.Annotations()
}
