package types

import "strings"

// BuiltinType models a host built-in whose shape the graph does not
// otherwise break down structurally — `Date`, `ArrayBuffer`, and the
// TypedArray family (spec.md §4.1.3 "Primitive builders": "each
// TypedArray variant... push a fresh node of the corresponding kind").
// Unlike Promise/Set/Map, these carry no structural member list of their
// own in this graph, only a name and optional generic arguments.
type BuiltinType struct {
	Meta
	Name      string
	Arguments []Type
}

func NewBuiltinType(name string, args ...Type) *BuiltinType {
	b := &BuiltinType{Name: name, Arguments: make([]Type, len(args))}
	for i, a := range args {
		b.Arguments[i] = adopt(a, b)
	}
	return b
}

func (b *BuiltinType) Kind() Kind { return KindBuiltin }
func (b *BuiltinType) String() string {
	if len(b.Arguments) == 0 {
		return b.Name
	}
	parts := make([]string, len(b.Arguments))
	for i, a := range b.Arguments {
		parts[i] = a.String()
	}
	return b.Name + "<" + strings.Join(parts, ", ") + ">"
}
func (b *BuiltinType) typeNode() {}
func (b *BuiltinType) Equals(other Type) bool {
	o, ok := other.(*BuiltinType)
	if !ok || b == nil || o == nil {
		return b == o
	}
	if b.Name != o.Name || len(b.Arguments) != len(o.Arguments) {
		return false
	}
	for i, a := range b.Arguments {
		if !a.Equals(o.Arguments[i]) {
			return false
		}
	}
	return true
}

// Date and ArrayBuffer are the zero-argument built-ins pushed directly
// by the `date`/`arrayBuffer` opcodes.
func NewDateType() *BuiltinType        { return NewBuiltinType("Date") }
func NewArrayBufferType() *BuiltinType { return NewBuiltinType("ArrayBuffer") }

// TypedArrayKinds enumerates the TypedArray variants spec.md §4.1.3
// names as individual primitive builders.
var TypedArrayKinds = []string{
	"Int8Array", "Uint8Array", "Uint8ClampedArray",
	"Int16Array", "Uint16Array",
	"Int32Array", "Uint32Array",
	"Float32Array", "Float64Array",
	"BigInt64Array", "BigUint64Array",
}

func NewTypedArrayType(name string) *BuiltinType { return NewBuiltinType(name) }
