// Package types defines the structural type graph produced by the
// reflection Processor: a tagged variant per spec.md §3, with the
// cross-cutting fields (parent, annotations, decorators, typeArguments,
// typeName, indexAccessOrigin) every node carries.
package types

// Kind tags a Type node's variant, mirroring the "kind" discriminator of
// spec.md §3.
type Kind string

const (
	KindString      Kind = "string"
	KindNumber      Kind = "number"
	KindBoolean     Kind = "boolean"
	KindBigInt      Kind = "bigint"
	KindSymbol      Kind = "symbol"
	KindNull        Kind = "null"
	KindUndefined   Kind = "undefined"
	KindAny         Kind = "any"
	KindUnknown     Kind = "unknown"
	KindVoid        Kind = "void"
	KindNever       Kind = "never"
	KindObject      Kind = "object"
	KindRegExp      Kind = "regexp"
	KindLiteral     Kind = "literal"
	KindArray       Kind = "array"
	KindTuple       Kind = "tuple"
	KindTupleMember Kind = "tupleMember"
	KindRest        Kind = "rest"

	KindObjectLiteral Kind = "objectLiteral"
	KindClass         Kind = "class"
	KindEnum          Kind = "enum"
	KindEnumMember    Kind = "enumMember"

	KindFunction         Kind = "function"
	KindMethod           Kind = "method"
	KindMethodSignature  Kind = "methodSignature"
	KindProperty         Kind = "property"
	KindPropertySig      Kind = "propertySignature"
	KindIndexSignature   Kind = "indexSignature"
	KindParameter        Kind = "parameter"

	KindUnion        Kind = "union"
	KindIntersection Kind = "intersection"
	KindPromise      Kind = "promise"
	KindSet          Kind = "set"
	KindMap          Kind = "map"

	KindTemplateLiteral Kind = "templateLiteral"
	KindTypeParameter   Kind = "typeParameter"
	KindInfer           Kind = "infer"

	KindBuiltin Kind = "builtin"
)

// Type is the interface implemented by every node in the structural type
// graph. All concrete node structs embed Meta, which supplies the
// cross-cutting fields and their accessors, so every Type automatically
// satisfies this interface once it implements Kind/String/Equals.
type Type interface {
	Kind() Kind
	String() string
	Equals(other Type) bool

	GetParent() Type
	SetParent(Type)

	Annotations() map[*Symbol][]any
	AddAnnotation(sym *Symbol, payload any)

	Decorators() []*ObjectLiteralType
	AddDecorator(d *ObjectLiteralType)

	TypeArguments() []Type
	SetTypeArguments([]Type)

	TypeName() string
	SetTypeName(string)

	IndexAccessOrigin() *IndexAccessOrigin
	SetIndexAccessOrigin(*IndexAccessOrigin)

	// typeNode is a marker method: only types defined in this package may
	// satisfy Type, keeping the graph closed (mirrors the teacher's
	// typeNode() marker in pkg/types/types.go).
	typeNode()
}

// IndexAccessOrigin records the container/key pair an indexAccess opcode
// resolved through, kept as diagnostic/identity metadata per spec.md §3.
type IndexAccessOrigin struct {
	Container Type
	Key       Type
}

// Meta is embedded by every concrete node struct to provide the
// cross-cutting fields of spec.md §3 without repeating accessor bodies.
type Meta struct {
	parent            Type
	annotations       map[*Symbol][]any
	decorators        []*ObjectLiteralType
	typeArguments     []Type
	typeName          string
	indexAccessOrigin *IndexAccessOrigin
}

func (m *Meta) GetParent() Type  { return m.parent }
func (m *Meta) SetParent(p Type) { m.parent = p }

func (m *Meta) Annotations() map[*Symbol][]any { return m.annotations }
func (m *Meta) AddAnnotation(sym *Symbol, payload any) {
	if m.annotations == nil {
		m.annotations = make(map[*Symbol][]any)
	}
	m.annotations[sym] = append(m.annotations[sym], payload)
}

func (m *Meta) Decorators() []*ObjectLiteralType       { return m.decorators }
func (m *Meta) AddDecorator(d *ObjectLiteralType)      { m.decorators = append(m.decorators, d) }

func (m *Meta) TypeArguments() []Type          { return m.typeArguments }
func (m *Meta) SetTypeArguments(args []Type)   { m.typeArguments = args }

func (m *Meta) TypeName() string        { return m.typeName }
func (m *Meta) SetTypeName(name string) { m.typeName = name }

func (m *Meta) IndexAccessOrigin() *IndexAccessOrigin         { return m.indexAccessOrigin }
func (m *Meta) SetIndexAccessOrigin(o *IndexAccessOrigin)     { m.indexAccessOrigin = o }

// SetParentOf attaches child to parent's back-pointer, honoring invariant 1
// of spec.md §3 ("every non-root node's parent points to a node whose
// members/subfields contain it") at the single call site callers use when
// inserting a child into a container.
func SetParentOf(child, parent Type) {
	if child == nil || parent == nil {
		return
	}
	child.SetParent(parent)
}

// cloneIfShared returns a fresh, independent clone of t when t is one of
// the process-wide Primitive singletons, or t unchanged otherwise. Used
// everywhere a shared singleton is about to gain per-occurrence state — a
// parent pointer (adopt, below) or an annotation/decorator
// (intersection.go's dominant-primitive and decorator-absorption paths).
func cloneIfShared(t Type) Type {
	if p, ok := t.(*Primitive); ok && IsSharedSingleton(p) {
		return p.clone()
	}
	return t
}

// adopt is what every container constructor actually calls when it takes
// ownership of a member: it behaves like SetParentOf, except it first
// runs child through cloneIfShared. Stamping a parent directly onto a
// shared singleton would leak that pointer's parent into every other use
// of the same primitive anywhere in the process. Callers must use the
// returned Type as the actual member; the original child argument may no
// longer be the one stored in the graph.
func adopt(child, parent Type) Type {
	if child == nil {
		return child
	}
	child = cloneIfShared(child)
	SetParentOf(child, parent)
	return child
}

// Adopt is adopt exported for callers outside this package (pkg/reflectvm's
// member opcodes) that build container nodes whose member fields aren't
// plain []Type slices this package already normalizes through adopt.
func Adopt(child, parent Type) Type {
	return adopt(child, parent)
}

// Primitive represents one of the fundamental, non-composite kinds.
type Primitive struct {
	Meta
	kind Kind
}

func (p *Primitive) Kind() Kind   { return p.kind }
func (p *Primitive) String() string { return string(p.kind) }
func (p *Primitive) typeNode()      {}
func (p *Primitive) Equals(other Type) bool {
	// Structural: adopt clones a shared singleton into a fresh, otherwise
	// identical *Primitive whenever it becomes a container member (see
	// adopt/IsSharedSingleton), so pointer equality alone would call two
	// occurrences of the same primitive kind unequal.
	o, ok := other.(*Primitive)
	return ok && p.kind == o.kind
}

// clone returns a fresh *Primitive of the same kind, detached from the
// shared singleton instance. Used by adopt whenever a singleton is about
// to gain per-occurrence state (a parent pointer, annotations,
// decorators) that must not leak into every other use of the primitive.
func (p *Primitive) clone() *Primitive { return &Primitive{kind: p.kind} }

// Singleton primitive instances. Opcode handlers push these directly
// rather than allocating fresh nodes, per spec.md §4.1.3's "push a fresh
// node of the corresponding kind" read literally for kinds with no payload.
var (
	String    = &Primitive{kind: KindString}
	Number    = &Primitive{kind: KindNumber}
	Boolean   = &Primitive{kind: KindBoolean}
	BigInt    = &Primitive{kind: KindBigInt}
	SymbolT   = &Primitive{kind: KindSymbol}
	Null      = &Primitive{kind: KindNull}
	Undefined = &Primitive{kind: KindUndefined}
	Any       = &Primitive{kind: KindAny}
	Unknown   = &Primitive{kind: KindUnknown}
	Void      = &Primitive{kind: KindVoid}
	Never     = &Primitive{kind: KindNever}
	Object    = &Primitive{kind: KindObject}
	RegExpT   = &Primitive{kind: KindRegExp}
)

// sharedSingletons is the identity set IsSharedSingleton tests against —
// every Primitive instance a builder pushes directly onto the operand
// stack (spec.md §4.1.3's primitive builders) rather than allocating a
// fresh node per occurrence.
var sharedSingletons = map[*Primitive]bool{
	String: true, Number: true, Boolean: true, BigInt: true, SymbolT: true,
	Null: true, Undefined: true, Any: true, Unknown: true, Void: true,
	Never: true, Object: true, RegExpT: true,
}

// IsSharedSingleton reports whether t is literally one of the
// process-wide Primitive singletons above, as opposed to an
// independently allocated *Primitive of the same kind (e.g. one adopt
// already cloned). Only the former is unsafe to mutate in place.
func IsSharedSingleton(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && sharedSingletons[p]
}

// NewUnknown allocates a fresh, independent unknown node. Cycle breaking
// (spec.md §4.1.5) hands these out as placeholders instead of the Unknown
// singleton, because a placeholder must be mutated in place later without
// corrupting every other use of "unknown" in the program.
func NewUnknown() Type {
	return &Placeholder{kind: KindUnknown}
}

// Placeholder is a mutable stand-in returned while a cyclic resolution is
// still in flight (spec.md §4.1.5). Its fields are overwritten in place
// when the producing program completes; everything that was handed a
// *Placeholder keeps referring to the same node afterward.
type Placeholder struct {
	Meta
	kind     Kind
	resolved Type // non-nil once patched; String/Equals delegate to it
}

func (p *Placeholder) Kind() Kind {
	if p.resolved != nil {
		return p.resolved.Kind()
	}
	return p.kind
}
func (p *Placeholder) String() string {
	if p.resolved != nil {
		return p.resolved.String()
	}
	return string(p.kind)
}
func (p *Placeholder) typeNode() {}
func (p *Placeholder) Equals(other Type) bool {
	if p.resolved != nil {
		return p.resolved.Equals(other)
	}
	if op, ok := other.(*Placeholder); ok {
		return p == op
	}
	return false
}

// PatchFrom overwrites this placeholder in place with src's shape,
// preserving identity for every reference handed out before completion
// (spec.md §4.1.4/§4.1.5: "assigned into program.resultType in place").
func (p *Placeholder) PatchFrom(src Type) {
	p.resolved = src
	if meta := metaOf(src); meta != nil {
		p.Meta = *meta
	}
}

// metaOf extracts the embedded Meta from any concrete node, used only by
// placeholder patching — ordinary code should go through the Type
// interface's accessors instead.
func metaOf(t Type) *Meta {
	if mh, ok := t.(metaAccessor); ok {
		return mh.metaPtr()
	}
	return nil
}

// metaAccessor is satisfied implicitly by every struct embedding Meta,
// since Go promotes Meta's unexported metaPtr method.
type metaAccessor interface {
	metaPtr() *Meta
}

func (m *Meta) metaPtr() *Meta { return m }
