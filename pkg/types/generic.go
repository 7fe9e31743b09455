package types

// TypeParameterType is `typeParameter(name)`: the `typeParameter`/
// `typeParameterDefault` opcodes read the next instantiation slot from
// the frame's inputs and substitute it directly; this sentinel is only
// pushed when a call site left the slot unbound, so generic code that
// never resolves a concrete argument still has a node to reason about
// (spec.md §4.1.3 "when unbound, push a `typeParameter` sentinel and
// record `any` into the program's typeParameters").
type TypeParameterType struct {
	Meta
	Name string
}

func NewTypeParameterType(name string) *TypeParameterType {
	return &TypeParameterType{Name: name}
}

func (t *TypeParameterType) Kind() Kind     { return KindTypeParameter }
func (t *TypeParameterType) String() string { return t.Name }
func (t *TypeParameterType) typeNode()      {}
func (t *TypeParameterType) Equals(other Type) bool {
	o, ok := other.(*TypeParameterType)
	if !ok || t == nil || o == nil {
		return t == o
	}
	return t.Name == o.Name
}

// InferType is `infer(set: fn)` (spec.md §4.1.3 `infer F, I`): the node
// pushed in place of the `infer X` position inside an extends-check's
// "check" type. Its Set closure writes the type matched at this position
// back into the (F, I) variable slot the conditional opcode family reads
// when it later evaluates the "true" branch.
type InferType struct {
	Meta
	Name       string
	FrameDepth int
	Slot       int
	Set        func(Type)
}

func NewInferType(name string, frameDepth, slot int, set func(Type)) *InferType {
	return &InferType{Name: name, FrameDepth: frameDepth, Slot: slot, Set: set}
}

func (t *InferType) Kind() Kind     { return KindInfer }
func (t *InferType) String() string { return "infer " + t.Name }
func (t *InferType) typeNode()      {}
func (t *InferType) Equals(other Type) bool {
	o, ok := other.(*InferType)
	if !ok || t == nil || o == nil {
		return t == o
	}
	return t.FrameDepth == o.FrameDepth && t.Slot == o.Slot
}

// Resolve invokes the infer node's setter with the matched type, the
// step the `extends` opcode performs when structural matching walks
// past an `infer` position.
func (t *InferType) Resolve(matched Type) {
	if t.Set != nil {
		t.Set(matched)
	}
}
