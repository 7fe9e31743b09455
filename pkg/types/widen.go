package types

// GetWidenedType is the §6.2 helper `widenLiteral(literalType) → Type`
// (spec.md GLOSSARY "Widening"): a literal collapses to its base
// primitive; everything else passes through unchanged. Grounded on the
// teacher's GetWidenedType (pkg/types/types.go).
func GetWidenedType(t Type) Type {
	lit, ok := t.(*LiteralType)
	if !ok {
		return t
	}
	return lit.Value.Widened()
}

// WidenLiteral is an alias matching spec.md §6.2's exact helper name.
func WidenLiteral(t Type) Type { return GetWidenedType(t) }

// NarrowOriginalLiteral is the §6.2 helper `narrowOriginalLiteral(t)`: if t
// is a *Primitive that was produced by widening a literal during this
// program's run and never subsequently altered, return the original
// literal; otherwise return t unchanged. The Processor calls this only on
// the program's final stack-top value, so the "unless altered" condition
// is enforced by construction (see finishProgram in reflectvm/processor.go).
func NarrowOriginalLiteral(t Type, original *LiteralType) Type {
	if original == nil {
		return t
	}
	if t == original.Value.Widened() {
		return original
	}
	return t
}
