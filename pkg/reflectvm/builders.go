package reflectvm

import "typegraph/pkg/types"

// primitiveBuilders maps the zero-operand primitive opcodes to the
// singleton/constructor they push (spec.md §4.1.3 "Primitive builders").
// TypedArray variants are added to this table during package init.
var primitiveBuilders = map[string]func() types.Type{
	"string":      func() types.Type { return types.String },
	"number":      func() types.Type { return types.Number },
	"boolean":     func() types.Type { return types.Boolean },
	"bigint":      func() types.Type { return types.BigInt },
	"symbol":      func() types.Type { return types.SymbolT },
	"null":        func() types.Type { return types.Null },
	"undefined":   func() types.Type { return types.Undefined },
	"any":         func() types.Type { return types.Any },
	"unknown":     func() types.Type { return types.NewUnknown() },
	"void":        func() types.Type { return types.Void },
	"never":       func() types.Type { return types.Never },
	"object":      func() types.Type { return types.Object },
	"regexp":      func() types.Type { return types.RegExpT },
	"date":        func() types.Type { return types.NewDateType() },
	"arrayBuffer": func() types.Type { return types.NewArrayBufferType() },
}

func init() {
	for _, name := range types.TypedArrayKinds {
		n := name
		primitiveBuilders[n] = func() types.Type { return types.NewTypedArrayType(n) }
	}
}

func (proc *Processor) opLiteral(prog *Program, pool int) error {
	v := prog.InitialStack[pool]
	lit, ok := v.(types.LiteralValue)
	if !ok {
		lit = literalValueOf(v)
	}
	prog.Push(types.NewLiteralType(lit))
	return nil
}

// literalValueOf adapts a raw constant-pool scalar into a LiteralValue
// when the pool wasn't pre-encoded as one (spec.md §6.1's constant pool
// carries host-native scalars).
func literalValueOf(v any) types.LiteralValue {
	switch t := v.(type) {
	case string:
		return types.LitString(t)
	case float64:
		return types.LitNumber(t)
	case bool:
		return types.LitBool(t)
	default:
		return types.LitString("")
	}
}

// opNumberBrand pushes `{number, brand: B}` (spec.md §4.1.3): a Number
// primitive annotated with the brand name via its TypeName field.
func (proc *Processor) opNumberBrand(prog *Program, pool int) error {
	brand, _ := prog.InitialStack[pool].(string)
	branded := &types.Primitive{}
	*branded = *types.Number
	branded.SetTypeName(brand)
	prog.Push(branded)
	return nil
}

func (proc *Processor) opWiden(prog *Program) error {
	v, err := prog.PopType()
	if err != nil {
		return err
	}
	prog.Push(types.GetWidenedType(v))
	return nil
}
