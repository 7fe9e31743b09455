// Package infer implements the Value Inferer (spec.md §4.5): given an
// arbitrary runtime value, produce the structural Type that best
// describes it. Because this module has no single host language behind
// it, the value ontology is made explicit here as a small set of
// recognized Go types a caller constructs instead of inferring a
// `reflect.Kind` switch over arbitrary Go values (the module's other
// narrow-interface boundaries — packed.HostClassRef, types.HostClass —
// follow the same "host hands us a shape we recognize" convention).
package infer

import (
	"math/big"
	"sort"

	"typegraph/pkg/packed"
	"typegraph/pkg/types"
)

// Value is any recognized runtime value: a Go scalar (string, float64,
// bool, *big.Int), Undefined, Null, *Regexp, *Func, *DateValue,
// *SetValue, *MapValue, *Constructed, []Value, or map[string]Value for
// a plain object.
type Value = any

type Undefined struct{}
type Null struct{}

// Regexp is a regex literal value — spec.md §4.5 "Regex → literal with
// the regex as payload".
type Regexp struct{ Source, Flags string }

// Func is a function value. Carrier non-nil means it has an attached
// program and should be recursively reflected instead of modeled as an
// untyped function.
type Func struct {
	Name    string
	Carrier packed.HostClassRef
	Arity   int
}

// DateValue, SetValue, MapValue are the built-in class forms spec.md
// §4.5 calls out by name.
type DateValue struct{}
type SetValue struct{ Elements []Value }
type MapValue struct{ Entries []MapEntry }
type MapEntry struct{ Key, Value Value }

// Constructed is an object produced by a constructor that itself
// carries an attached program (spec.md §4.5 "other objects with
// constructors carrying an attached program → reflect the constructor").
type Constructed struct {
	Class     packed.HostClassRef
	Arguments []Value
}

// Reflector is the narrow slice of Processor the Value Inferer needs:
// able to recursively reflect a carrier (a function/class with an
// attached program, or a freshly emitted plain-object program).
type Reflector interface {
	Reflect(object any, inputs []types.Type) (types.Type, error)
}

// Infer implements spec.md §4.5 in full.
func Infer(value Value, r Reflector) (types.Type, error) {
	switch v := value.(type) {
	case nil, Undefined:
		return types.Undefined, nil
	case Null:
		return types.Null, nil
	case string:
		return types.NewLiteralType(types.LitString(v)), nil
	case float64:
		return types.NewLiteralType(types.LitNumber(v)), nil
	case int:
		return types.NewLiteralType(types.LitNumber(float64(v))), nil
	case bool:
		return types.NewLiteralType(types.LitBool(v)), nil
	case *big.Int:
		return types.NewLiteralType(types.LitBigInt(v)), nil
	case *Regexp:
		compiled, err := types.CompileRegExpLiteral(v.Source, v.Flags)
		if err != nil {
			return nil, err
		}
		return types.NewLiteralType(types.LitRegExp(compiled)), nil
	case *Func:
		return inferFunc(v, r)
	case *DateValue:
		return types.NewDateType(), nil
	case *SetValue:
		return inferSet(v, r)
	case *MapValue:
		return inferMap(v, r)
	case *Constructed:
		return inferConstructed(v, r)
	case []Value:
		return inferArray(v, r)
	case map[string]Value:
		return inferPlainObject(v, r)
	default:
		return types.Any, nil
	}
}

func inferFunc(v *Func, r Reflector) (types.Type, error) {
	if v.Carrier != nil && v.Carrier.Program() != nil {
		return r.Reflect(v.Carrier, nil)
	}
	params := make([]*types.ParameterType, v.Arity)
	for i := range params {
		params[i] = &types.ParameterType{Name: "arg" + itoa(i), ParamType: types.Any}
	}
	return &types.FunctionType{Name: v.Name, Parameters: params, Return: types.Any}, nil
}

func inferSet(v *SetValue, r Reflector) (types.Type, error) {
	elem, err := typeInferFromContainer(v.Elements, r)
	if err != nil {
		return nil, err
	}
	return types.NewSetType(elem), nil
}

func inferMap(v *MapValue, r Reflector) (types.Type, error) {
	keys := make([]Value, len(v.Entries))
	values := make([]Value, len(v.Entries))
	for i, e := range v.Entries {
		keys[i] = e.Key
		values[i] = e.Value
	}
	keyType, err := typeInferFromContainer(keys, r)
	if err != nil {
		return nil, err
	}
	valueType, err := typeInferFromContainer(values, r)
	if err != nil {
		return nil, err
	}
	return types.NewMapType(keyType, valueType), nil
}

func inferConstructed(v *Constructed, r Reflector) (types.Type, error) {
	args := make([]types.Type, len(v.Arguments))
	for i, a := range v.Arguments {
		t, err := Infer(a, r)
		if err != nil {
			return nil, err
		}
		args[i] = types.GetWidenedType(t)
	}
	return r.Reflect(v.Class, args)
}

func inferArray(v []Value, r Reflector) (types.Type, error) {
	elem, err := typeInferFromContainer(v, r)
	if err != nil {
		return nil, err
	}
	return types.NewArrayType(elem), nil
}

// typeInferFromContainer is the §4.5 helper: union the widened element
// types of a container's contents.
func typeInferFromContainer(elements []Value, r Reflector) (types.Type, error) {
	if len(elements) == 0 {
		return types.Any, nil
	}
	widened := make([]types.Type, len(elements))
	for i, el := range elements {
		t, err := Infer(el, r)
		if err != nil {
			return nil, err
		}
		widened[i] = types.GetWidenedType(t)
	}
	return types.NewUnionType(widened...), nil
}

// inferPlainObject implements §4.5's deferred-evaluation design: rather
// than inferring each field inline (which would bake in stale `unknown`
// placeholders for any field whose own inference is cyclic), it encodes
// a tiny program — `typeof(value[key]); widen; propertySignature(key)`
// per key, then `objectLiteral` — and schedules it through the
// Reflector so the VM's own cycle-patching machinery covers the fields
// too.
func inferPlainObject(v map[string]Value, r Reflector) (types.Type, error) {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pool := make([]any, 0, len(keys)*2)
	ops := make([]int, 0, 1+len(keys)*5+1)
	ops = append(ops, int(packed.OpFrame))
	for _, key := range keys {
		value := v[key]
		thunkIdx := len(pool)
		pool = append(pool, packed.Thunk(func() any { return value }))
		nameIdx := len(pool)
		pool = append(pool, key)
		ops = append(ops, int(packed.OpTypeof), thunkIdx)
		ops = append(ops, int(packed.OpWiden))
		ops = append(ops, int(packed.OpPropertySignature), nameIdx)
	}
	ops = append(ops, int(packed.OpObjectLiteral))

	carrier, err := packed.Pack(ops, pool)
	if err != nil {
		return nil, err
	}
	return r.Reflect(carrier, nil)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
