package infer

import (
	"math/big"
	"testing"

	"typegraph/pkg/packed"
	"typegraph/pkg/types"
)

// fakeReflector stubs Reflector for tests that never actually need the
// VM: it records the object/inputs it was asked to reflect and returns a
// fixed type.
type fakeReflector struct {
	result types.Type
	err    error
	object any
	inputs []types.Type
	called bool
}

func (f *fakeReflector) Reflect(object any, inputs []types.Type) (types.Type, error) {
	f.called = true
	f.object = object
	f.inputs = inputs
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestInferUndefinedAndNull(t *testing.T) {
	if got, _ := Infer(nil, nil); got != types.Undefined {
		t.Errorf("expected undefined for nil, got %s", got.String())
	}
	if got, _ := Infer(Undefined{}, nil); got != types.Undefined {
		t.Errorf("expected undefined for Undefined{}, got %s", got.String())
	}
	if got, _ := Infer(Null{}, nil); got != types.Null {
		t.Errorf("expected null, got %s", got.String())
	}
}

func TestInferScalars(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want types.Type
	}{
		{"string", "hi", types.String},
		{"float", 3.5, types.Number},
		{"int", 3, types.Number},
		{"bool", true, types.Boolean},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Infer(c.v, nil)
			if err != nil {
				t.Fatalf("Infer: %v", err)
			}
			lit, ok := got.(*types.LiteralType)
			if !ok {
				t.Fatalf("expected a literal type, got %s", got.String())
			}
			if lit.Value.Widened() != c.want {
				t.Errorf("expected widened %s, got %s", c.want.String(), lit.Value.Widened().String())
			}
		})
	}
}

func TestInferBigInt(t *testing.T) {
	got, err := Infer(big.NewInt(42), nil)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	lit, ok := got.(*types.LiteralType)
	if !ok || lit.Value.Widened() != types.BigInt {
		t.Fatalf("expected a bigint literal, got %s", got.String())
	}
}

func TestInferRegexp(t *testing.T) {
	got, err := Infer(&Regexp{Source: "a+", Flags: "g"}, nil)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	lit, ok := got.(*types.LiteralType)
	if !ok || lit.Value.Regexp == nil {
		t.Fatalf("expected a regexp literal, got %s", got.String())
	}
}

func TestInferUnrecognizedValueIsAny(t *testing.T) {
	got, err := Infer(struct{ X int }{X: 1}, nil)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if got != types.Any {
		t.Errorf("expected any for an unrecognized value, got %s", got.String())
	}
}

func TestInferFuncWithoutCarrier(t *testing.T) {
	got, err := Infer(&Func{Name: "f", Arity: 2}, nil)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	fn, ok := got.(*types.FunctionType)
	if !ok || len(fn.Parameters) != 2 {
		t.Fatalf("expected a 2-parameter function type, got %s", got.String())
	}
	if fn.Parameters[0].Name != "arg0" || fn.Parameters[1].Name != "arg1" {
		t.Errorf("expected positional arg names, got %s, %s", fn.Parameters[0].Name, fn.Parameters[1].Name)
	}
}

type fakeHostClass struct {
	name string
	prog *packed.Packed
}

func (f *fakeHostClass) Name() string                          { return f.name }
func (f *fakeHostClass) Program() *packed.Packed               { return f.prog }
func (f *fakeHostClass) Decorators() []packed.DecoratorRecord { return nil }

func TestInferFuncWithCarrierDelegatesToReflector(t *testing.T) {
	prog, err := packed.Pack([]int{int(packed.OpFunction)}, nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	carrier := &fakeHostClass{name: "f", prog: prog}
	r := &fakeReflector{result: types.Any}
	got, err := Infer(&Func{Name: "f", Carrier: carrier}, r)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if !r.called {
		t.Fatalf("expected the reflector to be invoked for a carrier-bearing function")
	}
	if got != types.Any {
		t.Errorf("expected the reflector's result to be returned unchanged, got %s", got.String())
	}
}

func TestInferDate(t *testing.T) {
	got, err := Infer(&DateValue{}, nil)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	b, ok := got.(*types.BuiltinType)
	if !ok || b.Name != "Date" {
		t.Fatalf("expected a Date builtin, got %s", got.String())
	}
}

func TestInferSetUnionsWidenedElements(t *testing.T) {
	got, err := Infer(&SetValue{Elements: []Value{"a", "b", 1}}, nil)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	st, ok := got.(*types.SetType)
	if !ok {
		t.Fatalf("expected a SetType, got %s", got.String())
	}
	u, ok := st.ElementType.(*types.UnionType)
	if !ok || len(u.Types) != 2 {
		t.Fatalf("expected the element type to be a 2-member union (string | number) widened from the literals, got %s", st.ElementType.String())
	}
}

func TestInferEmptySetIsAny(t *testing.T) {
	got, err := Infer(&SetValue{}, nil)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	st, ok := got.(*types.SetType)
	if !ok || !st.ElementType.Equals(types.Any) {
		t.Fatalf("expected Set<any> for an empty set, got %s", got.String())
	}
}

func TestInferMapKeysAndValues(t *testing.T) {
	got, err := Infer(&MapValue{Entries: []MapEntry{
		{Key: "a", Value: 1},
		{Key: "b", Value: 2},
	}}, nil)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	m, ok := got.(*types.MapType)
	if !ok {
		t.Fatalf("expected a MapType, got %s", got.String())
	}
	if !m.KeyType.Equals(types.String) {
		t.Errorf("expected the map's keys to widen to string, got %s", m.KeyType.String())
	}
	if !m.ValueType.Equals(types.Number) {
		t.Errorf("expected the map's values to widen to number, got %s", m.ValueType.String())
	}
}

func TestInferConstructedDelegatesWithWidenedArguments(t *testing.T) {
	class := &fakeHostClass{name: "Point"}
	r := &fakeReflector{result: types.Any}
	_, err := Infer(&Constructed{Class: class, Arguments: []Value{1.0, "x"}}, r)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if !r.called {
		t.Fatalf("expected the reflector to be invoked with the constructor class")
	}
	if r.object != class {
		t.Errorf("expected the class handle to be forwarded as-is, got %v", r.object)
	}
	if len(r.inputs) != 2 || r.inputs[0] != types.Number || r.inputs[1] != types.String {
		t.Fatalf("expected widened constructor arguments [number, string], got %v", r.inputs)
	}
}

func TestInferArray(t *testing.T) {
	got, err := Infer([]Value{1.0, 2.0}, nil)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	arr, ok := got.(*types.ArrayType)
	if !ok || !arr.ElementType.Equals(types.Number) {
		t.Fatalf("expected number[], got %s", got.String())
	}
}

func TestInferEmptyArrayIsAnyArray(t *testing.T) {
	got, err := Infer([]Value{}, nil)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	arr, ok := got.(*types.ArrayType)
	if !ok || !arr.ElementType.Equals(types.Any) {
		t.Fatalf("expected any[] for an empty array, got %s", got.String())
	}
}

// TestInferPlainObjectEmitsAndReflectsAProgram exercises §4.5's
// deferred-evaluation design: a plain object never gets its fields
// inferred inline — it schedules a tiny typeof/widen/propertySignature
// program per key and hands it to the reflector, so cyclic fields get
// the VM's own placeholder patching instead of a hand-rolled recursive
// walk here.
func TestInferPlainObjectEmitsAndReflectsAProgram(t *testing.T) {
	r := &fakeReflector{result: types.NewObjectLiteralType()}
	_, err := Infer(map[string]Value{"b": 1.0, "a": "x"}, r)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if !r.called {
		t.Fatalf("expected inferPlainObject to hand its program to the reflector")
	}
	carrier, ok := r.object.(*packed.Packed)
	if !ok {
		t.Fatalf("expected a *packed.Packed carrier, got %T", r.object)
	}
	ops, pool, err := packed.Unpack(carrier)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if len(ops) == 0 || ops[0] != int(packed.OpFrame) {
		t.Fatalf("expected the program to open with frame, got %v", ops)
	}
	if ops[len(ops)-1] != int(packed.OpObjectLiteral) {
		t.Fatalf("expected the program to close with objectLiteral, got %v", ops)
	}
	// Keys are sorted for determinism: "a" before "b". Per-key encoding is
	// `typeof T, widen, propertySignature N` — five ints (opcode, operand,
	// opcode, opcode, operand) after the leading frame opcode, so the
	// first key's name-pool index sits at ops[5].
	nameIdx := ops[5]
	name, ok := pool[nameIdx].(string)
	if !ok || name != "a" {
		t.Fatalf("expected the first propertySignature to name key %q, got %v", "a", pool[nameIdx])
	}
}
