package reflectvm

import (
	"testing"

	"typegraph/pkg/packed"
	"typegraph/pkg/types"
)

func runProgram(t *testing.T, ops []int, pool []any) types.Type {
	t.Helper()
	carrier, err := packed.Pack(ops, pool)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	proc := NewProcessor(nil)
	result, err := proc.Reflect(carrier, nil, ReflectOptions{})
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	return result
}

func TestReflectPrimitive(t *testing.T) {
	result := runProgram(t, []int{int(packed.OpString)}, nil)
	if result != types.String {
		t.Errorf("expected String, got %s", result.String())
	}
}

func TestReflectTypedArray(t *testing.T) {
	result := runProgram(t, []int{int(packed.OpUint8Array)}, nil)
	b, ok := result.(*types.BuiltinType)
	if !ok || b.Name != "Uint8Array" {
		t.Fatalf("expected Uint8Array builtin, got %s", result.String())
	}
}

func TestReflectArrayOfStrings(t *testing.T) {
	ops := []int{int(packed.OpString), int(packed.OpArray)}
	result := runProgram(t, ops, nil)
	arr, ok := result.(*types.ArrayType)
	if !ok || !arr.ElementType.Equals(types.String) {
		t.Fatalf("expected string[], got %s", result.String())
	}
	if arr.ElementType.GetParent() != arr {
		t.Fatalf("array element type should point back to the array")
	}
}

func TestReflectUnion(t *testing.T) {
	ops := []int{
		int(packed.OpFrame),
		int(packed.OpString),
		int(packed.OpNumber),
		int(packed.OpUnion),
	}
	result := runProgram(t, ops, nil)
	u, ok := result.(*types.UnionType)
	if !ok || len(u.Types) != 2 {
		t.Fatalf("expected a 2-member union, got %s", result.String())
	}
}

func TestReflectObjectLiteralPropertySignature(t *testing.T) {
	pool := []any{"x"}
	ops := []int{
		int(packed.OpFrame),
		int(packed.OpString),
		int(packed.OpPropertySignature), 0,
		int(packed.OpObjectLiteral),
	}
	result := runProgram(t, ops, pool)
	ol, ok := result.(*types.ObjectLiteralType)
	if !ok || len(ol.Members) != 1 {
		t.Fatalf("expected a 1-member object literal, got %s", result.String())
	}
	sig, ok := ol.Members[0].(*types.PropertySignatureType)
	if !ok || sig.Name != "x" || !sig.PropType.Equals(types.String) {
		t.Fatalf("expected propertySignature x: string, got %s", ol.Members[0].String())
	}
	if sig.PropType.GetParent() != sig {
		t.Fatalf("property signature's type should point back to the signature")
	}
}

func TestReflectExtends(t *testing.T) {
	ops := []int{int(packed.OpString), int(packed.OpString), int(packed.OpExtends)}
	result := runProgram(t, ops, nil)
	lit, ok := result.(*types.LiteralType)
	if !ok || lit.Value.Bool == nil || !*lit.Value.Bool {
		t.Fatalf("expected literal(true), got %s", result.String())
	}
}

func TestReflectConditionTruthy(t *testing.T) {
	pool := []any{true}
	ops := []int{
		int(packed.OpFrame),
		int(packed.OpLiteral), 0,
		int(packed.OpString),
		int(packed.OpNumber),
		int(packed.OpCondition),
	}
	result := runProgram(t, ops, pool)
	if result != types.String {
		t.Fatalf("expected String (truthy branch), got %s", result.String())
	}
}

func TestReflectConditionFalsy(t *testing.T) {
	pool := []any{false}
	ops := []int{
		int(packed.OpFrame),
		int(packed.OpLiteral), 0,
		int(packed.OpString),
		int(packed.OpNumber),
		int(packed.OpCondition),
	}
	result := runProgram(t, ops, pool)
	if result != types.Number {
		t.Fatalf("expected Number (falsy branch), got %s", result.String())
	}
}

func TestReflectKeyofObjectLiteral(t *testing.T) {
	pool := []any{"x", "y"}
	ops := []int{
		int(packed.OpFrame),
		int(packed.OpString),
		int(packed.OpPropertySignature), 0,
		int(packed.OpNumber),
		int(packed.OpPropertySignature), 1,
		int(packed.OpObjectLiteral),
		int(packed.OpKeyof),
	}
	result := runProgram(t, ops, pool)
	u, ok := result.(*types.UnionType)
	if !ok || len(u.Types) != 2 {
		t.Fatalf("expected keyof to yield a 2-member literal union, got %s", result.String())
	}
}

// TestDistributeLoopMechanics exercises opDistribute/call/ret directly
// across a full distribute cycle — string | number, each member wrapped
// in an array by a simulated body — driving the opcode handlers by hand
// instead of hand-assembling the PC-jump encoding a full `frame`/`var`/
// `distribute`/`call`/`return` opcode program would need.
func TestDistributeLoopMechanics(t *testing.T) {
	proc := NewProcessor(nil)
	prog := &Program{StackPointer: -1, Frame: &Frame{StartIndex: -1}}
	// A real distribute-conditional program emits `var` before `distribute`
	// to reserve the loop-variable slot as a genuine stack slot (bumping
	// StackPointer) — opDistribute only overwrites that slot's value, it
	// never reserves it. Skipping this would let the loop-body call's
	// return-address push collide with the loop variable's slot.
	prog.Push(types.Never)
	prog.Push(types.NewUnionType(types.String, types.Number))

	if err := proc.opDistribute(prog, 0, 100); err != nil {
		t.Fatalf("opDistribute (install): %v", err)
	}
	if prog.PC != 100 {
		t.Fatalf("expected call to jump PC to the body, got %d", prog.PC)
	}

	// Simulate the body: wrap the loop variable in an array and return.
	first, ok := prog.At(prog.Frame.Previous.StartIndex + 1).(types.Type)
	if !ok {
		t.Fatalf("expected the first loop member written into the loop frame's slot")
	}
	prog.Push(types.NewArrayType(first))
	if err := proc.ret(prog); err != nil {
		t.Fatalf("ret: %v", err)
	}

	if err := proc.opDistribute(prog, 0, 100); err != nil {
		t.Fatalf("opDistribute (2nd member): %v", err)
	}
	second, ok := prog.At(prog.Frame.Previous.StartIndex + 1).(types.Type)
	if !ok {
		t.Fatalf("expected the second loop member written into the loop frame's slot")
	}
	prog.Push(types.NewArrayType(second))
	if err := proc.ret(prog); err != nil {
		t.Fatalf("ret: %v", err)
	}

	if err := proc.opDistribute(prog, 0, 100); err != nil {
		t.Fatalf("opDistribute (exhaust): %v", err)
	}
	result, err := prog.PopType()
	if err != nil {
		t.Fatalf("PopType: %v", err)
	}
	u, ok := result.(*types.UnionType)
	if !ok || len(u.Types) != 2 {
		t.Fatalf("expected a 2-member union of arrays, got %s", result.String())
	}
}

func TestReflectClassReferenceBareHostClass(t *testing.T) {
	class := &fakeHostClass{name: "Widget"}
	ops := []int{
		int(packed.OpFrame),
		int(packed.OpClassReference), 0,
	}
	pool := []any{packed.HostClassRef(class)}
	result := runProgram(t, ops, pool)
	ct, ok := result.(*types.ClassType)
	if !ok {
		t.Fatalf("expected a ClassType, got %s", result.String())
	}
	if ct.HostClass == nil || ct.HostClass.Name() != "Widget" {
		t.Fatalf("expected HostClass Widget, got %v", ct.HostClass)
	}
}

type fakeHostClass struct {
	name       string
	prog       *packed.Packed
	decorators []packed.DecoratorRecord
}

func (f *fakeHostClass) Name() string            { return f.name }
func (f *fakeHostClass) Program() *packed.Packed { return f.prog }
func (f *fakeHostClass) Decorators() []packed.DecoratorRecord {
	return f.decorators
}

func TestReflectClassReferenceWithProgram(t *testing.T) {
	classOps := []int{
		int(packed.OpFrame),
		int(packed.OpClass),
	}
	classProgram, err := packed.Pack(classOps, nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	class := &fakeHostClass{name: "Widget", prog: classProgram}

	ops := []int{
		int(packed.OpFrame),
		int(packed.OpClassReference), 0,
	}
	pool := []any{packed.HostClassRef(class)}
	result := runProgram(t, ops, pool)
	ct, ok := result.(*types.ClassType)
	if !ok {
		t.Fatalf("expected a ClassType, got %s", result.String())
	}
	if ct.HostClass == nil || ct.HostClass.Name() != "Widget" {
		t.Fatalf("expected patched HostClass Widget, got %v", ct.HostClass)
	}
}

// TestClassDecoratorApplicationAnnotatesProperty exercises spec.md §6.4:
// once a class program terminates, a deferred decorator record targeting
// a property by name gets its validator payload appended to that
// property's own validation annotation.
func TestClassDecoratorApplicationAnnotatesProperty(t *testing.T) {
	classPool := []any{"age"}
	classOps := []int{
		int(packed.OpFrame),
		int(packed.OpNumber),
		int(packed.OpProperty), 0,
		int(packed.OpClass),
	}
	classProgram, err := packed.Pack(classOps, classPool)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	validator := func(v any) bool { return true }
	class := &fakeHostClass{
		name: "Person",
		prog: classProgram,
		decorators: []packed.DecoratorRecord{
			{Data: validator, Property: "age"},
		},
	}

	ops := []int{
		int(packed.OpFrame),
		int(packed.OpClassReference), 0,
	}
	pool := []any{packed.HostClassRef(class)}
	result := runProgram(t, ops, pool)
	ct, ok := result.(*types.ClassType)
	if !ok {
		t.Fatalf("expected a ClassType, got %s", result.String())
	}
	member := types.GetMember(ct, "age")
	prop, ok := member.(*types.PropertyType)
	if !ok {
		t.Fatalf("expected a property member named age, got %T", member)
	}
	annotations := prop.PropType.Annotations()[types.AnnotationValidation]
	if len(annotations) != 1 {
		t.Fatalf("expected one validation annotation, got %d", len(annotations))
	}
}

func TestReflectIndexAccessDoesNotMutateSingleton(t *testing.T) {
	pool := []any{"x"}
	ops := []int{
		int(packed.OpFrame),
		int(packed.OpNumber),
		int(packed.OpPropertySignature), 0,
		int(packed.OpObjectLiteral),
		int(packed.OpString), // key that doesn't exist -> Never
		int(packed.OpIndexAccess),
	}
	result := runProgram(t, ops, pool)
	if result != types.Never {
		t.Fatalf("expected Never for a missing member access, got %s", result.String())
	}
	if types.Never.IndexAccessOrigin() != nil {
		t.Fatalf("indexAccess must not stamp origin onto the shared Never singleton")
	}
}
