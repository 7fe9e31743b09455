package packed

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ops := []int{int(OpString), int(OpLiteral), 0, int(OpUnion)}
	s, err := EncodeOps(ops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := DecodeOps(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(ops) {
		t.Fatalf("expected %d ops, got %d", len(ops), len(got))
	}
	for i := range ops {
		if got[i] != ops[i] {
			t.Errorf("op %d: expected %d, got %d", i, ops[i], got[i])
		}
	}
}

func TestEncodeOpsRejectsNegative(t *testing.T) {
	if _, err := EncodeOps([]int{-1}); err == nil {
		t.Error("expected an error encoding a negative opcode byte")
	}
}

func TestUnpackMemoizes(t *testing.T) {
	ops := []int{int(OpString), int(OpNumber), int(OpUnion)}
	p, err := Pack(ops, []any{"abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotOps1, stack1, err := Unpack(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotOps2, stack2, err := Unpack(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotOps1) != len(ops) {
		t.Fatalf("expected %d ops, got %d", len(ops), len(gotOps1))
	}
	if &gotOps1[0] != &gotOps2[0] {
		t.Error("expected the second Unpack call to reuse the memoized ops slice")
	}
	if len(stack1) != 1 || stack1[0] != "abc" {
		t.Errorf("unexpected constant pool: %v", stack1)
	}
	_ = stack2
}

func TestUnpackMissingOpsString(t *testing.T) {
	p := New(42) // last element is not a string at all
	if _, _, err := Unpack(p); err == nil {
		t.Error("expected an error when the carrier has no trailing opcode string")
	}
}

func TestOpsStringAndConstantPool(t *testing.T) {
	p := New("abc", 42, "stropcodes")
	s, ok := p.OpsString()
	if !ok || s != "stropcodes" {
		t.Errorf("expected trailing opcode string 'stropcodes', got %q, %v", s, ok)
	}
	pool := p.ConstantPool()
	if len(pool) != 2 || pool[0] != "abc" || pool[1] != 42 {
		t.Errorf("unexpected constant pool: %v", pool)
	}
}
