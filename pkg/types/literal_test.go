package types

import "testing"

func TestLiteralValueWidened(t *testing.T) {
	if LitString("a").Widened() != String {
		t.Error("string literal should widen to string")
	}
	if LitNumber(1).Widened() != Number {
		t.Error("number literal should widen to number")
	}
	if LitBool(true).Widened() != Boolean {
		t.Error("bool literal should widen to boolean")
	}
}

func TestLiteralValueTruthy(t *testing.T) {
	if LitString("").Truthy() {
		t.Error("empty string literal should be falsy")
	}
	if !LitString("x").Truthy() {
		t.Error("non-empty string literal should be truthy")
	}
	if LitNumber(0).Truthy() {
		t.Error("zero literal should be falsy")
	}
}

func TestLiteralValueEquals(t *testing.T) {
	if !LitString("a").Equals(LitString("a")) {
		t.Error("equal string literals should compare equal")
	}
	if LitString("a").Equals(LitString("b")) {
		t.Error("different string literals should not compare equal")
	}
	if LitString("a").Equals(LitNumber(1)) {
		t.Error("literals of different payload kinds should not compare equal")
	}
}

func TestCompileRegExpLiteral(t *testing.T) {
	lit, err := CompileRegExpLiteral("a+b", "i")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lit.Source != "a+b" || lit.Flags != "i" {
		t.Errorf("unexpected literal: %+v", lit)
	}

	if _, err := CompileRegExpLiteral("a(", ""); err == nil {
		t.Error("expected an error for an invalid pattern")
	}
}

func TestNewLiteralTypeEquals(t *testing.T) {
	a := NewLiteralType(LitString("a"))
	b := NewLiteralType(LitString("a"))
	if !a.Equals(b) {
		t.Error("literal types with equal payloads should be equal")
	}
}
