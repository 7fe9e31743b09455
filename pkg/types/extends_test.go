package types

import "testing"

func TestIsExtendablePrimitives(t *testing.T) {
	if !IsExtendable(String, String) {
		t.Error("string should extend string")
	}
	if IsExtendable(String, Number) {
		t.Error("string should not extend number")
	}
	if !IsExtendable(Never, String) {
		t.Error("never should extend anything")
	}
	if !IsExtendable(String, Unknown) {
		t.Error("anything should extend unknown")
	}
}

func TestIsExtendableLiteral(t *testing.T) {
	lit := NewLiteralType(LitString("a"))
	if !IsExtendable(lit, String) {
		t.Error("a literal string should extend string")
	}
	if IsExtendable(lit, Number) {
		t.Error("a literal string should not extend number")
	}
}

func TestIsExtendableDistributesUnion(t *testing.T) {
	u := NewUnionType(NewLiteralType(LitString("a")), NewLiteralType(LitString("b")))
	if !IsExtendable(u, String) {
		t.Error("a union of string literals should extend string")
	}
}

func TestIsExtendableStructural(t *testing.T) {
	narrower := NewObjectLiteralType()
	narrower.AddMember(&PropertyType{Name: "x", PropType: Number})
	narrower.AddMember(&PropertyType{Name: "y", PropType: String})

	wider := NewObjectLiteralType()
	wider.AddMember(&PropertyType{Name: "x", PropType: Number})

	if !IsExtendable(narrower, wider) {
		t.Error("an object with extra members should still extend a narrower shape")
	}
	if IsExtendable(wider, narrower) {
		t.Error("an object missing a required member should not extend the wider shape")
	}
}

func TestIsExtendableOptionalMember(t *testing.T) {
	left := NewObjectLiteralType()
	right := NewObjectLiteralType()
	right.AddMember(&PropertySignatureType{Name: "x", PropType: Number, Optional: true})

	if !IsExtendable(left, right) {
		t.Error("a missing optional member should not block structural extension")
	}
}
