package types

import "testing"

func TestPrimitiveSingletonIdentity(t *testing.T) {
	if String != String {
		t.Fatal("unreachable")
	}
	if !String.Equals(String) {
		t.Error("a primitive should equal itself")
	}
	if String.Equals(Number) {
		t.Error("distinct primitives should not be equal")
	}
}

func TestMetaAccessors(t *testing.T) {
	a := NewArrayType(String)
	b := NewArrayType(Number)

	a.SetParent(b)
	if a.GetParent() != b {
		t.Error("expected SetParent/GetParent round trip")
	}

	a.SetTypeName("MyArray")
	if a.TypeName() != "MyArray" {
		t.Error("expected SetTypeName/TypeName round trip")
	}

	sym := NewSymbol("tag")
	a.AddAnnotation(sym, 42)
	if len(a.Annotations()[sym]) != 1 || a.Annotations()[sym][0] != 42 {
		t.Error("expected the annotation payload to be recorded")
	}

	decorator := NewObjectLiteralType()
	a.AddDecorator(decorator)
	if len(a.Decorators()) != 1 || a.Decorators()[0] != decorator {
		t.Error("expected the decorator to be recorded")
	}

	a.SetTypeArguments([]Type{String})
	if len(a.TypeArguments()) != 1 || a.TypeArguments()[0] != String {
		t.Error("expected SetTypeArguments/TypeArguments round trip")
	}

	origin := &IndexAccessOrigin{Container: b, Key: String}
	a.SetIndexAccessOrigin(origin)
	if a.IndexAccessOrigin() != origin {
		t.Error("expected SetIndexAccessOrigin/IndexAccessOrigin round trip")
	}
}

func TestSetParentOfNilSafe(t *testing.T) {
	SetParentOf(nil, String) // must not panic
	SetParentOf(String, nil)
}

func TestNewUnknownIsIndependentPlaceholder(t *testing.T) {
	a := NewUnknown()
	b := NewUnknown()
	if a == b {
		t.Error("each NewUnknown call should allocate a distinct placeholder")
	}
	if a.Kind() != KindUnknown {
		t.Errorf("expected kind unknown before patching, got %s", a.Kind())
	}
}

func TestPlaceholderPatchFrom(t *testing.T) {
	p := NewUnknown().(*Placeholder)

	NewArrayType(p) // something refers to the placeholder before resolution

	resolved := NewArrayType(String)
	resolved.SetTypeName("Loop")
	p.PatchFrom(resolved)

	if p.Kind() != KindArray {
		t.Errorf("expected patched placeholder to report the resolved kind, got %s", p.Kind())
	}
	if p.String() != resolved.String() {
		t.Errorf("expected patched placeholder to delegate String(), got %q", p.String())
	}
	if !p.Equals(resolved) {
		t.Error("expected patched placeholder to delegate Equals()")
	}
	if p.TypeName() != "Loop" {
		t.Error("expected the resolved node's metadata to carry over onto the placeholder")
	}
}
