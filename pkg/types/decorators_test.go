package types

import "testing"

func TestDecoratorRegistryMatch(t *testing.T) {
	r := DefaultDecoratorRegistry()

	validated := NewObjectLiteralType()
	validated.AddMember(&MethodType{Name: "validate", Return: Boolean})

	name, matched := r.Match(validated)
	if !matched || name != "validate" {
		t.Errorf("expected the validate predicate to match, got %q, %v", name, matched)
	}

	plain := NewObjectLiteralType()
	plain.AddMember(&PropertyType{Name: "x", PropType: Number})
	if _, matched := r.Match(plain); matched {
		t.Error("a plain data-shaped literal should not match any decorator predicate")
	}
}

func TestDecoratorRegistryAbsorb(t *testing.T) {
	r := DefaultDecoratorRegistry()
	described := NewObjectLiteralType()
	described.AddMember(&PropertyType{Name: "description", PropType: NewLiteralType(LitString("a widget"))})

	target := NewObjectLiteralType()
	r.Absorb(target, described)

	found := false
	for sym := range target.Annotations() {
		if sym.Name == "description" {
			found = true
		}
	}
	if !found {
		t.Error("expected the description annotation to be recorded on the target")
	}
}

type fakeDecoratedClass struct {
	name string
	recs []DecoratorRecord
}

func (f *fakeDecoratedClass) Name() string                 { return f.name }
func (f *fakeDecoratedClass) Program() any                 { return nil }
func (f *fakeDecoratedClass) Decorators() []DecoratorRecord { return f.recs }

func TestApplyClassDecoratorsAnnotatesProperty(t *testing.T) {
	ct := NewClassType()
	prop := &PropertyType{Name: "age"}
	prop.PropType = Adopt(Number, prop)
	ct.AddMember(prop)
	ct.PatchHostClass(&fakeDecoratedClass{
		name: "Person",
		recs: []DecoratorRecord{{Data: "is-positive", Property: "age"}},
	})

	ApplyClassDecorators(ct)

	annotated := GetMember(ct, "age").(*PropertyType)
	got := annotated.PropType.Annotations()[AnnotationValidation]
	if len(got) != 1 || got[0] != "is-positive" {
		t.Fatalf("expected one validation annotation on age's type, got %v", got)
	}
}

func TestApplyClassDecoratorsAnnotatesMethodParameter(t *testing.T) {
	ct := NewClassType()
	param := &ParameterType{Name: "value"}
	param.ParamType = Adopt(Number, param)
	ct.AddMember(&MethodType{
		Name:       "setAge",
		Parameters: []*ParameterType{param},
		Return:     Void,
	})
	ct.PatchHostClass(&fakeDecoratedClass{
		name: "Person",
		recs: []DecoratorRecord{{Data: "is-positive", Property: "setAge", ParameterIndexOrDescriptor: 0}},
	})

	ApplyClassDecorators(ct)

	method := GetMember(ct, "setAge").(*MethodType)
	got := method.Parameters[0].ParamType.Annotations()[AnnotationValidation]
	if len(got) != 1 || got[0] != "is-positive" {
		t.Fatalf("expected one validation annotation on setAge's first parameter type, got %v", got)
	}
}

func TestApplyClassDecoratorsNoHostClassIsNoop(t *testing.T) {
	ct := NewClassType()
	ApplyClassDecorators(ct) // must not panic
}

func TestDecoratorRegistryRegisterReplaces(t *testing.T) {
	r := NewDecoratorRegistry()
	calls := 0
	r.Register("always", func(map[*Symbol][]any, *ObjectLiteralType) bool { calls++; return false })
	r.Register("always", func(map[*Symbol][]any, *ObjectLiteralType) bool { calls++; return true })

	_, matched := r.Match(NewObjectLiteralType())
	if !matched {
		t.Error("re-registering a name should replace the predicate")
	}
	if len(r.names) != 1 {
		t.Errorf("re-registering should not duplicate the name slot, got %d", len(r.names))
	}
}
