package types

import "sync"

// DecoratorPredicate classifies an object-literal intersection participant
// as a decorator (spec.md §6.2 `typeDecorators: (annotations,
// objectLiteralType) → bool`).
type DecoratorPredicate func(annotations map[*Symbol][]any, ol *ObjectLiteralType) bool

// DecoratorRegistry is the §6.2 `typeDecorators` registry, made concrete
// here (SPEC_FULL.md SUPPLEMENTED FEATURES): a set of named predicates an
// intersection's object-literal participants are checked against in
// registration order (§4.2's "decorator (in intersection)" mechanism —
// an object-literal intersection member matched out of the structural
// merge into annotations). This is distinct from §6.4's class-decorator
// application below, which annotates a class's own declared members from
// metadata the host class carries, independent of any intersection.
type DecoratorRegistry struct {
	mu    sync.RWMutex
	names []string
	preds map[string]DecoratorPredicate
	syms  map[string]*Symbol
}

func NewDecoratorRegistry() *DecoratorRegistry {
	return &DecoratorRegistry{
		preds: make(map[string]DecoratorPredicate),
		syms:  make(map[string]*Symbol),
	}
}

// Register adds a named predicate. Re-registering a name replaces it.
func (r *DecoratorRegistry) Register(name string, pred DecoratorPredicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.preds[name]; !exists {
		r.names = append(r.names, name)
	}
	r.preds[name] = pred
	if r.syms[name] == nil {
		r.syms[name] = NewSymbol(name)
	}
}

// Match returns the first matching predicate's name, in registration
// order, or ("", false).
func (r *DecoratorRegistry) Match(ol *ObjectLiteralType) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.names {
		if r.preds[name](ol.Annotations(), ol) {
			return name, true
		}
	}
	return "", false
}

// Absorb records ol as having matched (via Match) onto target, appending
// an annotation keyed by the matching decorator's own symbol.
func (r *DecoratorRegistry) Absorb(target Type, ol *ObjectLiteralType) {
	name, matched := r.Match(ol)
	if !matched {
		return
	}
	r.mu.RLock()
	sym := r.syms[name]
	r.mu.RUnlock()
	target.AddAnnotation(sym, ol)
}

// DefaultDecoratorRegistry seeds the two built-in decorator shapes
// SPEC_FULL.md's SUPPLEMENTED FEATURES names: `validate` (an object
// literal whose only member is a `validate` method, matching the §6.4
// class-decorator validator-function convention) and `description` (an
// object literal whose only member is a string-literal `description`
// property).
func DefaultDecoratorRegistry() *DecoratorRegistry {
	r := NewDecoratorRegistry()
	r.Register("validate", func(_ map[*Symbol][]any, ol *ObjectLiteralType) bool {
		if len(ol.Members) != 1 {
			return false
		}
		_, isMethod := ol.Members[0].(*MethodType)
		return isMethod && namedMember(ol.Members[0]) == "validate"
	})
	r.Register("description", func(_ map[*Symbol][]any, ol *ObjectLiteralType) bool {
		if len(ol.Members) != 1 {
			return false
		}
		p, ok := ol.Members[0].(*PropertyType)
		if !ok || p.Name != "description" {
			return false
		}
		_, isLiteral := p.PropType.(*LiteralType)
		return isLiteral
	})
	return r
}

// ApplyClassDecorators implements spec.md §6.4: once a class program
// terminates and its host class reference is patched in, walk the host
// class's deferred decorator records by `property` name and annotate the
// named member — a property's own type for a property target, or a
// method's parameter type for a method-parameter target — with the
// record's payload under AnnotationValidation.
func ApplyClassDecorators(ct *ClassType) {
	if ct == nil || ct.HostClass == nil {
		return
	}
	for _, rec := range ct.HostClass.Decorators() {
		member := GetMember(ct, rec.Property)
		if member == nil {
			continue
		}
		if idx, ok := rec.ParameterIndexOrDescriptor.(int); ok {
			params := methodParameters(member)
			if idx < 0 || idx >= len(params) || params[idx].ParamType == nil {
				continue
			}
			params[idx].ParamType.AddAnnotation(AnnotationValidation, rec.Data)
			continue
		}
		switch m := member.(type) {
		case *PropertyType:
			m.PropType.AddAnnotation(AnnotationValidation, rec.Data)
		case *PropertySignatureType:
			m.PropType.AddAnnotation(AnnotationValidation, rec.Data)
		}
	}
}

func methodParameters(m Type) []*ParameterType {
	switch t := m.(type) {
	case *MethodType:
		return t.Parameters
	case *MethodSignatureType:
		return t.Parameters
	default:
		return nil
	}
}
