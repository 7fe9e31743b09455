package types

import "strings"

// IntersectionType is `intersection(types[])`. Unlike UnionType, a
// constructed IntersectionType never survives decorator absorption or
// primitive dominance — NewIntersectionType always resolves those away
// before allocating the node (spec.md §4.2).
type IntersectionType struct {
	Meta
	Types []Type
}

func (it *IntersectionType) Kind() Kind { return KindIntersection }
func (it *IntersectionType) String() string {
	parts := make([]string, len(it.Types))
	for i, t := range it.Types {
		parts[i] = t.String()
	}
	return strings.Join(parts, " & ")
}
func (it *IntersectionType) typeNode() {}
func (it *IntersectionType) Equals(other Type) bool {
	o, ok := other.(*IntersectionType)
	if !ok || it == nil || o == nil {
		return it == o
	}
	return sameTypeSet(it.Types, o.Types)
}

func isDominantPrimitive(t Type) bool {
	switch t.Kind() {
	case KindString, KindNumber, KindBoolean, KindBigInt, KindSymbol,
		KindArray, KindTuple, KindRegExp, KindAny:
		return true
	}
	return false
}

// flattenIntersections recursively inlines nested intersections.
func flattenIntersections(ts []Type) []Type {
	out := make([]Type, 0, len(ts))
	var walk func(t Type)
	walk = func(t Type) {
		if t == nil {
			return
		}
		if i, ok := t.(*IntersectionType); ok {
			for _, m := range i.Types {
				walk(m)
			}
			return
		}
		out = append(out, t)
	}
	for _, t := range ts {
		walk(t)
	}
	return out
}

// NewIntersectionType classifies and normalizes candidates per spec.md
// §4.2:
//  1. drop never (but never & anything is never overall);
//  2. absorb decorator object-literals into annotations/decorators;
//  3. let one primitive-ish candidate dominate, attaching the rest as the
//     `default` annotation;
//  4. otherwise merge remaining objectLiteral/class candidates;
//  5. collapse to never if nothing remains.
//
// decorators is the external typeDecorators registry (§6.2); pass nil to
// skip decorator classification (e.g. in tests exercising pure structural
// merge behavior).
func NewIntersectionType(decorators *DecoratorRegistry, ts ...Type) Type {
	flat := flattenIntersections(ts)

	for _, t := range flat {
		if t.Kind() == KindNever {
			return Never
		}
	}

	var decoratorLiterals []*ObjectLiteralType
	var structural []Type
	for _, t := range flat {
		if ol, ok := t.(*ObjectLiteralType); ok && decorators != nil {
			if _, matched := decorators.Match(ol); matched {
				decoratorLiterals = append(decoratorLiterals, ol)
				continue
			}
		}
		structural = append(structural, t)
	}

	unique := make([]Type, 0, len(structural))
	for _, t := range structural {
		if !IsTypeIncluded(unique, t) {
			unique = append(unique, t)
		}
	}

	var result Type
	switch {
	case len(unique) == 0:
		result = Never
	case len(unique) == 1:
		result = unique[0]
	default:
		var dominant Type
		var rest []Type
		for _, t := range unique {
			if dominant == nil && isDominantPrimitive(t) {
				dominant = t
				continue
			}
			rest = append(rest, t)
		}
		if dominant != nil {
			dominant = cloneIfShared(dominant)
			for _, r := range rest {
				dominant.AddAnnotation(AnnotationDefault, r)
			}
			result = dominant
		} else {
			result = Merge(unique)
		}
	}

	if len(decoratorLiterals) > 0 {
		result = cloneIfShared(result)
		for _, lit := range decoratorLiterals {
			result.AddDecorator(lit)
			if decorators != nil {
				decorators.Absorb(result, lit)
			}
		}
	}
	return result
}
