package types

import (
	"sort"
	"strings"
)

// UnionType is `union(types[])`, always normalized per spec.md §3
// invariant 2: flattened, deduplicated by structural equality, with
// `never` dropped.
type UnionType struct {
	Meta
	Types []Type
}

func (u *UnionType) Kind() Kind { return KindUnion }
func (u *UnionType) String() string {
	parts := make([]string, len(u.Types))
	for i, t := range u.Types {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}
func (u *UnionType) typeNode() {}
func (u *UnionType) Equals(other Type) bool {
	o, ok := other.(*UnionType)
	if !ok || u == nil || o == nil {
		return u == o
	}
	return sameTypeSet(u.Types, o.Types)
}

func sameTypeSet(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if !used[j] && x.Equals(y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FlattenUnionTypes is the §6.2 helper `flattenUnionTypes(types[]) →
// types[]`: recursively inlines nested unions, in encounter order.
func FlattenUnionTypes(ts []Type) []Type {
	out := make([]Type, 0, len(ts))
	var walk func(t Type)
	walk = func(t Type) {
		if t == nil {
			return
		}
		if u, ok := t.(*UnionType); ok {
			for _, m := range u.Types {
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

// IsTypeIncluded is the §6.2 helper `isTypeIncluded(list, t)`.
func IsTypeIncluded(list []Type, t Type) bool {
	for _, x := range list {
		if x.Equals(t) {
			return true
		}
	}
	return false
}

// UnboxUnion is the §6.2 helper `unboxUnion(u) → Type`: a one-member union
// collapses to that member, an empty union collapses to `never`.
func UnboxUnion(t Type) Type {
	u, ok := t.(*UnionType)
	if !ok {
		return t
	}
	if len(u.Types) == 0 {
		return Never
	}
	if len(u.Types) == 1 {
		return u.Types[0]
	}
	return u
}

// NewUnionType builds a normalized union per spec.md §3 invariant 2 and
// §4.1.3 `union`: flatten, drop `never` (unless it's all that's given),
// dedupe by structural equality, unbox singletons.
func NewUnionType(ts ...Type) Type {
	flat := FlattenUnionTypes(ts)

	unique := make([]Type, 0, len(flat))
	for _, t := range flat {
		if t == nil || t.Kind() == KindNever {
			continue
		}
		if !IsTypeIncluded(unique, t) {
			unique = append(unique, t)
		}
	}

	if len(unique) == 0 {
		return Never
	}
	if len(unique) == 1 {
		return unique[0]
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].String() < unique[j].String()
	})

	u := &UnionType{Types: make([]Type, len(unique))}
	for i, m := range unique {
		u.Types[i] = adopt(m, u)
	}
	return u
}
