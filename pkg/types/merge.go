package types

// Merge is the §6.2 helper `merge(candidates[]) → Type`: structurally
// merges objectLiteral/class candidates for intersection construction
// (spec.md §4.2 step 4). Members from later candidates override earlier
// ones by name; index signatures concatenate.
//
// Open question (spec.md §9, preserved per DESIGN.md): a candidate that is
// neither an objectLiteral nor a class is not merged and never causes an
// error. If it comes before every mergeable candidate, Merge returns
// candidates[0]; if it comes after one, it is skipped. Class candidates
// contribute their members like object literals, whatever their host
// classes.
func Merge(candidates []Type) Type {
	if len(candidates) == 0 {
		return Never
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	result := NewObjectLiteralType()
	merged := false
	for _, c := range candidates {
		switch t := c.(type) {
		case *ObjectLiteralType:
			for _, m := range t.Members {
				result.AddMember(cloneMember(m))
			}
			merged = true
		case *ClassType:
			for _, m := range t.Members {
				result.AddMember(cloneMember(m))
			}
			merged = true
		default:
			// Not mergeable: fall back to the first candidate (documented
			// open question above).
			if !merged {
				return candidates[0]
			}
		}
	}
	if !merged {
		return candidates[0]
	}
	return result
}

// cloneMember returns a shallow copy of m so the merged object literal
// doesn't alias (and mutate) the source candidate's member slice when a
// later AddMember replaces it by name.
func cloneMember(m Type) Type {
	switch t := m.(type) {
	case *PropertyType:
		c := *t
		return &c
	case *PropertySignatureType:
		c := *t
		return &c
	case *MethodType:
		c := *t
		return &c
	case *MethodSignatureType:
		c := *t
		return &c
	case *IndexSignatureType:
		c := *t
		return &c
	default:
		return m
	}
}
