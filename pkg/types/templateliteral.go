package types

import "strings"

// TemplateLiteralType is `templateLiteral(parts[])`: a sequence of
// literal string segments interleaved with placeholder types, e.g. the
// type of `` `prefix-${T}` ``.
type TemplateLiteralType struct {
	Meta
	// Parts alternates conceptually between literal-string segments
	// (represented as plain Go strings) and placeholder types; we store
	// both uniformly as Type (string segments as *LiteralType) to keep a
	// single ordered slice, matching spec.md's `parts[]`.
	Parts []Type
}

func (t *TemplateLiteralType) Kind() Kind { return KindTemplateLiteral }
func (t *TemplateLiteralType) String() string {
	var b strings.Builder
	b.WriteByte('`')
	for _, p := range t.Parts {
		if lit, ok := p.(*LiteralType); ok && lit.Value.Str != nil {
			b.WriteString(*lit.Value.Str)
			continue
		}
		b.WriteString("${")
		b.WriteString(p.String())
		b.WriteString("}")
	}
	b.WriteByte('`')
	return b.String()
}
func (t *TemplateLiteralType) typeNode() {}
func (t *TemplateLiteralType) Equals(other Type) bool {
	o, ok := other.(*TemplateLiteralType)
	if !ok || t == nil || o == nil {
		return t == o
	}
	if len(t.Parts) != len(o.Parts) {
		return false
	}
	for i, p := range t.Parts {
		if !p.Equals(o.Parts[i]) {
			return false
		}
	}
	return true
}

// expansionOf lists the possible "values" a type contributes to a
// template literal's Cartesian product: a union's members, or the type
// itself as a singleton.
func expansionOf(t Type) []Type {
	if u, ok := t.(*UnionType); ok {
		return u.Types
	}
	return []Type{t}
}

// isStringLiteral reports whether t is a literal string segment.
func isStringLiteral(t Type) (string, bool) {
	lit, ok := t.(*LiteralType)
	if !ok || lit.Value.Str == nil {
		return "", false
	}
	return *lit.Value.Str, true
}

// mergeAdjacentLiterals concatenates consecutive literal-string parts in
// place, per spec.md §4.1.3 `templateLiteral`: "merges adjacent literal
// parts by string concatenation".
func mergeAdjacentLiterals(parts []Type) []Type {
	out := make([]Type, 0, len(parts))
	for _, p := range parts {
		if s, ok := isStringLiteral(p); ok {
			if len(out) > 0 {
				if prev, ok := isStringLiteral(out[len(out)-1]); ok {
					out[len(out)-1] = NewLiteralType(LitString(prev + s))
					continue
				}
			}
			out = append(out, NewLiteralType(LitString(s)))
			continue
		}
		out = append(out, p)
	}
	return out
}

// BuildTemplateLiteral implements the `templateLiteral` opcode's
// semantics (spec.md §4.1.3): Cartesian product of the parts' union
// expansions, literal-adjacent merging, collapse to plain `string` when
// the only remaining part is unconstrained `string`, and a union of the
// resulting templates/literals across the whole product.
func BuildTemplateLiteral(parts []Type) Type {
	if len(parts) == 0 {
		return NewLiteralType(LitString(""))
	}

	expansions := make([][]Type, len(parts))
	for i, p := range parts {
		expansions[i] = expansionOf(p)
	}

	var combos [][]Type
	var build func(i int, acc []Type)
	build = func(i int, acc []Type) {
		if i == len(expansions) {
			combos = append(combos, append([]Type{}, acc...))
			return
		}
		for _, choice := range expansions[i] {
			build(i+1, append(acc, choice))
		}
	}
	build(0, nil)

	results := make([]Type, 0, len(combos))
	for _, combo := range combos {
		merged := mergeAdjacentLiterals(combo)

		if len(merged) == 1 {
			if merged[0].Kind() == KindString {
				results = append(results, String)
				continue
			}
			if lit, ok := merged[0].(*LiteralType); ok {
				results = append(results, lit)
				continue
			}
		}

		allLiteral := true
		var concat strings.Builder
		for _, m := range merged {
			s, ok := isStringLiteral(m)
			if !ok {
				allLiteral = false
				break
			}
			concat.WriteString(s)
		}
		if allLiteral {
			results = append(results, NewLiteralType(LitString(concat.String())))
			continue
		}

		tl := &TemplateLiteralType{Parts: make([]Type, len(merged))}
		for i, m := range merged {
			tl.Parts[i] = adopt(m, tl)
		}
		results = append(results, tl)
	}

	return NewUnionType(results...)
}
