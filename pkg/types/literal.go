package types

import (
	"fmt"
	"math/big"

	"github.com/dlclark/regexp2"
)

// LiteralValue holds exactly one of the payload shapes spec.md §3 allows
// for a literal type: string, number, boolean, bigint, or RegExp.
type LiteralValue struct {
	Str    *string
	Num    *float64
	Bool   *bool
	BigInt *big.Int
	Regexp *RegExpLiteral
}

// RegExpLiteral pairs a regexp2 pattern (teacher dependency; regexp2 gives
// us .NET-flavored lookaround that a host type system's regex literals can
// legitimately use, unlike Go's RE2-based stdlib regexp) with its source
// text and flags, since two regex literals compare by source+flags, not by
// compiled-automaton identity.
type RegExpLiteral struct {
	Source  string
	Flags   string
	Regexp  *regexp2.Regexp
}

// CompileRegExpLiteral compiles source/flags into a RegExpLiteral. Flags
// follow JS regex flag letters (i, m, s, u, ...), translated to regexp2's
// RegexOptions.
func CompileRegExpLiteral(source, flags string) (*RegExpLiteral, error) {
	opts := regexp2.None
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'x':
			opts |= regexp2.IgnorePatternWhitespace
		}
	}
	re, err := regexp2.Compile(source, opts)
	if err != nil {
		return nil, fmt.Errorf("types: invalid regexp literal /%s/%s: %w", source, flags, err)
	}
	return &RegExpLiteral{Source: source, Flags: flags, Regexp: re}, nil
}

func LitString(s string) LiteralValue  { return LiteralValue{Str: &s} }
func LitNumber(n float64) LiteralValue { return LiteralValue{Num: &n} }
func LitBool(b bool) LiteralValue      { return LiteralValue{Bool: &b} }
func LitBigInt(b *big.Int) LiteralValue {
	return LiteralValue{BigInt: b}
}
func LitRegExp(r *RegExpLiteral) LiteralValue { return LiteralValue{Regexp: r} }

func (v LiteralValue) String() string {
	switch {
	case v.Str != nil:
		return fmt.Sprintf("%q", *v.Str)
	case v.Num != nil:
		return fmt.Sprintf("%v", *v.Num)
	case v.Bool != nil:
		return fmt.Sprintf("%v", *v.Bool)
	case v.BigInt != nil:
		return v.BigInt.String() + "n"
	case v.Regexp != nil:
		return "/" + v.Regexp.Source + "/" + v.Regexp.Flags
	default:
		return "<empty literal>"
	}
}

// Equals compares two literal payloads by value, not by the identity of
// any compiled automaton (two RegExp literals with the same source/flags
// are the same type even if compiled independently).
func (v LiteralValue) Equals(o LiteralValue) bool {
	switch {
	case v.Str != nil:
		return o.Str != nil && *v.Str == *o.Str
	case v.Num != nil:
		return o.Num != nil && *v.Num == *o.Num
	case v.Bool != nil:
		return o.Bool != nil && *v.Bool == *o.Bool
	case v.BigInt != nil:
		return o.BigInt != nil && v.BigInt.Cmp(o.BigInt) == 0
	case v.Regexp != nil:
		return o.Regexp != nil && v.Regexp.Source == o.Regexp.Source && v.Regexp.Flags == o.Regexp.Flags
	default:
		return o == LiteralValue{}
	}
}

// Widened returns the base primitive this literal widens to (spec.md §4.1.3
// `widen` opcode / GLOSSARY "Widening").
func (v LiteralValue) Widened() Type {
	switch {
	case v.Str != nil:
		return String
	case v.Num != nil:
		return Number
	case v.Bool != nil:
		return Boolean
	case v.BigInt != nil:
		return BigInt
	case v.Regexp != nil:
		return RegExpT
	default:
		return Unknown
	}
}

func (v LiteralValue) Truthy() bool {
	switch {
	case v.Str != nil:
		return *v.Str != ""
	case v.Num != nil:
		return *v.Num != 0
	case v.Bool != nil:
		return *v.Bool
	case v.BigInt != nil:
		return v.BigInt.Sign() != 0
	case v.Regexp != nil:
		return true
	default:
		return false
	}
}

// LiteralType represents a specific literal value used as a type
// (spec.md §3 "literal with payload string|number|boolean|bigint|RegExp").
type LiteralType struct {
	Meta
	Value LiteralValue
}

func NewLiteralType(v LiteralValue) *LiteralType { return &LiteralType{Value: v} }

func (lt *LiteralType) Kind() Kind     { return KindLiteral }
func (lt *LiteralType) String() string { return lt.Value.String() }
func (lt *LiteralType) typeNode()      {}
func (lt *LiteralType) Equals(other Type) bool {
	o, ok := other.(*LiteralType)
	if !ok || lt == nil || o == nil {
		return lt == o
	}
	return lt.Value.Equals(o.Value)
}
