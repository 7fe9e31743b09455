// Package rpcapi exposes spec.md §6.3's four entry points over gRPC —
// "a runtime type reflection VM that never leaves one Go process is of
// limited standalone use" (SPEC_FULL.md SUPPLEMENTED FEATURES). Wire
// messages are google.golang.org/protobuf's structpb/wrapperspb types
// directly rather than a hand-authored .proto schema: a Type graph's
// shape varies per node kind (spec.md §3's dozens of variants) far more
// than a fixed message schema would tolerate without constant
// regeneration, and structpb.Struct already implements proto.Message
// against the real wire format, so grpc's codec needs nothing generated.
package rpcapi

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"typegraph/pkg/types"
)

// EncodeType converts a resolved Type graph into a structpb.Struct
// suitable for a ReflectResponse, following the teacher-adjacent
// funvibe-funxy grpc bridge's approach of exchanging dynamic values
// instead of a fixed generated schema. Cyclic references (spec.md §8
// property 8, "self-reference node is structurally equal to the root")
// are broken with a "$ref" pointer keyed by first-visit order, since
// structpb cannot represent aliased/cyclic structures directly.
func EncodeType(t types.Type) (*structpb.Struct, error) {
	enc := &encoder{ids: make(map[types.Type]int)}
	root, err := enc.encode(t, 0)
	if err != nil {
		return nil, err
	}
	m, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rpcapi: root type %s did not encode to an object", t.Kind())
	}
	return structpb.NewStruct(m)
}

type encoder struct {
	ids map[types.Type]int
}

const maxEncodeDepth = 64

func (e *encoder) encode(t types.Type, depth int) (any, error) {
	if t == nil {
		return nil, nil
	}
	if id, seen := e.ids[t]; seen {
		return map[string]any{"$ref": float64(id)}, nil
	}
	if depth > maxEncodeDepth {
		return map[string]any{"kind": string(t.Kind()), "truncated": true}, nil
	}
	id := len(e.ids)
	e.ids[t] = id

	m := map[string]any{
		"$id":  float64(id),
		"kind": string(t.Kind()),
		"repr": t.String(),
	}

	switch v := t.(type) {
	case *types.UnionType:
		members, err := e.encodeSlice(v.Types, depth)
		if err != nil {
			return nil, err
		}
		m["types"] = members
	case *types.IntersectionType:
		members, err := e.encodeSlice(v.Types, depth)
		if err != nil {
			return nil, err
		}
		m["types"] = members
	case *types.ArrayType:
		elem, err := e.encode(v.ElementType, depth+1)
		if err != nil {
			return nil, err
		}
		m["elementType"] = elem
	case *types.ObjectLiteralType:
		members, err := e.encodeSlice(v.Members, depth)
		if err != nil {
			return nil, err
		}
		m["members"] = members
	case *types.ClassType:
		members, err := e.encodeSlice(v.Members, depth)
		if err != nil {
			return nil, err
		}
		m["members"] = members
		if v.HostClass != nil {
			m["hostClass"] = v.HostClass.Name()
		}
	case *types.PropertySignatureType:
		propType, err := e.encode(v.PropType, depth+1)
		if err != nil {
			return nil, err
		}
		m["name"] = v.Name
		m["propType"] = propType
		m["optional"] = v.Optional
	case *types.PropertyType:
		propType, err := e.encode(v.PropType, depth+1)
		if err != nil {
			return nil, err
		}
		m["name"] = v.Name
		m["propType"] = propType
		m["optional"] = v.Optional
		m["readOnly"] = v.ReadOnly
	case *types.FunctionType:
		ret, err := e.encode(v.Return, depth+1)
		if err != nil {
			return nil, err
		}
		m["name"] = v.Name
		m["returnType"] = ret
	case *types.LiteralType:
		m["literal"] = literalRepr(v.Value)
	}

	return m, nil
}

func (e *encoder) encodeSlice(ts []types.Type, depth int) ([]any, error) {
	out := make([]any, 0, len(ts))
	for _, m := range ts {
		v, err := e.encode(m, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func literalRepr(v types.LiteralValue) any {
	switch {
	case v.Str != nil:
		return *v.Str
	case v.Num != nil:
		return *v.Num
	case v.Bool != nil:
		return *v.Bool
	case v.BigInt != nil:
		return v.BigInt.String()
	default:
		return nil
	}
}
