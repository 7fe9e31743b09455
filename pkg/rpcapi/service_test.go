package rpcapi

import (
	"context"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"

	"typegraph/pkg/host"
	"typegraph/pkg/packed"
	"typegraph/pkg/reflectvm"
	"typegraph/pkg/types"
)

func TestEncodeTypeUnionRoundTrips(t *testing.T) {
	u := types.NewUnionType(types.String, types.Number)
	s, err := EncodeType(u)
	if err != nil {
		t.Fatalf("EncodeType: %v", err)
	}
	if s.Fields["kind"].GetStringValue() != string(types.KindUnion) {
		t.Fatalf("expected kind %q, got %v", types.KindUnion, s.Fields["kind"])
	}
	members := s.Fields["types"].GetListValue()
	if members == nil || len(members.Values) != 2 {
		t.Fatalf("expected 2 encoded union members, got %v", s.Fields["types"])
	}
}

func TestEncodeTypeBreaksCycles(t *testing.T) {
	self := types.NewObjectLiteralType()
	self.AddMember(&types.PropertyType{Name: "self", PropType: self})

	s, err := EncodeType(self)
	if err != nil {
		t.Fatalf("EncodeType: %v", err)
	}
	members := s.Fields["members"].GetListValue().Values
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	prop := members[0].GetStructValue()
	nested := prop.Fields["propType"].GetStructValue()
	if _, ok := nested.Fields["$ref"]; !ok {
		t.Fatalf("expected the self-referential member to encode as a $ref, got %v", nested)
	}
}

func TestReflectServerReflectDecodesCarrierFromWire(t *testing.T) {
	ops := []int{int(packed.OpString)}
	opsStr, err := packed.EncodeOps(ops)
	if err != nil {
		t.Fatalf("EncodeOps: %v", err)
	}
	req, err := structpb.NewStruct(map[string]any{
		"opsString":    opsStr,
		"constantPool": []any{},
		"reuseCached":  false,
	})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}

	srv := &ReflectServer{Proc: reflectvm.NewProcessor(nil)}
	resp, err := srv.Reflect(context.Background(), req)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if resp.Fields["kind"].GetStringValue() != string(types.KindString) {
		t.Fatalf("expected a string type, got %v", resp.Fields["kind"])
	}
}

func TestReflectServerTypeInferScalars(t *testing.T) {
	req, err := structpb.NewStruct(map[string]any{"value": "hello"})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	srv := &ReflectServer{Proc: reflectvm.NewProcessor(nil)}
	resp, err := srv.TypeInfer(context.Background(), req)
	if err != nil {
		t.Fatalf("TypeInfer: %v", err)
	}
	if resp.Fields["kind"].GetStringValue() != string(types.KindLiteral) {
		t.Fatalf("expected the string \"hello\" to infer to a literal, got %v", resp.Fields["kind"])
	}
}

func TestReflectServerReflectResolvesNamedHostClass(t *testing.T) {
	ops := []int{int(packed.OpFrame), int(packed.OpClassReference), 0}
	opsStr, err := packed.EncodeOps(ops)
	if err != nil {
		t.Fatalf("EncodeOps: %v", err)
	}
	req, err := structpb.NewStruct(map[string]any{
		"opsString":    opsStr,
		"constantPool": []any{map[string]any{"$hostClass": "Widget"}},
	})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}

	classes := host.NewRegistry()
	classes.Register("Widget", nil)

	srv := &ReflectServer{Proc: reflectvm.NewProcessor(nil), Classes: classes}
	resp, err := srv.Reflect(context.Background(), req)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if resp.Fields["kind"].GetStringValue() != string(types.KindClass) {
		t.Fatalf("expected kind class, got %v", resp.Fields["kind"])
	}
	if resp.Fields["hostClass"].GetStringValue() != "Widget" {
		t.Fatalf("expected hostClass Widget, got %v", resp.Fields["hostClass"])
	}
}

func TestReflectServerReflectRejectsUnknownHostClassWithoutRegistry(t *testing.T) {
	ops := []int{int(packed.OpFrame), int(packed.OpClassReference), 0}
	opsStr, _ := packed.EncodeOps(ops)
	req, _ := structpb.NewStruct(map[string]any{
		"opsString":    opsStr,
		"constantPool": []any{map[string]any{"$hostClass": "Widget"}},
	})

	srv := &ReflectServer{Proc: reflectvm.NewProcessor(nil)}
	if _, err := srv.Reflect(context.Background(), req); err == nil {
		t.Fatalf("expected an error when no class registry is configured")
	}
}

func TestReflectServerTypeInferMissingValue(t *testing.T) {
	req, _ := structpb.NewStruct(map[string]any{})
	srv := &ReflectServer{Proc: reflectvm.NewProcessor(nil)}
	if _, err := srv.TypeInfer(context.Background(), req); err == nil {
		t.Fatalf("expected an error for a request missing \"value\"")
	}
}
