package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"typegraph/pkg/packed"
	"typegraph/pkg/reflectvm"
)

func TestReflectHandlerDecodesQueryAndBody(t *testing.T) {
	opsStr, err := packed.EncodeOps([]int{int(packed.OpString)})
	if err != nil {
		t.Fatalf("EncodeOps: %v", err)
	}
	body := `{"opsString": ` + jsonString(opsStr) + `, "constantPool": []}`

	mux := NewMux(reflectvm.NewProcessor(nil))
	req := httptest.NewRequest(http.MethodPost, "/reflect?reuseCached=true", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["kind"] != "string" {
		t.Fatalf("expected kind string, got %v", out["kind"])
	}
}

func TestReflectHandlerRejectsGet(t *testing.T) {
	mux := NewMux(reflectvm.NewProcessor(nil))
	req := httptest.NewRequest(http.MethodGet, "/reflect", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestTypeInferHandlerInfersScalar(t *testing.T) {
	mux := NewMux(reflectvm.NewProcessor(nil))
	req := httptest.NewRequest(http.MethodPost, "/typeInfer", strings.NewReader(`{"value": 42}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["kind"] != "literal" {
		t.Fatalf("expected kind literal, got %v", out["kind"])
	}
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
