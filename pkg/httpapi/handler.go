// Package httpapi is a debug HTTP mirror of pkg/rpcapi's ReflectService,
// grounded on broady-tygor's handler.go: a package-level
// `gorilla/schema` decoder (`schemaDecoder.IgnoreUnknownKeys(true)`)
// turns query parameters into a typed options struct before the request
// body (JSON, not query-encoded — a Packed carrier's constant pool is
// too irregularly shaped for schema's flat key=value decoding) is
// handled. This exists for curl-friendly debugging; pkg/rpcapi remains
// the primary network surface.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"

	"typegraph/pkg/infer"
	"typegraph/pkg/packed"
	"typegraph/pkg/reflectvm"
	"typegraph/pkg/rpcapi"
	"typegraph/pkg/types"
)

var schemaDecoder = schema.NewDecoder()

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

// reflectQuery is the subset of reflectvm.ReflectOptions the debug
// endpoint accepts via `?reuseCached=true`.
type reflectQuery struct {
	ReuseCached bool `schema:"reuseCached"`
}

// reflectBody is a Packed carrier flattened onto the wire, mirroring
// pkg/rpcapi's structpb request shape but as plain JSON.
type reflectBody struct {
	OpsString    string `json:"opsString"`
	ConstantPool []any  `json:"constantPool"`
}

// NewMux builds the debug HTTP surface: POST /reflect (body: a Packed
// carrier; query: reuseCached) and POST /typeInfer (body: {"value": ...}).
func NewMux(proc *reflectvm.Processor) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/reflect", reflectHandler(proc))
	mux.HandleFunc("/typeInfer", typeInferHandler(proc))
	return mux
}

func reflectHandler(proc *reflectvm.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "reflect requires POST", http.StatusMethodNotAllowed)
			return
		}

		var q reflectQuery
		if err := schemaDecoder.Decode(&q, r.URL.Query()); err != nil {
			http.Error(w, "bad query: "+err.Error(), http.StatusBadRequest)
			return
		}

		var body reflectBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad body: "+err.Error(), http.StatusBadRequest)
			return
		}

		carrier := packed.New(append(body.ConstantPool, body.OpsString)...)
		result, err := proc.Reflect(carrier, nil, reflectvm.ReflectOptions{ReuseCached: q.ReuseCached})
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeType(w, result)
	}
}

func typeInferHandler(proc *reflectvm.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "typeInfer requires POST", http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			Value any `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad body: "+err.Error(), http.StatusBadRequest)
			return
		}
		result, err := infer.Infer(payload.Value, httpReflector{proc: proc})
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeType(w, result)
	}
}

// httpReflector adapts a Processor to infer.Reflector, mirroring
// pkg/rpcapi's wireReflector.
type httpReflector struct {
	proc *reflectvm.Processor
}

func (h httpReflector) Reflect(object any, inputs []types.Type) (types.Type, error) {
	return h.proc.Reflect(object, inputs, reflectvm.ReflectOptions{})
}

func writeType(w http.ResponseWriter, result types.Type) {
	s, err := rpcapi.EncodeType(result)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.AsMap())
}
