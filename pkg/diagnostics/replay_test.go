package diagnostics

import (
	"testing"

	"typegraph/pkg/packed"
	"typegraph/pkg/types"
)

type fixedReflector struct {
	// sequence supplies one result per call, cycling on the last entry
	// once exhausted.
	sequence []types.Type
	calls    int
}

func (f *fixedReflector) Reflect(object any, inputs []types.Type, reuseCached bool) (types.Type, error) {
	idx := f.calls
	if idx >= len(f.sequence) {
		idx = len(f.sequence) - 1
	}
	f.calls++
	return f.sequence[idx], nil
}

func TestReplayDeterministicCacheHit(t *testing.T) {
	shared := types.String
	r := &fixedReflector{sequence: []types.Type{shared, shared, shared}}
	carrier, _ := packed.Pack([]int{int(packed.OpString)}, nil)
	results, err := Replay(r, carrier, nil, true, 3, nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !CheckDeterminism(results) {
		t.Errorf("expected all runs structurally equal")
	}
	if !CheckCacheIdentity(results) {
		t.Errorf("expected all runs to share the cached reference")
	}
}

func TestReplayGenericNeverCaches(t *testing.T) {
	r := &fixedReflector{sequence: []types.Type{
		types.NewArrayType(types.String),
		types.NewArrayType(types.String),
	}}
	carrier, _ := packed.Pack([]int{int(packed.OpString), int(packed.OpArray)}, nil)
	results, err := Replay(r, carrier, []types.Type{types.String}, false, 2, nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !CheckDeterminism(results) {
		t.Errorf("expected structurally-equal-but-distinct array types across instantiations")
	}
	if !CheckNoGenericCache(results) {
		t.Errorf("expected distinct references for a generic instantiation replay")
	}
}

func TestReplayRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	h, err := OpenHistory(dir + "/history.db")
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer h.Close()

	r := &fixedReflector{sequence: []types.Type{types.Number, types.Number}}
	carrier, _ := packed.Pack([]int{int(packed.OpNumber)}, nil)
	if _, err := Replay(r, carrier, nil, true, 2, h); err != nil {
		t.Fatalf("Replay: %v", err)
	}

	summary, err := h.Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Total != 2 {
		t.Fatalf("expected 2 recorded invocations, got %d", summary.Total)
	}
	if summary.CacheHits != 1 {
		t.Fatalf("expected 1 cache hit (the second run), got %d", summary.CacheHits)
	}
}

func TestReplayRejectsZeroRuns(t *testing.T) {
	r := &fixedReflector{sequence: []types.Type{types.String}}
	carrier, _ := packed.Pack([]int{int(packed.OpString)}, nil)
	if _, err := Replay(r, carrier, nil, false, 0, nil); err == nil {
		t.Fatalf("expected an error for n < 1")
	}
}
