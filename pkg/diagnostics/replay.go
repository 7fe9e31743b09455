package diagnostics

import (
	"fmt"

	"typegraph/pkg/packed"
	"typegraph/pkg/types"
)

// Reflector is the narrow slice of reflectvm.Processor Replay needs —
// kept separate from infer.Reflector because this one always runs
// against a *packed.Packed carrier directly, never a host handle.
type Reflector interface {
	Reflect(object any, inputs []types.Type, reuseCached bool) (types.Type, error)
}

// ReplayResult reports one run's outcome against a History log entry.
type ReplayResult struct {
	Result types.Type
	// SameReference is true when this run's result is the identical
	// node reference as the previous run's (relevant only when
	// Replay's inputs are empty and reuseCached is set — spec.md §8
	// property 2).
	SameReference bool
	// StructurallyEqual is true when this run's result is Equals-equal
	// to the previous run's (spec.md §8 property 1, determinism).
	StructurallyEqual bool
}

// Replay runs carrier through r n times with the same inputs and
// ReuseCached policy, checking spec.md §8 properties 1–3: every run
// must be structurally equal to the first (determinism); when
// reuseCached is set and inputs is empty, every run after the first
// must be the identical reference (cache hit); when inputs is
// non-empty (a generic instantiation), no run may share a reference
// with another (no caching across distinct instantiations). Each run's
// outcome is appended to h if h is non-nil, with an opcode count of 0:
// Reflector does not report how many opcodes ran.
func Replay(r Reflector, carrier *packed.Packed, inputs []types.Type, reuseCached bool, n int, h *History) ([]ReplayResult, error) {
	if n < 1 {
		return nil, fmt.Errorf("diagnostics: Replay requires n >= 1, got %d", n)
	}
	objectID := fmt.Sprintf("%p", carrier)
	results := make([]ReplayResult, 0, n)
	var first types.Type
	for i := 0; i < n; i++ {
		result, err := r.Reflect(carrier, inputs, reuseCached)
		if err != nil {
			return results, err
		}
		rr := ReplayResult{Result: result}
		if i == 0 {
			first = result
			rr.SameReference = true
			rr.StructurallyEqual = true
		} else {
			rr.SameReference = result == first
			rr.StructurallyEqual = result.Equals(first)
		}
		results = append(results, rr)
		if h != nil {
			cacheHit := i > 0 && reuseCached && len(inputs) == 0
			if err := h.Record(objectID, cacheHit, 0); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

// CheckDeterminism reports whether every run in results is structurally
// equal to the first (spec.md §8 property 1).
func CheckDeterminism(results []ReplayResult) bool {
	for _, r := range results {
		if !r.StructurallyEqual {
			return false
		}
	}
	return true
}

// CheckCacheIdentity reports whether every run in results shares the
// first run's reference (spec.md §8 property 2, for non-generic reuse).
func CheckCacheIdentity(results []ReplayResult) bool {
	for _, r := range results {
		if !r.SameReference {
			return false
		}
	}
	return true
}

// CheckNoGenericCache reports whether no run after the first shares a
// reference with the first (spec.md §8 property 3, generic
// instantiations never cache).
func CheckNoGenericCache(results []ReplayResult) bool {
	for i, r := range results {
		if i > 0 && r.SameReference {
			return false
		}
	}
	return true
}
