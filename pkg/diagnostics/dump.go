// Package diagnostics supplies observability for the reflection VM: a
// structural pretty-printer for large Type graphs and a replay harness
// for spec.md §8's determinism properties, plus an append-only history
// log of invocations. None of it stores resolved Type graphs themselves
// — spec.md's non-goal is persistence of resolved types, not
// observability about how they were produced.
package diagnostics

import (
	"github.com/davecgh/go-spew/spew"

	"typegraph/pkg/types"
)

// dumper matches Garciat-gobid's checker debug calls (`spew.Dump(ty)`):
// a single shared, depth-limited config so large recursive type graphs
// don't dump indefinitely.
var dumper = &spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	MaxDepth:                12,
}

// Dump pretty-prints t's structure to stdout, following the teacher's
// checker debug trail (`spew.Dump(ty)` in checker_helpers.go) — used by
// `cmd/reflectdump run --dump` and by test failure messages for large
// graphs that a %s String() rendering would flatten past readability.
func Dump(t types.Type) {
	dumper.Dump(t)
}

// Sdump is Dump's string-returning twin, for embedding into a
// t.Fatalf/t.Errorf message.
func Sdump(t types.Type) string {
	return dumper.Sdump(t)
}
