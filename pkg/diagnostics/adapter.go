package diagnostics

import (
	"typegraph/pkg/reflectvm"
	"typegraph/pkg/types"
)

// processorReflector adapts *reflectvm.Processor to Reflector, keeping
// Replay's own signature free of reflectvm.ReflectOptions so a test can
// swap in a stub without pulling in the whole VM package.
type processorReflector struct {
	proc *reflectvm.Processor
}

// NewProcessorReflector wraps proc for use with Replay.
func NewProcessorReflector(proc *reflectvm.Processor) Reflector {
	return processorReflector{proc: proc}
}

func (p processorReflector) Reflect(object any, inputs []types.Type, reuseCached bool) (types.Type, error) {
	return p.proc.Reflect(object, inputs, reflectvm.ReflectOptions{ReuseCached: reuseCached})
}
