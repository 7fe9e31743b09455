package reflectvm

import (
	"typegraph/pkg/packed"
	"typegraph/pkg/types"
)

// hostClassAdapter lets a packed.HostClassRef (the codec's narrow view)
// satisfy types.HostClass (the resolved graph's narrow view), so the VM
// never forces the types package to import the packed package or vice
// versa (spec.md §9 design note: "keep this interface narrow").
type hostClassAdapter struct {
	ref packed.HostClassRef
}

func (h *hostClassAdapter) Name() string { return h.ref.Name() }
func (h *hostClassAdapter) Program() any {
	prog := h.ref.Program()
	if prog == nil {
		return nil
	}
	return prog
}

func (h *hostClassAdapter) Decorators() []types.DecoratorRecord {
	recs := h.ref.Decorators()
	if len(recs) == 0 {
		return nil
	}
	out := make([]types.DecoratorRecord, len(recs))
	for i, r := range recs {
		out[i] = types.DecoratorRecord{
			Data:                       r.Data,
			Property:                   r.Property,
			ParameterIndexOrDescriptor: r.ParameterIndexOrDescriptor,
		}
	}
	return out
}

func adaptHostClass(ref packed.HostClassRef) types.HostClass {
	if ref == nil {
		return nil
	}
	return &hostClassAdapter{ref: ref}
}
