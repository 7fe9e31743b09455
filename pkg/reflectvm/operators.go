package reflectvm

import (
	"typegraph/pkg/infer"
	"typegraph/pkg/packed"
	"typegraph/pkg/rerrors"
	"typegraph/pkg/types"
)

// opIndexAccess implements `indexAccess`: pop index then container, run
// the structural indexed-access operator, stamp indexAccessOrigin, push.
func (proc *Processor) opIndexAccess(prog *Program) error {
	key, err := prog.PopType()
	if err != nil {
		return err
	}
	container, err := prog.PopType()
	if err != nil {
		return err
	}
	result := types.IndexAccess(container, key)
	if !types.IsSharedSingleton(result) {
		result.SetIndexAccessOrigin(&types.IndexAccessOrigin{Container: container, Key: key})
	}
	prog.Push(result)
	return nil
}

func (proc *Processor) opKeyof(prog *Program) error {
	t, err := prog.PopType()
	if err != nil {
		return err
	}
	prog.Push(types.Keyof(t))
	return nil
}

// opTypeof implements `typeof P`: evaluate the thunk at initialStack[P],
// feed the returned runtime value to the Value Inferer (§4.5), push the
// result.
func (proc *Processor) opTypeof(prog *Program, pool int) error {
	raw := prog.InitialStack[pool]
	thunk, ok := raw.(packed.Thunk)
	if !ok {
		return rerrors.NewMissingProgramError(raw)
	}
	value := thunk()
	result, err := infer.Infer(value, vmReflector{proc})
	if err != nil {
		return err
	}
	prog.Push(result)
	return nil
}
