package reflectvm

import (
	"typegraph/pkg/packed"
)

// dispatch executes one opcode against prog, consuming its inline
// operands from prog.Ops starting at prog.PC and advancing prog.PC past
// them. entryPC — the PC value on entry, before any operand is
// consumed — is threaded through to the handlers that compute jump
// targets relative to it (call, jumpCondition, distribute, mappedType),
// per calling.go's convention.
func (proc *Processor) dispatch(prog *Program, op packed.OpCode) error {
	entryPC := prog.PC
	operand := func() int {
		v := prog.Ops[prog.PC]
		prog.PC++
		return v
	}

	switch op {
	case packed.OpString, packed.OpNumber, packed.OpBoolean, packed.OpBigInt,
		packed.OpSymbol, packed.OpNull, packed.OpUndefined, packed.OpAny,
		packed.OpUnknown, packed.OpVoid, packed.OpNever, packed.OpObject,
		packed.OpRegExp, packed.OpDate, packed.OpArrayBuffer,
		packed.OpInt8Array, packed.OpUint8Array, packed.OpUint8ClampedArray,
		packed.OpInt16Array, packed.OpUint16Array, packed.OpInt32Array,
		packed.OpUint32Array, packed.OpFloat32Array, packed.OpFloat64Array,
		packed.OpBigInt64Array, packed.OpBigUint64Array:
		build, ok := primitiveBuilders[op.String()]
		if !ok {
			return errStackUnderflow(prog)
		}
		prog.Push(build())

	case packed.OpLiteral:
		return proc.opLiteral(prog, operand())
	case packed.OpNumberBrand:
		return proc.opNumberBrand(prog, operand())
	case packed.OpTemplateLiteral:
		return proc.opTemplateLiteral(prog)

	case packed.OpArray:
		return proc.opArray(prog)
	case packed.OpTuple:
		return proc.opTuple(prog)
	case packed.OpTupleMember:
		return proc.opTupleMember(prog)
	case packed.OpNamedTupleMember:
		return proc.opNamedTupleMember(prog, operand())
	case packed.OpRest:
		return proc.opRest(prog)

	case packed.OpSet:
		return proc.opSet(prog)
	case packed.OpMap:
		return proc.opMap(prog)
	case packed.OpPromise:
		return proc.opPromise(prog)

	case packed.OpProperty:
		return proc.opProperty(prog, operand())
	case packed.OpPropertySignature:
		return proc.opPropertySignature(prog, operand())
	case packed.OpMethod:
		return proc.opMethod(prog, operand())
	case packed.OpMethodSignature:
		return proc.opMethodSignature(prog, operand())
	case packed.OpParameter:
		return proc.opParameter(prog, operand())

	case packed.OpOptional:
		return proc.opOptional(prog)
	case packed.OpReadOnly:
		return proc.opReadOnly(prog)
	case packed.OpPublic:
		return proc.opPublic(prog)
	case packed.OpProtected:
		return proc.opProtected(prog)
	case packed.OpPrivate:
		return proc.opPrivate(prog)
	case packed.OpAbstract:
		return proc.opAbstract(prog)

	case packed.OpDefaultValue:
		return proc.opDefaultValue(prog, operand())
	case packed.OpDescription:
		return proc.opDescription(prog, operand())

	case packed.OpIndexSignature:
		return proc.opIndexSignature(prog)

	case packed.OpObjectLiteral:
		return proc.opObjectLiteral(prog)
	case packed.OpClass:
		return proc.opClass(prog)
	case packed.OpClassExtends:
		return proc.opClassExtends(prog, operand())
	case packed.OpClassReference:
		return proc.opClassReference(prog, operand())

	case packed.OpEnum:
		return proc.opEnum(prog)
	case packed.OpEnumMember:
		return proc.opEnumMember(prog, operand())

	case packed.OpUnion:
		return proc.opUnion(prog)
	case packed.OpIntersection:
		return proc.opIntersection(prog)

	case packed.OpFunction:
		return proc.opFunction(prog, operand())

	case packed.OpTypeParameter:
		return proc.opTypeParameter(prog, operand())
	case packed.OpTypeParameterDefault:
		return proc.opTypeParameterDefault(prog, operand())

	case packed.OpVar:
		return proc.opVar(prog)

	case packed.OpLoads:
		depth := operand()
		index := operand()
		return proc.opLoads(prog, depth, index)
	case packed.OpArg:
		return proc.opArg(prog, operand())
	case packed.OpInfer:
		depth := operand()
		index := operand()
		return proc.opInfer(prog, depth, index)

	case packed.OpExtends:
		return proc.opExtends(prog)
	case packed.OpCondition:
		return proc.opCondition(prog)
	case packed.OpJumpCondition:
		left := operand()
		right := operand()
		return proc.opJumpCondition(prog, entryPC, left, right)

	case packed.OpDistribute:
		bodyPC := operand()
		return proc.opDistribute(prog, entryPC, bodyPC)
	case packed.OpMappedType:
		bodyPC := operand()
		modifiers := operand()
		return proc.opMappedType(prog, entryPC, bodyPC, modifiers)

	case packed.OpIndexAccess:
		return proc.opIndexAccess(prog)
	case packed.OpKeyof:
		return proc.opKeyof(prog)
	case packed.OpTypeof:
		return proc.opTypeof(prog, operand())
	case packed.OpWiden:
		return proc.opWiden(prog)

	case packed.OpJump:
		return proc.opJump(prog, operand())
	case packed.OpCall:
		target := operand()
		return proc.opCall(prog, entryPC, target)
	case packed.OpInline:
		return proc.opInline(prog, operand())
	case packed.OpInlineCall:
		pool := operand()
		n := operand()
		return proc.opInlineCall(prog, pool, n)

	case packed.OpReturn:
		return proc.ret(prog)
	case packed.OpFrame:
		proc.openFrame(prog)
	case packed.OpMoveFrame:
		return proc.moveFrame(prog)

	default:
		return errStackUnderflow(prog)
	}
	return nil
}
