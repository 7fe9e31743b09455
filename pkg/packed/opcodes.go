// Package packed implements the on-value program carrier and its codec
// (spec.md §6.1): an ordered sequence whose trailing element is a string
// of opcode bytes, preceded by the constant pool the opcodes index into.
package packed

// OpCode enumerates the reflection VM's stack-opcode set (spec.md
// §4.1.3). Grounded on the shape of the teacher's vm/bytecode.go OpCode
// table — a flat uint8 enum with one named constant and an explicit
// operand-count comment per opcode — reinterpreted here as stack opcodes
// instead of the teacher's register opcodes.
type OpCode uint8

const (
	OpString    OpCode = iota // : push string
	OpNumber                  // : push number
	OpBoolean                 // : push boolean
	OpBigInt                  // : push bigint
	OpSymbol                  // : push symbol
	OpNull                    // : push null
	OpUndefined               // : push undefined
	OpAny                     // : push any
	OpUnknown                 // : push unknown
	OpVoid                    // : push void
	OpNever                   // : push never
	OpObject                  // : push object
	OpRegExp                  // : push regexp
	OpDate                    // : push Date instantiation
	OpArrayBuffer             // : push ArrayBuffer instantiation

	OpInt8Array         // : push Int8Array instantiation
	OpUint8Array        // : push Uint8Array instantiation
	OpUint8ClampedArray // : push Uint8ClampedArray instantiation
	OpInt16Array        // : push Int16Array instantiation
	OpUint16Array       // : push Uint16Array instantiation
	OpInt32Array        // : push Int32Array instantiation
	OpUint32Array       // : push Uint32Array instantiation
	OpFloat32Array      // : push Float32Array instantiation
	OpFloat64Array      // : push Float64Array instantiation
	OpBigInt64Array     // : push BigInt64Array instantiation
	OpBigUint64Array    // : push BigUint64Array instantiation

	OpLiteral         // P: push {literal: initialStack[P]}
	OpNumberBrand     // B: push {number, brand: B}
	OpTemplateLiteral // : pop frame, build template literal union

	OpArray           // : wrap TOS as array(elem)
	OpTuple           // : pop frame, build tuple
	OpTupleMember     // : pop type, build tupleMember
	OpNamedTupleMember // N: pop type, build named tupleMember from initialStack[N]
	OpRest            // : pop type, build rest

	OpSet     // : pop type, build Set<T>
	OpMap     // : pop 2 types, build Map<K,V>
	OpPromise // : pop type, build Promise<T>

	OpProperty          // P: pop type, build property from initialStack[P]
	OpPropertySignature // P: pop type, build propertySignature from initialStack[P]
	OpMethod            // P: pop frame, build method named initialStack[P]
	OpMethodSignature   // P: pop frame, build methodSignature named initialStack[P]
	OpParameter         // P: pop type, attach name initialStack[P]

	OpOptional  // : mark TOS optional
	OpReadOnly  // : mark TOS readonly
	OpPublic    // : mark TOS visibility=public
	OpProtected // : mark TOS visibility=protected
	OpPrivate   // : mark TOS visibility=private
	OpAbstract  // : mark TOS abstract

	OpDefaultValue // P: attach default initialStack[P] to TOS
	OpDescription  // P: attach description initialStack[P] to TOS

	OpIndexSignature // : pop type, pop index, build indexSignature

	OpObjectLiteral // : pop frame, build objectLiteral
	OpClass         // : pop frame, build class
	OpClassExtends  // N: pop N types, attach as TOS's extendsArguments
	OpClassReference // P: resolve host class thunk initialStack[P]

	OpEnum       // : pop frame, build enum
	OpEnumMember // P: build enumMember named initialStack[P]

	OpUnion        // : pop frame, build normalized union
	OpIntersection // : pop frame, build normalized intersection

	OpFunction // P: pop frame (last=return, rest=parameters)

	OpTypeParameter        // N: read frame.inputs[variables++] or push sentinel
	OpTypeParameterDefault // N: as above, with a popped default

	OpVar // : push never, reserve a local slot

	OpLoads // F, I: push stack[frame_at(F).startIndex + 1 + I]
	OpArg   // N: push stack[frame.startIndex - N]
	OpInfer // F, I: push infer node writing into (F, I)

	OpExtends      // : pop right, pop left, push literal(isExtendable)
	OpCondition    // : pop right, left, condition; pop frame; push chosen branch
	OpJumpCondition // L, R: pop condition, call(L) or call(R)

	OpDistribute // P: distributive conditional loop
	OpMappedType // F, M: mapped type loop

	OpIndexAccess // : pop index, pop container, push T[K]
	OpKeyof       // : pop type, push keyof
	OpTypeof      // P: evaluate thunk initialStack[P], run the value inferer
	OpWiden       // : widen TOS if literal

	OpJump      // N: PC = N (absolute)
	OpCall      // N: call(N)
	OpInline    // P: resolve initialStack[P] (Packed/thunk/0-self), push it
	OpInlineCall // P, N: pop N args, instantiate program initialStack[P]

	OpReturn // : pop value, return to caller
	OpFrame  // : open a new frame at current SP
	OpMoveFrame // : pop value, discard frame, re-push value

	opCodeCount
)

// operandCounts gives the number of inline operands following each
// opcode byte in the decoded ops stream, mirroring the per-opcode
// operand documentation in the teacher's bytecode table.
var operandCounts = [opCodeCount]int{
	OpLiteral:              1,
	OpNumberBrand:          1,
	OpNamedTupleMember:     1,
	OpProperty:             1,
	OpPropertySignature:    1,
	OpMethod:               1,
	OpMethodSignature:      1,
	OpParameter:            1,
	OpDefaultValue:         1,
	OpDescription:          1,
	OpClassExtends:         1,
	OpClassReference:       1,
	OpEnumMember:           1,
	OpFunction:             1,
	OpTypeParameter:        1,
	OpTypeParameterDefault: 1,
	OpArg:                  1,
	OpLoads:                2,
	OpInfer:                2,
	OpJumpCondition:        2,
	OpDistribute:           1,
	OpMappedType:           2,
	OpTypeof:               1,
	OpJump:                 1,
	OpCall:                 1,
	OpInline:               1,
	OpInlineCall:           2,
}

// OperandCount reports how many inline operands follow op in the decoded
// ops stream.
func (op OpCode) OperandCount() int {
	if int(op) < 0 || int(op) >= len(operandCounts) {
		return 0
	}
	return operandCounts[op]
}

func (op OpCode) String() string {
	if name, ok := opCodeNames[op]; ok {
		return name
	}
	return "OpUnknown(" + itoa(int(op)) + ")"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

var opCodeNames = map[OpCode]string{
	OpString: "string", OpNumber: "number", OpBoolean: "boolean", OpBigInt: "bigint",
	OpSymbol: "symbol", OpNull: "null", OpUndefined: "undefined", OpAny: "any",
	OpUnknown: "unknown", OpVoid: "void", OpNever: "never", OpObject: "object",
	OpRegExp: "regexp", OpDate: "date", OpArrayBuffer: "arrayBuffer",
	OpInt8Array: "Int8Array", OpUint8Array: "Uint8Array",
	OpUint8ClampedArray: "Uint8ClampedArray", OpInt16Array: "Int16Array",
	OpUint16Array: "Uint16Array", OpInt32Array: "Int32Array",
	OpUint32Array: "Uint32Array", OpFloat32Array: "Float32Array",
	OpFloat64Array: "Float64Array", OpBigInt64Array: "BigInt64Array",
	OpBigUint64Array: "BigUint64Array",
	OpLiteral: "literal", OpNumberBrand: "numberBrand", OpTemplateLiteral: "templateLiteral",
	OpArray: "array", OpTuple: "tuple", OpTupleMember: "tupleMember",
	OpNamedTupleMember: "namedTupleMember", OpRest: "rest",
	OpSet: "set", OpMap: "map", OpPromise: "promise",
	OpProperty: "property", OpPropertySignature: "propertySignature",
	OpMethod: "method", OpMethodSignature: "methodSignature", OpParameter: "parameter",
	OpOptional: "optional", OpReadOnly: "readonly", OpPublic: "public",
	OpProtected: "protected", OpPrivate: "private", OpAbstract: "abstract",
	OpDefaultValue: "defaultValue", OpDescription: "description",
	OpIndexSignature: "indexSignature", OpObjectLiteral: "objectLiteral",
	OpClass: "class", OpClassExtends: "classExtends", OpClassReference: "classReference",
	OpEnum: "enum", OpEnumMember: "enumMember",
	OpUnion: "union", OpIntersection: "intersection", OpFunction: "function",
	OpTypeParameter: "typeParameter", OpTypeParameterDefault: "typeParameterDefault",
	OpVar: "var", OpLoads: "loads", OpArg: "arg", OpInfer: "infer",
	OpExtends: "extends", OpCondition: "condition", OpJumpCondition: "jumpCondition",
	OpDistribute: "distribute", OpMappedType: "mappedType",
	OpIndexAccess: "indexAccess", OpKeyof: "keyof", OpTypeof: "typeof", OpWiden: "widen",
	OpJump: "jump", OpCall: "call", OpInline: "inline", OpInlineCall: "inlineCall",
	OpReturn: "return", OpFrame: "frame", OpMoveFrame: "moveFrame",
}
