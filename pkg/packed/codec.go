package packed

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// codePointOffset is spec.md §6.1's "each character's code point minus
// 33 is one opcode".
const codePointOffset = 33

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// DecodeOps decodes a packed opcode string into its integer stream. The
// string is transcoded to raw UTF-16 code units via golang.org/x/text
// (teacher dependency) and read two bytes at a time, rather than walked
// as Go runes, since the source packs exactly one opcode per UTF-16 code
// unit the way the host language's own string indexing does — a
// rune-based walk would silently misalign the moment any opcode value
// landed outside the Basic Multilingual Plane.
func DecodeOps(s string) ([]int, error) {
	encoded, _, err := transform.String(utf16LE.NewEncoder(), s)
	if err != nil {
		return nil, fmt.Errorf("packed: opcode string is not valid UTF-16: %w", err)
	}
	raw := []byte(encoded)
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("packed: opcode byte stream has odd length %d", len(raw))
	}
	ops := make([]int, len(raw)/2)
	for i := range ops {
		unit := int(raw[2*i]) | int(raw[2*i+1])<<8
		v := unit - codePointOffset
		if v < 0 {
			return nil, fmt.Errorf("packed: opcode byte %d at position %d is below the code-point floor", v, i)
		}
		ops[i] = v
	}
	return ops, nil
}

// EncodeOps is the inverse of DecodeOps over the valid code-point range
// (spec.md TESTABLE PROPERTY 7): each integer becomes a single UTF-16
// code unit at value+33, concatenated into one string.
func EncodeOps(ops []int) (string, error) {
	raw := make([]byte, len(ops)*2)
	for i, v := range ops {
		if v < 0 {
			return "", fmt.Errorf("packed: cannot encode negative opcode byte %d at position %d", v, i)
		}
		unit := uint16(v + codePointOffset)
		raw[2*i] = byte(unit)
		raw[2*i+1] = byte(unit >> 8)
	}
	decoded, _, err := transform.Bytes(utf16LE.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("packed: encoded opcode stream is not valid UTF-16: %w", err)
	}
	return string(decoded), nil
}

// Unpack decodes p's ops/initialStack, memoizing the result on the
// carrier itself per spec.md §4.1.6 ("decoded once per Packed carrier
// and memoized; thereafter reused").
func Unpack(p *Packed) (ops []int, initialStack []any, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.unpacked {
		return p.ops, p.initStack, nil
	}

	opsStr, ok := p.OpsString()
	if !ok {
		return nil, nil, fmt.Errorf("packed: carrier has no trailing opcode string")
	}
	decoded, err := DecodeOps(opsStr)
	if err != nil {
		return nil, nil, err
	}

	p.ops = decoded
	p.initStack = p.ConstantPool()
	p.unpacked = true
	return p.ops, p.initStack, nil
}

// Pack builds a Packed from a decoded ops stream and constant pool —
// the encoder-facing half of the codec (spec.md §6.1 "pack(struct)"),
// used by tests and by the value inferer (§4.5) when it emits a fresh
// program on the fly.
func Pack(ops []int, initialStack []any) (*Packed, error) {
	opsStr, err := EncodeOps(ops)
	if err != nil {
		return nil, err
	}
	values := make([]any, len(initialStack)+1)
	copy(values, initialStack)
	values[len(initialStack)] = opsStr
	return New(values...), nil
}
