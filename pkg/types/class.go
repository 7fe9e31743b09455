package types

import "strings"

// HostClass is the opaque handle the VM's classReference/class opcodes
// resolve to — a host class carrying (optionally) its own encoded program
// and its deferred decorator records. Kept narrow per spec.md §9 design
// notes ("a single trait... so reflection logic remains host-agnostic").
type HostClass interface {
	Name() string
	Program() any // the host's *packed.Packed for this class, or nil
	Decorators() []DecoratorRecord
}

// DecoratorRecord is a class-decorator entry a host class carries,
// deferred until the class's program terminates (spec.md §6.4): Data is
// the validator payload, Property names the target member, and
// ParameterIndexOrDescriptor distinguishes a property target (nil) from a
// method-parameter target (its int index).
type DecoratorRecord struct {
	Data                       any
	Property                   string
	ParameterIndexOrDescriptor any
}

// ClassType is `class(classType, typeArguments?, arguments?,
// extendsArguments?, members[])`.
type ClassType struct {
	Meta
	// ClassType holds either the Object placeholder sentinel described in
	// spec.md §3 invariant 3, or the patched HostClass once the program
	// finishes.
	ClassType        Type
	HostClass        HostClass
	Arguments        []any
	ExtendsArguments []Type
	Members          []Type
}

// ObjectPlaceholder is spec.md §3 invariant 3's sentinel: "classType ===
// Object is a placeholder meaning 'the class whose encoded program
// produced this node'". We reuse the Object primitive singleton as that
// marker, matching the source's literal use of the host Object
// constructor for the same purpose.
var ObjectPlaceholder = Object

func NewClassType() *ClassType {
	return &ClassType{ClassType: ObjectPlaceholder}
}

// AddMember mirrors ObjectLiteralType.AddMember's dedup-by-name rule.
func (c *ClassType) AddMember(m Type) {
	m = adopt(m, c)
	name := namedMember(m)
	if name != "" {
		for i, existing := range c.Members {
			if namedMember(existing) == name {
				c.Members[i] = m
				return
			}
		}
	}
	c.Members = append(c.Members, m)
}

// PatchHostClass overwrites the Object placeholder with the resolved host
// class once the program that produced this node terminates (spec.md §3
// invariant 3 / §4.1.3 `class`: "patched to the host class when the
// program terminates").
func (c *ClassType) PatchHostClass(h HostClass) {
	c.HostClass = h
	c.ClassType = nil // no longer a placeholder; HostClass is authoritative
}

func (c *ClassType) Kind() Kind { return KindClass }
func (c *ClassType) String() string {
	name := "<anonymous class>"
	if c.HostClass != nil {
		name = c.HostClass.Name()
	}
	parts := make([]string, len(c.Members))
	for i, m := range c.Members {
		parts[i] = m.String()
	}
	return "class " + name + " { " + strings.Join(parts, "; ") + " }"
}
func (c *ClassType) typeNode() {}
func (c *ClassType) Equals(other Type) bool {
	o, ok := other.(*ClassType)
	if !ok || c == nil || o == nil {
		return c == o
	}
	if c.HostClass != nil || o.HostClass != nil {
		return c.HostClass == o.HostClass
	}
	if len(c.Members) != len(o.Members) {
		return false
	}
	for i, m := range c.Members {
		if !m.Equals(o.Members[i]) {
			return false
		}
	}
	return true
}
