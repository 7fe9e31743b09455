package types

import "github.com/google/uuid"

// Symbol backs the `symbol` primitive kind's literal values and the
// annotation map keys spec.md §3 describes ("annotations: map from
// annotation symbol to a sequence of opaque payloads"). A UUID gives every
// symbol a stable, comparable identity independent of its display name —
// two symbols named "validate" created in different packages must never
// collide the way two equal strings would.
type Symbol struct {
	id   uuid.UUID
	Name string
}

// NewSymbol allocates a fresh, globally unique symbol.
func NewSymbol(name string) *Symbol {
	return &Symbol{id: uuid.New(), Name: name}
}

func (s *Symbol) String() string {
	if s.Name != "" {
		return "Symbol(" + s.Name + ")"
	}
	return "Symbol(" + s.id.String() + ")"
}

// Well-known annotation symbols used by the decorator registry (§4.2/§6.4).
var (
	AnnotationValidation  = NewSymbol("validation")
	AnnotationDescription = NewSymbol("description")
	AnnotationDefault     = NewSymbol("default")
)
