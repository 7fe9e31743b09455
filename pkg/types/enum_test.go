package types

import "testing"

func TestEnumAddMemberDefaultStart(t *testing.T) {
	e := NewEnumType("Color")
	e.AddMember("Red", nil)
	e.AddMember("Green", nil)
	e.AddMember("Blue", nil)

	for i, want := range []float64{0, 1, 2} {
		m := e.Members[i]
		if !m.HasDefault || m.Default.Num == nil || *m.Default.Num != want {
			t.Errorf("member %d: expected default %v, got %+v", i, want, m.Default)
		}
	}
}

func TestEnumAddMemberExplicitBreaksIncrement(t *testing.T) {
	e := NewEnumType("Status")
	e.AddMember("Pending", nil)
	explicit := LitNumber(10)
	e.AddMember("Active", &explicit)
	e.AddMember("Done", nil)

	if got := *e.Members[1].Default.Num; got != 10 {
		t.Errorf("expected explicit default 10, got %v", got)
	}
	if got := *e.Members[2].Default.Num; got != 11 {
		t.Errorf("expected auto-increment from explicit default, got %v", got)
	}
}

func TestEnumAddMemberNonIntegerStopsIncrement(t *testing.T) {
	e := NewEnumType("Ratio")
	half := LitNumber(0.5)
	e.AddMember("Half", &half)
	e.AddMember("Next", nil)

	if e.Members[1].HasDefault {
		t.Error("a fractional default should not auto-increment for the next member")
	}
}

func TestEnumAddMemberStringDefaultStopsIncrement(t *testing.T) {
	e := NewEnumType("Direction")
	up := LitString("UP")
	e.AddMember("Up", &up)
	e.AddMember("Down", nil)

	if e.Members[1].HasDefault {
		t.Error("a string default should not auto-increment for the next member")
	}
}
