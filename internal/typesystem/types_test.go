package typesystem

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Bottom, "<unknown>"},
		{Bit, "bit"},
		{Qbit, "qbit"},
		{Rad, "rad"},
		{F64, "f64"},
		{Bool, "bool"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBigtype(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Type
		want   Type
	}{
		{"bit and qbit", Bit, Qbit, Qbit},
		{"qbit and rad", Qbit, Rad, Rad},
		{"rad and f64", Rad, F64, F64},
		{"equal ranks", Bit, Bit, Bit},
		{"bool and bool", Bool, Bool, Bool},
		{"bool and bit is bottom", Bool, Bit, Bottom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bigtype(tt.a, tt.b); got != tt.want {
				t.Errorf("Bigtype(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSmalltype(t *testing.T) {
	if got := Smalltype(Qbit, F64); got != Qbit {
		t.Errorf("Smalltype(Qbit, F64) = %s, want Qbit", got)
	}
	if got := Smalltype(Bool, Bool); got != Bool {
		t.Errorf("Smalltype(Bool, Bool) = %s, want Bool", got)
	}
}

func TestCoercesTo(t *testing.T) {
	tests := []struct {
		from, to Type
		want     bool
	}{
		{Bit, Qbit, true},
		{Qbit, Bit, true},
		{F64, F64, true},
		{Bit, F64, false},
		{Bool, Bit, false},
	}
	for _, tt := range tests {
		if got := CoercesTo(tt.from, tt.to); got != tt.want {
			t.Errorf("CoercesTo(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestScalarRotate(t *testing.T) {
	if got, ok := ScalarRotate(Qbit, F64); !ok || got != Qbit {
		t.Errorf("ScalarRotate(Qbit, F64) = (%s, %v), want (Qbit, true)", got, ok)
	}
	if got, ok := ScalarRotate(F64, Qbit); !ok || got != Qbit {
		t.Errorf("ScalarRotate(F64, Qbit) = (%s, %v), want (Qbit, true)", got, ok)
	}
	if _, ok := ScalarRotate(Bit, F64); ok {
		t.Errorf("ScalarRotate(Bit, F64) should not apply")
	}
}
