package types

import "testing"

func TestBuiltinsAreStable(t *testing.T) {
	in := NewInterner()
	if in.Int() == NoTypeID || in.Int() != in.Int() {
		t.Fatalf("int type not stable: %d", in.Int())
	}
	ids := []TypeID{in.Unit(), in.Bool(), in.Int(), in.Float(), in.String()}
	seen := make(map[TypeID]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate builtin type id %d", id)
		}
		seen[id] = true
	}
}

func TestRefInterning(t *testing.T) {
	in := NewInterner()
	a := in.Ref(in.Int())
	b := in.Ref(in.Int())
	if a != b {
		t.Fatalf("ref(int) interned twice: %d vs %d", a, b)
	}
	tt, ok := in.Lookup(a)
	if !ok || tt.Kind != KindRef || tt.Elem != in.Int() {
		t.Fatalf("unexpected ref node: %+v ok=%v", tt, ok)
	}
	if got, want := in.Name(a), "&int"; got != want {
		t.Fatalf("Name = %q, want %q", got, want)
	}
}
