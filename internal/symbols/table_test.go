package symbols

import (
	"testing"
)

func TestArenaAssignsSequentialIDs(t *testing.T) {
	tab := NewTable(Hints{}, nil)
	a := tab.Symbols.New(&Symbol{Name: tab.Strings.Intern("a"), Kind: SymbolLet})
	b := tab.Symbols.New(&Symbol{Name: tab.Strings.Intern("b"), Kind: SymbolLet})
	if a == NoSymbolID || b == NoSymbolID {
		t.Fatalf("arena handed out the sentinel ID")
	}
	if b != a+1 {
		t.Fatalf("IDs not sequential: a=%d b=%d", a, b)
	}
	if got := tab.Name(a); got != "a" {
		t.Fatalf("Name(a) = %q", got)
	}
	if tab.Symbols.Get(NoSymbolID) != nil {
		t.Fatalf("Get(NoSymbolID) must be nil")
	}
	if got, want := tab.Symbols.Len(), 2; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}
}

func TestScopeQueries(t *testing.T) {
	tab := NewTable(Hints{}, nil)
	strs := tab.Strings

	top := tab.Symbols.New(&Symbol{Name: strs.Intern("top"), Kind: SymbolFunction})
	mid := tab.Symbols.New(&Symbol{Name: strs.Intern("mid"), Kind: SymbolFunction, Parent: top})
	leaf := tab.Symbols.New(&Symbol{Name: strs.Intern("leaf"), Kind: SymbolFunction, Parent: mid})
	x := tab.Symbols.New(&Symbol{Name: strs.Intern("x"), Kind: SymbolLet, Parent: mid})
	g := tab.Symbols.New(&Symbol{Name: strs.Intern("g"), Kind: SymbolLet})

	if tab.IsNestedFunc(top) {
		t.Fatalf("top must not be nested")
	}
	if !tab.IsNestedFunc(leaf) || tab.EnclosingFunc(leaf) != mid {
		t.Fatalf("leaf enclosing = %d, want %d", tab.EnclosingFunc(leaf), mid)
	}
	if !tab.FuncEncloses(top, leaf) {
		t.Fatalf("top must transitively enclose leaf")
	}
	if tab.FuncEncloses(leaf, top) {
		t.Fatalf("leaf must not enclose top")
	}
	if tab.FuncEncloses(mid, mid) {
		t.Fatalf("a function must not enclose itself")
	}
	if tab.OwnerFunc(x) != mid {
		t.Fatalf("OwnerFunc(x) = %d, want %d", tab.OwnerFunc(x), mid)
	}
	if tab.OwnerFunc(g).IsValid() {
		t.Fatalf("module-level binding must have no owner")
	}
}
