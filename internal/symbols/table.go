package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"crest/internal/source"
)

// Hints provide optional capacity suggestions for the symbol arena.
type Hints struct{ Symbols uint }

// Table aggregates the symbol arena and the shared string interner.
//
// The table is built by name resolution before the middle end runs. Passes
// may allocate new symbols (lifted functions, appended formals) but existing
// entries keep their IDs; nothing is ever removed.
type Table struct {
	Symbols *Symbols
	Strings *source.Interner
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// Name returns the textual name of a symbol, or "" for invalid IDs.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	return t.Strings.MustLookup(sym.Name)
}

// EnclosingFunc answers the scope query "does this function have a lexically
// enclosing function?". It returns NoSymbolID for top-level functions and for
// IDs that do not name a function.
func (t *Table) EnclosingFunc(id SymbolID) SymbolID {
	sym := t.Symbols.Get(id)
	if sym == nil || sym.Kind != SymbolFunction {
		return NoSymbolID
	}
	return sym.Parent
}

// IsNestedFunc reports whether id names a function declared inside another
// function.
func (t *Table) IsNestedFunc(id SymbolID) bool {
	return t.EnclosingFunc(id).IsValid()
}

// OwnerFunc returns the function whose body declares the given variable or
// parameter, NoSymbolID for module-level bindings.
func (t *Table) OwnerFunc(id SymbolID) SymbolID {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return NoSymbolID
	}
	switch sym.Kind {
	case SymbolLet, SymbolParam:
		return sym.Parent
	default:
		return NoSymbolID
	}
}

// FuncEncloses reports whether function anc lexically encloses function fn,
// directly or transitively. A function does not enclose itself.
func (t *Table) FuncEncloses(anc, fn SymbolID) bool {
	if !anc.IsValid() || !fn.IsValid() {
		return false
	}
	for cur := t.EnclosingFunc(fn); cur.IsValid(); cur = t.EnclosingFunc(cur) {
		if cur == anc {
			return true
		}
	}
	return false
}
