package hir

import (
	"crest/internal/source"
	"crest/internal/symbols"
	"crest/internal/types"
)

// Module represents an HIR module (corresponding to a source file).
//
// Funcs is the module's top-level statement list as far as function
// definitions are concerned: nested functions do not appear here until
// closure elimination appends their lifted replacements.
type Module struct {
	Name    string
	Funcs   []*Func
	Globals []VarDecl

	// Symbols is the resolver table; passes allocate replacement symbols in
	// it and consult it for scope queries.
	Symbols *symbols.Table

	// Types is borrowed from the checker so middle-end passes can type the
	// formals they introduce without re-running inference.
	Types *types.Interner
}

// VarDecl represents a top-level variable declaration (let).
type VarDecl struct {
	Name     string
	SymbolID symbols.SymbolID
	Type     types.TypeID
	Value    *Expr // nil if none
	IsMut    bool
	Span     source.Span
}

// FindFunc finds a function by name, returns nil if not found.
func (m *Module) FindFunc(name string) *Func {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FindFuncBySymbol finds a function by symbol ID, returns nil if not found.
func (m *Module) FindFuncBySymbol(symID symbols.SymbolID) *Func {
	for _, f := range m.Funcs {
		if f.SymbolID == symID {
			return f
		}
	}
	return nil
}
