package hir

import (
	"crest/internal/source"
	"crest/internal/symbols"
	"crest/internal/types"
)

// Param represents a function parameter.
type Param struct {
	Name     string
	SymbolID symbols.SymbolID
	Type     types.TypeID
	Mode     symbols.ParamMode
	Span     source.Span
}

// Func represents an HIR function.
type Func struct {
	ID       FuncID
	Name     string
	SymbolID symbols.SymbolID
	Span     source.Span
	Params   []Param
	Result   types.TypeID // NoTypeID for unit-returning functions
	Body     *Block
}

// HasBody returns true if this function has a body.
func (f *Func) HasBody() bool {
	return f.Body != nil
}
