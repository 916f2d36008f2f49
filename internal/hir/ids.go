// Package hir provides the typed intermediate representation of the Crest
// middle end.
//
// HIR arrives fully resolved: every variable reference and call carries the
// SymbolID assigned by name resolution, and every expression carries a TypeID
// from type checking. Middle-end passes (closure elimination in particular)
// mutate HIR in place and hand the result to code generation.
package hir

// FuncID identifies a function within an HIR module.
type FuncID uint32

// NoFuncID is the invalid function ID (zero is sentinel).
const NoFuncID FuncID = 0

// IsValid returns true if the ID is valid (non-zero).
func (id FuncID) IsValid() bool { return id != NoFuncID }
