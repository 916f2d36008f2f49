package symbols

import (
	"crest/internal/source"
	"crest/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolFunction
	SymbolLet
	SymbolParam
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolLet:
		return "let"
	case SymbolParam:
		return "param"
	default:
		return "invalid"
	}
}

// ParamMode is the parameter-passing mode of a formal.
type ParamMode uint8

const (
	// ModeByValue copies the argument into the callee.
	ModeByValue ParamMode = iota
	// ModeByRef aliases the caller's variable; writes through the formal are
	// visible after the call returns. Formals added for captured variables
	// always use this mode.
	ModeByRef
)

func (m ParamMode) String() string {
	if m == ModeByRef {
		return "ref"
	}
	return "value"
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagMutable SymbolFlags = 1 << iota
	// SymbolFlagLifted marks a function symbol created by closure elimination
	// as the top-level replacement for a formerly nested function. Set once.
	SymbolFlagLifted
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 2)
	if f&SymbolFlagMutable != 0 {
		labels = append(labels, "mutable")
	}
	if f&SymbolFlagLifted != 0 {
		labels = append(labels, "lifted")
	}
	return labels
}

// Symbol describes a named entity known to the middle end.
//
// Parent encodes the lexical ownership the lifting pass queries:
//   - for SymbolFunction it is the enclosing function, NoSymbolID when the
//     function is declared at module (top) level;
//   - for SymbolLet and SymbolParam it is the function whose body declares
//     the binding, NoSymbolID for module-level globals.
type Symbol struct {
	Name   source.StringID
	Kind   SymbolKind
	Parent SymbolID
	Type   types.TypeID
	Mode   ParamMode // params only
	Flags  SymbolFlags
	Span   source.Span
}

// IsLifted reports whether the lifted flag is set.
func (s *Symbol) IsLifted() bool {
	return s != nil && s.Flags&SymbolFlagLifted != 0
}
