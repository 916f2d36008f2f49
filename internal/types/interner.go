// Package types holds the Crest middle-end type representation.
//
// Types live in a compact arena and are referenced by stable TypeIDs, so
// later passes can copy and compare them without touching pointers.
package types

import (
	"fmt"

	"fortio.org/safecast"
)

// TypeID identifies a type inside the interner arena. Zero is the sentinel.
type TypeID uint32

// NoTypeID marks the absence of a type reference.
const NoTypeID TypeID = 0

// IsValid reports whether the ID refers to an allocated type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates type kinds relevant to the middle end.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindFloat
	KindString
	// KindRef is a by-reference view of Elem. Lifted formals for captured
	// variables carry the captured variable's declared type with a ByRef
	// parameter mode, not a KindRef wrapper; KindRef exists for source-level
	// reference types.
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindRef:
		return "ref"
	default:
		return "invalid"
	}
}

// Type is one interned type node.
type Type struct {
	Kind Kind
	Elem TypeID // for KindRef
}

// Interner stores all types in a slice-based arena.
type Interner struct {
	data []Type
	refs map[TypeID]TypeID // elem → ref(elem)

	unit, boolean, integer, float, str TypeID
}

// NewInterner creates an interner with the builtin types preallocated.
func NewInterner() *Interner {
	in := &Interner{
		data: make([]Type, 1, 16), // index 0 reserved for NoTypeID
		refs: make(map[TypeID]TypeID),
	}
	in.unit = in.alloc(Type{Kind: KindUnit})
	in.boolean = in.alloc(Type{Kind: KindBool})
	in.integer = in.alloc(Type{Kind: KindInt})
	in.float = in.alloc(Type{Kind: KindFloat})
	in.str = in.alloc(Type{Kind: KindString})
	return in
}

func (in *Interner) alloc(t Type) TypeID {
	value, err := safecast.Conv[uint32](len(in.data))
	if err != nil {
		panic(fmt.Errorf("types arena overflow: %w", err))
	}
	in.data = append(in.data, t)
	return TypeID(value)
}

func (in *Interner) Unit() TypeID   { return in.unit }
func (in *Interner) Bool() TypeID   { return in.boolean }
func (in *Interner) Int() TypeID    { return in.integer }
func (in *Interner) Float() TypeID  { return in.float }
func (in *Interner) String() TypeID { return in.str }

// Ref returns the interned reference type for elem.
func (in *Interner) Ref(elem TypeID) TypeID {
	if id, ok := in.refs[elem]; ok {
		return id
	}
	id := in.alloc(Type{Kind: KindRef, Elem: elem})
	in.refs[elem] = id
	return id
}

// Lookup returns the type node for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if !id.IsValid() || int(id) >= len(in.data) {
		return Type{}, false
	}
	return in.data[id], true
}

// Len reports the number of interned types, excluding the sentinel.
func (in *Interner) Len() int { return len(in.data) - 1 }

// Name renders a type for dumps and error messages.
func (in *Interner) Name(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<none>"
	}
	if t.Kind == KindRef {
		return "&" + in.Name(t.Elem)
	}
	return t.Kind.String()
}
