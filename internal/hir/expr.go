package hir

import (
	"crest/internal/source"
	"crest/internal/symbols"
	"crest/internal/types"
)

// ExprKind enumerates HIR expression kinds.
type ExprKind uint8

const (
	// ExprLiteral represents literals (int, float, bool, string, unit).
	ExprLiteral ExprKind = iota
	// ExprVarRef represents a variable reference.
	ExprVarRef
	// ExprUnary represents unary operators (-, !).
	ExprUnary
	// ExprBinary represents binary operators (+, -, *, /, ==, etc.).
	ExprBinary
	// ExprCall represents a call to a statically resolved function.
	ExprCall
	// ExprIndex represents indexing (expr[index]).
	ExprIndex
	// ExprIf represents a conditional expression.
	ExprIf
	// ExprBlock represents a block expression { ... }.
	ExprBlock
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVarRef:
		return "VarRef"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprCall:
		return "Call"
	case ExprIndex:
		return "Index"
	case ExprIf:
		return "If"
	case ExprBlock:
		return "Block"
	default:
		return "Unknown"
	}
}

// Expr represents an HIR expression with type information.
type Expr struct {
	Kind ExprKind
	Type types.TypeID // filled by type checking
	Span source.Span
	Data ExprData // kind-specific payload
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// LiteralKind enumerates literal value kinds.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralBool
	LiteralString
	LiteralUnit
)

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Kind        LiteralKind
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	StringValue string
}

func (LiteralData) exprData() {}

// VarRefData holds data for ExprVarRef.
type VarRefData struct {
	Name     string
	SymbolID symbols.SymbolID
}

func (VarRefData) exprData() {}

// UnaryOp enumerates unary operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
)

func (op UnaryOp) String() string {
	if op == UnaryNot {
		return "!"
	}
	return "-"
}

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op      UnaryOp
	Operand *Expr
}

func (UnaryData) exprData() {}

// BinaryOp enumerates binary operators.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryEq
	BinaryNe
	BinaryLt
	BinaryLe
	BinaryGt
	BinaryGe
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryEq:
		return "=="
	case BinaryNe:
		return "!="
	case BinaryLt:
		return "<"
	case BinaryLe:
		return "<="
	case BinaryGt:
		return ">"
	case BinaryGe:
		return ">="
	default:
		return "?"
	}
}

// BinaryData holds data for ExprBinary.
type BinaryData struct {
	Op    BinaryOp
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

// CallData holds data for ExprCall.
//
// SymbolID is the function the call statically resolves to. The Callee
// expression is kept alongside it so printers and later phases see a regular
// expression tree; both are updated together when a call is retargeted.
type CallData struct {
	Callee   *Expr
	Args     []*Expr
	SymbolID symbols.SymbolID
}

func (CallData) exprData() {}

// IndexData holds data for ExprIndex.
type IndexData struct {
	Object *Expr
	Index  *Expr
}

func (IndexData) exprData() {}

// IfData holds data for ExprIf (conditional expression).
type IfData struct {
	Cond *Expr
	Then *Expr
	Else *Expr // nil if no else branch
}

func (IfData) exprData() {}

// BlockExprData holds data for ExprBlock.
type BlockExprData struct {
	Block *Block
}

func (BlockExprData) exprData() {}
