//nolint:errcheck // Type assertions are checked by construction
package hir

import (
	"fmt"
	"io"
	"strings"

	"crest/internal/types"
)

// Printer is used to dump HIR to text format.
type Printer struct {
	w        io.Writer
	interner *types.Interner
	indent   int
}

// NewPrinter creates a new HIR printer.
func NewPrinter(w io.Writer, interner *types.Interner) *Printer {
	return &Printer{w: w, interner: interner}
}

// Dump writes the HIR module to the writer.
func Dump(w io.Writer, m *Module) error {
	p := NewPrinter(w, m.Types)
	return p.PrintModule(m)
}

// DumpString renders the module into a string; handy for hashing and tests.
func DumpString(m *Module) string {
	var sb strings.Builder
	_ = Dump(&sb, m)
	return sb.String()
}

// PrintModule prints a complete module.
func (p *Printer) PrintModule(m *Module) error {
	p.printf("module %s\n", m.Name)

	for _, g := range m.Globals {
		mut := ""
		if g.IsMut {
			mut = "mut "
		}
		p.printf("let %s%s: %s", mut, g.Name, p.typeStr(g.Type))
		if g.Value != nil {
			p.printf(" = ")
			p.printExpr(g.Value)
		}
		p.printf(" (sym=%d)\n", g.SymbolID)
	}
	if len(m.Globals) > 0 {
		p.printf("\n")
	}

	for _, f := range m.Funcs {
		p.printFunc(f)
		p.printf("\n")
	}
	return nil
}

func (p *Printer) printFunc(f *Func) {
	p.printf("fn %s(", f.Name)
	for i, prm := range f.Params {
		if i > 0 {
			p.printf(", ")
		}
		if prm.Mode == 0 {
			p.printf("%s: %s", prm.Name, p.typeStr(prm.Type))
		} else {
			p.printf("%s %s: %s", prm.Mode, prm.Name, p.typeStr(prm.Type))
		}
		p.printf(" (sym=%d)", prm.SymbolID)
	}
	p.printf(")")
	if f.Result.IsValid() {
		p.printf(" -> %s", p.typeStr(f.Result))
	}
	p.printf(" (sym=%d)\n", f.SymbolID)
	if f.Body != nil {
		p.indent++
		p.printBlock(f.Body)
		p.indent--
	}
}

func (p *Printer) printBlock(b *Block) {
	if b == nil {
		return
	}
	for i := range b.Stmts {
		p.printStmt(&b.Stmts[i])
	}
}

func (p *Printer) printStmt(st *Stmt) {
	switch st.Kind {
	case StmtLet:
		data := st.Data.(LetData)
		mut := ""
		if data.IsMut {
			mut = "mut "
		}
		p.printf("%slet %s%s: %s", p.pad(), mut, data.Name, p.typeStr(data.Type))
		if data.Value != nil {
			p.printf(" = ")
			p.printExpr(data.Value)
		}
		p.printf(" (sym=%d)\n", data.SymbolID)
	case StmtExpr:
		data := st.Data.(ExprStmtData)
		p.printf("%s", p.pad())
		p.printExpr(data.Expr)
		p.printf("\n")
	case StmtAssign:
		data := st.Data.(AssignData)
		p.printf("%s", p.pad())
		p.printExpr(data.Target)
		p.printf(" = ")
		p.printExpr(data.Value)
		p.printf("\n")
	case StmtReturn:
		data := st.Data.(ReturnData)
		p.printf("%sreturn", p.pad())
		if data.Value != nil {
			p.printf(" ")
			p.printExpr(data.Value)
		}
		p.printf("\n")
	case StmtIf:
		data := st.Data.(IfStmtData)
		p.printf("%sif ", p.pad())
		p.printExpr(data.Cond)
		p.printf("\n")
		p.indent++
		p.printBlock(data.Then)
		p.indent--
		if data.Else != nil {
			p.printf("%selse\n", p.pad())
			p.indent++
			p.printBlock(data.Else)
			p.indent--
		}
	case StmtWhile:
		data := st.Data.(WhileData)
		p.printf("%swhile ", p.pad())
		p.printExpr(data.Cond)
		p.printf("\n")
		p.indent++
		p.printBlock(data.Body)
		p.indent--
	case StmtBlock:
		data := st.Data.(BlockStmtData)
		p.printf("%sblock\n", p.pad())
		p.indent++
		p.printBlock(data.Block)
		p.indent--
	case StmtFuncDef:
		data := st.Data.(FuncDefData)
		p.printf("%s", p.pad())
		p.printFunc(data.Fn)
	default:
		p.printf("%s<unknown stmt %d>\n", p.pad(), st.Kind)
	}
}

func (p *Printer) printExpr(e *Expr) {
	if e == nil {
		p.printf("<nil>")
		return
	}
	switch e.Kind {
	case ExprLiteral:
		data := e.Data.(LiteralData)
		switch data.Kind {
		case LiteralInt:
			p.printf("%d", data.IntValue)
		case LiteralFloat:
			p.printf("%g", data.FloatValue)
		case LiteralBool:
			p.printf("%t", data.BoolValue)
		case LiteralString:
			p.printf("%q", data.StringValue)
		default:
			p.printf("()")
		}
	case ExprVarRef:
		data := e.Data.(VarRefData)
		p.printf("%s#%d", data.Name, data.SymbolID)
	case ExprUnary:
		data := e.Data.(UnaryData)
		p.printf("%s", data.Op)
		p.printExpr(data.Operand)
	case ExprBinary:
		data := e.Data.(BinaryData)
		p.printf("(")
		p.printExpr(data.Left)
		p.printf(" %s ", data.Op)
		p.printExpr(data.Right)
		p.printf(")")
	case ExprCall:
		data := e.Data.(CallData)
		p.printExpr(data.Callee)
		p.printf("(")
		for i, a := range data.Args {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(a)
		}
		p.printf(")")
	case ExprIndex:
		data := e.Data.(IndexData)
		p.printExpr(data.Object)
		p.printf("[")
		p.printExpr(data.Index)
		p.printf("]")
	case ExprIf:
		data := e.Data.(IfData)
		p.printf("if ")
		p.printExpr(data.Cond)
		p.printf(" then ")
		p.printExpr(data.Then)
		if data.Else != nil {
			p.printf(" else ")
			p.printExpr(data.Else)
		}
	case ExprBlock:
		p.printf("{ ... }")
	default:
		p.printf("<unknown expr %d>", e.Kind)
	}
}

func (p *Printer) typeStr(id types.TypeID) string {
	if p.interner == nil {
		return fmt.Sprintf("type#%d", id)
	}
	return p.interner.Name(id)
}

func (p *Printer) pad() string {
	return strings.Repeat("  ", p.indent)
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}
