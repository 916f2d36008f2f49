package lift

import (
	"crest/internal/hir"
	"crest/internal/symbols"
)

// substMap maps an original symbol to its replacement: a captured outer
// variable to the lifted function's new formal, or an old nested-function
// symbol to its top-level replacement.
type substMap map[symbols.SymbolID]symbols.SymbolID

// substituteInBlock replaces symbols throughout a subtree: variable
// references and statically resolved call targets. Statement and expression
// structure is left untouched.
func substituteInBlock(b *hir.Block, sub substMap) {
	if b == nil || len(sub) == 0 {
		return
	}
	for i := range b.Stmts {
		substituteInStmt(&b.Stmts[i], sub)
	}
}

func substituteInStmt(st *hir.Stmt, sub substMap) {
	switch st.Kind {
	case hir.StmtLet:
		if data, ok := st.Data.(hir.LetData); ok {
			substituteInExpr(data.Value, sub)
		}
	case hir.StmtExpr:
		if data, ok := st.Data.(hir.ExprStmtData); ok {
			substituteInExpr(data.Expr, sub)
		}
	case hir.StmtAssign:
		if data, ok := st.Data.(hir.AssignData); ok {
			substituteInExpr(data.Target, sub)
			substituteInExpr(data.Value, sub)
		}
	case hir.StmtReturn:
		if data, ok := st.Data.(hir.ReturnData); ok {
			substituteInExpr(data.Value, sub)
		}
	case hir.StmtIf:
		if data, ok := st.Data.(hir.IfStmtData); ok {
			substituteInExpr(data.Cond, sub)
			substituteInBlock(data.Then, sub)
			substituteInBlock(data.Else, sub)
		}
	case hir.StmtWhile:
		if data, ok := st.Data.(hir.WhileData); ok {
			substituteInExpr(data.Cond, sub)
			substituteInBlock(data.Body, sub)
		}
	case hir.StmtBlock:
		if data, ok := st.Data.(hir.BlockStmtData); ok {
			substituteInBlock(data.Block, sub)
		}
	case hir.StmtFuncDef:
		if data, ok := st.Data.(hir.FuncDefData); ok && data.Fn != nil {
			substituteInBlock(data.Fn.Body, sub)
		}
	default:
	}
}

func substituteInExpr(e *hir.Expr, sub substMap) {
	if e == nil {
		return
	}
	switch e.Kind {
	case hir.ExprVarRef:
		data, ok := e.Data.(hir.VarRefData)
		if !ok {
			return
		}
		if repl, ok := sub[data.SymbolID]; ok {
			data.SymbolID = repl
			e.Data = data
		}
	case hir.ExprUnary:
		if data, ok := e.Data.(hir.UnaryData); ok {
			substituteInExpr(data.Operand, sub)
		}
	case hir.ExprBinary:
		if data, ok := e.Data.(hir.BinaryData); ok {
			substituteInExpr(data.Left, sub)
			substituteInExpr(data.Right, sub)
		}
	case hir.ExprCall:
		data, ok := e.Data.(hir.CallData)
		if !ok {
			return
		}
		substituteInExpr(data.Callee, sub)
		for _, a := range data.Args {
			substituteInExpr(a, sub)
		}
		if repl, ok := sub[data.SymbolID]; ok {
			data.SymbolID = repl
		}
		e.Data = data
	case hir.ExprIndex:
		if data, ok := e.Data.(hir.IndexData); ok {
			substituteInExpr(data.Object, sub)
			substituteInExpr(data.Index, sub)
		}
	case hir.ExprIf:
		if data, ok := e.Data.(hir.IfData); ok {
			substituteInExpr(data.Cond, sub)
			substituteInExpr(data.Then, sub)
			substituteInExpr(data.Else, sub)
		}
	case hir.ExprBlock:
		if data, ok := e.Data.(hir.BlockExprData); ok {
			substituteInBlock(data.Block, sub)
		}
	default:
	}
}
