package lift

import (
	"crest/internal/hir"
	"crest/internal/symbols"
)

// visitExprsInBlock calls f for every expression under b in post-order.
// It does not descend into nested function definitions: their bodies belong
// to the nested function, and the analyzer accounts for them through the
// transitive capture union at call sites.
func visitExprsInBlock(b *hir.Block, f func(*hir.Expr)) {
	if b == nil || f == nil {
		return
	}
	for i := range b.Stmts {
		visitExprsInStmt(&b.Stmts[i], f)
	}
}

func visitExprsInStmt(st *hir.Stmt, f func(*hir.Expr)) {
	if st == nil {
		return
	}
	switch st.Kind {
	case hir.StmtLet:
		data, ok := st.Data.(hir.LetData)
		if !ok {
			return
		}
		visitExpr(data.Value, f)
	case hir.StmtExpr:
		data, ok := st.Data.(hir.ExprStmtData)
		if !ok {
			return
		}
		visitExpr(data.Expr, f)
	case hir.StmtAssign:
		data, ok := st.Data.(hir.AssignData)
		if !ok {
			return
		}
		visitExpr(data.Target, f)
		visitExpr(data.Value, f)
	case hir.StmtReturn:
		data, ok := st.Data.(hir.ReturnData)
		if !ok {
			return
		}
		visitExpr(data.Value, f)
	case hir.StmtIf:
		data, ok := st.Data.(hir.IfStmtData)
		if !ok {
			return
		}
		visitExpr(data.Cond, f)
		visitExprsInBlock(data.Then, f)
		visitExprsInBlock(data.Else, f)
	case hir.StmtWhile:
		data, ok := st.Data.(hir.WhileData)
		if !ok {
			return
		}
		visitExpr(data.Cond, f)
		visitExprsInBlock(data.Body, f)
	case hir.StmtBlock:
		data, ok := st.Data.(hir.BlockStmtData)
		if !ok {
			return
		}
		visitExprsInBlock(data.Block, f)
	case hir.StmtFuncDef:
		// Nested body intentionally skipped.
	default:
	}
}

func visitExpr(e *hir.Expr, f func(*hir.Expr)) {
	if e == nil {
		return
	}
	switch e.Kind {
	case hir.ExprUnary:
		if data, ok := e.Data.(hir.UnaryData); ok {
			visitExpr(data.Operand, f)
		}
	case hir.ExprBinary:
		if data, ok := e.Data.(hir.BinaryData); ok {
			visitExpr(data.Left, f)
			visitExpr(data.Right, f)
		}
	case hir.ExprCall:
		if data, ok := e.Data.(hir.CallData); ok {
			visitExpr(data.Callee, f)
			for _, a := range data.Args {
				visitExpr(a, f)
			}
		}
	case hir.ExprIndex:
		if data, ok := e.Data.(hir.IndexData); ok {
			visitExpr(data.Object, f)
			visitExpr(data.Index, f)
		}
	case hir.ExprIf:
		if data, ok := e.Data.(hir.IfData); ok {
			visitExpr(data.Cond, f)
			visitExpr(data.Then, f)
			visitExpr(data.Else, f)
		}
	case hir.ExprBlock:
		if data, ok := e.Data.(hir.BlockExprData); ok {
			visitExprsInBlock(data.Block, f)
		}
	default:
	}
	f(e)
}

// forEachFuncDef walks b recursively, including nested function bodies and
// blocks buried inside expressions, and calls f for every nested function
// definition it finds, innermost last within each branch, in textual order.
// It must cover every position the rewrite traversal reaches: a definition
// only visible to one of the two walks would be analyzed but never lifted,
// or lifted without an analysis entry.
func forEachFuncDef(b *hir.Block, f func(*hir.Func)) {
	if b == nil || f == nil {
		return
	}
	for i := range b.Stmts {
		funcDefsInStmt(&b.Stmts[i], f)
	}
}

func funcDefsInStmt(st *hir.Stmt, f func(*hir.Func)) {
	switch st.Kind {
	case hir.StmtFuncDef:
		data, ok := st.Data.(hir.FuncDefData)
		if !ok || data.Fn == nil {
			return
		}
		f(data.Fn)
		forEachFuncDef(data.Fn.Body, f)
	case hir.StmtLet:
		if data, ok := st.Data.(hir.LetData); ok {
			funcDefsInExpr(data.Value, f)
		}
	case hir.StmtExpr:
		if data, ok := st.Data.(hir.ExprStmtData); ok {
			funcDefsInExpr(data.Expr, f)
		}
	case hir.StmtAssign:
		if data, ok := st.Data.(hir.AssignData); ok {
			funcDefsInExpr(data.Target, f)
			funcDefsInExpr(data.Value, f)
		}
	case hir.StmtReturn:
		if data, ok := st.Data.(hir.ReturnData); ok {
			funcDefsInExpr(data.Value, f)
		}
	case hir.StmtIf:
		if data, ok := st.Data.(hir.IfStmtData); ok {
			funcDefsInExpr(data.Cond, f)
			forEachFuncDef(data.Then, f)
			forEachFuncDef(data.Else, f)
		}
	case hir.StmtWhile:
		if data, ok := st.Data.(hir.WhileData); ok {
			funcDefsInExpr(data.Cond, f)
			forEachFuncDef(data.Body, f)
		}
	case hir.StmtBlock:
		if data, ok := st.Data.(hir.BlockStmtData); ok {
			forEachFuncDef(data.Block, f)
		}
	default:
	}
}

func funcDefsInExpr(e *hir.Expr, f func(*hir.Func)) {
	if e == nil {
		return
	}
	switch e.Kind {
	case hir.ExprUnary:
		if data, ok := e.Data.(hir.UnaryData); ok {
			funcDefsInExpr(data.Operand, f)
		}
	case hir.ExprBinary:
		if data, ok := e.Data.(hir.BinaryData); ok {
			funcDefsInExpr(data.Left, f)
			funcDefsInExpr(data.Right, f)
		}
	case hir.ExprCall:
		if data, ok := e.Data.(hir.CallData); ok {
			funcDefsInExpr(data.Callee, f)
			for _, a := range data.Args {
				funcDefsInExpr(a, f)
			}
		}
	case hir.ExprIndex:
		if data, ok := e.Data.(hir.IndexData); ok {
			funcDefsInExpr(data.Object, f)
			funcDefsInExpr(data.Index, f)
		}
	case hir.ExprIf:
		if data, ok := e.Data.(hir.IfData); ok {
			funcDefsInExpr(data.Cond, f)
			funcDefsInExpr(data.Then, f)
			funcDefsInExpr(data.Else, f)
		}
	case hir.ExprBlock:
		if data, ok := e.Data.(hir.BlockExprData); ok {
			forEachFuncDef(data.Block, f)
		}
	default:
	}
}

// callTarget extracts the statically resolved callee symbol of a call.
func callTarget(data *hir.CallData) (symbols.SymbolID, bool) {
	if data == nil {
		return symbols.NoSymbolID, false
	}
	if data.SymbolID.IsValid() {
		return data.SymbolID, true
	}
	if data.Callee != nil && data.Callee.Kind == hir.ExprVarRef {
		if vr, ok := data.Callee.Data.(hir.VarRefData); ok && vr.SymbolID.IsValid() {
			return vr.SymbolID, true
		}
	}
	return symbols.NoSymbolID, false
}
