package lift

import (
	"slices"

	"crest/internal/hir"
)

// cloneFunc makes a structural copy of a function. The lifter mutates the
// copy (new symbol, extra formals, substituted body) and discards the
// original together with its defining statement.
func cloneFunc(fn *hir.Func) *hir.Func {
	if fn == nil {
		return nil
	}
	out := *fn
	if len(fn.Params) > 0 {
		out.Params = slices.Clone(fn.Params)
	}
	if fn.Body != nil {
		out.Body = cloneBlock(fn.Body)
	}
	return &out
}

func cloneBlock(b *hir.Block) *hir.Block {
	if b == nil {
		return nil
	}
	out := &hir.Block{Span: b.Span}
	if len(b.Stmts) == 0 {
		return out
	}
	out.Stmts = make([]hir.Stmt, len(b.Stmts))
	for i := range b.Stmts {
		out.Stmts[i] = cloneStmt(b.Stmts[i])
	}
	return out
}

func cloneStmt(s hir.Stmt) hir.Stmt {
	out := s
	switch s.Kind {
	case hir.StmtLet:
		data, ok := s.Data.(hir.LetData)
		if !ok {
			return out
		}
		data.Value = cloneExpr(data.Value)
		out.Data = data
	case hir.StmtExpr:
		data, ok := s.Data.(hir.ExprStmtData)
		if !ok {
			return out
		}
		data.Expr = cloneExpr(data.Expr)
		out.Data = data
	case hir.StmtAssign:
		data, ok := s.Data.(hir.AssignData)
		if !ok {
			return out
		}
		data.Target = cloneExpr(data.Target)
		data.Value = cloneExpr(data.Value)
		out.Data = data
	case hir.StmtReturn:
		data, ok := s.Data.(hir.ReturnData)
		if !ok {
			return out
		}
		data.Value = cloneExpr(data.Value)
		out.Data = data
	case hir.StmtIf:
		data, ok := s.Data.(hir.IfStmtData)
		if !ok {
			return out
		}
		data.Cond = cloneExpr(data.Cond)
		data.Then = cloneBlock(data.Then)
		data.Else = cloneBlock(data.Else)
		out.Data = data
	case hir.StmtWhile:
		data, ok := s.Data.(hir.WhileData)
		if !ok {
			return out
		}
		data.Cond = cloneExpr(data.Cond)
		data.Body = cloneBlock(data.Body)
		out.Data = data
	case hir.StmtBlock:
		data, ok := s.Data.(hir.BlockStmtData)
		if !ok {
			return out
		}
		data.Block = cloneBlock(data.Block)
		out.Data = data
	case hir.StmtFuncDef:
		data, ok := s.Data.(hir.FuncDefData)
		if !ok {
			return out
		}
		data.Fn = cloneFunc(data.Fn)
		out.Data = data
	default:
	}
	return out
}

func cloneExpr(e *hir.Expr) *hir.Expr {
	if e == nil {
		return nil
	}
	out := *e
	switch e.Kind {
	case hir.ExprUnary:
		data, ok := e.Data.(hir.UnaryData)
		if !ok {
			break
		}
		data.Operand = cloneExpr(data.Operand)
		out.Data = data
	case hir.ExprBinary:
		data, ok := e.Data.(hir.BinaryData)
		if !ok {
			break
		}
		data.Left = cloneExpr(data.Left)
		data.Right = cloneExpr(data.Right)
		out.Data = data
	case hir.ExprCall:
		data, ok := e.Data.(hir.CallData)
		if !ok {
			break
		}
		data.Callee = cloneExpr(data.Callee)
		if len(data.Args) > 0 {
			data.Args = slices.Clone(data.Args)
			for i := range data.Args {
				data.Args[i] = cloneExpr(data.Args[i])
			}
		}
		out.Data = data
	case hir.ExprIndex:
		data, ok := e.Data.(hir.IndexData)
		if !ok {
			break
		}
		data.Object = cloneExpr(data.Object)
		data.Index = cloneExpr(data.Index)
		out.Data = data
	case hir.ExprIf:
		data, ok := e.Data.(hir.IfData)
		if !ok {
			break
		}
		data.Cond = cloneExpr(data.Cond)
		data.Then = cloneExpr(data.Then)
		data.Else = cloneExpr(data.Else)
		out.Data = data
	case hir.ExprBlock:
		data, ok := e.Data.(hir.BlockExprData)
		if !ok {
			break
		}
		data.Block = cloneBlock(data.Block)
		out.Data = data
	default:
		// literals and var refs carry value payloads.
	}
	return &out
}
