package lift

import (
	"testing"

	"crest/internal/hir"
	"crest/internal/symbols"
	"crest/internal/types"
)

// testModule builds resolved HIR directly, standing in for the frontend
// phases that normally run before the pass.
type testModule struct {
	t      *testing.T
	tab    *symbols.Table
	ty     *types.Interner
	mod    *hir.Module
	nextID hir.FuncID
}

func newTestModule(t *testing.T, name string) *testModule {
	t.Helper()
	tab := symbols.NewTable(symbols.Hints{}, nil)
	ty := types.NewInterner()
	return &testModule{
		t:   t,
		tab: tab,
		ty:  ty,
		mod: &hir.Module{Name: name, Symbols: tab, Types: ty},
	}
}

func (tm *testModule) declareFunc(name string, parent symbols.SymbolID) symbols.SymbolID {
	tm.t.Helper()
	return tm.tab.Symbols.New(&symbols.Symbol{
		Name:   tm.tab.Strings.Intern(name),
		Kind:   symbols.SymbolFunction,
		Parent: parent,
	})
}

func (tm *testModule) declareLet(name string, owner symbols.SymbolID) symbols.SymbolID {
	tm.t.Helper()
	return tm.tab.Symbols.New(&symbols.Symbol{
		Name:   tm.tab.Strings.Intern(name),
		Kind:   symbols.SymbolLet,
		Parent: owner,
		Type:   tm.ty.Int(),
		Flags:  symbols.SymbolFlagMutable,
	})
}

func (tm *testModule) declareParam(name string, owner symbols.SymbolID) symbols.SymbolID {
	tm.t.Helper()
	return tm.tab.Symbols.New(&symbols.Symbol{
		Name:   tm.tab.Strings.Intern(name),
		Kind:   symbols.SymbolParam,
		Parent: owner,
		Type:   tm.ty.Int(),
	})
}

func (tm *testModule) fn(sym symbols.SymbolID, params []hir.Param, body ...hir.Stmt) *hir.Func {
	tm.t.Helper()
	tm.nextID++
	return &hir.Func{
		ID:       tm.nextID,
		Name:     tm.tab.Name(sym),
		SymbolID: sym,
		Params:   params,
		Result:   tm.ty.Unit(),
		Body:     &hir.Block{Stmts: body},
	}
}

func (tm *testModule) top(f *hir.Func) *hir.Func {
	tm.t.Helper()
	tm.mod.Funcs = append(tm.mod.Funcs, f)
	return f
}

func (tm *testModule) global(name string) symbols.SymbolID {
	tm.t.Helper()
	sym := tm.declareLet(name, symbols.NoSymbolID)
	tm.mod.Globals = append(tm.mod.Globals, hir.VarDecl{
		Name:     name,
		SymbolID: sym,
		Type:     tm.ty.Int(),
		IsMut:    true,
	})
	return sym
}

func (tm *testModule) param(sym symbols.SymbolID) hir.Param {
	tm.t.Helper()
	return hir.Param{Name: tm.tab.Name(sym), SymbolID: sym, Type: tm.ty.Int()}
}

func (tm *testModule) vref(sym symbols.SymbolID) *hir.Expr {
	tm.t.Helper()
	return &hir.Expr{
		Kind: hir.ExprVarRef,
		Type: tm.ty.Int(),
		Data: hir.VarRefData{Name: tm.tab.Name(sym), SymbolID: sym},
	}
}

func (tm *testModule) call(target symbols.SymbolID, args ...*hir.Expr) *hir.Expr {
	tm.t.Helper()
	return &hir.Expr{
		Kind: hir.ExprCall,
		Type: tm.ty.Unit(),
		Data: hir.CallData{
			Callee:   tm.vref(target),
			Args:     args,
			SymbolID: target,
		},
	}
}

func intLit(v int64) *hir.Expr {
	return &hir.Expr{
		Kind: hir.ExprLiteral,
		Data: hir.LiteralData{Kind: hir.LiteralInt, IntValue: v},
	}
}

func letStmt(name string, sym symbols.SymbolID, value *hir.Expr) hir.Stmt {
	return hir.Stmt{
		Kind: hir.StmtLet,
		Data: hir.LetData{Name: name, SymbolID: sym, Value: value, IsMut: true},
	}
}

func exprStmt(e *hir.Expr) hir.Stmt {
	return hir.Stmt{Kind: hir.StmtExpr, Data: hir.ExprStmtData{Expr: e}}
}

func assign(target, value *hir.Expr) hir.Stmt {
	return hir.Stmt{Kind: hir.StmtAssign, Data: hir.AssignData{Target: target, Value: value}}
}

func funcDef(f *hir.Func) hir.Stmt {
	return hir.Stmt{Kind: hir.StmtFuncDef, Data: hir.FuncDefData{Fn: f}}
}

// findCalls collects every call expression under a function body.
func findCalls(fn *hir.Func) []hir.CallData {
	var out []hir.CallData
	visitExprsInBlock(fn.Body, func(e *hir.Expr) {
		if e.Kind != hir.ExprCall {
			return
		}
		if data, ok := e.Data.(hir.CallData); ok {
			out = append(out, data)
		}
	})
	return out
}

func captureSyms(t *testing.T, an *Analysis, fn symbols.SymbolID) []symbols.SymbolID {
	t.Helper()
	cs, ok := an.CaptureSet(fn)
	if !ok {
		t.Fatalf("no capture set for sym=%d", fn)
	}
	return cs.Symbols()
}

func sameSyms(got, want []symbols.SymbolID) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
