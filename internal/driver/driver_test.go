package driver

import (
	"context"
	"fmt"
	"testing"

	"crest/internal/hir"
	"crest/internal/symbols"
	"crest/internal/types"
)

// buildNestedModule constructs a module whose single top-level function owns
// a local and a nested function that writes it.
func buildNestedModule(name string) *hir.Module {
	tab := symbols.NewTable(symbols.Hints{}, nil)
	ty := types.NewInterner()
	m := &hir.Module{Name: name, Symbols: tab, Types: ty}

	outer := tab.Symbols.New(&symbols.Symbol{
		Name: tab.Strings.Intern("outer"),
		Kind: symbols.SymbolFunction,
	})
	inner := tab.Symbols.New(&symbols.Symbol{
		Name:   tab.Strings.Intern("inner"),
		Kind:   symbols.SymbolFunction,
		Parent: outer,
	})
	x := tab.Symbols.New(&symbols.Symbol{
		Name:   tab.Strings.Intern("x"),
		Kind:   symbols.SymbolLet,
		Parent: outer,
		Type:   ty.Int(),
		Flags:  symbols.SymbolFlagMutable,
	})

	vref := func(sym symbols.SymbolID) *hir.Expr {
		return &hir.Expr{
			Kind: hir.ExprVarRef,
			Type: ty.Int(),
			Data: hir.VarRefData{Name: tab.Name(sym), SymbolID: sym},
		}
	}
	lit := &hir.Expr{Kind: hir.ExprLiteral, Data: hir.LiteralData{Kind: hir.LiteralInt, IntValue: 1}}

	innerFn := &hir.Func{
		ID:       2,
		Name:     "inner",
		SymbolID: inner,
		Result:   ty.Unit(),
		Body: &hir.Block{Stmts: []hir.Stmt{
			{Kind: hir.StmtAssign, Data: hir.AssignData{Target: vref(x), Value: lit}},
		}},
	}
	outerFn := &hir.Func{
		ID:       1,
		Name:     "outer",
		SymbolID: outer,
		Result:   ty.Unit(),
		Body: &hir.Block{Stmts: []hir.Stmt{
			{Kind: hir.StmtLet, Data: hir.LetData{Name: "x", SymbolID: x, Value: lit, IsMut: true}},
			{Kind: hir.StmtFuncDef, Data: hir.FuncDefData{Fn: innerFn}},
			{Kind: hir.StmtExpr, Data: hir.ExprStmtData{Expr: &hir.Expr{
				Kind: hir.ExprCall,
				Type: ty.Unit(),
				Data: hir.CallData{Callee: vref(inner), SymbolID: inner},
			}}},
		}},
	}
	m.Funcs = append(m.Funcs, outerFn)
	return m
}

func TestEliminateModuleTimesPhases(t *testing.T) {
	opts := Options{}
	opts.Lift.Validate = true

	res, err := opts.EliminateModule(context.Background(), buildNestedModule("demo"))
	if err != nil {
		t.Fatalf("EliminateModule failed: %v", err)
	}
	if res.Module != "demo" {
		t.Fatalf("module name = %q, want demo", res.Module)
	}
	if len(res.Result.Lifted) != 1 {
		t.Fatalf("lifted %d functions, want 1", len(res.Result.Lifted))
	}

	names := make(map[string]bool, len(res.Timing.Phases))
	for _, p := range res.Timing.Phases {
		names[p.Name] = true
	}
	if !names["analyze"] || !names["eliminate"] {
		t.Fatalf("timing phases = %+v, want analyze and eliminate", res.Timing.Phases)
	}
}

func TestEliminateModuleRejectsNil(t *testing.T) {
	if _, err := (Options{}).EliminateModule(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil module")
	}
}

func TestEliminateAll(t *testing.T) {
	mods := make([]*hir.Module, 6)
	for i := range mods {
		mods[i] = buildNestedModule(fmt.Sprintf("mod%d", i))
	}

	opts := Options{Jobs: 2}
	opts.Lift.Validate = true

	results, err := opts.EliminateAll(context.Background(), mods)
	if err != nil {
		t.Fatalf("EliminateAll failed: %v", err)
	}
	if len(results) != len(mods) {
		t.Fatalf("got %d results for %d modules", len(results), len(mods))
	}
	for i, res := range results {
		if want := fmt.Sprintf("mod%d", i); res.Module != want {
			t.Fatalf("result %d is for %q, want %q (order not preserved)", i, res.Module, want)
		}
		if len(res.Result.Lifted) != 1 {
			t.Fatalf("module %q lifted %d functions, want 1", res.Module, len(res.Result.Lifted))
		}
	}
}

func TestEliminateAllHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mods := []*hir.Module{buildNestedModule("a"), buildNestedModule("b")}
	if _, err := (Options{}).EliminateAll(ctx, mods); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestEliminateAllEmpty(t *testing.T) {
	results, err := (Options{}).EliminateAll(context.Background(), nil)
	if err != nil || results != nil {
		t.Fatalf("empty input = (%v, %v), want (nil, nil)", results, err)
	}
}
