package lift

import (
	"fmt"

	"crest/internal/hir"
	"crest/internal/symbols"
)

// Analyze computes the CaptureSet of every nested function in m.
//
// The fixed point is monotone: a round only ever adds variables, and the
// universe of candidate variables is finite, so the loop terminates. The
// round cap exists to turn a violated precondition into an internal error
// instead of a hang.
func Analyze(m *hir.Module, opts Options) (*Analysis, error) {
	if m == nil || m.Symbols == nil {
		return nil, fmt.Errorf("lift: analyze: module without symbol table")
	}
	an := &analyzer{
		tab:       m.Symbols,
		funcBySym: make(map[symbols.SymbolID]*hir.Func),
		result: &Analysis{
			captures: make(map[symbols.SymbolID]*CaptureSet),
		},
	}
	if err := an.discover(m); err != nil {
		return nil, err
	}
	if err := an.iterate(opts.maxRounds()); err != nil {
		return nil, err
	}
	return an.result, nil
}

type analyzer struct {
	tab       *symbols.Table
	funcBySym map[symbols.SymbolID]*hir.Func
	result    *Analysis
}

// discover registers every nested function in a single upfront traversal.
func (an *analyzer) discover(m *hir.Module) error {
	var bad error
	for _, fn := range m.Funcs {
		if fn == nil {
			continue
		}
		forEachFuncDef(fn.Body, func(nested *hir.Func) {
			if bad != nil {
				return
			}
			if !nested.SymbolID.IsValid() {
				bad = fmt.Errorf("lift: nested function %q has no symbol", nested.Name)
				return
			}
			if !an.tab.IsNestedFunc(nested.SymbolID) {
				bad = fmt.Errorf("lift: function %q (sym=%d) is defined inside a body but has no enclosing function symbol",
					nested.Name, nested.SymbolID)
				return
			}
			an.funcBySym[nested.SymbolID] = nested
			an.result.captures[nested.SymbolID] = newCaptureSet()
			an.result.order = append(an.result.order, nested.SymbolID)
		})
		if bad != nil {
			return bad
		}
	}
	return nil
}

// iterate runs capture collection rounds until no set grows.
func (an *analyzer) iterate(maxRounds int) error {
	for round := 1; ; round++ {
		if round > maxRounds {
			return fmt.Errorf("lift: capture analysis did not converge after %d rounds", maxRounds)
		}
		changed := false
		for _, fnSym := range an.result.order {
			fresh := an.collectUses(fnSym)
			set := an.result.captures[fnSym]
			for _, v := range fresh {
				if set.Add(v) {
					changed = true
				}
			}
		}
		an.result.rounds = round
		if !changed {
			return nil
		}
	}
}

// collectUses walks fn's body and returns, in first-use order, the
// enclosing-scope variables it references this round: direct uses plus the
// current captures of every nested function it calls, filtered to variables
// visible above fn. The function's own locals and module globals never
// qualify. fn itself contributes nothing through recursion; its own set is
// already accounted for.
func (an *analyzer) collectUses(fnSym symbols.SymbolID) []symbols.SymbolID {
	fn := an.funcBySym[fnSym]
	if fn == nil {
		return nil
	}
	var uses []symbols.SymbolID
	seen := make(map[symbols.SymbolID]struct{})
	add := func(v symbols.SymbolID) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		uses = append(uses, v)
	}

	visitExprsInBlock(fn.Body, func(e *hir.Expr) {
		switch e.Kind {
		case hir.ExprVarRef:
			data, ok := e.Data.(hir.VarRefData)
			if !ok {
				return
			}
			if an.isOuterVar(data.SymbolID, fnSym) {
				add(data.SymbolID)
			}
		case hir.ExprCall:
			data, ok := e.Data.(hir.CallData)
			if !ok {
				return
			}
			callee, ok := callTarget(&data)
			if !ok || callee == fnSym {
				return
			}
			calleeSet, ok := an.result.captures[callee]
			if !ok {
				return
			}
			for _, v := range calleeSet.Symbols() {
				if an.isOuterVar(v, fnSym) {
					add(v)
				}
			}
		default:
		}
	})
	return uses
}

// isOuterVar reports whether v is a variable or parameter declared by a
// function that properly encloses fn. Such a variable is visible in fn's
// enclosing scope and must be captured.
func (an *analyzer) isOuterVar(v, fn symbols.SymbolID) bool {
	sym := an.tab.Symbols.Get(v)
	if sym == nil {
		return false
	}
	switch sym.Kind {
	case symbols.SymbolLet, symbols.SymbolParam:
	default:
		return false
	}
	owner := an.tab.OwnerFunc(v)
	if !owner.IsValid() || owner == fn {
		return false
	}
	return an.tab.FuncEncloses(owner, fn)
}
