package lift

import (
	"fmt"

	"crest/internal/hir"
	"crest/internal/symbols"
)

// LiftedFunc describes one nested function moved to module scope.
type LiftedFunc struct {
	Name     string
	OldSym   symbols.SymbolID
	NewSym   symbols.SymbolID
	Captured []symbols.SymbolID // in capture (parameter/argument) order
}

// Result summarizes one run of the pass over a module.
type Result struct {
	Lifted []LiftedFunc
	Rounds int // capture-analysis fixed-point rounds
}

// Run analyzes and rewrites m in place. It is the all-in-one entry point;
// drivers that want per-phase timings call Analyze and Eliminate directly.
func Run(m *hir.Module, opts Options) (*Result, error) {
	an, err := Analyze(m, opts)
	if err != nil {
		return nil, err
	}
	return Eliminate(m, an, opts)
}

// Eliminate rewrites m using a completed capture analysis: every nested
// function definition is lifted to module scope and every call site gains
// one argument per captured variable. The analysis must have run to its
// fixed point before any mutation starts; Eliminate trusts its CaptureSets
// as final.
func Eliminate(m *hir.Module, an *Analysis, opts Options) (*Result, error) {
	if m == nil || m.Symbols == nil {
		return nil, fmt.Errorf("lift: eliminate: module without symbol table")
	}
	if an == nil {
		return nil, fmt.Errorf("lift: eliminate: missing capture analysis")
	}
	p := &pass{
		mod:      m,
		tab:      m.Symbols,
		an:       an,
		ledger:   newLedger(),
		nextFunc: maxFuncID(m) + 1,
		result:   &Result{Rounds: an.Rounds()},
	}

	// Original top-level functions only: lifted clones appended during the
	// walk were already rewritten while still nested.
	snapshot := m.Funcs[:len(m.Funcs):len(m.Funcs)]
	for _, fn := range snapshot {
		if err := p.rewriteBlock(fn.Body); err != nil {
			return nil, err
		}
	}

	if err := p.ledger.Finalize(m); err != nil {
		return nil, err
	}

	if opts.Validate {
		if err := validateModule(m); err != nil {
			return nil, err
		}
	}
	return p.result, nil
}

// pass carries all rewrite state; nothing lives in package globals.
type pass struct {
	mod      *hir.Module
	tab      *symbols.Table
	an       *Analysis
	ledger   *ledger
	nextFunc hir.FuncID
	result   *Result
}

func (p *pass) allocFuncID() hir.FuncID {
	id := p.nextFunc
	p.nextFunc++
	return id
}

// rewriteBlock rewrites every statement of b post-order and drops nested
// function definitions once they have been lifted.
func (p *pass) rewriteBlock(b *hir.Block) error {
	if b == nil {
		return nil
	}
	kept := b.Stmts[:0]
	for i := range b.Stmts {
		remove, err := p.rewriteStmt(&b.Stmts[i])
		if err != nil {
			return err
		}
		if !remove {
			kept = append(kept, b.Stmts[i])
		}
	}
	b.Stmts = kept
	return nil
}

func (p *pass) rewriteStmt(st *hir.Stmt) (remove bool, err error) {
	switch st.Kind {
	case hir.StmtLet:
		data, ok := st.Data.(hir.LetData)
		if !ok {
			return false, nil
		}
		if err := p.rewriteExpr(data.Value); err != nil {
			return false, err
		}
		st.Data = data
	case hir.StmtExpr:
		data, ok := st.Data.(hir.ExprStmtData)
		if !ok {
			return false, nil
		}
		if err := p.rewriteExpr(data.Expr); err != nil {
			return false, err
		}
		st.Data = data
	case hir.StmtAssign:
		data, ok := st.Data.(hir.AssignData)
		if !ok {
			return false, nil
		}
		if err := p.rewriteExpr(data.Target); err != nil {
			return false, err
		}
		if err := p.rewriteExpr(data.Value); err != nil {
			return false, err
		}
		st.Data = data
	case hir.StmtReturn:
		data, ok := st.Data.(hir.ReturnData)
		if !ok {
			return false, nil
		}
		if err := p.rewriteExpr(data.Value); err != nil {
			return false, err
		}
		st.Data = data
	case hir.StmtIf:
		data, ok := st.Data.(hir.IfStmtData)
		if !ok {
			return false, nil
		}
		if err := p.rewriteExpr(data.Cond); err != nil {
			return false, err
		}
		if err := p.rewriteBlock(data.Then); err != nil {
			return false, err
		}
		if err := p.rewriteBlock(data.Else); err != nil {
			return false, err
		}
		st.Data = data
	case hir.StmtWhile:
		data, ok := st.Data.(hir.WhileData)
		if !ok {
			return false, nil
		}
		if err := p.rewriteExpr(data.Cond); err != nil {
			return false, err
		}
		if err := p.rewriteBlock(data.Body); err != nil {
			return false, err
		}
		st.Data = data
	case hir.StmtBlock:
		data, ok := st.Data.(hir.BlockStmtData)
		if !ok {
			return false, nil
		}
		if err := p.rewriteBlock(data.Block); err != nil {
			return false, err
		}
		st.Data = data
	case hir.StmtFuncDef:
		data, ok := st.Data.(hir.FuncDefData)
		if !ok || data.Fn == nil {
			return false, nil
		}
		// Inner definitions and call sites first, then the lift itself, so
		// the clone carries fully rewritten code.
		if err := p.rewriteBlock(data.Fn.Body); err != nil {
			return false, err
		}
		if err := p.liftFunc(data.Fn); err != nil {
			return false, err
		}
		return true, nil
	default:
	}
	return false, nil
}

func (p *pass) rewriteExpr(e *hir.Expr) error {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case hir.ExprUnary:
		data, ok := e.Data.(hir.UnaryData)
		if !ok {
			return nil
		}
		if err := p.rewriteExpr(data.Operand); err != nil {
			return err
		}
		e.Data = data
	case hir.ExprBinary:
		data, ok := e.Data.(hir.BinaryData)
		if !ok {
			return nil
		}
		if err := p.rewriteExpr(data.Left); err != nil {
			return err
		}
		if err := p.rewriteExpr(data.Right); err != nil {
			return err
		}
		e.Data = data
	case hir.ExprCall:
		data, ok := e.Data.(hir.CallData)
		if !ok {
			return nil
		}
		if err := p.rewriteExpr(data.Callee); err != nil {
			return err
		}
		for _, a := range data.Args {
			if err := p.rewriteExpr(a); err != nil {
				return err
			}
		}
		p.rewriteCall(e, &data)
		e.Data = data
	case hir.ExprIndex:
		data, ok := e.Data.(hir.IndexData)
		if !ok {
			return nil
		}
		if err := p.rewriteExpr(data.Object); err != nil {
			return err
		}
		if err := p.rewriteExpr(data.Index); err != nil {
			return err
		}
		e.Data = data
	case hir.ExprIf:
		data, ok := e.Data.(hir.IfData)
		if !ok {
			return nil
		}
		if err := p.rewriteExpr(data.Cond); err != nil {
			return err
		}
		if err := p.rewriteExpr(data.Then); err != nil {
			return err
		}
		if err := p.rewriteExpr(data.Else); err != nil {
			return err
		}
		e.Data = data
	case hir.ExprBlock:
		data, ok := e.Data.(hir.BlockExprData)
		if !ok {
			return nil
		}
		if err := p.rewriteBlock(data.Block); err != nil {
			return err
		}
		e.Data = data
	default:
	}
	return nil
}

// rewriteCall appends one actual per captured variable of the resolved
// target. The CaptureSet is final before any rewriting starts, so the
// argument shape is known even when the target has not been lifted yet;
// only the target identity may stay pending.
func (p *pass) rewriteCall(e *hir.Expr, data *hir.CallData) {
	target, ok := callTarget(data)
	if !ok {
		return
	}
	cs, ok := p.an.CaptureSet(target)
	if !ok {
		// Not a nested-origin function; leave untouched.
		return
	}
	for _, v := range cs.Symbols() {
		sym := p.tab.Symbols.Get(v)
		arg := &hir.Expr{
			Kind: hir.ExprVarRef,
			Span: e.Span,
			Data: hir.VarRefData{Name: p.tab.Name(v), SymbolID: v},
		}
		if sym != nil {
			arg.Type = sym.Type
		}
		data.Args = append(data.Args, arg)
	}
	if repl, ok := p.ledger.Replacement(target); ok {
		retargetCall(data, repl)
		return
	}
	p.ledger.Defer(target)
}

// retargetCall redirects a call to the lifted symbol.
func retargetCall(data *hir.CallData, repl symbols.SymbolID) {
	data.SymbolID = repl
	if data.Callee != nil && data.Callee.Kind == hir.ExprVarRef {
		if vr, ok := data.Callee.Data.(hir.VarRefData); ok {
			vr.SymbolID = repl
			data.Callee.Data = vr
		}
	}
}

// liftFunc moves one nested function to module scope: structural copy, one
// ByRef formal per captured variable in CaptureSet order, captured-variable
// references rewritten to the new formals, copy appended to the module's
// function list. The caller removes the original definition statement.
func (p *pass) liftFunc(fn *hir.Func) error {
	old := fn.SymbolID
	cs, ok := p.an.CaptureSet(old)
	if !ok {
		return fmt.Errorf("lift: no capture set for nested function %q (sym=%d)", fn.Name, old)
	}
	oldSym := p.tab.Symbols.Get(old)
	if oldSym == nil {
		return fmt.Errorf("lift: nested function %q has dangling symbol %d", fn.Name, old)
	}

	clone := cloneFunc(fn)
	clone.ID = p.allocFuncID()

	newSym := p.tab.Symbols.New(&symbols.Symbol{
		Name:   oldSym.Name,
		Kind:   symbols.SymbolFunction,
		Parent: symbols.NoSymbolID,
		Type:   oldSym.Type,
		Flags:  oldSym.Flags | symbols.SymbolFlagLifted,
		Span:   oldSym.Span,
	})
	clone.SymbolID = newSym

	if cs.Len() > 0 {
		sub := make(substMap, cs.Len())
		for _, v := range cs.Symbols() {
			captured := p.tab.Symbols.Get(v)
			if captured == nil {
				return fmt.Errorf("lift: captured variable sym=%d of %q is not in the symbol table", v, fn.Name)
			}
			formal := p.tab.Symbols.New(&symbols.Symbol{
				Name:   captured.Name,
				Kind:   symbols.SymbolParam,
				Parent: newSym,
				Type:   captured.Type,
				Mode:   symbols.ModeByRef,
				Flags:  symbols.SymbolFlagMutable,
				Span:   captured.Span,
			})
			clone.Params = append(clone.Params, hir.Param{
				Name:     p.tab.Strings.MustLookup(captured.Name),
				SymbolID: formal,
				Type:     captured.Type,
				Mode:     symbols.ModeByRef,
				Span:     captured.Span,
			})
			sub[v] = formal
		}
		substituteInBlock(clone.Body, sub)
	}

	p.mod.Funcs = append(p.mod.Funcs, clone)
	if err := p.ledger.Record(old, newSym); err != nil {
		return err
	}
	p.result.Lifted = append(p.result.Lifted, LiftedFunc{
		Name:     clone.Name,
		OldSym:   old,
		NewSym:   newSym,
		Captured: append([]symbols.SymbolID(nil), cs.Symbols()...),
	})
	return nil
}

func maxFuncID(m *hir.Module) hir.FuncID {
	var highest hir.FuncID
	note := func(fn *hir.Func) {
		if fn.ID > highest {
			highest = fn.ID
		}
	}
	for _, fn := range m.Funcs {
		if fn == nil {
			continue
		}
		note(fn)
		forEachFuncDef(fn.Body, note)
	}
	return highest
}
