package lift

import (
	"fmt"

	"crest/internal/hir"
	"crest/internal/symbols"
)

// LedgerState tracks an old nested-function symbol through the rewrite.
// Transitions are one-way: unlifted → lifted → resolved.
type LedgerState uint8

const (
	// StateUnknown: the symbol has never been seen by the ledger.
	StateUnknown LedgerState = iota
	// StateUnlifted: a call to the symbol was rewritten-in-part (arguments
	// appended) before its lifted replacement existed.
	StateUnlifted
	// StateLifted: the replacement symbol exists; retargeting of earlier
	// call sites is still pending the finalize pass.
	StateLifted
	// StateResolved: every call site has been retargeted. Terminal.
	StateResolved
)

func (s LedgerState) String() string {
	switch s {
	case StateUnlifted:
		return "unlifted"
	case StateLifted:
		return "lifted"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// ledger tracks old→new symbol associations created by the lifter and the
// worklist of old symbols whose call sites were visited before lifting.
//
// The rewrite traversal is single-pass, so a call can textually precede its
// target's definition (or follow a definition not yet visited). Instead of
// replaying already-visited statements after every lift, the ledger batches
// all retargeting into one linear substitution pass once the whole module
// has been visited; the result is the same and each statement is touched
// once.
type ledger struct {
	assoc    substMap
	pending  map[symbols.SymbolID]struct{}
	resolved map[symbols.SymbolID]struct{}
}

func newLedger() *ledger {
	return &ledger{
		assoc:    make(substMap),
		pending:  make(map[symbols.SymbolID]struct{}),
		resolved: make(map[symbols.SymbolID]struct{}),
	}
}

// Record registers the lifted replacement for old. Lifting the same symbol
// twice is a pass bug.
func (l *ledger) Record(old, repl symbols.SymbolID) error {
	if prev, ok := l.assoc[old]; ok {
		return fmt.Errorf("lift: function sym=%d lifted twice (sym=%d, then sym=%d)", old, prev, repl)
	}
	l.assoc[old] = repl
	return nil
}

// Defer notes that a call to old was rewritten before old was lifted.
func (l *ledger) Defer(old symbols.SymbolID) {
	if _, ok := l.resolved[old]; ok {
		return
	}
	l.pending[old] = struct{}{}
}

// Replacement returns the lifted symbol for old, if recorded.
func (l *ledger) Replacement(old symbols.SymbolID) (symbols.SymbolID, bool) {
	repl, ok := l.assoc[old]
	return repl, ok
}

// State reports where old sits in the ledger's state machine.
func (l *ledger) State(old symbols.SymbolID) LedgerState {
	if _, ok := l.resolved[old]; ok {
		return StateResolved
	}
	if _, ok := l.assoc[old]; ok {
		return StateLifted
	}
	if _, ok := l.pending[old]; ok {
		return StateUnlifted
	}
	return StateUnknown
}

// Finalize retargets every recorded old symbol across the whole module in
// one linear pass and drains the pending worklist. A pending symbol with no
// recorded replacement means a call resolved to a nested function that was
// never lifted — an internal error.
func (l *ledger) Finalize(m *hir.Module) error {
	for old := range l.pending {
		if _, ok := l.assoc[old]; !ok {
			return fmt.Errorf("lift: call target sym=%d was never lifted", old)
		}
	}
	if len(l.assoc) > 0 {
		for _, fn := range m.Funcs {
			substituteInBlock(fn.Body, l.assoc)
		}
	}
	for old := range l.assoc {
		l.resolved[old] = struct{}{}
		delete(l.pending, old)
	}
	return nil
}
