package lift

import (
	"crest/internal/symbols"
)

// CaptureSet is an ordered, duplicate-free sequence of captured variable
// symbols. The order is first-use order from the analysis traversal and is
// the parameter/argument order used by the lifter and the call-site
// rewriter. Once analysis completes a set never shrinks or reorders.
type CaptureSet struct {
	order []symbols.SymbolID
	index map[symbols.SymbolID]struct{}
}

func newCaptureSet() *CaptureSet {
	return &CaptureSet{index: make(map[symbols.SymbolID]struct{})}
}

// Add appends sym if not already present and reports whether the set grew.
func (c *CaptureSet) Add(sym symbols.SymbolID) bool {
	if !sym.IsValid() {
		return false
	}
	if _, ok := c.index[sym]; ok {
		return false
	}
	c.index[sym] = struct{}{}
	c.order = append(c.order, sym)
	return true
}

// Has reports whether sym is in the set.
func (c *CaptureSet) Has(sym symbols.SymbolID) bool {
	_, ok := c.index[sym]
	return ok
}

// Len returns the number of captured variables.
func (c *CaptureSet) Len() int { return len(c.order) }

// Symbols returns the captured variables in capture order. The returned
// slice is the set's backing storage; callers must not mutate it.
func (c *CaptureSet) Symbols() []symbols.SymbolID { return c.order }

// Analysis is the read-only result of capture analysis: a CaptureSet for
// every nested function discovered in the module.
type Analysis struct {
	captures map[symbols.SymbolID]*CaptureSet
	order    []symbols.SymbolID // nested functions in discovery order
	rounds   int
}

// CaptureSet returns the capture set computed for fn. The second result is
// false when fn is not a nested function known to the analysis.
func (a *Analysis) CaptureSet(fn symbols.SymbolID) (*CaptureSet, bool) {
	cs, ok := a.captures[fn]
	return cs, ok
}

// NestedFuncs returns the analyzed nested function symbols in discovery
// order.
func (a *Analysis) NestedFuncs() []symbols.SymbolID { return a.order }

// Rounds reports how many fixed-point rounds the analysis took.
func (a *Analysis) Rounds() int { return a.rounds }
