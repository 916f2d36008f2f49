package lift

import (
	"fmt"

	"crest/internal/hir"
)

// validateModule checks the pass's output contract: no nested function
// definitions remain anywhere, and every call to a module function carries
// exactly one actual per formal. Violations are pass bugs and abort
// compilation as internal errors.
func validateModule(m *hir.Module) error {
	for _, fn := range m.Funcs {
		if fn == nil {
			continue
		}
		var leftover *hir.Func
		forEachFuncDef(fn.Body, func(nested *hir.Func) {
			if leftover == nil {
				leftover = nested
			}
		})
		if leftover != nil {
			return fmt.Errorf("lift: nested definition %q (sym=%d) survived inside %q",
				leftover.Name, leftover.SymbolID, fn.Name)
		}
	}

	for _, fn := range m.Funcs {
		if fn == nil {
			continue
		}
		var bad error
		visitExprsInBlock(fn.Body, func(e *hir.Expr) {
			if bad != nil || e.Kind != hir.ExprCall {
				return
			}
			data, ok := e.Data.(hir.CallData)
			if !ok {
				return
			}
			target, ok := callTarget(&data)
			if !ok {
				return
			}
			callee := m.FindFuncBySymbol(target)
			if callee == nil {
				// External or intrinsic target; arity is not ours to check.
				return
			}
			if len(data.Args) != len(callee.Params) {
				bad = fmt.Errorf("lift: call to %q in %q has %d arguments for %d formals",
					callee.Name, fn.Name, len(data.Args), len(callee.Params))
			}
		})
		if bad != nil {
			return bad
		}
	}
	return nil
}
