// Package lift implements closure elimination for the Crest middle end.
//
// Crest permits functions to be declared inside other functions and to
// reference the enclosing function's local variables. The code generator
// cannot represent closures, so before it runs every nested function is
// rewritten into a top-level function that receives its captured variables
// as explicit by-reference parameters, and every call site is updated to
// pass the matching arguments.
//
// The pass runs in three phases:
//
//  1. Capture analysis: a fixed-point computation over all nested functions
//     producing, for each one, the ordered set of enclosing-scope variables
//     it uses directly or transitively through calls to other nested
//     functions.
//  2. Rewrite traversal: a single post-order walk that lifts each nested
//     definition to module scope and appends capture arguments at each call
//     site. Calls encountered before their target has been lifted keep their
//     old target and are noted in a ledger.
//  3. Finalize: one linear pass retargeting every recorded old symbol to its
//     lifted replacement.
//
// The pass assumes a well-formed, scope- and type-resolved module. Failures
// are compiler-internal errors, never user diagnostics.
package lift
