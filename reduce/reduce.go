// Package reduce implements the normal-order β-reducer of lambda spec
// §4.4: leftmost-outermost redex choice, on-demand global expansion,
// de Bruijn substitution, a step budget, and an optional step observer.
package reduce

import (
	"github.com/go-lambda/blc/expr"
	"github.com/go-lambda/blc/internal/diagnostic"
	"github.com/go-lambda/blc/resolve"
)

// DefaultBudget is the step budget used when a caller does not configure
// one, matching the teacher CLI's own default.
const DefaultBudget = 10000

// Observer is invoked after each completed step with the step index
// (starting at 0, the resolver output before any β-reduction) and the
// whole expression as of that step.
type Observer func(step int, e expr.Ref)

// Options configures a single Reduce call.
type Options struct {
	// Budget is the maximum number of steps (β-reductions or global
	// expansions) to perform. Zero means DefaultBudget.
	Budget int
	// Observer, if non-nil, is called once per step including step 0.
	Observer Observer
}

// Reduce computes the normal form of start by repeated leftmost-outermost
// β-reduction with on-demand global expansion, within the given arena and
// against globals. It returns the final (or partial, on limit) expression
// and the number of steps performed. If the budget is exhausted before a
// normal form is reached, it returns a *diagnostic.ReductionLimitExceeded
// alongside the partial expression; any unresolved identifier surfaces as
// a *diagnostic.UnresolvedIdentifier immediately.
func Reduce(arena *expr.Arena, globals *resolve.Globals, start expr.Ref, opts Options) (expr.Ref, int, error) {
	budget := opts.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}

	current := start
	if opts.Observer != nil {
		opts.Observer(0, current)
	}

	for i := 0; i < budget; i++ {
		next, did, err := step(arena, globals, current)
		if err != nil {
			return current, i, err
		}
		if !did {
			return current, i, nil
		}
		current = next
		if opts.Observer != nil {
			opts.Observer(i+1, current)
		}
	}

	// The budget bought exactly `budget` reductions. Peek at whether a
	// redex remains before declaring exhaustion: consuming the last slot
	// above does not itself mean normal form wasn't already reached.
	_, did, err := step(arena, globals, current)
	if err != nil {
		return current, budget, err
	}
	if !did {
		return current, budget, nil
	}
	return current, budget, diagnostic.NewReductionLimitExceeded(budget, current)
}

// step performs at most one reduction, returning the new expression and
// whether a redex was found. The redex-choice order matches §4.4 exactly:
// Apply(Lambda,arg) is an immediate redex; otherwise an Apply descends
// into its left side first and its right side only if the left made no
// progress; a Lambda descends into its body; a GlobalRef expands if it
// names a defined global; a Term is already in normal form.
func step(arena *expr.Arena, globals *resolve.Globals, e expr.Ref) (expr.Ref, bool, error) {
	switch e.Kind() {
	case expr.KindApply:
		left := e.Left()
		if left.Kind() == expr.KindLambda {
			return subst(arena, left.Body(), 1, e.Right()), true, nil
		}

		newLeft, did, err := step(arena, globals, left)
		if err != nil {
			return expr.Ref{}, false, err
		}
		if did {
			return arena.Apply(newLeft, e.Right()), true, nil
		}

		newRight, did, err := step(arena, globals, e.Right())
		if err != nil {
			return expr.Ref{}, false, err
		}
		if did {
			return arena.Apply(left, newRight), true, nil
		}
		return e, false, nil

	case expr.KindLambda:
		newBody, did, err := step(arena, globals, e.Body())
		if err != nil {
			return expr.Ref{}, false, err
		}
		if did {
			return arena.Lambda(e.Name(), newBody), true, nil
		}
		return e, false, nil

	case expr.KindGlobal:
		entry, ok := globals.Lookup(e.Identifier())
		if !ok {
			return expr.Ref{}, false, diagnostic.NewUnresolvedIdentifier(e.Identifier(), diagnostic.Location{})
		}
		return entry.Expr, true, nil

	case expr.KindTerm:
		return e, false, nil

	default:
		return e, false, nil
	}
}
