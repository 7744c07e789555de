package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-lambda/blc/expr"
	"github.com/go-lambda/blc/internal/diagnostic"
	"github.com/go-lambda/blc/resolve"
)

func TestBetaIdentity(t *testing.T) {
	// (\x.x) E reduces to E in exactly one step, for any closed E.
	arena := expr.NewEvalArena()
	globals := resolve.NewGlobals(expr.NewGlobalArena())

	closedE := arena.Lambda("y", arena.Lambda("z", expr.Term(1)))
	identity := arena.Lambda("x", expr.Term(1))
	redex := arena.Apply(identity, closedE)

	result, steps, err := Reduce(arena, globals, redex, Options{Budget: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, steps)
	assert.True(t, expr.Equal(result, closedE))
}

func TestBudgetExactlyMatchingStepCountReachesNormalForm(t *testing.T) {
	// (\x.x) E needs exactly one step; giving a budget of exactly 1 must
	// not be mistaken for exhaustion once that step lands on normal form.
	arena := expr.NewEvalArena()
	globals := resolve.NewGlobals(expr.NewGlobalArena())

	closedE := arena.Lambda("y", expr.Term(1))
	identity := arena.Lambda("x", expr.Term(1))
	redex := arena.Apply(identity, closedE)

	result, steps, err := Reduce(arena, globals, redex, Options{Budget: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, steps)
	assert.True(t, expr.Equal(result, closedE))
}

func TestChurchRoundTripViaAddition(t *testing.T) {
	// Reduce plus(1,2) via the normal-order reducer using a hand-rolled
	// PLUS combinator, exercising substitution and shift together, and
	// compare the result structurally to a directly built \f.\x.(f (f (f x))).
	globalArena := expr.NewGlobalArena()
	globals := resolve.NewGlobals(globalArena)
	b := resolve.NewBuilder(globalArena, globals)

	one := b.ChurchNumeral(1)
	two := b.ChurchNumeral(2)

	// PLUS := \m.\n.\f.\x.(m f (n f x))
	plusBody := globalArena.Apply(
		globalArena.Apply(expr.Term(4), expr.Term(2)),
		globalArena.Apply(globalArena.Apply(expr.Term(3), expr.Term(2)), expr.Term(1)),
	)
	plus := globalArena.Lambda("m", globalArena.Lambda("n", globalArena.Lambda("f", globalArena.Lambda("x", plusBody))))

	evalArena := expr.NewEvalArena()
	expr3 := evalArena.Apply(evalArena.Apply(plus, one), two)

	result, _, err := Reduce(evalArena, globals, expr3, Options{Budget: 1000})
	require.NoError(t, err)

	want := b.ChurchNumeral(3)
	assert.True(t, expr.Equal(result, want), "got church numeral differing from 3")
}

func TestUnresolvedIdentifierFails(t *testing.T) {
	arena := expr.NewEvalArena()
	globals := resolve.NewGlobals(expr.NewGlobalArena())

	_, _, err := Reduce(arena, globals, expr.GlobalRef("nope"), Options{Budget: 10})

	var unresolved *diagnostic.UnresolvedIdentifier
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "nope", unresolved.Name)
}

func TestReductionLimitExceededCarriesPartial(t *testing.T) {
	arena := expr.NewEvalArena()
	globals := resolve.NewGlobals(expr.NewGlobalArena())

	// OMEGA := (\x.(x x)) (\x.(x x)) never reaches normal form.
	selfApp := arena.Lambda("x", arena.Apply(expr.Term(1), expr.Term(1)))
	omega := arena.Apply(selfApp, selfApp)

	_, steps, err := Reduce(arena, globals, omega, Options{Budget: 50})

	var limit *diagnostic.ReductionLimitExceeded
	require.ErrorAs(t, err, &limit)
	assert.Equal(t, 50, steps)
	assert.Equal(t, 50, limit.Steps)
	// Each step rebuilds OMEGA, so the partial expression is OMEGA again.
	assert.True(t, expr.Equal(omega, limit.Partial))
}

func TestStepObserverSeesStepZeroAndFinalStep(t *testing.T) {
	arena := expr.NewEvalArena()
	globals := resolve.NewGlobals(expr.NewGlobalArena())

	identity := arena.Lambda("x", expr.Term(1))
	closedE := arena.Lambda("y", expr.Term(1))
	redex := arena.Apply(identity, closedE)

	var seen []int
	_, _, err := Reduce(arena, globals, redex, Options{Budget: 100, Observer: func(step int, e expr.Ref) {
		seen = append(seen, step)
	}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestAssignmentShadowingAffectsPendingExpansion(t *testing.T) {
	globalArena := expr.NewGlobalArena()
	globals := resolve.NewGlobals(globalArena)

	globals.Define("x", globalArena.Lambda("a", expr.Term(1)), diagnostic.Location{Line: 1})
	globals.Define("x", globalArena.Lambda("b", globalArena.Lambda("c", expr.Term(2))), diagnostic.Location{Line: 2})

	arena := expr.NewEvalArena()
	result, _, err := Reduce(arena, globals, expr.GlobalRef("x"), Options{Budget: 10})
	require.NoError(t, err)

	want := globalArena.Lambda("b", globalArena.Lambda("c", expr.Term(2)))
	assert.True(t, expr.Equal(result, want))
}
