// Package resolve implements the symbol resolver / builder of lambda spec
// §4.3: it turns a stream of construction events from the parser into
// arena Expressions, maintaining the binder stack used to tell a bound
// identifier from a global reference, and the append-only global table
// those references are resolved against.
package resolve

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/go-lambda/blc/expr"
	"github.com/go-lambda/blc/internal/diagnostic"
)

// Entry is one global-table binding: the Expression it was assigned and
// the source location of that assignment, for diagnostics.
type Entry struct {
	Expr expr.Ref
	Loc  diagnostic.Location
}

// Globals is the append-only, shadow-on-reassignment global definition
// table of §3. A single Globals backs the process-lifetime global arena;
// every entry's Expr lives in that arena.
type Globals struct {
	arena   *expr.Arena
	entries map[string]Entry
}

// NewGlobals creates an empty table backed by arena, which must be the
// global arena (it is never released while the table is live).
func NewGlobals(arena *expr.Arena) *Globals {
	return &Globals{arena: arena, entries: make(map[string]Entry)}
}

// Arena returns the global arena this table allocates definitions in.
func (g *Globals) Arena() *expr.Arena { return g.arena }

// Define records value as the current binding for name, shadowing any
// earlier assignment. Per §3, assignments are processed top-to-bottom and
// later ones shadow earlier ones; this call is what performs the shadow.
func (g *Globals) Define(name string, value expr.Ref, loc diagnostic.Location) {
	g.entries[name] = Entry{Expr: value, Loc: loc}
}

// Lookup resolves name against the current table contents. Resolution
// happens at call time, not at the time the referencing GlobalRef was
// built, so a later reassignment of name is observed by anything that
// has not yet expanded its reference to it (§9, open question).
func (g *Globals) Lookup(name string) (Entry, bool) {
	e, ok := g.entries[name]
	return e, ok
}

// Names returns every currently bound identifier, sorted, for the REPL's
// :globals introspection command.
func (g *Globals) Names() []string {
	names := maps.Keys(g.entries)
	slices.Sort(names)
	return names
}
