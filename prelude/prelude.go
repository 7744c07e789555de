// Package prelude holds the canned standard-library source text described
// in spec's resolver section: ordinary lambda-calculus source, loaded into
// a Globals table exactly the way any other input file would be.
package prelude

import (
	_ "embed"

	"github.com/pkg/errors"

	"github.com/go-lambda/blc/expr"
	"github.com/go-lambda/blc/parse"
	"github.com/go-lambda/blc/resolve"
)

//go:embed prelude.lambda
var Source string

// Load parses Source as a sequence of assignments and defines each one
// into globals, backed by arena. It is an error for the prelude to
// contain anything but assignments — evaluation-only statements have no
// observer to print their result.
func Load(arena *expr.Arena, globals *resolve.Globals) error {
	p := parse.NewParser("<prelude>", Source)
	for !p.AtEOF() {
		if !p.NextIsAssignment() {
			return errors.New("prelude: expected only assignments")
		}
		if _, err := p.ParseAssignment(arena, globals); err != nil {
			return errors.Wrap(err, "prelude")
		}
	}
	return nil
}
