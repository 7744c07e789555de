package resolve

import "github.com/go-lambda/blc/expr"

// ChurchNumeral lowers integer literal n to \f.\x.(f^n x), built as nested
// Applies with a single captured f (Term 2, the outer binder) and x (Term
// 1, the inner binder), per §4.3.
func (b *Builder) ChurchNumeral(n uint64) expr.Ref {
	body := expr.Term(1) // x
	for i := uint64(0); i < n; i++ {
		body = b.arena.Apply(expr.Term(2), body) // f applied once more
	}
	return b.arena.Lambda("f", b.arena.Lambda("x", body))
}

// List lowers `[e1 e2 ... eN]` to `(pair e1 (pair e2 ... (pair eN false)))`,
// where pair and false resolve through the global table (§4.3, glossary).
func (b *Builder) List(elems []expr.Ref) expr.Ref {
	acc := b.Identifier("false")
	for i := len(elems) - 1; i >= 0; i-- {
		acc = b.arena.Apply(b.arena.Apply(b.Identifier("pair"), elems[i]), acc)
	}
	return acc
}

// Tuple lowers `{e1 ... eN}` to the N-ary tuple constructor
// `\s.((s e1) e2) ... eN`, matching the `field` accessor in the glossary.
// elems were built in the scope before the fresh `s` binder existed, so
// each must be shifted up by one to account for the newly introduced
// enclosing lambda (§4.3).
func (b *Builder) Tuple(elems []expr.Ref) expr.Ref {
	body := expr.Term(1) // s
	for _, e := range elems {
		body = b.arena.Apply(body, expr.Shift(b.arena, e, 1))
	}
	return b.arena.Lambda("s", body)
}
