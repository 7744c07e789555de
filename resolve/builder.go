package resolve

import "github.com/go-lambda/blc/expr"

// Builder converts parser construction events into arena Expressions. It
// owns the binder stack described in §4.3: the names currently in scope,
// innermost last.
type Builder struct {
	arena   *expr.Arena
	globals *Globals
	binders []string
}

// NewBuilder creates a Builder allocating into arena and resolving
// unbound identifiers against globals.
func NewBuilder(arena *expr.Arena, globals *Globals) *Builder {
	return &Builder{arena: arena, globals: globals}
}

// Arena returns the arena this builder allocates into.
func (b *Builder) Arena() *expr.Arena { return b.arena }

// Globals returns the table this builder resolves free identifiers
// against.
func (b *Builder) Globals() *Globals { return b.globals }

// PushBinder enters a new innermost scope named name.
func (b *Builder) PushBinder(name string) {
	b.binders = append(b.binders, name)
}

// PopBinder leaves the innermost scope.
func (b *Builder) PopBinder() {
	b.binders = b.binders[:len(b.binders)-1]
}

// Identifier resolves token I per §4.3: search the binder stack from
// innermost outward for a matching name, emitting a Term at its 1-based
// position; otherwise emit a GlobalRef, a placeholder resolved against
// the global table at reduction time. An identifier with no entry at
// build time is not an error here — only using it is (§4.3, §4.4).
func (b *Builder) Identifier(name string) expr.Ref {
	for i := len(b.binders) - 1; i >= 0; i-- {
		if b.binders[i] == name {
			return expr.Term(uint64(len(b.binders) - i))
		}
	}
	return expr.GlobalRef(name)
}

// Lambda desugars `\p1 p2 ... pN . body` into nested single-parameter
// lambdas `\p1.\p2. ... \pN.body`, pushing params onto the binder stack
// in order before calling body and popping them afterward (§4.3).
func (b *Builder) Lambda(params []string, body func() expr.Ref) expr.Ref {
	for _, p := range params {
		b.PushBinder(p)
	}
	result := body()
	for range params {
		b.PopBinder()
	}
	for i := len(params) - 1; i >= 0; i-- {
		result = b.arena.Lambda(params[i], result)
	}
	return result
}

// Apply desugars `(f a1 a2 ... aN)` into the left-associative
// `(((f a1) a2) ... aN)` (§4.3). It panics if args has fewer than two
// elements; the parser collaborator is expected to require at least a
// function and one argument.
func (b *Builder) Apply(args []expr.Ref) expr.Ref {
	if len(args) < 2 {
		panic("resolve: Apply requires at least two elements")
	}
	acc := args[0]
	for _, a := range args[1:] {
		acc = b.arena.Apply(acc, a)
	}
	return acc
}
