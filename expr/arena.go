// Package expr implements the tagged expression representation and the
// bump-style arena that owns it (lambda spec §3, §4.1, §4.2).
package expr

import "fmt"

// Kind distinguishes the three Expression variants, plus the GlobalRef
// extension discussed in the design notes: an unresolved identifier,
// carried as a value rather than baked into a parse-time lookup.
type Kind uint8

const (
	KindTerm Kind = iota
	KindLambda
	KindApply
	KindGlobal
)

func (k Kind) String() string {
	switch k {
	case KindTerm:
		return "Term"
	case KindLambda:
		return "Lambda"
	case KindApply:
		return "Apply"
	case KindGlobal:
		return "GlobalRef"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// maxNameLen bounds a Lambda's binder-name hint, per §4.2.
const maxNameLen = 32767

// cell is the arena-resident payload for Lambda and Apply nodes. Term and
// GlobalRef values never need one: a Term is just an index, and a
// GlobalRef is just a borrowed identifier, so both fit inside a Ref
// without touching the arena. This is the "explicit discriminant"
// alternative layout that §4.2 permits in place of 128-bit tagged-pointer
// packing.
type cell struct {
	kind  Kind
	left  Ref // Lambda.body, Apply.left
	right Ref // Apply.right
	name  string
}

// Arena is a bump allocator: cells are appended and never freed
// individually. The whole region is released together when its owner is
// done with it (the global arena at process exit, an eval arena after
// printing its result).
type Arena struct {
	cells  []cell
	global bool // true for the process-lifetime global arena
}

// NewGlobalArena creates the arena that backs the global definition table.
// It lives for the process.
func NewGlobalArena() *Arena {
	return &Arena{global: true}
}

// NewEvalArena creates a transient arena for one top-level expression. It
// may reference cells in the global arena (global entries are expanded by
// reference, not copied) but a global arena must never come to reference
// an eval arena's cells — that would let a transient region leak into
// process-lifetime state. alloc enforces the direction.
func NewEvalArena() *Arena {
	return &Arena{global: false}
}

// Len reports the number of cells allocated so far, mostly useful for
// tests asserting on arena growth.
func (a *Arena) Len() int { return len(a.cells) }

func (a *Arena) alloc(c cell) Ref {
	if a.global {
		if refEscapesEval(c.left) || refEscapesEval(c.right) {
			panic("expr: global arena cell must not reference an eval arena")
		}
	}
	a.cells = append(a.cells, c)
	return Ref{kind: c.kind, value: uint64(len(a.cells) - 1), arena: a}
}

// refEscapesEval reports whether r points into a non-global arena, which
// would violate the global-arena-never-references-eval-arena invariant.
func refEscapesEval(r Ref) bool {
	return r.arena != nil && !r.arena.global
}

// Lambda allocates an abstraction over body with the given binder-name
// hint. The name is borrowed, not copied; callers whose source text will
// not outlive the arena must copy it first (§4.1).
func (a *Arena) Lambda(name string, body Ref) Ref {
	if len(name) > maxNameLen {
		panic("expr: lambda name exceeds maximum length")
	}
	return a.alloc(cell{kind: KindLambda, left: body, name: name})
}

// Apply allocates an application of left to right.
func (a *Arena) Apply(left, right Ref) Ref {
	return a.alloc(cell{kind: KindApply, left: left, right: right})
}
