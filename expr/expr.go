package expr

import "fmt"

// Ref is a stable reference to an Expression: either an inline Term index
// (arena is nil, no allocation occurred) or a handle into the cell at
// value within arena. Its zero value is not a valid Expression.
type Ref struct {
	kind  Kind
	value uint64 // Term: de Bruijn index (>=1). Lambda/Apply: cell index. GlobalRef: unused.
	arena *Arena
	name  string // GlobalRef: the unresolved identifier. Unused otherwise.
}

// Term builds a de Bruijn variable referring to the index-th enclosing
// binder (1 = nearest). It requires no allocation, per §4.1/§4.2.
func Term(index uint64) Ref {
	if index < 1 {
		panic("expr: term index must be >= 1")
	}
	return Ref{kind: KindTerm, value: index}
}

// GlobalRef builds an unresolved reference to a global-table identifier.
// Resolution happens at reduction time (§4.4), not at construction time,
// so that reassignment of a global in a later statement is observed by
// every not-yet-reduced reference to it.
func GlobalRef(name string) Ref {
	return Ref{kind: KindGlobal, name: name}
}

// Kind reports which of the four variants r holds.
func (r Ref) Kind() Kind { return r.kind }

func (r Ref) cellData() cell {
	if r.arena == nil {
		panic(fmt.Sprintf("expr: %s has no arena cell", r.kind))
	}
	return r.arena.cells[r.value]
}

// Index returns the de Bruijn index of a Term. Panics on other kinds.
func (r Ref) Index() uint64 {
	if r.kind != KindTerm {
		panic("expr: Index called on non-Term")
	}
	return r.value
}

// Identifier returns the name of a GlobalRef. Panics on other kinds.
func (r Ref) Identifier() string {
	if r.kind != KindGlobal {
		panic("expr: Identifier called on non-GlobalRef")
	}
	return r.name
}

// Body returns a Lambda's body. Panics on other kinds.
func (r Ref) Body() Ref {
	if r.kind != KindLambda {
		panic("expr: Body called on non-Lambda")
	}
	return r.cellData().left
}

// Name returns a Lambda's binder-name hint. Panics on other kinds.
func (r Ref) Name() string {
	if r.kind != KindLambda {
		panic("expr: Name called on non-Lambda")
	}
	return r.cellData().name
}

// Left returns an Apply's function position. Panics on other kinds.
func (r Ref) Left() Ref {
	if r.kind != KindApply {
		panic("expr: Left called on non-Apply")
	}
	return r.cellData().left
}

// Right returns an Apply's argument position. Panics on other kinds.
func (r Ref) Right() Ref {
	if r.kind != KindApply {
		panic("expr: Right called on non-Apply")
	}
	return r.cellData().right
}

// Equal reports structural equality over the Term/Lambda/Apply/GlobalRef
// tree. The Lambda name hint never participates, per §3.
func Equal(a, b Ref) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindTerm:
		return a.value == b.value
	case KindGlobal:
		return a.name == b.name
	case KindLambda:
		return Equal(a.Body(), b.Body())
	case KindApply:
		return Equal(a.Left(), b.Left()) && Equal(a.Right(), b.Right())
	default:
		return false
	}
}
