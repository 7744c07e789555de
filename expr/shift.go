package expr

// Shift increments every free Term index in e by delta, tracking how many
// binders have been crossed so bound occurrences are left alone. This is
// the standard capture-avoiding de Bruijn shift (§4.4); it is also what
// the tuple sugar needs when it re-homes an already-built element under a
// freshly introduced binder (§4.3).
func Shift(arena *Arena, e Ref, delta uint64) Ref {
	return shiftAt(arena, e, delta, 0)
}

func shiftAt(arena *Arena, e Ref, delta, cutoff uint64) Ref {
	switch e.kind {
	case KindTerm:
		if e.value > cutoff {
			return Term(e.value + delta)
		}
		return e
	case KindGlobal:
		return e
	case KindLambda:
		return arena.Lambda(e.Name(), shiftAt(arena, e.Body(), delta, cutoff+1))
	case KindApply:
		return arena.Apply(shiftAt(arena, e.Left(), delta, cutoff), shiftAt(arena, e.Right(), delta, cutoff))
	default:
		return e
	}
}
