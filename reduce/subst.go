package reduce

import "github.com/go-lambda/blc/expr"

// subst implements the equations of §4.4 exactly:
//
//	subst(Term(k), depth, a)    = shift(a, depth-1)   if k == depth
//	                            = Term(k-1)            if k >  depth
//	                            = Term(k)               otherwise
//	subst(Lambda(body,n), depth, a) = Lambda(subst(body, depth+1, a), n)
//	subst(Apply(l,r), depth, a)     = Apply(subst(l,depth,a), subst(r,depth,a))
//
// GlobalRef is opaque to substitution: it carries no de Bruijn index, so
// it passes through unchanged regardless of depth.
func subst(arena *expr.Arena, body expr.Ref, depth uint64, a expr.Ref) expr.Ref {
	switch body.Kind() {
	case expr.KindTerm:
		k := body.Index()
		switch {
		case k == depth:
			return expr.Shift(arena, a, depth-1)
		case k > depth:
			return expr.Term(k - 1)
		default:
			return body
		}
	case expr.KindGlobal:
		return body
	case expr.KindLambda:
		return arena.Lambda(body.Name(), subst(arena, body.Body(), depth+1, a))
	case expr.KindApply:
		return arena.Apply(subst(arena, body.Left(), depth, a), subst(arena, body.Right(), depth, a))
	default:
		return body
	}
}
