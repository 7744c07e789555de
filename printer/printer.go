// Package printer renders an Expression back to the grammar of §6,
// reversing the resolver's work for Term/Lambda/Apply but never
// re-inferring integer, list, or tuple sugar (§4.5).
package printer

import (
	"fmt"
	"strings"

	"github.com/go-lambda/blc/expr"
)

// Print renders e as source text. Bound Term occurrences print as the
// name hint of their binder; free occurrences print as x{k}.
func Print(e expr.Ref) string {
	var sb strings.Builder
	write(&sb, e, nil)
	return sb.String()
}

// write renders e with names holding the binder-name hints currently in
// scope, innermost last.
func write(sb *strings.Builder, e expr.Ref, names []string) {
	switch e.Kind() {
	case expr.KindTerm:
		k := int(e.Index())
		if k <= len(names) {
			sb.WriteString(names[len(names)-k])
		} else {
			fmt.Fprintf(sb, "x%d", k)
		}

	case expr.KindGlobal:
		sb.WriteString(e.Identifier())

	case expr.KindLambda:
		sb.WriteByte('\\')
		sb.WriteString(e.Name())
		sb.WriteByte('.')
		inner := make([]string, len(names), len(names)+1)
		copy(inner, names)
		inner = append(inner, e.Name())
		write(sb, e.Body(), inner)

	case expr.KindApply:
		sb.WriteByte('(')
		write(sb, e.Left(), names)
		sb.WriteByte(' ')
		write(sb, e.Right(), names)
		sb.WriteByte(')')
	}
}
