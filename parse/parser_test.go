package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-lambda/blc/expr"
	"github.com/go-lambda/blc/printer"
	"github.com/go-lambda/blc/resolve"
)

func parseOneEval(t *testing.T, src string) expr.Ref {
	t.Helper()
	globalArena := expr.NewGlobalArena()
	globals := resolve.NewGlobals(globalArena)
	p := NewParser("test", src)
	require.False(t, p.NextIsAssignment())
	evalArena := expr.NewEvalArena()
	stmt, err := p.ParseEval(evalArena, globals)
	require.NoError(t, err)
	return stmt.Expr
}

func TestParseIdentity(t *testing.T) {
	got := parseOneEval(t, `\x.x`)
	assert.Equal(t, `\x.x`, printer.Print(got))
}

func TestParseMultiParamLambda(t *testing.T) {
	got := parseOneEval(t, `\a b c.a`)
	assert.Equal(t, `\a.\b.\c.a`, printer.Print(got))
}

func TestParseApplication(t *testing.T) {
	got := parseOneEval(t, `(f x y z)`)
	assert.Equal(t, `(((f x) y) z)`, printer.Print(got))
}

func TestParseParenGrouping(t *testing.T) {
	got := parseOneEval(t, `(\x.x)`)
	assert.Equal(t, `\x.x`, printer.Print(got))
}

func TestParseNumberWithUnderscores(t *testing.T) {
	got := parseOneEval(t, `1_0`)
	assert.Equal(t, `\f.\x.(f (f (f (f (f (f (f (f (f (f x))))))))))`, printer.Print(got))
}

func TestParseListSugar(t *testing.T) {
	got := parseOneEval(t, `[1 2]`)
	want := `((pair \f.\x.(f x)) ((pair \f.\x.(f (f x))) false))`
	assert.Equal(t, want, printer.Print(got))
}

func TestParseTupleSugar(t *testing.T) {
	got := parseOneEval(t, `{x y}`)
	assert.Equal(t, `\s.((s x) y)`, printer.Print(got))
}

func TestParseCommentsAndWhitespace(t *testing.T) {
	got := parseOneEval(t, "  ; a comment\n  \\x.x ; trailing\n")
	assert.Equal(t, `\x.x`, printer.Print(got))
}

func TestParseAssignmentThenEval(t *testing.T) {
	globalArena := expr.NewGlobalArena()
	globals := resolve.NewGlobals(globalArena)
	p := NewParser("test", "id = \\x.x\nid")

	require.True(t, p.NextIsAssignment())
	_, err := p.ParseAssignment(globalArena, globals)
	require.NoError(t, err)

	require.False(t, p.NextIsAssignment())
	require.False(t, p.AtEOF())
	evalArena := expr.NewEvalArena()
	stmt, err := p.ParseEval(evalArena, globals)
	require.NoError(t, err)
	assert.Equal(t, "id", printer.Print(stmt.Expr))

	entry, ok := globals.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, `\x.x`, printer.Print(entry.Expr))
}

func TestParseUnexpectedTokenIsParseError(t *testing.T) {
	p := NewParser("test", ")")
	evalArena := expr.NewEvalArena()
	globals := resolve.NewGlobals(expr.NewGlobalArena())
	_, err := p.ParseEval(evalArena, globals)
	require.Error(t, err)
}

func TestParseUnterminatedParenIsParseError(t *testing.T) {
	p := NewParser("test", "(f x")
	evalArena := expr.NewEvalArena()
	globals := resolve.NewGlobals(expr.NewGlobalArena())
	_, err := p.ParseEval(evalArena, globals)
	require.Error(t, err)
}

func TestRecoverSkipsToNextStatementStart(t *testing.T) {
	globals := resolve.NewGlobals(expr.NewGlobalArena())

	p := NewParser("test", ".\n(f x)")
	evalArena := expr.NewEvalArena()
	_, err := p.ParseEval(evalArena, globals)
	require.Error(t, err)

	p.Recover()
	require.False(t, p.AtEOF())
	evalArena = expr.NewEvalArena()
	stmt, err := p.ParseEval(evalArena, globals)
	require.NoError(t, err)
	assert.Equal(t, "(f x)", printer.Print(stmt.Expr))
}

func TestRecoverSkipsStrayClosingParenBeforeNextStatement(t *testing.T) {
	globals := resolve.NewGlobals(expr.NewGlobalArena())

	// The dot inside "(x .)" breaks the paren group early, leaving a
	// stray ")" in the stream; Recover must skip past it too rather than
	// stopping there, since a closing bracket can't start a statement.
	p := NewParser("test", "(x .)\n(g y)")
	evalArena := expr.NewEvalArena()
	_, err := p.ParseEval(evalArena, globals)
	require.Error(t, err)

	p.Recover()
	require.False(t, p.AtEOF())
	evalArena = expr.NewEvalArena()
	stmt, err := p.ParseEval(evalArena, globals)
	require.NoError(t, err)
	assert.Equal(t, "(g y)", printer.Print(stmt.Expr))
}

func TestRecoverAtEOFIsNoop(t *testing.T) {
	p := NewParser("test", "")
	p.Recover()
	assert.True(t, p.AtEOF())
}
