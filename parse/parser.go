package parse

import (
	"strconv"
	"strings"

	"github.com/go-lambda/blc/expr"
	"github.com/go-lambda/blc/internal/diagnostic"
	"github.com/go-lambda/blc/resolve"
)

// StatementKind distinguishes the two productions of §6's Statement rule.
type StatementKind int

const (
	StatementEval StatementKind = iota
	StatementAssignment
)

// Statement is one parsed top-level unit. For an Assignment, Arena is
// nil: the value has already been defined into the global table. For an
// Eval, Arena is the fresh eval arena the expression was built in — the
// caller reduces, prints, and releases it.
type Statement struct {
	Kind       StatementKind
	Identifier string
	Expr       expr.Ref
	Arena      *expr.Arena
	Loc        diagnostic.Location
}

// Parser turns a token stream into Statements, driving a fresh
// resolve.Builder per statement so the binder stack never leaks across
// top-level units.
type Parser struct {
	lex  *Lexer
	tok  Token
	tok2 Token
	has2 bool
}

// NewParser creates a Parser over src, attributing positions to file.
func NewParser(file, src string) *Parser {
	p := &Parser{lex: NewLexer(file, src)}
	p.tok = p.lex.Next()
	return p
}

func (p *Parser) peek() Token { return p.tok }

func (p *Parser) peek2() Token {
	if !p.has2 {
		p.tok2 = p.lex.Next()
		p.has2 = true
	}
	return p.tok2
}

func (p *Parser) advance() Token {
	cur := p.tok
	if p.has2 {
		p.tok, p.has2 = p.tok2, false
	} else {
		p.tok = p.lex.Next()
	}
	return cur
}

// AtEOF reports whether the input is exhausted.
func (p *Parser) AtEOF() bool { return p.peek().Kind == TokenEOF }

// NextIsAssignment reports whether the next statement is an assignment
// (`Identifier "=" ...`), without consuming any input.
func (p *Parser) NextIsAssignment() bool {
	return p.peek().Kind == TokenIdent && p.peek2().Kind == TokenEquals
}

// ParseAssignment parses `Identifier "=" Expression`, allocating the
// value into globalArena and recording it in globals. Call only when
// NextIsAssignment is true.
func (p *Parser) ParseAssignment(globalArena *expr.Arena, globals *resolve.Globals) (*Statement, error) {
	nameTok := p.advance()
	loc := nameTok.Loc
	p.advance() // '='

	b := resolve.NewBuilder(globalArena, globals)
	val, err := p.parseExpression(b)
	if err != nil {
		return nil, err
	}
	globals.Define(nameTok.Text, val, loc)
	return &Statement{Kind: StatementAssignment, Identifier: nameTok.Text, Expr: val, Loc: loc}, nil
}

// ParseEval parses a bare top-level Expression into evalArena.
func (p *Parser) ParseEval(evalArena *expr.Arena, globals *resolve.Globals) (*Statement, error) {
	loc := p.peek().Loc
	b := resolve.NewBuilder(evalArena, globals)
	val, err := p.parseExpression(b)
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StatementEval, Expr: val, Arena: evalArena, Loc: loc}, nil
}

func (p *Parser) parseExpression(b *resolve.Builder) (expr.Ref, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenIdent:
		p.advance()
		return b.Identifier(tok.Text), nil

	case TokenNumber:
		p.advance()
		n, err := parseNumber(tok.Loc, tok.Text)
		if err != nil {
			return expr.Ref{}, err
		}
		return b.ChurchNumeral(n), nil

	case TokenBackslash:
		return p.parseLambda(b)

	case TokenLParen:
		return p.parseParen(b)

	case TokenLBracket:
		return p.parseList(b)

	case TokenLBrace:
		return p.parseTuple(b)

	default:
		return expr.Ref{}, diagnostic.NewParseError(tok.Loc, "unexpected token %q", displayToken(tok))
	}
}

func (p *Parser) parseLambda(b *resolve.Builder) (expr.Ref, error) {
	backslash := p.advance() // consume '\'

	var params []string
	for p.peek().Kind == TokenIdent {
		params = append(params, p.advance().Text)
	}
	if len(params) == 0 {
		return expr.Ref{}, diagnostic.NewParseError(backslash.Loc, "expected at least one parameter after '\\'")
	}
	if p.peek().Kind != TokenDot {
		return expr.Ref{}, diagnostic.NewParseError(p.peek().Loc, "expected '.' after lambda parameters")
	}
	p.advance() // consume '.'

	var bodyErr error
	result := b.Lambda(params, func() expr.Ref {
		body, err := p.parseExpression(b)
		bodyErr = err
		return body
	})
	if bodyErr != nil {
		return expr.Ref{}, bodyErr
	}
	return result, nil
}

// parseParen handles both `(Expression)` grouping and
// `(Expression Expression+)` application, per §6.
func (p *Parser) parseParen(b *resolve.Builder) (expr.Ref, error) {
	open := p.advance() // consume '('

	var exprs []expr.Ref
	for p.peek().Kind != TokenRParen {
		if p.peek().Kind == TokenEOF {
			return expr.Ref{}, diagnostic.NewParseError(p.peek().Loc, "unexpected end of input, expected ')'")
		}
		e, err := p.parseExpression(b)
		if err != nil {
			return expr.Ref{}, err
		}
		exprs = append(exprs, e)
	}
	p.advance() // consume ')'

	if len(exprs) == 0 {
		return expr.Ref{}, diagnostic.NewParseError(open.Loc, "empty parentheses")
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return b.Apply(exprs), nil
}

func (p *Parser) parseList(b *resolve.Builder) (expr.Ref, error) {
	p.advance() // consume '['
	var exprs []expr.Ref
	for p.peek().Kind != TokenRBracket {
		if p.peek().Kind == TokenEOF {
			return expr.Ref{}, diagnostic.NewParseError(p.peek().Loc, "unexpected end of input, expected ']'")
		}
		e, err := p.parseExpression(b)
		if err != nil {
			return expr.Ref{}, err
		}
		exprs = append(exprs, e)
	}
	p.advance() // consume ']'
	return b.List(exprs), nil
}

func (p *Parser) parseTuple(b *resolve.Builder) (expr.Ref, error) {
	p.advance() // consume '{'
	var exprs []expr.Ref
	for p.peek().Kind != TokenRBrace {
		if p.peek().Kind == TokenEOF {
			return expr.Ref{}, diagnostic.NewParseError(p.peek().Loc, "unexpected end of input, expected '}'")
		}
		e, err := p.parseExpression(b)
		if err != nil {
			return expr.Ref{}, err
		}
		exprs = append(exprs, e)
	}
	p.advance() // consume '}'
	return b.Tuple(exprs), nil
}

func parseNumber(loc diagnostic.Location, text string) (uint64, error) {
	clean := strings.ReplaceAll(text, "_", "")
	n, err := strconv.ParseUint(clean, 10, 64)
	if err != nil {
		return 0, diagnostic.NewParseError(loc, "invalid number literal %q", text)
	}
	return n, nil
}

// Recover skips forward from the current position to the next plausible
// start of a statement, always consuming at least one token. Batch-mode
// callers invoke this after a parse error so a bad statement doesn't
// repeat forever: it tracks bracket nesting so a token still inside an
// unclosed paren/bracket/brace isn't mistaken for a fresh statement.
func (p *Parser) Recover() {
	depth := 0
	consumed := false
	for {
		if p.peek().Kind == TokenEOF {
			return
		}
		if consumed && depth == 0 && canStartStatement(p.peek().Kind) {
			return
		}
		switch p.advance().Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth > 0 {
				depth--
			}
		}
		consumed = true
	}
}

func canStartStatement(k TokenKind) bool {
	switch k {
	case TokenIdent, TokenNumber, TokenBackslash, TokenLParen, TokenLBracket, TokenLBrace:
		return true
	default:
		return false
	}
}

func displayToken(tok Token) string {
	if tok.Kind == TokenEOF {
		return "<eof>"
	}
	return tok.Text
}
