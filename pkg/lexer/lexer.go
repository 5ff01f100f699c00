// Package lexer turns source text into the token stream the evaluator's
// external parser collaborator consumes, honoring the language's
// indentation-as-block-structure syntax.
package lexer

import (
	"io"
	"strings"

	"stela/interpreter-go/pkg/token"
)

const indentUnit = 2

// comparisonLead chars may start a two-character comparison operator when
// immediately followed by '='.
var comparisonLead = map[rune]bool{'=': true, '<': true, '>': true, '!': true}

// punctuators are the single-character tokens recognized outside of an
// operator pair.
var punctuators = map[rune]bool{
	'(': true, ')': true, ',': true, '.': true, ':': true,
	'+': true, '-': true, '*': true, '/': true, '<': true, '>': true,
}

// Lexer produces tokens on demand, carrying the hidden indent-tracking
// state: the current token, the current indent depth, and a signed delta
// the next several Next calls drain one Indent/Dedent at a time.
type Lexer struct {
	src                []rune
	pos                int
	line               int
	current            token.Token
	currentIndent      int
	pendingIndentDelta int
}

// New reads all of r and constructs a Lexer positioned at the first real
// token: leading blank and comment lines are skipped, current is seeded
// to Newline, and Next is called once so Current holds the first real
// token. Lexical errors surface from whichever Next call reaches the bad
// input; New returns the error of its own first Next call, so malformed
// source in the first token fails construction.
func New(r io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	l := &Lexer{
		src:     []rune(strings.ReplaceAll(string(data), "\r\n", "\n")),
		line:    1,
		current: token.Token{Kind: token.Newline},
	}
	if err := l.ignoreInitialComments(); err != nil {
		return nil, err
	}
	if _, err := l.Next(); err != nil {
		return nil, err
	}
	return l, nil
}

// Current returns the most recently produced token.
func (l *Lexer) Current() token.Token {
	return l.current
}

// Next advances the lexer and returns the new current token. Once Eof has
// been produced, further calls are idempotent.
func (l *Lexer) Next() (token.Token, error) {
	if l.current.Kind == token.Eof {
		return l.current, nil
	}

	if l.current.Kind == token.Newline {
		if err := l.ignoreEmptyLinesAndComments(); err != nil {
			return token.Token{}, err
		}
	}

	if l.pendingIndentDelta != 0 {
		l.current = l.drainIndentOrDedent()
		return l.current, nil
	}

	l.ignoreSpaces()

	r, ok := l.get()
	switch {
	case !ok:
		if l.current.Kind == token.Newline || l.current.Kind == token.Indent || l.current.Kind == token.Dedent {
			l.current = token.Token{Kind: token.Eof, Line: l.line}
			return l.current, nil
		}
		l.current = token.Token{Kind: token.Newline, Line: l.line}
		return l.current, nil

	case r == '\n':
		l.current = token.Token{Kind: token.Newline, Line: l.line}
		l.line++
		return l.current, nil

	case r == '#':
		l.skipToEndOfLine()
		if err := l.ignoreEmptyLinesAndComments(); err != nil {
			return token.Token{}, err
		}
		next, ok := l.peek()
		switch {
		case ok && next == '#':
			return l.Next()
		case !ok:
			l.current = token.Token{Kind: token.Eof, Line: l.line}
			return l.current, nil
		default:
			l.current = token.Token{Kind: token.Newline, Line: l.line}
			return l.current, nil
		}

	case isDigit(r):
		l.unget()
		tok, err := l.parseNumber()
		if err != nil {
			return token.Token{}, err
		}
		l.current = tok
		return l.current, nil

	case r == '\'' || r == '"':
		l.unget()
		tok, err := l.parseString()
		if err != nil {
			return token.Token{}, err
		}
		l.current = tok
		return l.current, nil

	case r == '=' && !l.peekIs('='):
		l.current = token.Token{Kind: token.Char, CharValue: '=', Line: l.line}
		return l.current, nil

	case comparisonLead[r] && l.peekIs('='):
		l.unget()
		tok, err := l.parseComparisonOperator()
		if err != nil {
			return token.Token{}, err
		}
		l.current = tok
		return l.current, nil

	case punctuators[r]:
		l.current = token.Token{Kind: token.Char, CharValue: r, Line: l.line}
		return l.current, nil

	case isAlpha(r) || r == '_':
		l.unget()
		tok, err := l.parseName()
		if err != nil {
			return token.Token{}, err
		}
		l.current = tok
		return l.current, nil

	default:
		return token.Token{}, newError(l.line, "unrecognized character %q", r)
	}
}

func (l *Lexer) drainIndentOrDedent() token.Token {
	switch {
	case l.pendingIndentDelta > 0:
		l.pendingIndentDelta--
		return token.Token{Kind: token.Indent, Line: l.line}
	case l.pendingIndentDelta < 0:
		l.pendingIndentDelta++
		return token.Token{Kind: token.Dedent, Line: l.line}
	default:
		// Unreachable: Next only calls this while pendingIndentDelta != 0.
		return token.Token{Kind: token.Newline, Line: l.line}
	}
}

func (l *Lexer) parseNumber() (token.Token, error) {
	start := l.pos
	for {
		r, ok := l.peek()
		if !ok || !isDigit(r) {
			break
		}
		l.pos++
	}
	text := string(l.src[start:l.pos])
	if r, ok := l.peek(); ok && r != ' ' && r != '\n' && !punctuators[r] && !comparisonLead[r] {
		return token.Token{}, newError(l.line, "malformed number %q", text)
	}
	n := 0
	for _, c := range text {
		n = n*10 + int(c-'0')
	}
	return token.Token{Kind: token.Number, NumberValue: n, Line: l.line}, nil
}

func (l *Lexer) parseString() (token.Token, error) {
	quote, _ := l.get()
	var b strings.Builder
	for {
		r, ok := l.get()
		if !ok {
			return token.Token{}, newError(l.line, "unterminated string")
		}
		switch {
		case r == quote:
			return token.Token{Kind: token.String, StringValue: b.String(), Line: l.line}, nil
		case r == '\\':
			esc, ok := l.get()
			if !ok {
				return token.Token{}, newError(l.line, "unterminated string")
			}
			switch esc {
			case 't':
				b.WriteRune('\t')
			case 'n':
				b.WriteRune('\n')
			default:
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(r)
		}
	}
}

func (l *Lexer) parseName() (token.Token, error) {
	start := l.pos
	for {
		r, ok := l.peek()
		if !ok || !(isAlpha(r) || isDigit(r) || r == '_') {
			break
		}
		l.pos++
	}
	name := string(l.src[start:l.pos])
	kind := token.Lookup(name)
	if kind == token.Id {
		return token.Token{Kind: token.Id, IdValue: name, Line: l.line}, nil
	}
	return token.Token{Kind: kind, Line: l.line}, nil
}

func (l *Lexer) parseComparisonOperator() (token.Token, error) {
	first, _ := l.get()
	second, ok := l.get()
	if !ok || second != '=' {
		return token.Token{}, newError(l.line, "expected comparison operator")
	}
	switch first {
	case '=':
		return token.Token{Kind: token.Eq, Line: l.line}, nil
	case '!':
		return token.Token{Kind: token.NotEq, Line: l.line}, nil
	case '<':
		return token.Token{Kind: token.LessOrEq, Line: l.line}, nil
	case '>':
		return token.Token{Kind: token.GreaterOrEq, Line: l.line}, nil
	default:
		return token.Token{}, newError(l.line, "expected comparison operator")
	}
}

// ignoreInitialComments skips leading comment lines (and any spaces before
// their '#'), before the lexer's Newline-driven bookkeeping begins. Leading
// blank lines are left for the first Next call to consume.
func (l *Lexer) ignoreInitialComments() error {
	for {
		l.ignoreSpaces()
		r, ok := l.peek()
		if !ok || r != '#' {
			return nil
		}
		l.skipToEndOfLine()
		if nl, ok := l.peek(); ok && nl == '\n' {
			l.pos++
			l.line++
		}
	}
}

func (l *Lexer) ignoreSpaces() {
	for {
		r, ok := l.peek()
		if !ok || r != ' ' {
			return
		}
		l.pos++
	}
}

// ignoreEmptyLinesAndComments consumes blank lines and full-line comments,
// then measures the indentation of the next logical line and records the
// signed delta from the current indent depth.
func (l *Lexer) ignoreEmptyLinesAndComments() error {
	spaces := 0
	for {
		r, ok := l.peek()
		if !ok || r != ' ' {
			break
		}
		l.pos++
		spaces++
	}

	if r, ok := l.peek(); ok && r == '\n' {
		l.pos++
		l.line++
		return l.ignoreEmptyLinesAndComments()
	}

	if r, ok := l.peek(); ok && r == '#' {
		l.skipToEndOfLine()
		return l.ignoreEmptyLinesAndComments()
	}

	if spaces%2 != 0 {
		return newError(l.line, "invalid indent")
	}

	depth := spaces / indentUnit
	l.pendingIndentDelta = depth - l.currentIndent
	l.currentIndent = depth
	return nil
}

func (l *Lexer) skipToEndOfLine() {
	for {
		r, ok := l.peek()
		if !ok || r == '\n' {
			return
		}
		l.pos++
	}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) peekIs(want rune) bool {
	r, ok := l.peek()
	return ok && r == want
}

func (l *Lexer) get() (rune, bool) {
	r, ok := l.peek()
	if !ok {
		return 0, false
	}
	l.pos++
	return r, true
}

func (l *Lexer) unget() {
	if l.pos > 0 {
		l.pos--
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isAlpha(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
