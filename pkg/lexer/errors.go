package lexer

import "fmt"

// Error reports a lexical fault: invalid indent, unterminated string,
// unrecognized character, or malformed number.
type Error struct {
	Message string
	Line    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer: %s (line %d)", e.Message, e.Line)
}

func newError(line int, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Line: line}
}
