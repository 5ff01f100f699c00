package interpreter

import "io"

// Context is the ambient execution service the evaluator needs beyond the
// active closure: presently a single output sink, written by Print (value
// formatting only builds strings for Print and Stringify). An embedder
// supplies one; this package never opens files or reads configuration
// itself.
type Context struct {
	Out io.Writer
}

// NewContext wraps out as a Context.
func NewContext(out io.Writer) *Context {
	return &Context{Out: out}
}
