package runtime

import "sort"

// ReturnedValueKey is the sentinel identifier a Return statement writes
// into the active closure; its presence short-circuits enclosing compound
// statements and is consumed only by the MethodBody statement that wraps a
// method's body.
// Reserved: user code never assigns to it (an external parser's job to
// reject; the evaluator simply relies on the reservation holding).
const ReturnedValueKey = "returned_value"

// Closure is a flat identifier-to-handle mapping for one activation. It
// has no parent link: a method or top-level execution sees only what was
// explicitly bound into its own closure, never an enclosing scope.
type Closure struct {
	bindings map[string]Handle
}

// NewClosure returns an empty closure.
func NewClosure() *Closure {
	return &Closure{bindings: make(map[string]Handle)}
}

// Insert binds name to handle, overwriting any existing binding.
func (c *Closure) Insert(name string, handle Handle) {
	c.bindings[name] = handle
}

// Lookup returns the handle bound to name, or UnknownVariableError if
// absent.
func (c *Closure) Lookup(name string) (Handle, error) {
	h, ok := c.bindings[name]
	if !ok {
		return Handle{}, &UnknownVariableError{Name: name}
	}
	return h, nil
}

// Contains reports whether name is bound in this closure.
func (c *Closure) Contains(name string) bool {
	_, ok := c.bindings[name]
	return ok
}

// Keys returns the bound names in sorted order, useful for deterministic
// tests and debug logging.
func (c *Closure) Keys() []string {
	keys := make([]string, 0, len(c.bindings))
	for k := range c.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
