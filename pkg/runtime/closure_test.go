package runtime

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClosureLookupMissing(t *testing.T) {
	c := NewClosure()
	if _, err := c.Lookup("missing"); err == nil {
		t.Fatalf("expected UnknownVariableError")
	}
	if c.Contains("missing") {
		t.Fatalf("Contains should be false for an absent key")
	}
}

func TestClosureInsertAndLookup(t *testing.T) {
	c := NewClosure()
	c.Insert("x", HandleOwn(NumberValue{Val: 1}))
	h, err := c.Lookup("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := TryAs[NumberValue](h)
	if !ok {
		t.Fatalf("unexpected value %v", h.Value())
	}
	if diff := cmp.Diff(NumberValue{Val: 1}, v); diff != "" {
		t.Fatalf("lookup mismatch:\n%s", diff)
	}
	c.Insert("x", HandleOwn(NumberValue{Val: 2}))
	h, _ = c.Lookup("x")
	v, _ = TryAs[NumberValue](h)
	if diff := cmp.Diff(NumberValue{Val: 2}, v); diff != "" {
		t.Fatalf("overwrite did not take effect:\n%s", diff)
	}
}

func TestClosureIsFlatNoParent(t *testing.T) {
	// A closure built for one activation must not see bindings from
	// another; there is no chaining mechanism at all.
	outer := NewClosure()
	outer.Insert("x", HandleOwn(NumberValue{Val: 99}))

	inner := NewClosure()
	if inner.Contains("x") {
		t.Fatalf("a fresh closure must not inherit bindings from another")
	}
	if _, err := inner.Lookup("x"); err == nil {
		t.Fatalf("expected lookup miss; closures do not chain")
	}
}

func TestReturnedValueSentinel(t *testing.T) {
	c := NewClosure()
	if c.Contains(ReturnedValueKey) {
		t.Fatalf("sentinel must not be present before a return fires")
	}
	c.Insert(ReturnedValueKey, HandleOwn(StringValue{Val: "done"}))
	if !c.Contains(ReturnedValueKey) {
		t.Fatalf("sentinel must be present after insertion")
	}
}
