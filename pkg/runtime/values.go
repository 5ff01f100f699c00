// Package runtime holds the dynamic object model the evaluator operates
// over: tagged values, handles, closures, and class/instance machinery.
package runtime

import "fmt"

// Kind identifies the runtime value category.
type Kind int

const (
	KindNone Kind = iota
	KindNumber
	KindString
	KindBool
	KindClass
	KindClassInstance
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindClass:
		return "Class"
	case KindClassInstance:
		return "ClassInstance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behavior for all runtime values.
type Value interface {
	Kind() Kind
}

type NoneValue struct{}

func (NoneValue) Kind() Kind { return KindNone }

type NumberValue struct {
	Val int
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// Handle carries shared-ownership semantics over a Value. Go's garbage
// collector already keeps the underlying Value alive as long as any Handle
// (or anything else) references it, so Own and View carry the same
// representation; View exists as a documented non-owning borrow, created
// only to bind self during method dispatch and never retained past the
// call it was created for.
type Handle struct {
	value Value
	view  bool
}

// HandleOwn wraps value in an owning handle.
func HandleOwn(value Value) Handle {
	return Handle{value: value}
}

// HandleView wraps value in a non-owning view, used only to bind self.
func HandleView(value Value) Handle {
	return Handle{value: value, view: true}
}

// HandleNone is the empty handle: falsy, prints as None.
func HandleNone() Handle {
	return Handle{value: NoneValue{}}
}

// IsView reports whether h was constructed with HandleView.
func (h Handle) IsView() bool { return h.view }

// Value returns the underlying Value.
func (h Handle) Value() Value {
	if h.value == nil {
		return NoneValue{}
	}
	return h.value
}

// Kind is a shorthand for h.Value().Kind().
func (h Handle) Kind() Kind { return h.Value().Kind() }

// TryAs reports whether h's underlying value is of type T, returning it if
// so.
func TryAs[T Value](h Handle) (T, bool) {
	v, ok := h.Value().(T)
	return v, ok
}

// IsTrue reports a handle's truthiness: Bool(true), a nonzero Number, or a
// non-empty String are truthy; None, Bool(false), Number(0), empty String,
// and any Class/ClassInstance are falsy.
func IsTrue(h Handle) bool {
	switch v := h.Value().(type) {
	case BoolValue:
		return v.Val
	case NumberValue:
		return v.Val != 0
	case StringValue:
		return v.Val != ""
	default:
		return false
	}
}
