package interpreter

import (
	"fmt"

	"stela/interpreter-go/pkg/runtime"
)

// formatHandle renders h the way Print and Stringify both do: None as the
// literal "None"; Bool as "True"/"False"; Number as decimal; String raw
// with no quotes; Class as "Class <name>"; a ClassInstance with a
// zero-arity __str__ is invoked and its result's string form used,
// otherwise a stable object identifier is printed.
func (i *Interpreter) formatHandle(h runtime.Handle, ctx *Context) (string, error) {
	switch v := h.Value().(type) {
	case runtime.NoneValue:
		return "None", nil
	case runtime.BoolValue:
		if v.Val {
			return "True", nil
		}
		return "False", nil
	case runtime.NumberValue:
		return fmt.Sprintf("%d", v.Val), nil
	case runtime.StringValue:
		return v.Val, nil
	case *runtime.ClassValue:
		return fmt.Sprintf("Class %s", v.Name()), nil
	case *runtime.ClassInstance:
		if v.HasMethod("__str__", 0) {
			result, err := i.dispatchMethod(v, "__str__", nil, ctx)
			if err != nil {
				return "", err
			}
			return i.formatHandle(result, ctx)
		}
		return v.Identity(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
