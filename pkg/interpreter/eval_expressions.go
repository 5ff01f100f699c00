package interpreter

import (
	"fmt"

	"stela/interpreter-go/pkg/ast"
	"stela/interpreter-go/pkg/runtime"
)

// evalVariableValue looks up DottedIds[0] in the closure, then walks any
// remaining ids as field reads against successive ClassInstance values.
func (i *Interpreter) evalVariableValue(n *ast.VariableValue, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	if len(n.DottedIds) == 0 {
		return runtime.Handle{}, fmt.Errorf("interpreter: VariableValue with no ids")
	}
	current, err := closure.Lookup(n.DottedIds[0])
	if err != nil {
		return runtime.Handle{}, err
	}
	for _, field := range n.DottedIds[1:] {
		instance, ok := runtime.TryAs[*runtime.ClassInstance](current)
		if !ok {
			return runtime.Handle{}, &runtime.UnknownFieldError{Name: field}
		}
		current, err = instance.Fields.Lookup(field)
		if err != nil {
			return runtime.Handle{}, &runtime.UnknownFieldError{Name: field}
		}
	}
	return current, nil
}

// evalAdd is polymorphic: Number+Number sums, String+String concatenates,
// and a ClassInstance left operand whose class defines __add__(1) dispatches
// to it with the right operand as the sole argument.
func (i *Interpreter) evalAdd(n *ast.Add, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	left, err := i.evaluateExpression(n.Left, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	right, err := i.evaluateExpression(n.Right, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}

	if l, ok := runtime.TryAs[runtime.NumberValue](left); ok {
		if r, ok := runtime.TryAs[runtime.NumberValue](right); ok {
			return runtime.HandleOwn(runtime.NumberValue{Val: l.Val + r.Val}), nil
		}
	}
	if l, ok := runtime.TryAs[runtime.StringValue](left); ok {
		if r, ok := runtime.TryAs[runtime.StringValue](right); ok {
			return runtime.HandleOwn(runtime.StringValue{Val: l.Val + r.Val}), nil
		}
	}
	if instance, ok := runtime.TryAs[*runtime.ClassInstance](left); ok && instance.HasMethod("__add__", 1) {
		return i.dispatchMethod(instance, "__add__", []runtime.Handle{right}, ctx)
	}
	return runtime.Handle{}, &runtime.TypeMismatchError{Op: "Add", Kind: left.Kind()}
}

// evalArithmetic implements Sub/Mult/Div: both operands must be Number;
// apply is given the two int values and may itself return
// DivisionByZeroError.
func (i *Interpreter) evalArithmetic(leftExpr, rightExpr ast.Expression, closure *runtime.Closure, ctx *Context, op string, apply func(a, b int) (int, error)) (runtime.Handle, error) {
	left, err := i.evaluateExpression(leftExpr, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	right, err := i.evaluateExpression(rightExpr, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	l, ok := runtime.TryAs[runtime.NumberValue](left)
	if !ok {
		return runtime.Handle{}, &runtime.TypeMismatchError{Op: op, Kind: left.Kind()}
	}
	r, ok := runtime.TryAs[runtime.NumberValue](right)
	if !ok {
		return runtime.Handle{}, &runtime.TypeMismatchError{Op: op, Kind: right.Kind()}
	}
	result, err := apply(l.Val, r.Val)
	if err != nil {
		return runtime.Handle{}, err
	}
	return runtime.HandleOwn(runtime.NumberValue{Val: result}), nil
}

// evalComparison implements Equal and Less natively; the other four
// comparators are derived per the documented boolean identities, so a
// ClassInstance comparison only ever consults __eq__/__lt__.
func (i *Interpreter) evalComparison(n *ast.Comparison, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	left, err := i.evaluateExpression(n.Left, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	right, err := i.evaluateExpression(n.Right, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}

	switch n.Cmp {
	case ast.Equal:
		v, err := i.equalHandles(left, right, ctx)
		return runtime.HandleOwn(runtime.BoolValue{Val: v}), err
	case ast.NotEqual:
		v, err := i.equalHandles(left, right, ctx)
		return runtime.HandleOwn(runtime.BoolValue{Val: !v}), err
	case ast.Less:
		v, err := i.lessHandles(left, right, ctx)
		return runtime.HandleOwn(runtime.BoolValue{Val: v}), err
	case ast.Greater:
		lt, err := i.lessHandles(left, right, ctx)
		if err != nil {
			return runtime.Handle{}, err
		}
		eq, err := i.equalHandles(left, right, ctx)
		if err != nil {
			return runtime.Handle{}, err
		}
		return runtime.HandleOwn(runtime.BoolValue{Val: !(lt || eq)}), nil
	case ast.LessOrEqual:
		lt, err := i.lessHandles(left, right, ctx)
		if err != nil {
			return runtime.Handle{}, err
		}
		eq, err := i.equalHandles(left, right, ctx)
		if err != nil {
			return runtime.Handle{}, err
		}
		greater := !(lt || eq)
		return runtime.HandleOwn(runtime.BoolValue{Val: !greater}), nil
	case ast.GreaterOrEqual:
		lt, err := i.lessHandles(left, right, ctx)
		if err != nil {
			return runtime.Handle{}, err
		}
		return runtime.HandleOwn(runtime.BoolValue{Val: !lt}), nil
	default:
		return runtime.Handle{}, fmt.Errorf("interpreter: unknown comparator %q", n.Cmp)
	}
}

func (i *Interpreter) equalHandles(left, right runtime.Handle, ctx *Context) (bool, error) {
	_, leftNone := runtime.TryAs[runtime.NoneValue](left)
	_, rightNone := runtime.TryAs[runtime.NoneValue](right)
	if leftNone && rightNone {
		return true, nil
	}
	if l, ok := runtime.TryAs[runtime.NumberValue](left); ok {
		r, ok := runtime.TryAs[runtime.NumberValue](right)
		if !ok {
			return false, &runtime.TypeMismatchError{Op: "Equal", Kind: right.Kind()}
		}
		return l.Val == r.Val, nil
	}
	if l, ok := runtime.TryAs[runtime.StringValue](left); ok {
		r, ok := runtime.TryAs[runtime.StringValue](right)
		if !ok {
			return false, &runtime.TypeMismatchError{Op: "Equal", Kind: right.Kind()}
		}
		return l.Val == r.Val, nil
	}
	if l, ok := runtime.TryAs[runtime.BoolValue](left); ok {
		r, ok := runtime.TryAs[runtime.BoolValue](right)
		if !ok {
			return false, &runtime.TypeMismatchError{Op: "Equal", Kind: right.Kind()}
		}
		return l.Val == r.Val, nil
	}
	if instance, ok := runtime.TryAs[*runtime.ClassInstance](left); ok && instance.HasMethod("__eq__", 1) {
		result, err := i.dispatchMethod(instance, "__eq__", []runtime.Handle{right}, ctx)
		if err != nil {
			return false, err
		}
		return runtime.IsTrue(result), nil
	}
	return false, &runtime.TypeMismatchError{Op: "Equal", Kind: left.Kind()}
}

func (i *Interpreter) lessHandles(left, right runtime.Handle, ctx *Context) (bool, error) {
	if l, ok := runtime.TryAs[runtime.NumberValue](left); ok {
		r, ok := runtime.TryAs[runtime.NumberValue](right)
		if !ok {
			return false, &runtime.TypeMismatchError{Op: "Less", Kind: right.Kind()}
		}
		return l.Val < r.Val, nil
	}
	if l, ok := runtime.TryAs[runtime.StringValue](left); ok {
		r, ok := runtime.TryAs[runtime.StringValue](right)
		if !ok {
			return false, &runtime.TypeMismatchError{Op: "Less", Kind: right.Kind()}
		}
		return l.Val < r.Val, nil
	}
	if l, ok := runtime.TryAs[runtime.BoolValue](left); ok {
		r, ok := runtime.TryAs[runtime.BoolValue](right)
		if !ok {
			return false, &runtime.TypeMismatchError{Op: "Less", Kind: right.Kind()}
		}
		return !l.Val && r.Val, nil
	}
	if instance, ok := runtime.TryAs[*runtime.ClassInstance](left); ok && instance.HasMethod("__lt__", 1) {
		result, err := i.dispatchMethod(instance, "__lt__", []runtime.Handle{right}, ctx)
		if err != nil {
			return false, err
		}
		return runtime.IsTrue(result), nil
	}
	return false, &runtime.TypeMismatchError{Op: "Less", Kind: left.Kind()}
}

// evalOr/evalAnd short-circuit; both always produce a Bool, never the
// original operand.
func (i *Interpreter) evalOr(n *ast.Or, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	left, err := i.evaluateExpression(n.Left, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	if runtime.IsTrue(left) {
		return runtime.HandleOwn(runtime.BoolValue{Val: true}), nil
	}
	right, err := i.evaluateExpression(n.Right, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	return runtime.HandleOwn(runtime.BoolValue{Val: runtime.IsTrue(right)}), nil
}

func (i *Interpreter) evalAnd(n *ast.And, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	left, err := i.evaluateExpression(n.Left, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	if !runtime.IsTrue(left) {
		return runtime.HandleOwn(runtime.BoolValue{Val: false}), nil
	}
	right, err := i.evaluateExpression(n.Right, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	return runtime.HandleOwn(runtime.BoolValue{Val: runtime.IsTrue(right)}), nil
}

func (i *Interpreter) evalNot(n *ast.Not, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	operand, err := i.evaluateExpression(n.Operand, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	return runtime.HandleOwn(runtime.BoolValue{Val: !runtime.IsTrue(operand)}), nil
}

// evalMethodCall evaluates Object (must be a ClassInstance), evaluates each
// Arg left to right, then dispatches Method against the receiver.
func (i *Interpreter) evalMethodCall(n *ast.MethodCall, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	objHandle, err := i.evaluateExpression(n.Object, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	instance, ok := runtime.TryAs[*runtime.ClassInstance](objHandle)
	if !ok {
		return runtime.Handle{}, &runtime.TypeMismatchError{Op: "MethodCall", Kind: objHandle.Kind()}
	}
	args := make([]runtime.Handle, len(n.Args))
	for idx, argExpr := range n.Args {
		arg, err := i.evaluateExpression(argExpr, closure, ctx)
		if err != nil {
			return runtime.Handle{}, err
		}
		args[idx] = arg
	}
	return i.dispatchMethod(instance, n.Method, args, ctx)
}

// evalNewInstance allocates a fresh instance and, if the class defines
// __init__ with matching arity, dispatches it. The expression's result is
// the __init__ call's self-rebinding result when __init__ ran and rebound
// self; otherwise the freshly created instance, whether or not __init__ ran.
func (i *Interpreter) evalNewInstance(n *ast.NewInstance, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	classValue := runtime.NewClassValue(n.Class)
	instance := runtime.NewClassInstance(classValue)

	args := make([]runtime.Handle, len(n.Args))
	for idx, argExpr := range n.Args {
		arg, err := i.evaluateExpression(argExpr, closure, ctx)
		if err != nil {
			return runtime.Handle{}, err
		}
		args[idx] = arg
	}

	if instance.HasMethod("__init__", len(args)) {
		result, err := i.dispatchMethod(instance, "__init__", args, ctx)
		if err != nil {
			return runtime.Handle{}, err
		}
		if reboundInstance, ok := runtime.TryAs[*runtime.ClassInstance](result); ok && reboundInstance != instance {
			return result, nil
		}
	}
	return runtime.HandleOwn(instance), nil
}

// evalStringify implements str(...): None becomes "None", a ClassInstance
// with a zero-arity __str__ is invoked and its result formatted, and
// everything else is formatted via the object's own default print form.
func (i *Interpreter) evalStringify(n *ast.Stringify, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	h, err := i.evaluateExpression(n.Arg, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	s, err := i.formatHandle(h, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	return runtime.HandleOwn(runtime.StringValue{Val: s}), nil
}
