package interpreter

import (
	"fmt"

	"stela/interpreter-go/pkg/ast"
	"stela/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evalAssignment(n *ast.Assignment, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	value, err := i.evaluateExpression(n.Rhs, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	closure.Insert(n.Var, value)
	return value, nil
}

func (i *Interpreter) evalFieldAssignment(n *ast.FieldAssignment, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	objHandle, err := i.evaluateExpression(n.ObjectRef, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	instance, ok := runtime.TryAs[*runtime.ClassInstance](objHandle)
	if !ok {
		return runtime.Handle{}, &runtime.TypeMismatchError{Op: "FieldAssignment", Kind: objHandle.Kind()}
	}
	value, err := i.evaluateExpression(n.Rhs, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	instance.Fields.Insert(n.Field, value)
	return value, nil
}

func (i *Interpreter) evalPrint(n *ast.Print, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	parts := make([]string, len(n.Args))
	for idx, arg := range n.Args {
		h, err := i.evaluateExpression(arg, closure, ctx)
		if err != nil {
			return runtime.Handle{}, err
		}
		s, err := i.formatHandle(h, ctx)
		if err != nil {
			return runtime.Handle{}, err
		}
		parts[idx] = s
	}
	first := true
	for _, p := range parts {
		if !first {
			fmt.Fprint(ctx.Out, " ")
		}
		fmt.Fprint(ctx.Out, p)
		first = false
	}
	fmt.Fprint(ctx.Out, "\n")
	return runtime.HandleNone(), nil
}

func (i *Interpreter) evalIfElse(n *ast.IfElse, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	cond, err := i.evaluateExpression(n.Cond, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	if runtime.IsTrue(cond) {
		if _, err := i.evaluateStatement(n.Then, closure, ctx); err != nil {
			return runtime.Handle{}, err
		}
	} else if n.Else != nil {
		if _, err := i.evaluateStatement(n.Else, closure, ctx); err != nil {
			return runtime.Handle{}, err
		}
	}
	return runtime.HandleNone(), nil
}

// evalCompound runs each statement in order, stopping as soon as a return
// has fired anywhere within this activation — checked via the return
// sentinel after every step, not by unwinding an error.
func (i *Interpreter) evalCompound(n *ast.Compound, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	for _, stmt := range n.Stmts {
		if _, err := i.evaluateStatement(stmt, closure, ctx); err != nil {
			return runtime.Handle{}, err
		}
		if closure.Contains(runtime.ReturnedValueKey) {
			return runtime.HandleNone(), nil
		}
	}
	return runtime.HandleNone(), nil
}

func (i *Interpreter) evalReturn(n *ast.Return, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	value, err := i.evaluateExpression(n.Expr, closure, ctx)
	if err != nil {
		return runtime.Handle{}, err
	}
	closure.Insert(runtime.ReturnedValueKey, value)
	return runtime.HandleNone(), nil
}

func (i *Interpreter) evalClassDefinition(n *ast.ClassDefinition, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	classValue := runtime.NewClassValue(n.Class)
	if i.logger != nil {
		i.logger.Debug("register class", "name", n.Class.Name)
	}
	closure.Insert(n.Class.Name, runtime.HandleOwn(classValue))
	return runtime.HandleNone(), nil
}

// evalMethodBody is the sole site that consumes the return sentinel: it
// runs Body and converts whatever it left behind into the statement's own
// result.
func (i *Interpreter) evalMethodBody(n *ast.MethodBody, closure *runtime.Closure, ctx *Context) (runtime.Handle, error) {
	if _, err := i.evaluateStatement(n.Body, closure, ctx); err != nil {
		return runtime.Handle{}, err
	}
	if closure.Contains(runtime.ReturnedValueKey) {
		return closure.Lookup(runtime.ReturnedValueKey)
	}
	return runtime.HandleNone(), nil
}
